package line

import (
	"sort"

	"github.com/railbook/itinerary-engine/catalog"
	"github.com/railbook/itinerary-engine/internal"
)

type pairKey struct {
	lo, hi int64
}

func keyFor(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Line is the single ordered route the whole network models. Stations are
// held in line-position order; tracks are indexed by unordered station
// pair so lookup works regardless of storage direction.
type Line struct {
	stations []catalog.Station
	position map[int64]int       // station_id -> index into stations
	segments map[pairKey]float64 // unordered pair -> km
}

// New builds a Line from station and track snapshots. Station order is
// taken from the explicit line positions, never from slice order.
func New(stations []catalog.Station, tracks []catalog.Track) *Line {
	ordered := make([]catalog.Station, len(stations))
	copy(ordered, stations)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].LinePosition < ordered[j].LinePosition
	})

	l := &Line{
		stations: ordered,
		position: make(map[int64]int, len(ordered)),
		segments: make(map[pairKey]float64, len(tracks)),
	}
	for i, st := range ordered {
		l.position[st.ID] = i
	}
	for _, t := range tracks {
		l.segments[keyFor(t.StationA, t.StationB)] = t.DistanceKm
	}
	return l
}

// Position returns a station's rank along the line.
func (l *Line) Position(stationID int64) (int, error) {
	pos, ok := l.position[stationID]
	if !ok {
		return 0, internal.NotFound("station", "%d", stationID)
	}
	return pos, nil
}

// StationAt returns the station at a line position.
func (l *Line) StationAt(pos int) (catalog.Station, error) {
	if pos < 0 || pos >= len(l.stations) {
		return catalog.Station{}, internal.NotFound("station", "line position %d", pos)
	}
	return l.stations[pos], nil
}

// Len returns the number of stations on the line.
func (l *Line) Len() int { return len(l.stations) }

// DistanceBetween sums the track segments between two stations, walking
// the contiguous slice of the line between their positions. A missing
// segment is a gap in the line and reported as not found, never as zero
// distance.
func (l *Line) DistanceBetween(fromStationID, toStationID int64) (float64, error) {
	from, err := l.Position(fromStationID)
	if err != nil {
		return 0, err
	}
	to, err := l.Position(toStationID)
	if err != nil {
		return 0, err
	}
	if from == to {
		return 0, nil
	}
	if from > to {
		from, to = to, from
	}
	var km float64
	for i := from; i < to; i++ {
		a := l.stations[i].ID
		b := l.stations[i+1].ID
		seg, ok := l.segments[keyFor(a, b)]
		if !ok {
			return 0, internal.NotFound("track", "between stations %d and %d", a, b)
		}
		km += seg
	}
	return km, nil
}
