package itinerary

import (
	"context"
	"sort"
	"time"

	"github.com/railbook/itinerary-engine/catalog"
	"github.com/railbook/itinerary-engine/fare"
	"github.com/railbook/itinerary-engine/internal"
	"github.com/railbook/itinerary-engine/inventory"
	"github.com/railbook/itinerary-engine/line"
	"github.com/railbook/itinerary-engine/timetable"
)

// Query is one itinerary search request.
type Query struct {
	FromStationID int64  `json:"fromStationId" validate:"required"`
	ToStationID   int64  `json:"toStationId" validate:"required"`
	Date          string `json:"date" validate:"required"`
	NotBefore     string `json:"notBefore" validate:"omitempty"`
}

// Option is one dated, priced, seat-aware train option.
type Option struct {
	ScheduleID      int64                `json:"scheduleId"`
	TrainID         int64                `json:"trainId"`
	TrainName       string               `json:"trainName"`
	FromStationID   int64                `json:"fromStationId"`
	ToStationID     int64                `json:"toStationId"`
	DepartureDate   string               `json:"departureDate"`
	DepartureTime   string               `json:"departureTime"`
	ArrivalDate     string               `json:"arrivalDate"`
	ArrivalTime     string               `json:"arrivalTime"`
	DistanceKm      float64              `json:"distanceKm"`
	DurationMinutes int                  `json:"durationMinutes"`
	Duration        string               `json:"duration"`
	AvailableSeats  int                  `json:"availableSeats"`
	Fares           map[string]int       `json:"fares"`
	Legs            []timetable.DatedLeg `json:"legs"`

	departureAt time.Time
}

// Service orchestrates the search pipeline: external lookups, direction
// and slicing, timeline reconstruction, distance, fares and capacity.
type Service struct {
	cat        catalog.Catalog
	reconciler *inventory.Reconciler
	tlOpts     timetable.Options
}

// NewService builds a Service over a catalog. arena may be nil; holds
// then never overlay availability.
func NewService(cat catalog.Catalog, arena *inventory.HoldArena, tlOpts timetable.Options) *Service {
	return &Service{
		cat:        cat,
		reconciler: inventory.NewReconciler(cat, arena),
		tlOpts:     tlOpts,
	}
}

// Reconciler exposes the service's inventory reconciler for seat-map
// requests, so the HTTP layer shares one catalog and hold overlay.
func (s *Service) Reconciler() *inventory.Reconciler { return s.reconciler }

// Search produces every dated, priced option serving the request, ordered
// by departure time ascending. Schedules that do not serve the requested
// segment are dropped, not errors; malformed input fails immediately.
func (s *Service) Search(ctx context.Context, q Query) ([]Option, error) {
	if q.FromStationID == q.ToStationID {
		return nil, internal.InvalidInput("origin and destination are the same station (%d)", q.FromStationID)
	}
	tripStart, err := internal.ParseDate(q.Date)
	if err != nil {
		return nil, err
	}
	if q.NotBefore != "" {
		if _, err := internal.ParseClockMinutes(q.NotBefore); err != nil {
			return nil, err
		}
	}

	ln, err := s.loadLine(ctx)
	if err != nil {
		return nil, err
	}
	fromPos, err := ln.Position(q.FromStationID)
	if err != nil {
		return nil, err
	}
	toPos, err := ln.Position(q.ToStationID)
	if err != nil {
		return nil, err
	}
	distance, err := ln.DistanceBetween(q.FromStationID, q.ToStationID)
	if err != nil {
		// A gap in the line means no route exists, not a zero-distance trip.
		return nil, err
	}

	schedules, err := s.cat.SchedulesServing(ctx, q.FromStationID, q.ToStationID, q.NotBefore)
	if err != nil {
		return nil, err
	}

	ascending := toPos > fromPos
	options := make([]Option, 0, len(schedules))
	for _, sch := range schedules {
		opt, err := s.buildOption(ctx, sch, q, ln, tripStart, distance, ascending)
		if err != nil {
			if internal.IsNotFound(err) {
				// This schedule doesn't serve the requested segment.
				continue
			}
			return nil, err
		}
		options = append(options, opt)
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].departureAt.Before(options[j].departureAt)
	})
	return options, nil
}

func (s *Service) buildOption(ctx context.Context, sch catalog.Schedule, q Query, ln *line.Line, tripStart time.Time, distance float64, ascending bool) (Option, error) {
	rows, err := s.cat.Waypoints(ctx, sch.ID)
	if err != nil {
		return Option{}, err
	}

	iFrom, iTo := -1, -1
	for i, w := range rows {
		switch w.StationID {
		case q.FromStationID:
			iFrom = i
		case q.ToStationID:
			iTo = i
		}
	}
	if iFrom < 0 || iTo < 0 {
		return Option{}, internal.NotFound("waypoint", "schedule %d does not stop at both endpoints", sch.ID)
	}

	lo, hi := iFrom, iTo
	if lo > hi {
		lo, hi = hi, lo
	}
	slice := make([]timetable.Waypoint, 0, hi-lo+1)
	for _, w := range rows[lo : hi+1] {
		slice = append(slice, timetable.Waypoint{
			StationID: w.StationID,
			Arrival:   w.Arrival,
			Departure: w.Departure,
		})
	}
	// The request travels against the schedule's native stop order when
	// the origin appears after the destination in waypoint order; the
	// slice is re-oriented to start at the origin before reconstruction.
	if iFrom > iTo {
		slice = timetable.Reverse(slice)
	}
	if err := s.checkMonotonic(ln, slice, ascending); err != nil {
		return Option{}, err
	}

	legs, err := timetable.Reconstruct(slice, tripStart, s.tlOpts)
	if err != nil {
		return Option{}, err
	}
	dep := legs[0]
	arr := legs[len(legs)-1]

	depAt, err := internal.CombineDateClock(dep.Date, dep.Departure)
	if err != nil {
		return Option{}, err
	}
	arrAt, err := internal.CombineDateClock(arr.Date, arr.Arrival)
	if err != nil {
		return Option{}, err
	}
	durationMinutes := int(arrAt.Sub(depAt) / time.Minute)

	capacity, err := s.reconciler.AvailableCapacity(ctx, sch.TrainID, q.FromStationID, q.ToStationID, dep.Departure, dep.DateText)
	if err != nil {
		return Option{}, err
	}
	fares, err := s.faresByType(ctx, sch.TrainID, distance)
	if err != nil {
		return Option{}, err
	}

	return Option{
		ScheduleID:      sch.ID,
		TrainID:         sch.TrainID,
		TrainName:       sch.TrainName,
		FromStationID:   q.FromStationID,
		ToStationID:     q.ToStationID,
		DepartureDate:   dep.DateText,
		DepartureTime:   dep.Departure,
		ArrivalDate:     arr.DateText,
		ArrivalTime:     arr.Arrival,
		DistanceKm:      distance,
		DurationMinutes: durationMinutes,
		Duration:        internal.FormatMinutes(durationMinutes),
		AvailableSeats:  capacity,
		Fares:           fares,
		Legs:            legs,
		departureAt:     depAt,
	}, nil
}

// checkMonotonic verifies the oriented slice walks line positions
// strictly in the direction of travel; anything else is upstream data
// corruption.
func (s *Service) checkMonotonic(ln *line.Line, slice []timetable.Waypoint, ascending bool) error {
	prev := -1
	for _, w := range slice {
		pos, err := ln.Position(w.StationID)
		if err != nil {
			return internal.InconsistentData("waypoint references unknown station %d", w.StationID)
		}
		if !ascending {
			pos = ln.Len() - 1 - pos
		}
		if prev >= 0 && pos <= prev {
			return internal.InconsistentData(
				"waypoints do not walk line positions monotonically at station %d", w.StationID)
		}
		prev = pos
	}
	return nil
}

// faresByType prices the requested segment once per coach type present on
// the train.
func (s *Service) faresByType(ctx context.Context, trainID int64, distance float64) (map[string]int, error) {
	coaches, err := s.cat.CoachesByTrain(ctx, trainID)
	if err != nil {
		return nil, err
	}
	fares := map[string]int{}
	for _, c := range coaches {
		ct, err := s.cat.CoachType(ctx, c.CoachTypeID)
		if err != nil {
			return nil, err
		}
		if _, ok := fares[ct.Label]; ok {
			continue
		}
		fares[ct.Label] = fare.PriceFor(distance, ct.Price)
	}
	return fares, nil
}

func (s *Service) loadLine(ctx context.Context) (*line.Line, error) {
	stations, err := s.cat.Stations(ctx)
	if err != nil {
		return nil, err
	}
	tracks, err := s.cat.Tracks(ctx)
	if err != nil {
		return nil, err
	}
	return line.New(stations, tracks), nil
}
