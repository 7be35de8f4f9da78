package catalog

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
)

// LoadSnapshotZip builds a Snapshot from a zip of CSV files:
// stations.txt, tracks.txt, schedules.txt, journeys.txt, coach_types.txt,
// coaches.txt, tickets.txt. Files are optional; unknown files are ignored.
func LoadSnapshotZip(path string) (*Snapshot, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return snapshotFromZip(&zr.Reader)
}

// NewSnapshotFromZipBytes builds a Snapshot from raw zip bytes. Used by
// tests and by callers that fetch archives themselves.
func NewSnapshotFromZipBytes(data []byte) (*Snapshot, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return snapshotFromZip(zr)
}

func snapshotFromZip(zr *zip.Reader) (*Snapshot, error) {
	snap := NewSnapshot()
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		switch name {
		case "stations.txt", "tracks.txt", "schedules.txt", "journeys.txt",
			"coach_types.txt", "coaches.txt", "tickets.txt":
			if err := snap.consumeCSV(f); err != nil {
				return nil, err
			}
		}
	}
	return snap, nil
}

func (s *Snapshot) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) < 2 {
		return nil
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(h, col) {
				return i
			}
		}
		return -1
	}
	get := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}
	switch strings.ToLower(f.Name) {
	case "stations.txt":
		id := idx("station_id")
		name := idx("station_name")
		pos := idx("line_position")
		for i, row := range rec[1:] {
			st := Station{Name: get(row, name), LinePosition: i}
			st.ID, _ = strconv.ParseInt(get(row, id), 10, 64)
			if p, err := strconv.Atoi(get(row, pos)); err == nil {
				st.LinePosition = p
			}
			s.AddStation(st)
		}
	case "tracks.txt":
		a := idx("station1_id")
		b := idx("station2_id")
		km := idx("distance_km")
		for _, row := range rec[1:] {
			var t Track
			t.StationA, _ = strconv.ParseInt(get(row, a), 10, 64)
			t.StationB, _ = strconv.ParseInt(get(row, b), 10, 64)
			t.DistanceKm, _ = strconv.ParseFloat(get(row, km), 64)
			s.AddTrack(t)
		}
	case "schedules.txt":
		id := idx("schedule_id")
		train := idx("train_id")
		name := idx("train_name")
		status := idx("status")
		for _, row := range rec[1:] {
			sch := Schedule{TrainName: get(row, name), Status: get(row, status)}
			sch.ID, _ = strconv.ParseInt(get(row, id), 10, 64)
			sch.TrainID, _ = strconv.ParseInt(get(row, train), 10, 64)
			s.AddSchedule(sch)
		}
	case "journeys.txt":
		jid := idx("journey_id")
		sid := idx("schedule_id")
		stid := idx("station_id")
		arr := idx("arrival_time")
		dep := idx("departure_time")
		for _, row := range rec[1:] {
			w := Waypoint{Arrival: get(row, arr), Departure: get(row, dep)}
			w.JourneyID, _ = strconv.ParseInt(get(row, jid), 10, 64)
			w.StationID, _ = strconv.ParseInt(get(row, stid), 10, 64)
			scheduleID, _ := strconv.ParseInt(get(row, sid), 10, 64)
			s.AddWaypoint(scheduleID, w)
		}
	case "coach_types.txt":
		id := idx("coach_type_id")
		label := idx("type")
		price := idx("price")
		cap := idx("capacity")
		for _, row := range rec[1:] {
			ct := CoachType{Label: get(row, label)}
			ct.ID, _ = strconv.ParseInt(get(row, id), 10, 64)
			ct.Price, _ = strconv.Atoi(get(row, price))
			ct.Capacity, _ = strconv.Atoi(get(row, cap))
			s.AddCoachType(ct)
		}
	case "coaches.txt":
		id := idx("coach_id")
		train := idx("train_id")
		ctype := idx("coach_type_id")
		for _, row := range rec[1:] {
			var c Coach
			c.ID, _ = strconv.ParseInt(get(row, id), 10, 64)
			c.TrainID, _ = strconv.ParseInt(get(row, train), 10, 64)
			c.CoachTypeID, _ = strconv.ParseInt(get(row, ctype), 10, 64)
			s.AddCoach(c)
		}
	case "tickets.txt":
		coach := idx("coach_id")
		train := idx("train_id")
		seat := idx("seat_number")
		depSt := idx("departure_station_id")
		arrSt := idx("arrival_station_id")
		depTime := idx("departure_time")
		depDate := idx("departure_date")
		price := idx("price")
		for _, row := range rec[1:] {
			t := Ticket{
				DepartureTime: get(row, depTime),
				DepartureDate: get(row, depDate),
			}
			t.CoachID, _ = strconv.ParseInt(get(row, coach), 10, 64)
			t.TrainID, _ = strconv.ParseInt(get(row, train), 10, 64)
			t.SeatNumber, _ = strconv.Atoi(get(row, seat))
			t.DepartureStationID, _ = strconv.ParseInt(get(row, depSt), 10, 64)
			t.ArrivalStationID, _ = strconv.ParseInt(get(row, arrSt), 10, 64)
			t.Price, _ = strconv.Atoi(get(row, price))
			s.AddTicket(t)
		}
	}
	return nil
}
