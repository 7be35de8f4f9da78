package catalog

import (
	"context"
	"sort"

	"github.com/railbook/itinerary-engine/internal"
)

// Snapshot is an in-memory Catalog. Fields are exported for gob
// serialization; construct through NewSnapshot and the Add helpers so the
// index maps stay consistent.
type Snapshot struct {
	StationRows   []Station
	TrackRows     []Track
	ScheduleRows  []Schedule
	JourneyRows   map[int64][]Waypoint // schedule_id -> ordered waypoints
	CoachRows     map[int64][]Coach    // train_id -> coaches
	CoachTypeRows map[int64]CoachType  // coach_type_id -> type
	TicketRows    map[int64][]Ticket   // train_id -> sold tickets
}

// NewSnapshot creates an empty in-memory catalog.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		JourneyRows:   map[int64][]Waypoint{},
		CoachRows:     map[int64][]Coach{},
		CoachTypeRows: map[int64]CoachType{},
		TicketRows:    map[int64][]Ticket{},
	}
}

func (s *Snapshot) AddStation(st Station)    { s.StationRows = append(s.StationRows, st) }
func (s *Snapshot) AddTrack(t Track)         { s.TrackRows = append(s.TrackRows, t) }
func (s *Snapshot) AddSchedule(sch Schedule) { s.ScheduleRows = append(s.ScheduleRows, sch) }
func (s *Snapshot) AddCoachType(ct CoachType) {
	s.CoachTypeRows[ct.ID] = ct
}

func (s *Snapshot) AddCoach(c Coach) {
	s.CoachRows[c.TrainID] = append(s.CoachRows[c.TrainID], c)
}

func (s *Snapshot) AddTicket(t Ticket) {
	s.TicketRows[t.TrainID] = append(s.TicketRows[t.TrainID], t)
}

// AddWaypoint appends a stop to a schedule; waypoints are re-sorted by
// journey ID on read, so insertion order does not matter.
func (s *Snapshot) AddWaypoint(scheduleID int64, w Waypoint) {
	s.JourneyRows[scheduleID] = append(s.JourneyRows[scheduleID], w)
}

// Stations returns all stations sorted by line position.
func (s *Snapshot) Stations(ctx context.Context) ([]Station, error) {
	out := make([]Station, len(s.StationRows))
	copy(out, s.StationRows)
	sort.Slice(out, func(i, j int) bool { return out[i].LinePosition < out[j].LinePosition })
	return out, nil
}

func (s *Snapshot) Tracks(ctx context.Context) ([]Track, error) {
	out := make([]Track, len(s.TrackRows))
	copy(out, s.TrackRows)
	return out, nil
}

// SchedulesServing filters active schedules that stop at both stations and
// leave the origin no earlier than notBefore.
func (s *Snapshot) SchedulesServing(ctx context.Context, fromStationID, toStationID int64, notBefore string) ([]Schedule, error) {
	var out []Schedule
	for _, sch := range s.ScheduleRows {
		if sch.Status != "" && sch.Status != "Active" {
			continue
		}
		waypoints := s.JourneyRows[sch.ID]
		var from, to *Waypoint
		for i := range waypoints {
			switch waypoints[i].StationID {
			case fromStationID:
				from = &waypoints[i]
			case toStationID:
				to = &waypoints[i]
			}
		}
		if from == nil || to == nil {
			continue
		}
		dep := from.Departure
		if dep == "" {
			dep = from.Arrival
		}
		// HH:MM:SS strings compare correctly lexicographically.
		if notBefore != "" && dep < notBefore {
			continue
		}
		out = append(out, sch)
	}
	return out, nil
}

func (s *Snapshot) Waypoints(ctx context.Context, scheduleID int64) ([]Waypoint, error) {
	rows, ok := s.JourneyRows[scheduleID]
	if !ok {
		return nil, internal.NotFound("schedule", "%d", scheduleID)
	}
	out := make([]Waypoint, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool { return out[i].JourneyID < out[j].JourneyID })
	return out, nil
}

func (s *Snapshot) CoachesByTrain(ctx context.Context, trainID int64) ([]Coach, error) {
	out := make([]Coach, len(s.CoachRows[trainID]))
	copy(out, s.CoachRows[trainID])
	return out, nil
}

func (s *Snapshot) CoachType(ctx context.Context, coachTypeID int64) (CoachType, error) {
	ct, ok := s.CoachTypeRows[coachTypeID]
	if !ok {
		return CoachType{}, internal.NotFound("coach type", "%d", coachTypeID)
	}
	return ct, nil
}

func (s *Snapshot) TicketsForTrain(ctx context.Context, trainID int64) ([]Ticket, error) {
	out := make([]Ticket, len(s.TicketRows[trainID]))
	copy(out, s.TicketRows[trainID])
	return out, nil
}
