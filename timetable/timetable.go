package timetable

import (
	"time"

	"github.com/railbook/itinerary-engine/internal"
)

// DefaultBackwardJumpThresholdMinutes is the forward time delta beyond
// which a jump between consecutive waypoints is read as a backward
// crossing of midnight. 12 hours matches the longest plausible dwell.
const DefaultBackwardJumpThresholdMinutes = 720

// Waypoint is one stop of a schedule with clock times only. Departure
// falls back to Arrival when empty (terminal stops).
type Waypoint struct {
	StationID int64
	Arrival   string
	Departure string
}

// DepartureOrArrival returns the departure time, falling back to arrival.
func (w Waypoint) DepartureOrArrival() string {
	if w.Departure != "" {
		return w.Departure
	}
	return w.Arrival
}

// DatedLeg is a waypoint anchored to an absolute calendar date.
type DatedLeg struct {
	StationID int64     `json:"stationId"`
	Date      time.Time `json:"-"`
	DateText  string    `json:"date"`
	Arrival   string    `json:"arrivalTime"`
	Departure string    `json:"departureTime"`
}

// Options tunes reconstruction. The zero value selects the default
// backward-jump threshold.
type Options struct {
	BackwardJumpThresholdMinutes int
}

// Reconstruct recovers absolute calendar dates for an ordered waypoint
// slice anchored at tripStartDate. The upstream data carries only
// day-independent clock times, so dates are inferred from the cyclic
// clock signal with an explicit state machine:
//
//   - arrival earlier on the clock than the reference: midnight was
//     crossed going forward, the day offset advances;
//   - arrival later than the reference by more than the backward-jump
//     threshold: read as a short backward jump across a boundary, the
//     day offset retreats;
//   - otherwise the offset is unchanged.
//
// The reference follows each waypoint in turn. The slice must already be
// oriented in the direction of travel; output preserves its order. Pure
// function of its inputs.
func Reconstruct(waypoints []Waypoint, tripStartDate time.Time, opts Options) ([]DatedLeg, error) {
	if len(waypoints) == 0 {
		return nil, internal.InvalidInput("no waypoints to reconstruct")
	}
	threshold := opts.BackwardJumpThresholdMinutes
	if threshold <= 0 {
		threshold = DefaultBackwardJumpThresholdMinutes
	}

	reference, err := internal.ParseClockMinutes(waypoints[0].DepartureOrArrival())
	if err != nil {
		return nil, err
	}

	legs := make([]DatedLeg, 0, len(waypoints))
	dayOffset := 0
	for i, w := range waypoints {
		if i > 0 {
			current, err := internal.ParseClockMinutes(w.Arrival)
			if err != nil {
				return nil, err
			}
			switch {
			case current < reference:
				dayOffset++
			case current-reference > threshold:
				dayOffset--
			}
			reference = current
		}
		date := tripStartDate.AddDate(0, 0, dayOffset)
		legs = append(legs, DatedLeg{
			StationID: w.StationID,
			Date:      date,
			DateText:  internal.FormatDate(date),
			Arrival:   w.Arrival,
			Departure: w.DepartureOrArrival(),
		})
	}
	return legs, nil
}

// Reverse returns a reversed copy of a waypoint slice, for requests that
// travel against a schedule's native stop order.
func Reverse(waypoints []Waypoint) []Waypoint {
	out := make([]Waypoint, len(waypoints))
	for i, w := range waypoints {
		out[len(waypoints)-1-i] = w
	}
	return out
}
