package inventory

import (
	"context"

	"github.com/railbook/itinerary-engine/catalog"
	"github.com/railbook/itinerary-engine/internal"
	"github.com/railbook/itinerary-engine/seating"
)

// SeatState is the selectable state of one grid cell.
type SeatState string

const (
	StateFree SeatState = "free"
	StateSold SeatState = "sold"
	StateHeld SeatState = "held"
	// StateVoid marks grid cells beyond the coach capacity in a
	// partially filled last column.
	StateVoid SeatState = "void"
)

// SeatMap is the reconciled inventory of one coach for one travel date.
// Grid is indexed [row][col].
type SeatMap struct {
	CoachID int64          `json:"coachId"`
	TrainID int64          `json:"trainId"`
	Date    string         `json:"date"`
	Layout  seating.Layout `json:"layout"`
	Grid    [][]SeatState  `json:"grid"`
}

// At returns the state of one cell.
func (m *SeatMap) At(row, col int) SeatState { return m.Grid[row][col] }

// Reconciler merges derived grid geometry with sold tickets and live
// holds to produce selectable inventory.
type Reconciler struct {
	cat   catalog.Catalog
	holds *HoldArena
}

// NewReconciler creates a reconciler over a catalog. arena may be nil
// when hold overlays are not wanted (search-time capacity counts).
func NewReconciler(cat catalog.Catalog, arena *HoldArena) *Reconciler {
	return &Reconciler{cat: cat, holds: arena}
}

// Availability builds the seat map of one coach for one travel date. A
// sold ticket occupies its cell only for the coach, train and date it
// was bought for; the same physical seat stays free on other dates.
func (r *Reconciler) Availability(ctx context.Context, coachID, trainID int64, date string) (*SeatMap, error) {
	coaches, err := r.cat.CoachesByTrain(ctx, trainID)
	if err != nil {
		return nil, err
	}
	var coach *catalog.Coach
	for i := range coaches {
		if coaches[i].ID == coachID {
			coach = &coaches[i]
			break
		}
	}
	if coach == nil {
		return nil, internal.NotFound("coach", "%d on train %d", coachID, trainID)
	}
	ct, err := r.cat.CoachType(ctx, coach.CoachTypeID)
	if err != nil {
		return nil, err
	}
	layout, err := seating.LayoutFor(ct.Label, ct.Capacity)
	if err != nil {
		return nil, err
	}

	grid := make([][]SeatState, layout.Rows)
	for row := range grid {
		grid[row] = make([]SeatState, layout.Cols)
		for col := range grid[row] {
			if layout.SeatNumber(row, col) > layout.Capacity {
				grid[row][col] = StateVoid
			} else {
				grid[row][col] = StateFree
			}
		}
	}

	tickets, err := r.cat.TicketsForTrain(ctx, trainID)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if t.CoachID != coachID || t.TrainID != trainID {
			continue
		}
		if date != "" && t.DepartureDate != date {
			continue
		}
		row, col, err := layout.Position(t.SeatNumber)
		if err != nil {
			// Ticket references a seat outside this coach's grid.
			return nil, internal.InconsistentData(
				"ticket seat %d exceeds capacity %d of coach %d", t.SeatNumber, ct.Capacity, coachID)
		}
		grid[row][col] = StateSold
	}

	if r.holds != nil {
		for _, seat := range r.holds.HeldSeats(coachID, trainID, date) {
			if row, col, err := layout.Position(seat); err == nil && grid[row][col] == StateFree {
				grid[row][col] = StateHeld
			}
		}
	}

	return &SeatMap{
		CoachID: coachID,
		TrainID: trainID,
		Date:    date,
		Layout:  layout,
		Grid:    grid,
	}, nil
}

// AvailableCapacity is the aggregate count used in search results: total
// coach-type capacity of the train minus tickets already sold for the
// same physical leg. A ticket only removes capacity for the exact
// station pair, time and date it was sold for; disjoint segments sharing
// the coach are unaffected. Never negative.
func (r *Reconciler) AvailableCapacity(ctx context.Context, trainID, fromStationID, toStationID int64, departureTime, date string) (int, error) {
	coaches, err := r.cat.CoachesByTrain(ctx, trainID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, c := range coaches {
		ct, err := r.cat.CoachType(ctx, c.CoachTypeID)
		if err != nil {
			return 0, err
		}
		total += ct.Capacity
	}

	tickets, err := r.cat.TicketsForTrain(ctx, trainID)
	if err != nil {
		return 0, err
	}
	sold := 0
	for _, t := range tickets {
		if t.DepartureStationID != fromStationID || t.ArrivalStationID != toStationID {
			continue
		}
		if departureTime != "" && t.DepartureTime != departureTime {
			continue
		}
		if date != "" && t.DepartureDate != date {
			continue
		}
		sold++
	}

	if sold > total {
		return 0, nil
	}
	return total - sold, nil
}
