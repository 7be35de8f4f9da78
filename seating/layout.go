package seating

import (
	"strings"

	"github.com/railbook/itinerary-engine/internal"
)

// Kind distinguishes day coaches from sleepers.
type Kind string

const (
	KindSeat Kind = "seat"
	KindBed  Kind = "bed"
)

const seatRows = 4

// Layout is the derived row/column geometry of one coach. It is always
// recomputed from (type label, capacity) and never persisted, so geometry
// cannot drift from capacity changes.
type Layout struct {
	Rows     int  `json:"rows"`
	Cols     int  `json:"cols"`
	Kind     Kind `json:"kind"`
	Capacity int  `json:"capacity"`
}

// LayoutFor maps a coach type label and capacity to grid geometry.
//
// A label containing "bed" is sleeper class: 2 rows for 4-berth cabins
// (label mentions "4"), otherwise 3 rows for 6-berth cabins. Anything
// else is a day coach with 4 seats across and an aisle at the midpoint
// column.
func LayoutFor(typeLabel string, capacity int) (Layout, error) {
	if capacity <= 0 {
		return Layout{}, internal.InvalidInput("non-positive coach capacity %d", capacity)
	}
	lower := strings.ToLower(typeLabel)
	if strings.Contains(lower, "bed") {
		rows := 3
		if strings.Contains(lower, "4") {
			rows = 2
		}
		return Layout{
			Rows:     rows,
			Cols:     (capacity + rows - 1) / rows,
			Kind:     KindBed,
			Capacity: capacity,
		}, nil
	}
	return Layout{
		Rows:     seatRows,
		Cols:     (capacity + seatRows - 1) / seatRows,
		Kind:     KindSeat,
		Capacity: capacity,
	}, nil
}

// SeatNumber returns the 1-based seat/bed number at a grid cell.
// Numbering is column-major: each column fills top to bottom before the
// next begins.
func (l Layout) SeatNumber(row, col int) int {
	return col*l.Rows + row + 1
}

// Position inverts SeatNumber, mapping a seat number back to its cell.
func (l Layout) Position(seatNumber int) (row, col int, err error) {
	if seatNumber < 1 || seatNumber > l.Capacity {
		return 0, 0, internal.InvalidInput("seat number %d outside 1..%d", seatNumber, l.Capacity)
	}
	return (seatNumber - 1) % l.Rows, (seatNumber - 1) / l.Rows, nil
}

// AisleCol is the column before which the aisle sits in a day coach,
// splitting the grid into two physical halves. Rendering mirrors seat
// orientation across it; numbering is unaffected.
func (l Layout) AisleCol() int { return l.Cols / 2 }

// Cabin groups sleeper columns in pairs: both columns of a cabin share
// one cabin index.
func (l Layout) Cabin(col int) int { return col / 2 }

// Tier is the berth level within a sleeper cabin, counted so that the
// topmost occupied row is tier 1 going downward. Customer-facing.
func (l Layout) Tier(row int) int { return l.Rows - row }
