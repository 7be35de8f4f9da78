package inventory

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSeatHeld is returned when a seat already carries a live hold.
var ErrSeatHeld = errors.New("seat already held")

// Hold is a short-lived claim on one seat for one travel date, bridging
// the window between selection and payment. Expired holds are reaped by
// the janitor, mirroring the platform's pending-booking sweep.
type Hold struct {
	ID         string    `json:"id"`
	CoachID    int64     `json:"coachId"`
	TrainID    int64     `json:"trainId"`
	SeatNumber int       `json:"seatNumber"`
	Date       string    `json:"date"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type seatKey struct {
	coachID    int64
	trainID    int64
	seatNumber int
	date       string
}

// HoldArena tracks live seat holds. Safe for concurrent use.
type HoldArena struct {
	mu     sync.Mutex
	ttl    time.Duration
	byID   map[string]Hold
	bySeat map[seatKey]string // seat -> hold ID
}

// NewHoldArena creates an arena whose holds expire after ttl.
func NewHoldArena(ttl time.Duration) *HoldArena {
	return &HoldArena{
		ttl:    ttl,
		byID:   map[string]Hold{},
		bySeat: map[seatKey]string{},
	}
}

// Place claims a seat for one travel date. Returns ErrSeatHeld when a
// live hold already covers it; expired holds are replaced in place.
func (a *HoldArena) Place(coachID, trainID int64, seatNumber int, date string) (Hold, error) {
	key := seatKey{coachID: coachID, trainID: trainID, seatNumber: seatNumber, date: date}
	now := time.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	if id, ok := a.bySeat[key]; ok {
		if h, live := a.byID[id]; live && h.ExpiresAt.After(now) {
			return Hold{}, ErrSeatHeld
		}
		delete(a.byID, id)
		delete(a.bySeat, key)
	}

	h := Hold{
		ID:         uuid.NewString(),
		CoachID:    coachID,
		TrainID:    trainID,
		SeatNumber: seatNumber,
		Date:       date,
		ExpiresAt:  now.Add(a.ttl),
	}
	a.byID[h.ID] = h
	a.bySeat[key] = h.ID
	return h, nil
}

// Release drops a hold by ID. Returns false for unknown IDs.
func (a *HoldArena) Release(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	h, ok := a.byID[id]
	if !ok {
		return false
	}
	delete(a.byID, id)
	delete(a.bySeat, seatKey{coachID: h.CoachID, trainID: h.TrainID, seatNumber: h.SeatNumber, date: h.Date})
	return true
}

// HeldSeats returns the seat numbers with live holds for one coach, train
// and date.
func (a *HoldArena) HeldSeats(coachID, trainID int64, date string) []int {
	now := time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	var seats []int
	for _, h := range a.byID {
		if h.CoachID == coachID && h.TrainID == trainID && h.Date == date && h.ExpiresAt.After(now) {
			seats = append(seats, h.SeatNumber)
		}
	}
	return seats
}

// Sweep removes holds expired at now and reports how many were reaped.
func (a *HoldArena) Sweep(now time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	reaped := 0
	for id, h := range a.byID {
		if !h.ExpiresAt.After(now) {
			delete(a.byID, id)
			delete(a.bySeat, seatKey{coachID: h.CoachID, trainID: h.TrainID, seatNumber: h.SeatNumber, date: h.Date})
			reaped++
		}
	}
	return reaped
}

// StartJanitor sweeps expired holds on an interval until ctx is done.
func (a *HoldArena) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := a.Sweep(now); n > 0 {
					log.Printf("hold janitor reaped %d expired holds", n)
				}
			}
		}
	}()
}
