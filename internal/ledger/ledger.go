package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"railbook/internal/domain"

	"github.com/google/uuid"
)

// Seat states. Absence of an entry in the ledger means the seat is free;
// that convention is the invariant, not an accident of initialization.
const (
	StateFree     = "free"
	StateReserved = "reserved"
	StateSold     = "sold"
)

// SeatKey identifies one seat on one trip.
type SeatKey struct {
	TripID  int64
	WagonID int64
	Seat    int
}

// Ledger is the authoritative seat inventory. TryReserve is the sole
// mutation point for seat state during a booking attempt.
type Ledger interface {
	TryReserve(tripID, wagonID int64, seats []int, capacity int) (string, error)
	Confirm(token string) error
	Release(token string)
	ReleaseSeats(tripID, wagonID int64, seats []int)
	TakenSeats(tripID, wagonID int64) []int
}

type seatEntry struct {
	state string
	token string
}

type hold struct {
	token     string
	keys      []SeatKey
	expiresAt time.Time
}

// SeatLedger is an in-process Ledger guarded by a single mutex. The mutex
// is held only for map check-and-set; never across I/O.
type SeatLedger struct {
	mu         sync.Mutex
	seats      map[SeatKey]seatEntry
	holds      map[string]*hold
	holdWindow time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewSeatLedger(holdWindow time.Duration) *SeatLedger {
	if holdWindow <= 0 {
		holdWindow = 10 * time.Minute
	}
	return &SeatLedger{
		seats:      map[SeatKey]seatEntry{},
		holds:      map[string]*hold{},
		holdWindow: holdWindow,
		now:        time.Now,
	}
}

// TryReserve holds all requested seats or none of them. On success every
// seat moves free -> reserved under a fresh token; on any conflict nothing
// is mutated and the first conflicting seat is reported.
func (l *SeatLedger) TryReserve(tripID, wagonID int64, seats []int, capacity int) (string, error) {
	if len(seats) == 0 {
		return "", domain.InvalidSeatSelectionError{Msg: "empty seat selection"}
	}
	seen := make(map[int]struct{}, len(seats))
	for _, s := range seats {
		if s <= 0 || s > capacity {
			return "", domain.InvalidSeatSelectionError{SeatNumber: s}
		}
		if _, dup := seen[s]; dup {
			return "", domain.InvalidSeatSelectionError{SeatNumber: s, Msg: "duplicate seat in selection"}
		}
		seen[s] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.expireLocked()

	for _, s := range seats {
		key := SeatKey{TripID: tripID, WagonID: wagonID, Seat: s}
		if e, ok := l.seats[key]; ok && e.state != StateFree {
			return "", domain.SeatUnavailableError{TripID: tripID, WagonID: wagonID, SeatNumber: s}
		}
	}

	h := &hold{
		token:     uuid.NewString(),
		keys:      make([]SeatKey, 0, len(seats)),
		expiresAt: l.now().Add(l.holdWindow),
	}
	for _, s := range seats {
		key := SeatKey{TripID: tripID, WagonID: wagonID, Seat: s}
		l.seats[key] = seatEntry{state: StateReserved, token: h.token}
		h.keys = append(h.keys, key)
	}
	l.holds[h.token] = h
	return h.token, nil
}

// Confirm moves every seat of the hold reserved -> sold. An expired token
// frees the seats and fails; an unknown token fails without side effects.
func (l *SeatLedger) Confirm(token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.holds[token]
	if !ok {
		return domain.TokenError{Token: token}
	}
	if l.now().After(h.expiresAt) {
		l.dropHoldLocked(h)
		return domain.TokenError{Token: token, Expired: true}
	}

	for _, key := range h.keys {
		l.seats[key] = seatEntry{state: StateSold}
	}
	delete(l.holds, token)
	return nil
}

// Release frees all still-reserved seats of the hold. Safe to call any
// number of times, including for tokens already confirmed or expired.
func (l *SeatLedger) Release(token string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.holds[token]; ok {
		l.dropHoldLocked(h)
	}
}

// ReleaseSeats frees specific seats regardless of state. Used when a
// booking is cancelled and its sold seats return to inventory.
func (l *SeatLedger) ReleaseSeats(tripID, wagonID int64, seats []int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range seats {
		key := SeatKey{TripID: tripID, WagonID: wagonID, Seat: s}
		if e, ok := l.seats[key]; ok {
			if e.token != "" {
				if h, held := l.holds[e.token]; held {
					l.dropHoldLocked(h)
					continue
				}
			}
			delete(l.seats, key)
		}
	}
}

// TakenSeats lists non-free seat numbers of a wagon on a trip, ascending.
func (l *SeatLedger) TakenSeats(tripID, wagonID int64) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expireLocked()

	out := []int{}
	for key, e := range l.seats {
		if key.TripID == tripID && key.WagonID == wagonID && e.state != StateFree {
			out = append(out, key.Seat)
		}
	}
	sort.Ints(out)
	return out
}

// Warm seeds sold seats from durable storage so inventory survives restarts.
func (l *SeatLedger) Warm(keys []SeatKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range keys {
		l.seats[key] = seatEntry{state: StateSold}
	}
}

// StartReaper sweeps expired holds in the background until ctx is done.
// Expiry is also checked lazily on access, so the reaper only bounds how
// long an abandoned hold can linger.
func (l *SeatLedger) StartReaper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.mu.Lock()
				l.expireLocked()
				l.mu.Unlock()
			}
		}
	}()
}

func (l *SeatLedger) expireLocked() {
	now := l.now()
	for _, h := range l.holds {
		if now.After(h.expiresAt) {
			l.dropHoldLocked(h)
		}
	}
}

func (l *SeatLedger) dropHoldLocked(h *hold) {
	for _, key := range h.keys {
		if e, ok := l.seats[key]; ok && e.token == h.token {
			delete(l.seats, key)
		}
	}
	delete(l.holds, h.token)
}
