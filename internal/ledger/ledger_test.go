package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"railbook/internal/domain"
)

func TestTryReserveExactlyOneWinner(t *testing.T) {
	l := NewSeatLedger(10 * time.Minute)

	const callers = 32
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			tokens[i], errs[i] = l.TryReserve(1, 1, []int{7}, 40)
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for i := 0; i < callers; i++ {
		if errs[i] == nil {
			winners++
			if tokens[i] == "" {
				t.Fatalf("winner got empty token")
			}
			continue
		}
		if !domain.IsSeatUnavailable(errs[i]) {
			t.Fatalf("loser got unexpected error: %v", errs[i])
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func TestTryReserveAllOrNothing(t *testing.T) {
	l := NewSeatLedger(10 * time.Minute)

	token, err := l.TryReserve(1, 1, []int{4}, 10)
	if err != nil {
		t.Fatalf("reserve seat 4: %v", err)
	}
	if err := l.Confirm(token); err != nil {
		t.Fatalf("confirm seat 4: %v", err)
	}

	_, err = l.TryReserve(1, 1, []int{3, 4}, 10)
	var unavailable domain.SeatUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SeatUnavailableError, got %v", err)
	}
	if unavailable.SeatNumber != 4 {
		t.Fatalf("conflicting seat should be 4, got %d", unavailable.SeatNumber)
	}

	// Seat 3 must not have been left reserved by the failed attempt.
	if _, err := l.TryReserve(1, 1, []int{3}, 10); err != nil {
		t.Fatalf("seat 3 should still be free: %v", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	l := NewSeatLedger(10 * time.Minute)

	token, err := l.TryReserve(2, 1, []int{1, 2}, 10)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	l.Release(token)
	l.Release(token)

	if _, err := l.TryReserve(2, 1, []int{1, 2}, 10); err != nil {
		t.Fatalf("seats should be free after release: %v", err)
	}
}

func TestHoldExpiresBackToFree(t *testing.T) {
	l := NewSeatLedger(10 * time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base }

	token, err := l.TryReserve(1, 2, []int{5}, 10)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	// Within the window the seat is contended.
	if _, err := l.TryReserve(1, 2, []int{5}, 10); !domain.IsSeatUnavailable(err) {
		t.Fatalf("expected SeatUnavailableError inside hold window, got %v", err)
	}

	base = base.Add(11 * time.Minute)

	if _, err := l.TryReserve(1, 2, []int{5}, 10); err != nil {
		t.Fatalf("expected stale hold to expire, got %v", err)
	}

	err = l.Confirm(token)
	if !domain.IsTokenError(err) {
		t.Fatalf("expected token error for stale confirm, got %v", err)
	}
}

func TestConfirmExpiredTokenFreesSeats(t *testing.T) {
	l := NewSeatLedger(10 * time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base }

	token, err := l.TryReserve(3, 1, []int{8, 9}, 20)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	base = base.Add(time.Hour)

	err = l.Confirm(token)
	tokErr, ok := err.(domain.TokenError)
	if !ok || !tokErr.Expired {
		t.Fatalf("expected expired TokenError, got %v", err)
	}

	if _, err := l.TryReserve(3, 1, []int{8, 9}, 20); err != nil {
		t.Fatalf("seats should be free after expired confirm: %v", err)
	}
}

func TestConfirmUnknownToken(t *testing.T) {
	l := NewSeatLedger(10 * time.Minute)
	err := l.Confirm("no-such-token")
	if !domain.IsTokenError(err) {
		t.Fatalf("expected TokenError, got %v", err)
	}
}

func TestInvalidSeatSelection(t *testing.T) {
	l := NewSeatLedger(10 * time.Minute)

	cases := []struct {
		name  string
		seats []int
	}{
		{"empty", nil},
		{"zero seat", []int{0}},
		{"negative seat", []int{-2}},
		{"above capacity", []int{11}},
		{"duplicate", []int{3, 3}},
	}
	for _, tc := range cases {
		if _, err := l.TryReserve(1, 1, tc.seats, 10); !domain.IsInvalidSeatSelection(err) {
			t.Fatalf("%s: expected InvalidSeatSelectionError, got %v", tc.name, err)
		}
	}
}

func TestWarmAndReleaseSeats(t *testing.T) {
	l := NewSeatLedger(10 * time.Minute)

	l.Warm([]SeatKey{{TripID: 1, WagonID: 1, Seat: 2}, {TripID: 1, WagonID: 1, Seat: 6}})

	taken := l.TakenSeats(1, 1)
	if len(taken) != 2 || taken[0] != 2 || taken[1] != 6 {
		t.Fatalf("unexpected taken seats after warm: %v", taken)
	}

	if _, err := l.TryReserve(1, 1, []int{2}, 10); !domain.IsSeatUnavailable(err) {
		t.Fatalf("warmed seat should be sold, got %v", err)
	}

	// Cancellation path: sold seats return to inventory.
	l.ReleaseSeats(1, 1, []int{2, 6})
	if _, err := l.TryReserve(1, 1, []int{2, 6}, 10); err != nil {
		t.Fatalf("released seats should be reservable: %v", err)
	}
}
