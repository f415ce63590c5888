package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/ledger"
)

type fakeCatalog struct {
	trips          map[int64]models.Trip
	wagons         map[int64]models.Wagon
	passengerTypes map[int64]models.PassengerType
}

func (c *fakeCatalog) GetTrip(id int64) (models.Trip, error) {
	t, ok := c.trips[id]
	if !ok {
		return t, domain.NotFoundError{Resource: "trip"}
	}
	return t, nil
}

func (c *fakeCatalog) GetWagon(id int64) (models.Wagon, error) {
	w, ok := c.wagons[id]
	if !ok {
		return w, domain.NotFoundError{Resource: "wagon"}
	}
	return w, nil
}

func (c *fakeCatalog) GetPassengerType(id int64) (models.PassengerType, error) {
	pt, ok := c.passengerTypes[id]
	if !ok {
		return pt, domain.NotFoundError{Resource: "passenger type"}
	}
	return pt, nil
}

func (c *fakeCatalog) ListWagonsByTrain(trainID int64) ([]models.Wagon, error) {
	out := []models.Wagon{}
	for _, w := range c.wagons {
		if w.TrainID == trainID {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeStore struct {
	mu         sync.Mutex
	seq        int64
	bookings   map[int64]models.Booking
	failSave   bool
	failStatus bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: map[int64]models.Booking{}}
}

func (s *fakeStore) Save(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return fmt.Errorf("db down")
	}
	s.seq++
	b.ID = s.seq
	for i := range b.Tickets {
		b.Tickets[i].BookingID = b.ID
		b.Tickets[i].ID = s.seq*100 + int64(i)
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *fakeStore) UpdateStatus(id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failStatus {
		return fmt.Errorf("db down")
	}
	b, ok := s.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.Status = status
	s.bookings[id] = b
	return nil
}

func (s *fakeStore) Cancel(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.Status = models.BookingCancelled
	s.bookings[id] = b
	return nil
}

func (s *fakeStore) GetByID(id int64) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return b, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (s *fakeStore) FindByUser(userID int64) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Trip T, wagon W (Economy, multiplier 1.0, 10 seats, base price 100.00),
// passenger types Adult (no discount) and Child (50%).
func testFixture() (*fakeCatalog, *fakeStore, *ledger.SeatLedger, BookingService) {
	catalog := &fakeCatalog{
		trips: map[int64]models.Trip{
			1: {ID: 1, RouteID: 1, TrainID: 1, DepartureAt: time.Now().Add(48 * time.Hour), ArrivalAt: time.Now().Add(52 * time.Hour), BasePrice: 10000},
		},
		wagons: map[int64]models.Wagon{
			1: {ID: 1, TrainID: 1, Number: 1, Seats: 10, Type: models.WagonType{ID: 1, Name: "Economy", FareMultiplier: 1.0}},
			2: {ID: 2, TrainID: 1, Number: 2, Seats: 6, Type: models.WagonType{ID: 2, Name: "Lux", FareMultiplier: 1.8}},
			9: {ID: 9, TrainID: 9, Number: 1, Seats: 10, Type: models.WagonType{ID: 1, Name: "Economy", FareMultiplier: 1.0}},
		},
		passengerTypes: map[int64]models.PassengerType{
			1: {ID: 1, Code: "adult", Name: "Adult", DiscountPercent: 0, IsActive: true},
			2: {ID: 2, Code: "child", Name: "Child", DiscountPercent: 50, IsActive: true},
			3: {ID: 3, Code: "promo", Name: "Promo", DiscountPercent: 10, IsActive: false},
		},
	}
	store := newFakeStore()
	l := ledger.NewSeatLedger(10 * time.Minute)
	svc := BookingService{Catalog: catalog, Store: store, Ledger: l}
	return catalog, store, l, svc
}

func adult(wagonID int64, seat int) models.Selection {
	return models.Selection{WagonID: wagonID, SeatNumber: seat, PassengerTypeID: 1, PassengerName: "A. Passenger"}
}

func TestBookConfirmsAndPrices(t *testing.T) {
	_, store, _, svc := testFixture()

	b, err := svc.Book(1, 1, []models.Selection{adult(1, 1)})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if b.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed booking, got %s", b.Status)
	}
	if len(b.Tickets) != 1 || b.Tickets[0].Price != 10000 {
		t.Fatalf("expected one ticket at 10000, got %+v", b.Tickets)
	}
	if b.Reference == "" {
		t.Fatalf("booking reference missing")
	}

	stored, err := store.GetByID(b.ID)
	if err != nil {
		t.Fatalf("stored booking: %v", err)
	}
	if stored.Status != models.BookingConfirmed {
		t.Fatalf("stored booking not confirmed: %s", stored.Status)
	}
}

func TestBookSameSeatLoses(t *testing.T) {
	_, _, _, svc := testFixture()

	if _, err := svc.Book(1, 1, []models.Selection{adult(1, 1)}); err != nil {
		t.Fatalf("first book: %v", err)
	}

	_, err := svc.Book(2, 1, []models.Selection{adult(1, 1)})
	var unavailable domain.SeatUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SeatUnavailableError, got %v", err)
	}
	if unavailable.SeatNumber != 1 {
		t.Fatalf("expected conflict on seat 1, got %d", unavailable.SeatNumber)
	}
}

func TestBookChildDiscount(t *testing.T) {
	_, _, _, svc := testFixture()

	b, err := svc.Book(1, 1, []models.Selection{{WagonID: 1, SeatNumber: 2, PassengerTypeID: 2, PassengerName: "Kid"}})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if b.Tickets[0].Price != 5000 {
		t.Fatalf("expected child price 5000, got %d", b.Tickets[0].Price)
	}
}

func TestBookConcurrentSameSeatExactlyOneWins(t *testing.T) {
	_, _, _, svc := testFixture()

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Book(int64(i+1), 1, []models.Selection{adult(1, 5)})
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else if !domain.IsSeatUnavailable(err) {
			t.Fatalf("unexpected loser error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func TestBookRollsBackAcrossWagons(t *testing.T) {
	_, _, l, svc := testFixture()

	// Occupy seat 2 of the Lux wagon first.
	if _, err := svc.Book(1, 1, []models.Selection{adult(2, 2)}); err != nil {
		t.Fatalf("setup booking: %v", err)
	}

	// Economy seat 3 would be reserved first; the Lux conflict must roll
	// it back.
	_, err := svc.Book(2, 1, []models.Selection{adult(1, 3), adult(2, 2)})
	if !domain.IsSeatUnavailable(err) {
		t.Fatalf("expected SeatUnavailableError, got %v", err)
	}

	taken := l.TakenSeats(1, 1)
	if len(taken) != 0 {
		t.Fatalf("economy seats should be free after rollback, taken=%v", taken)
	}
}

func TestBookRollsBackWithinWagon(t *testing.T) {
	_, _, l, svc := testFixture()

	if _, err := svc.Book(1, 1, []models.Selection{adult(1, 4)}); err != nil {
		t.Fatalf("setup booking: %v", err)
	}

	_, err := svc.Book(3, 1, []models.Selection{adult(1, 3), adult(1, 4)})
	var unavailable domain.SeatUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SeatUnavailableError, got %v", err)
	}
	if unavailable.SeatNumber != 4 {
		t.Fatalf("expected conflict on seat 4, got %d", unavailable.SeatNumber)
	}

	taken := l.TakenSeats(1, 1)
	if len(taken) != 1 || taken[0] != 4 {
		t.Fatalf("only seat 4 should be taken, got %v", taken)
	}
}

func TestBookTripClosed(t *testing.T) {
	catalog, _, _, svc := testFixture()
	trip := catalog.trips[1]
	trip.DepartureAt = time.Now().Add(-time.Hour)
	catalog.trips[1] = trip

	_, err := svc.Book(1, 1, []models.Selection{adult(1, 1)})
	if !domain.IsTripClosed(err) {
		t.Fatalf("expected TripClosedError, got %v", err)
	}
}

func TestBookRejectsForeignWagon(t *testing.T) {
	_, _, _, svc := testFixture()

	// Wagon 9 belongs to another train.
	_, err := svc.Book(1, 1, []models.Selection{adult(9, 1)})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookRejectsInactivePassengerType(t *testing.T) {
	_, _, _, svc := testFixture()

	_, err := svc.Book(1, 1, []models.Selection{{WagonID: 1, SeatNumber: 1, PassengerTypeID: 3}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookPersistenceFailureReleasesSeats(t *testing.T) {
	_, store, l, svc := testFixture()
	store.failSave = true

	_, err := svc.Book(1, 1, []models.Selection{adult(1, 1)})
	if !domain.IsPersistence(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	if taken := l.TakenSeats(1, 1); len(taken) != 0 {
		t.Fatalf("seats should be released after persistence failure, taken=%v", taken)
	}

	store.failSave = false
	if _, err := svc.Book(1, 1, []models.Selection{adult(1, 1)}); err != nil {
		t.Fatalf("seat should be bookable after rollback: %v", err)
	}
}

func TestBookStatusFailureRollsBack(t *testing.T) {
	_, store, l, svc := testFixture()
	store.failStatus = true

	_, err := svc.Book(1, 1, []models.Selection{adult(1, 1)})
	if !domain.IsPersistence(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	if taken := l.TakenSeats(1, 1); len(taken) != 0 {
		t.Fatalf("seats should be released, taken=%v", taken)
	}

	// No partial booking remains reachable for the user.
	bookings, err := store.FindByUser(1)
	if err != nil {
		t.Fatalf("find by user: %v", err)
	}
	for _, b := range bookings {
		if b.Status != models.BookingCancelled {
			t.Fatalf("leftover booking in status %s", b.Status)
		}
	}
}

func TestTicketPriceIsSnapshot(t *testing.T) {
	catalog, store, _, svc := testFixture()

	b, err := svc.Book(1, 1, []models.Selection{adult(1, 1)})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// An admin price change must not touch issued tickets.
	trip := catalog.trips[1]
	trip.BasePrice = 99999
	catalog.trips[1] = trip

	stored, err := store.GetByID(b.ID)
	if err != nil {
		t.Fatalf("stored booking: %v", err)
	}
	if stored.Tickets[0].Price != 10000 {
		t.Fatalf("ticket price changed after catalog mutation: %d", stored.Tickets[0].Price)
	}
}

func TestCancelReleasesSeats(t *testing.T) {
	_, _, l, svc := testFixture()

	b, err := svc.Book(1, 1, []models.Selection{adult(1, 1), adult(1, 2)})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	cancelled, err := svc.Cancel(1, "user", b.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}

	if taken := l.TakenSeats(1, 1); len(taken) != 0 {
		t.Fatalf("seats should be free after cancellation, taken=%v", taken)
	}

	if _, err := svc.Book(2, 1, []models.Selection{adult(1, 1)}); err != nil {
		t.Fatalf("cancelled seat should be bookable: %v", err)
	}
}

func TestCancelRejectsOtherUsers(t *testing.T) {
	_, _, _, svc := testFixture()

	b, err := svc.Book(1, 1, []models.Selection{adult(1, 1)})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if _, err := svc.Cancel(2, "user", b.ID); !domain.IsNotFound(err) {
		t.Fatalf("foreign booking should read as not found, got %v", err)
	}

	// Admin may cancel on behalf of the user.
	if _, err := svc.Cancel(2, "admin", b.ID); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
}

func TestCancelRejectsCloseToDeparture(t *testing.T) {
	catalog, _, _, svc := testFixture()

	b, err := svc.Book(1, 1, []models.Selection{adult(1, 1)})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	trip := catalog.trips[1]
	trip.DepartureAt = time.Now().Add(2 * time.Hour)
	catalog.trips[1] = trip

	if _, err := svc.Cancel(1, "user", b.ID); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for late cancellation, got %v", err)
	}
}

func TestTripSeatsSummary(t *testing.T) {
	_, _, _, svc := testFixture()

	if _, err := svc.Book(1, 1, []models.Selection{adult(1, 1), adult(1, 3)}); err != nil {
		t.Fatalf("book: %v", err)
	}

	summary, err := svc.TripSeats(1)
	if err != nil {
		t.Fatalf("trip seats: %v", err)
	}

	byWagon := map[int64]models.WagonAvailability{}
	for _, wa := range summary {
		byWagon[wa.WagonID] = wa
	}

	eco := byWagon[1]
	if eco.Available != 8 || len(eco.Taken) != 2 {
		t.Fatalf("unexpected economy availability: %+v", eco)
	}
	lux := byWagon[2]
	if lux.Available != 6 || len(lux.Taken) != 0 {
		t.Fatalf("unexpected lux availability: %+v", lux)
	}
}
