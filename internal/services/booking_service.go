package services

import (
	"fmt"
	"strings"
	"time"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/ledger"
	"railbook/internal/pricing"
	"railbook/internal/utils"

	"github.com/google/uuid"
)

// Catalog is the read-only view of trips, wagons and passenger types the
// booking flow depends on. Lookups fail with NotFoundError on missing IDs.
type Catalog interface {
	GetTrip(id int64) (models.Trip, error)
	GetWagon(id int64) (models.Wagon, error)
	GetPassengerType(id int64) (models.PassengerType, error)
	ListWagonsByTrain(trainID int64) ([]models.Wagon, error)
}

// BookingStore is the durable side of bookings. Save and Cancel are each
// atomic per call; no cross-call transaction is assumed.
type BookingStore interface {
	Save(b *models.Booking) error
	UpdateStatus(id int64, status string) error
	Cancel(id int64) error
	GetByID(id int64) (models.Booking, error)
	FindByUser(userID int64) ([]models.Booking, error)
}

// cancelCutoff is how close to departure a booking can still be cancelled.
const cancelCutoff = 24 * time.Hour

// BookingService orchestrates a booking attempt: validate, reserve, price,
// persist, confirm. All catalog reads happen before any seat is held and
// no ledger lock is held across storage calls.
type BookingService struct {
	Catalog   Catalog
	Store     BookingStore
	Ledger    ledger.Ledger
	RequestID string

	// Now is swappable in tests.
	Now func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type wagonReservation struct {
	wagonID int64
	seats   []int
	token   string
}

// Book places one booking for the given trip and seat selections. Either
// every selected seat is confirmed and priced, or nothing is left behind:
// any failure after reservation rolls the holds back before returning.
func (s BookingService) Book(userID, tripID int64, selections []models.Selection) (models.Booking, error) {
	var booking models.Booking

	if userID <= 0 {
		return booking, domain.ValidationError{Field: "user_id", Msg: "is required"}
	}
	if len(selections) == 0 {
		return booking, domain.InvalidSeatSelectionError{Msg: "empty seat selection"}
	}

	trip, err := s.Catalog.GetTrip(tripID)
	if err != nil {
		return booking, err
	}
	if trip.Departed(s.now()) {
		return booking, domain.TripClosedError{TripID: tripID}
	}

	// Snapshot wagons and passenger types once, before reserving.
	wagons := map[int64]models.Wagon{}
	passengerTypes := map[int64]models.PassengerType{}
	for _, sel := range selections {
		if _, ok := wagons[sel.WagonID]; !ok {
			w, err := s.Catalog.GetWagon(sel.WagonID)
			if err != nil {
				return booking, err
			}
			if w.TrainID != trip.TrainID {
				return booking, domain.ValidationError{Field: "wagon_id", Msg: fmt.Sprintf("wagon %d does not belong to the trip's train", sel.WagonID)}
			}
			wagons[sel.WagonID] = w
		}
		if _, ok := passengerTypes[sel.PassengerTypeID]; !ok {
			pt, err := s.Catalog.GetPassengerType(sel.PassengerTypeID)
			if err != nil {
				return booking, err
			}
			if !pt.IsActive {
				return booking, domain.ValidationError{Field: "passenger_type_id", Msg: fmt.Sprintf("passenger type %s is not active", pt.Code)}
			}
			if pt.RequiresDocument && strings.TrimSpace(sel.PassengerDocument) == "" {
				return booking, domain.ValidationError{Field: "passenger_document", Msg: fmt.Sprintf("required for passenger type %s", pt.Code)}
			}
			passengerTypes[sel.PassengerTypeID] = pt
		}
	}

	// One reservation per wagon keeps contention low while staying
	// all-or-nothing per wagon; a failure on any wagon rolls back the
	// wagons already reserved in this attempt.
	var reservations []wagonReservation
	for _, sel := range selections {
		found := false
		for i := range reservations {
			if reservations[i].wagonID == sel.WagonID {
				reservations[i].seats = append(reservations[i].seats, sel.SeatNumber)
				found = true
				break
			}
		}
		if !found {
			reservations = append(reservations, wagonReservation{wagonID: sel.WagonID, seats: []int{sel.SeatNumber}})
		}
	}

	for i := range reservations {
		w := wagons[reservations[i].wagonID]
		token, err := s.Ledger.TryReserve(tripID, w.ID, reservations[i].seats, w.Seats)
		if err != nil {
			s.releaseReservations(reservations[:i])
			return booking, err
		}
		reservations[i].token = token
	}

	tickets := make([]models.Ticket, 0, len(selections))
	for _, sel := range selections {
		w := wagons[sel.WagonID]
		pt := passengerTypes[sel.PassengerTypeID]
		price, err := pricing.TicketPrice(trip, w, pt)
		if err != nil {
			s.releaseReservations(reservations)
			return booking, err
		}
		tickets = append(tickets, models.Ticket{
			TripID:            tripID,
			WagonID:           sel.WagonID,
			SeatNumber:        sel.SeatNumber,
			PassengerTypeID:   sel.PassengerTypeID,
			PassengerName:     strings.TrimSpace(sel.PassengerName),
			PassengerDocument: strings.TrimSpace(sel.PassengerDocument),
			Price:             price,
		})
	}

	booking = models.Booking{
		Reference: uuid.NewString(),
		UserID:    userID,
		Status:    models.BookingPending,
		CreatedAt: s.now(),
		Tickets:   tickets,
	}

	if err := s.Store.Save(&booking); err != nil {
		s.releaseReservations(reservations)
		return models.Booking{}, domain.PersistenceError{Err: err}
	}

	for i := range reservations {
		if err := s.Ledger.Confirm(reservations[i].token); err != nil {
			// Seats confirmed so far go back to inventory along with
			// the remaining holds; the pending booking is cancelled so
			// no partial booking stays reachable.
			for j := 0; j < i; j++ {
				s.Ledger.ReleaseSeats(tripID, reservations[j].wagonID, reservations[j].seats)
			}
			s.releaseReservations(reservations[i:])
			if cancelErr := s.Store.Cancel(booking.ID); cancelErr != nil {
				utils.LogEvent(s.RequestID, "booking", "cancel_after_confirm_failure", cancelErr.Error())
			}
			return models.Booking{}, err
		}
	}

	if err := s.Store.UpdateStatus(booking.ID, models.BookingConfirmed); err != nil {
		for i := range reservations {
			s.Ledger.ReleaseSeats(tripID, reservations[i].wagonID, reservations[i].seats)
		}
		if cancelErr := s.Store.Cancel(booking.ID); cancelErr != nil {
			utils.LogEvent(s.RequestID, "booking", "cancel_after_status_failure", cancelErr.Error())
		}
		return models.Booking{}, domain.PersistenceError{Err: err}
	}

	booking.Status = models.BookingConfirmed
	utils.LogEvent(s.RequestID, "booking", "confirmed",
		fmt.Sprintf("booking_id=%d trip_id=%d tickets=%d total=%s", booking.ID, tripID, len(tickets), utils.FormatMoney(booking.TotalPrice())))
	return booking, nil
}

func (s BookingService) releaseReservations(reservations []wagonReservation) {
	for _, res := range reservations {
		if res.token != "" {
			s.Ledger.Release(res.token)
		}
	}
}

// Cancel releases a booking's seats back to inventory. Only the owner or
// an admin may cancel, and only while departure is more than the cutoff
// away. Bookings of other users read as not found.
func (s BookingService) Cancel(userID int64, role string, bookingID int64) (models.Booking, error) {
	booking, err := s.Store.GetByID(bookingID)
	if err != nil {
		return booking, err
	}
	if booking.UserID != userID && role != "admin" {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if booking.Status == models.BookingCancelled {
		return booking, domain.ConflictError{Resource: "booking", Msg: "already cancelled"}
	}

	now := s.now()
	trips := map[int64]models.Trip{}
	for _, t := range booking.Tickets {
		trip, ok := trips[t.TripID]
		if !ok {
			if trip, err = s.Catalog.GetTrip(t.TripID); err != nil {
				return booking, err
			}
			trips[t.TripID] = trip
		}
		if trip.DepartureAt.Sub(now) < cancelCutoff {
			return booking, domain.ConflictError{Resource: "booking", Msg: "cannot cancel less than 24h before departure"}
		}
	}

	if err := s.Store.Cancel(bookingID); err != nil {
		return booking, domain.PersistenceError{Err: err}
	}

	for _, t := range booking.Tickets {
		s.Ledger.ReleaseSeats(t.TripID, t.WagonID, []int{t.SeatNumber})
	}

	booking.Status = models.BookingCancelled
	utils.LogEvent(s.RequestID, "booking", "cancelled", fmt.Sprintf("booking_id=%d tickets=%d", bookingID, len(booking.Tickets)))
	return booking, nil
}

// ListByUser returns the user's bookings, tickets included.
func (s BookingService) ListByUser(userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.ValidationError{Field: "user_id", Msg: "is required"}
	}
	return s.Store.FindByUser(userID)
}

// Get returns one booking, restricted to its owner unless role is admin.
func (s BookingService) Get(userID int64, role string, bookingID int64) (models.Booking, error) {
	booking, err := s.Store.GetByID(bookingID)
	if err != nil {
		return booking, err
	}
	if booking.UserID != userID && role != "admin" {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return booking, nil
}

// TripSeats summarizes per-wagon availability for a trip from the ledger.
func (s BookingService) TripSeats(tripID int64) ([]models.WagonAvailability, error) {
	trip, err := s.Catalog.GetTrip(tripID)
	if err != nil {
		return nil, err
	}

	wagons, err := s.Catalog.ListWagonsByTrain(trip.TrainID)
	if err != nil {
		return nil, err
	}

	out := make([]models.WagonAvailability, 0, len(wagons))
	for _, w := range wagons {
		taken := s.Ledger.TakenSeats(tripID, w.ID)
		out = append(out, models.WagonAvailability{
			WagonID:     w.ID,
			WagonNumber: w.Number,
			WagonType:   w.Type.Name,
			Seats:       w.Seats,
			Taken:       taken,
			Available:   w.Seats - len(taken),
		})
	}
	return out, nil
}
