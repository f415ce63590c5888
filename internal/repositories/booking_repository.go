package repositories

import (
	"database/sql"

	intconfig "railbook/internal/config"
	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/ledger"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Save persists a booking and all its tickets in one transaction. IDs are
// written back onto the passed booking. The unique (trip, wagon, seat)
// index on tickets is the durable backstop of the ledger invariant.
func (r BookingRepository) Save(b *models.Booking) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO bookings (reference, user_id, status) VALUES (?,?,?)`,
		b.Reference, b.UserID, b.Status)
	if err != nil {
		return err
	}
	b.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}

	for i := range b.Tickets {
		t := &b.Tickets[i]
		t.BookingID = b.ID
		res, err := tx.Exec(`
			INSERT INTO tickets (booking_id, trip_id, wagon_id, seat_number, passenger_type_id, passenger_name, passenger_document, price)
			VALUES (?,?,?,?,?,?,?,?)`,
			t.BookingID, t.TripID, t.WagonID, t.SeatNumber, t.PassengerTypeID, t.PassengerName, t.PassengerDocument, t.Price)
		if err != nil {
			return err
		}
		if t.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r BookingRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE bookings SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// Cancel marks the booking cancelled and removes its seat assignments so
// the seats can be sold again. Both happen in one transaction.
func (r BookingRepository) Cancel(id int64) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE bookings SET status=? WHERE id=?`, models.BookingCancelled, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	if _, err := tx.Exec(`DELETE FROM tickets WHERE booking_id=?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	var b models.Booking
	err := r.db().QueryRow(`SELECT id, reference, user_id, status, created_at FROM bookings WHERE id=?`, id).
		Scan(&b.ID, &b.Reference, &b.UserID, &b.Status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return b, err
	}

	b.Tickets, err = r.ticketsByBooking(b.ID)
	return b, err
}

func (r BookingRepository) FindByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT id, reference, user_id, status, created_at
		FROM bookings
		WHERE user_id=?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.UserID, &b.Status, &b.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	for i := range out {
		if out[i].Tickets, err = r.ticketsByBooking(out[i].ID); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (r BookingRepository) ticketsByBooking(bookingID int64) ([]models.Ticket, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, trip_id, wagon_id, seat_number, passenger_type_id, passenger_name, passenger_document, price, created_at
		FROM tickets
		WHERE booking_id=?
		ORDER BY id ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.BookingID, &t.TripID, &t.WagonID, &t.SeatNumber, &t.PassengerTypeID, &t.PassengerName, &t.PassengerDocument, &t.Price, &t.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SoldSeatKeys loads the seat assignments of non-cancelled bookings. Used
// to warm the ledger at startup.
func (r BookingRepository) SoldSeatKeys() ([]ledger.SeatKey, error) {
	rows, err := r.db().Query(`
		SELECT t.trip_id, t.wagon_id, t.seat_number
		FROM tickets t
		JOIN bookings b ON b.id = t.booking_id
		WHERE b.status <> ?`, models.BookingCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ledger.SeatKey{}
	for rows.Next() {
		var key ledger.SeatKey
		if err := rows.Scan(&key.TripID, &key.WagonID, &key.Seat); err != nil {
			return out, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

// GetTicket fetches one ticket together with its booking owner, for
// access checks on document endpoints.
func (r BookingRepository) GetTicket(ticketID int64) (models.Ticket, models.Booking, error) {
	var (
		t models.Ticket
		b models.Booking
	)
	err := r.db().QueryRow(`
		SELECT t.id, t.booking_id, t.trip_id, t.wagon_id, t.seat_number, t.passenger_type_id, t.passenger_name, t.passenger_document, t.price, t.created_at,
		       b.id, b.reference, b.user_id, b.status, b.created_at
		FROM tickets t
		JOIN bookings b ON b.id = t.booking_id
		WHERE t.id=?`, ticketID).
		Scan(&t.ID, &t.BookingID, &t.TripID, &t.WagonID, &t.SeatNumber, &t.PassengerTypeID, &t.PassengerName, &t.PassengerDocument, &t.Price, &t.CreatedAt,
			&b.ID, &b.Reference, &b.UserID, &b.Status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return t, b, domain.NotFoundError{Resource: "ticket"}
	}
	return t, b, err
}
