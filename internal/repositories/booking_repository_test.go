package repositories

import (
	"fmt"
	"testing"

	"railbook/internal/domain"
	"railbook/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingRepositorySaveTransactional(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("ref-1", int64(5), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(int64(7), int64(1), int64(2), 3, int64(1), "Tester", "AB123", int64(10000)).
		WillReturnResult(sqlmock.NewResult(70, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	b := models.Booking{
		Reference: "ref-1",
		UserID:    5,
		Status:    models.BookingPending,
		Tickets: []models.Ticket{
			{TripID: 1, WagonID: 2, SeatNumber: 3, PassengerTypeID: 1, PassengerName: "Tester", PassengerDocument: "AB123", Price: 10000},
		},
	}
	if err := repo.Save(&b); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if b.ID != 7 {
		t.Fatalf("booking id not set, got %d", b.ID)
	}
	if b.Tickets[0].BookingID != 7 || b.Tickets[0].ID != 70 {
		t.Fatalf("ticket ids not set: %+v", b.Tickets[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositorySaveRollsBackOnTicketError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnError(fmt.Errorf("duplicate entry"))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	b := models.Booking{
		Reference: "ref-2",
		UserID:    5,
		Status:    models.BookingPending,
		Tickets:   []models.Ticket{{TripID: 1, WagonID: 2, SeatNumber: 3, PassengerTypeID: 1, Price: 10000}},
	}
	if err := repo.Save(&b); err == nil {
		t.Fatalf("expected save error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositoryCancelRemovesSeatAssignments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingCancelled, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM tickets").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	if err := repo.Cancel(7); err != nil {
		t.Fatalf("cancel error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositoryCancelUnknownBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	if err := repo.Cancel(404); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositorySoldSeatKeysSkipsCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"trip_id", "wagon_id", "seat_number"}).
		AddRow(1, 2, 3).
		AddRow(1, 2, 4)
	mock.ExpectQuery("SELECT t.trip_id, t.wagon_id, t.seat_number").
		WithArgs(models.BookingCancelled).
		WillReturnRows(rows)

	repo := BookingRepository{DB: db}
	keys, err := repo.SoldSeatKeys()
	if err != nil {
		t.Fatalf("sold seat keys: %v", err)
	}
	if len(keys) != 2 || keys[0].Seat != 3 || keys[1].Seat != 4 {
		t.Fatalf("unexpected keys: %+v", keys)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
