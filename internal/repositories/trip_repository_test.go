package repositories

import (
	"testing"
	"time"

	"railbook/internal/domain"
	"railbook/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTripRepositoryCreateRejectsOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := TripRepository{DB: db}
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	_, err = repo.Create(models.Trip{
		RouteID:     1,
		TrainID:     1,
		DepartureAt: dep,
		ArrivalAt:   dep.Add(3 * time.Hour),
		BasePrice:   10000,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for overlapping trip, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRepositoryCreateValidatesTimes(t *testing.T) {
	repo := TripRepository{}
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	_, err := repo.Create(models.Trip{
		RouteID:     1,
		TrainID:     1,
		DepartureAt: dep,
		ArrivalAt:   dep,
		BasePrice:   10000,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for arrival==departure, got %v", err)
	}

	_, err = repo.Create(models.Trip{
		RouteID:     0,
		TrainID:     1,
		DepartureAt: dep,
		ArrivalAt:   dep.Add(time.Hour),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing route, got %v", err)
	}
}

func TestTripRepositoryCreateInsertsWhenFree(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(3, 1))

	repo := TripRepository{DB: db}
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	id, err := repo.Create(models.Trip{
		RouteID:     1,
		TrainID:     1,
		DepartureAt: dep,
		ArrivalAt:   dep.Add(3 * time.Hour),
		BasePrice:   10000,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id 3, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
