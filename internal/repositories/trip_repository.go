package repositories

import (
	"database/sql"

	intconfig "railbook/internal/config"
	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripRepository) List() ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT id, route_id, train_id, departure_at, arrival_at, base_price, created_at
		FROM trips
		ORDER BY departure_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.RouteID, &t.TrainID, &t.DepartureAt, &t.ArrivalAt, &t.BasePrice, &t.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	var t models.Trip
	err := r.db().QueryRow(`
		SELECT id, route_id, train_id, departure_at, arrival_at, base_price, created_at
		FROM trips WHERE id=?`, id).
		Scan(&t.ID, &t.RouteID, &t.TrainID, &t.DepartureAt, &t.ArrivalAt, &t.BasePrice, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

// Create validates time ordering and rejects trips whose train is already
// assigned to an overlapping trip.
func (r TripRepository) Create(t models.Trip) (int64, error) {
	if t.RouteID <= 0 || t.TrainID <= 0 {
		return 0, domain.ValidationError{Field: "trip", Msg: "route_id and train_id are required"}
	}
	if !t.ArrivalAt.After(t.DepartureAt) {
		return 0, domain.ValidationError{Field: "arrival_at", Msg: "must be later than departure"}
	}
	if t.BasePrice < 0 {
		return 0, domain.ValidationError{Field: "base_price", Msg: "must not be negative"}
	}

	var overlapping int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM trips
		WHERE train_id=? AND departure_at < ? AND arrival_at > ?`,
		t.TrainID, t.ArrivalAt, t.DepartureAt).Scan(&overlapping)
	if err != nil {
		return 0, err
	}
	if overlapping > 0 {
		return 0, domain.ConflictError{Resource: "trip", Msg: "train is already assigned to an overlapping trip"}
	}

	res, err := r.db().Exec(`
		INSERT INTO trips (route_id, train_id, departure_at, arrival_at, base_price)
		VALUES (?,?,?,?,?)`,
		t.RouteID, t.TrainID, t.DepartureAt, t.ArrivalAt, t.BasePrice)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) Delete(id int64) error {
	var sold int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM tickets WHERE trip_id=?`, id).Scan(&sold); err != nil {
		return err
	}
	if sold > 0 {
		return domain.ConflictError{Resource: "trip", Msg: "tickets already issued"}
	}

	res, err := r.db().Exec(`DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}
