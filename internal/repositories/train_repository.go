package repositories

import (
	"database/sql"
	"strings"

	intconfig "railbook/internal/config"
	intdb "railbook/internal/db"
	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

var trainTypes = map[string]bool{
	"passenger": true,
	"express":   true,
	"suburban":  true,
}

type TrainRepository struct {
	DB *sql.DB
}

func (r TrainRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TrainRepository) List() ([]models.Train, error) {
	rows, err := r.db().Query(`SELECT id, name, number, train_type FROM trains ORDER BY number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Train{}
	for rows.Next() {
		var t models.Train
		if err := rows.Scan(&t.ID, &t.Name, &t.Number, &t.TrainType); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TrainRepository) GetByID(id int64) (models.Train, error) {
	var t models.Train
	err := r.db().QueryRow(`SELECT id, name, number, train_type FROM trains WHERE id=?`, id).
		Scan(&t.ID, &t.Name, &t.Number, &t.TrainType)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "train"}
	}
	return t, err
}

func (r TrainRepository) Create(t models.Train) (int64, error) {
	number := strings.TrimSpace(t.Number)
	if number == "" {
		return 0, domain.ValidationError{Field: "number", Msg: "must not be empty"}
	}
	trainType := strings.ToLower(strings.TrimSpace(t.TrainType))
	if trainType == "" {
		trainType = "passenger"
	}
	if !trainTypes[trainType] {
		return 0, domain.ValidationError{Field: "train_type", Msg: "unknown train type"}
	}

	var exists int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM trains WHERE number=?`, number).Scan(&exists); err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "train", Msg: "number already registered"}
	}

	res, err := r.db().Exec(`INSERT INTO trains (name, number, train_type) VALUES (?,?,?)`,
		strings.TrimSpace(t.Name), number, trainType)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TrainRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trains WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "train"}
	}
	return nil
}

type WagonTypeRepository struct {
	DB *sql.DB
}

func (r WagonTypeRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r WagonTypeRepository) List() ([]models.WagonType, error) {
	rows, err := r.db().Query(`SELECT id, name, fare_multiplier FROM wagon_types ORDER BY fare_multiplier ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.WagonType{}
	for rows.Next() {
		var wt models.WagonType
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.FareMultiplier); err != nil {
			return out, err
		}
		out = append(out, wt)
	}
	return out, rows.Err()
}

func (r WagonTypeRepository) Create(wt models.WagonType) (int64, error) {
	if strings.TrimSpace(wt.Name) == "" {
		return 0, domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if wt.FareMultiplier <= 0 {
		return 0, domain.ValidationError{Field: "fare_multiplier", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`INSERT INTO wagon_types (name, fare_multiplier) VALUES (?,?)`,
		strings.TrimSpace(wt.Name), wt.FareMultiplier)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type WagonRepository struct {
	DB *sql.DB
}

func (r WagonRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const wagonSelect = `
SELECT w.id, w.train_id, w.number, w.wagon_type_id, w.seats,
       wt.id, wt.name, wt.fare_multiplier
FROM wagons w
JOIN wagon_types wt ON wt.id = w.wagon_type_id`

func scanWagon(row interface{ Scan(dest ...any) error }) (models.Wagon, error) {
	var w models.Wagon
	err := row.Scan(&w.ID, &w.TrainID, &w.Number, &w.WagonTypeID, &w.Seats,
		&w.Type.ID, &w.Type.Name, &w.Type.FareMultiplier)
	return w, err
}

func (r WagonRepository) GetByID(id int64) (models.Wagon, error) {
	w, err := scanWagon(r.db().QueryRow(wagonSelect+` WHERE w.id=?`, id))
	if err == sql.ErrNoRows {
		return w, domain.NotFoundError{Resource: "wagon"}
	}
	return w, err
}

func (r WagonRepository) ListByTrain(trainID int64) ([]models.Wagon, error) {
	rows, err := r.db().Query(wagonSelect+` WHERE w.train_id=? ORDER BY w.number ASC`, trainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Wagon{}
	for rows.Next() {
		w, err := scanWagon(rows)
		if err != nil {
			return out, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Create attaches a wagon to a train. Wagon numbers are unique per train.
func (r WagonRepository) Create(w models.Wagon) (int64, error) {
	if w.TrainID <= 0 {
		return 0, domain.ValidationError{Field: "train_id", Msg: "is required"}
	}
	if w.Number <= 0 {
		return 0, domain.ValidationError{Field: "number", Msg: "must be positive"}
	}
	if w.Seats <= 0 {
		return 0, domain.ValidationError{Field: "seats", Msg: "must be positive"}
	}

	var exists int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM wagons WHERE train_id=? AND number=?`, w.TrainID, w.Number).Scan(&exists); err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "wagon", Msg: "number already used on this train"}
	}

	res, err := r.db().Exec(`INSERT INTO wagons (train_id, number, wagon_type_id, seats) VALUES (?,?,?,?)`,
		w.TrainID, w.Number, w.WagonTypeID, w.Seats)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r WagonRepository) SetAmenities(wagonID int64, amenityIDs []int64) error {
	db := r.db()
	if _, err := db.Exec(`DELETE FROM wagon_amenities WHERE wagon_id=?`, wagonID); err != nil {
		return err
	}
	for _, aid := range amenityIDs {
		if _, err := db.Exec(`INSERT INTO wagon_amenities (wagon_id, amenity_id) VALUES (?,?)`, wagonID, aid); err != nil {
			return err
		}
	}
	return nil
}

func (r WagonRepository) ListAmenities(wagonID int64) ([]models.Amenity, error) {
	rows, err := r.db().Query(`
		SELECT a.id, a.name, COALESCE(a.description,'')
		FROM amenities a
		JOIN wagon_amenities wa ON wa.amenity_id = a.id
		WHERE wa.wagon_id=?
		ORDER BY a.name ASC`, wagonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Amenity{}
	for rows.Next() {
		var a models.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description); err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type AmenityRepository struct {
	DB *sql.DB
}

func (r AmenityRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AmenityRepository) List() ([]models.Amenity, error) {
	rows, err := r.db().Query(`SELECT id, name, COALESCE(description,'') FROM amenities ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Amenity{}
	for rows.Next() {
		var a models.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description); err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AmenityRepository) Create(a models.Amenity) (int64, error) {
	if strings.TrimSpace(a.Name) == "" {
		return 0, domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	res, err := r.db().Exec(`INSERT INTO amenities (name, description) VALUES (?,?)`,
		strings.TrimSpace(a.Name), intdb.NullIfEmpty(a.Description))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
