package repositories

import (
	"database/sql"
	"strings"

	intconfig "railbook/internal/config"
	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

type StationRepository struct {
	DB *sql.DB
}

func (r StationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StationRepository) List() ([]models.Station, error) {
	rows, err := r.db().Query(`SELECT id, name, city, address, created_at FROM stations ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Station{}
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.Address, &s.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r StationRepository) GetByID(id int64) (models.Station, error) {
	var s models.Station
	err := r.db().QueryRow(`SELECT id, name, city, address, created_at FROM stations WHERE id=?`, id).
		Scan(&s.ID, &s.Name, &s.City, &s.Address, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "station"}
	}
	return s, err
}

func (r StationRepository) Create(s models.Station) (int64, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return 0, domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	res, err := r.db().Exec(`INSERT INTO stations (name, city, address) VALUES (?,?,?)`,
		name, strings.TrimSpace(s.City), strings.TrimSpace(s.Address))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r StationRepository) Update(id int64, s models.Station) error {
	res, err := r.db().Exec(`UPDATE stations SET name=?, city=?, address=? WHERE id=?`,
		strings.TrimSpace(s.Name), strings.TrimSpace(s.City), strings.TrimSpace(s.Address), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "station"}
	}
	return nil
}

func (r StationRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM stations WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "station"}
	}
	return nil
}

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RouteRepository) List() ([]models.Route, error) {
	rows, err := r.db().Query(`SELECT id, origin_station_id, destination_station_id, distance_km FROM routes ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.OriginID, &rt.DestinationID, &rt.DistanceKM); err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	var rt models.Route
	err := r.db().QueryRow(`SELECT id, origin_station_id, destination_station_id, distance_km FROM routes WHERE id=?`, id).
		Scan(&rt.ID, &rt.OriginID, &rt.DestinationID, &rt.DistanceKM)
	if err == sql.ErrNoRows {
		return rt, domain.NotFoundError{Resource: "route"}
	}
	return rt, err
}

// Create rejects routes whose origin and destination are the same station.
func (r RouteRepository) Create(rt models.Route) (int64, error) {
	if rt.OriginID <= 0 || rt.DestinationID <= 0 {
		return 0, domain.ValidationError{Field: "station", Msg: "origin and destination are required"}
	}
	if rt.OriginID == rt.DestinationID {
		return 0, domain.ValidationError{Field: "destination_station_id", Msg: "must differ from origin"}
	}
	if rt.DistanceKM <= 0 {
		return 0, domain.ValidationError{Field: "distance_km", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`INSERT INTO routes (origin_station_id, destination_station_id, distance_km) VALUES (?,?,?)`,
		rt.OriginID, rt.DestinationID, rt.DistanceKM)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM routes WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}
