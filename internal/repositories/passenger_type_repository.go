package repositories

import (
	"database/sql"
	"strings"

	intconfig "railbook/internal/config"
	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

type PassengerTypeRepository struct {
	DB *sql.DB
}

func (r PassengerTypeRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PassengerTypeRepository) List() ([]models.PassengerType, error) {
	rows, err := r.db().Query(`
		SELECT id, code, name, discount_percent, requires_document, is_active
		FROM passenger_types
		ORDER BY discount_percent ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PassengerType{}
	for rows.Next() {
		var pt models.PassengerType
		if err := rows.Scan(&pt.ID, &pt.Code, &pt.Name, &pt.DiscountPercent, &pt.RequiresDocument, &pt.IsActive); err != nil {
			return out, err
		}
		out = append(out, pt)
	}
	return out, rows.Err()
}

func (r PassengerTypeRepository) GetByID(id int64) (models.PassengerType, error) {
	var pt models.PassengerType
	err := r.db().QueryRow(`
		SELECT id, code, name, discount_percent, requires_document, is_active
		FROM passenger_types WHERE id=?`, id).
		Scan(&pt.ID, &pt.Code, &pt.Name, &pt.DiscountPercent, &pt.RequiresDocument, &pt.IsActive)
	if err == sql.ErrNoRows {
		return pt, domain.NotFoundError{Resource: "passenger type"}
	}
	return pt, err
}

func (r PassengerTypeRepository) Create(pt models.PassengerType) (int64, error) {
	code := strings.ToLower(strings.TrimSpace(pt.Code))
	if code == "" {
		return 0, domain.ValidationError{Field: "code", Msg: "must not be empty"}
	}
	if pt.DiscountPercent < 0 || pt.DiscountPercent > 100 {
		return 0, domain.ValidationError{Field: "discount_percent", Msg: "must be between 0 and 100"}
	}

	var exists int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM passenger_types WHERE code=?`, code).Scan(&exists); err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "passenger type", Msg: "code already registered"}
	}

	res, err := r.db().Exec(`
		INSERT INTO passenger_types (code, name, discount_percent, requires_document, is_active)
		VALUES (?,?,?,?,?)`,
		code, strings.TrimSpace(pt.Name), pt.DiscountPercent, pt.RequiresDocument, pt.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PassengerTypeRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM passenger_types WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "passenger type"}
	}
	return nil
}
