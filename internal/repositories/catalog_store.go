package repositories

import (
	"database/sql"

	"railbook/internal/domain/models"
)

// CatalogStore bundles the read-only catalog lookups the booking flow
// needs. The booking core never writes through it.
type CatalogStore struct {
	Trips          TripRepository
	Wagons         WagonRepository
	PassengerTypes PassengerTypeRepository
}

func NewCatalogStore(db *sql.DB) CatalogStore {
	return CatalogStore{
		Trips:          TripRepository{DB: db},
		Wagons:         WagonRepository{DB: db},
		PassengerTypes: PassengerTypeRepository{DB: db},
	}
}

func (c CatalogStore) GetTrip(id int64) (models.Trip, error) {
	return c.Trips.GetByID(id)
}

func (c CatalogStore) GetWagon(id int64) (models.Wagon, error) {
	return c.Wagons.GetByID(id)
}

func (c CatalogStore) GetPassengerType(id int64) (models.PassengerType, error) {
	return c.PassengerTypes.GetByID(id)
}

func (c CatalogStore) ListWagonsByTrain(trainID int64) ([]models.Wagon, error) {
	return c.Wagons.ListByTrain(trainID)
}
