package models

import "time"

// Station is a railway station served by one or more routes.
type Station struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Route connects two distinct stations.
type Route struct {
	ID            int64 `json:"id"`
	OriginID      int64 `json:"origin_station_id"`
	DestinationID int64 `json:"destination_station_id"`
	DistanceKM    int   `json:"distance_km"`
}

type Train struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Number    string `json:"number"`
	TrainType string `json:"train_type"` // passenger, express, suburban
}

// WagonType is the pricing tier of a wagon (Economy, Lux, ...).
type WagonType struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	FareMultiplier float64 `json:"fare_multiplier"`
}

type Amenity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Wagon is one car in a train composition. Seats are numbered 1..Seats,
// unique within the wagon.
type Wagon struct {
	ID          int64     `json:"id"`
	TrainID     int64     `json:"train_id"`
	Number      int       `json:"number"`
	WagonTypeID int64     `json:"wagon_type_id"`
	Seats       int       `json:"seats"`
	Type        WagonType `json:"type"`
	Amenities   []Amenity `json:"amenities,omitempty"`
}

// PassengerType is a discount category applied at pricing time.
type PassengerType struct {
	ID               int64  `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	DiscountPercent  int    `json:"discount_percent"`
	RequiresDocument bool   `json:"requires_document"`
	IsActive         bool   `json:"is_active"`
}
