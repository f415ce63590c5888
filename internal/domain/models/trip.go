package models

import "time"

// Trip is a scheduled journey: route + train + times + base price.
// BasePrice is stored in minor currency units.
type Trip struct {
	ID          int64     `json:"id"`
	RouteID     int64     `json:"route_id"`
	TrainID     int64     `json:"train_id"`
	DepartureAt time.Time `json:"departure_at"`
	ArrivalAt   time.Time `json:"arrival_at"`
	BasePrice   int64     `json:"base_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// Departed reports whether the trip is closed for new bookings at ref time.
func (t Trip) Departed(ref time.Time) bool {
	return !t.DepartureAt.After(ref)
}

// Duration of the trip.
func (t Trip) Duration() time.Duration {
	return t.ArrivalAt.Sub(t.DepartureAt)
}

// WagonAvailability summarizes seat inventory of one wagon on a trip.
type WagonAvailability struct {
	WagonID     int64  `json:"wagon_id"`
	WagonNumber int    `json:"wagon_number"`
	WagonType   string `json:"wagon_type"`
	Seats       int    `json:"seats"`
	Taken       []int  `json:"taken"`
	Available   int    `json:"available"`
}
