package models

import "time"

// Booking statuses. A booking is the unit of atomicity: all its tickets
// succeed or none do.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

// TotalPrice sums ticket prices in minor units.
func (b Booking) TotalPrice() int64 {
	var total int64
	for _, t := range b.Tickets {
		total += t.Price
	}
	return total
}

// Ticket holds a seat on a trip. Price is snapshotted at booking time and
// never recomputed afterwards.
type Ticket struct {
	ID                int64     `json:"id"`
	BookingID         int64     `json:"booking_id"`
	TripID            int64     `json:"trip_id"`
	WagonID           int64     `json:"wagon_id"`
	SeatNumber        int       `json:"seat_number"`
	PassengerTypeID   int64     `json:"passenger_type_id"`
	PassengerName     string    `json:"passenger_name"`
	PassengerDocument string    `json:"passenger_document"`
	Price             int64     `json:"price"`
	CreatedAt         time.Time `json:"created_at"`
}

// Selection is one requested seat in a booking call.
type Selection struct {
	WagonID           int64  `json:"wagon_id"`
	SeatNumber        int    `json:"seat_number"`
	PassengerTypeID   int64  `json:"passenger_type_id"`
	PassengerName     string `json:"passenger_name"`
	PassengerDocument string `json:"passenger_document"`
}

// User is an authenticated account able to own bookings.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
