package pricing

import (
	"math"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

// Quote computes a ticket price in minor currency units:
// basePrice x fare multiplier x (1 - discount). Rounding (half-up) is
// applied exactly once, at the end.
func Quote(basePrice int64, fareMultiplier float64, discountPercent int) (int64, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return 0, domain.ValidationError{Field: "discount_percent", Msg: "must be between 0 and 100"}
	}
	if basePrice < 0 {
		return 0, domain.ValidationError{Field: "base_price", Msg: "must not be negative"}
	}
	if fareMultiplier <= 0 {
		return 0, domain.ValidationError{Field: "fare_multiplier", Msg: "must be positive"}
	}

	amount := float64(basePrice) * fareMultiplier * (1 - float64(discountPercent)/100)
	return roundHalfUp(amount), nil
}

// TicketPrice prices one seat for a trip, wagon and passenger type.
func TicketPrice(trip models.Trip, wagon models.Wagon, pt models.PassengerType) (int64, error) {
	return Quote(trip.BasePrice, wagon.Type.FareMultiplier, pt.DiscountPercent)
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
