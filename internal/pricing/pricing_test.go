package pricing

import (
	"testing"
	"time"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

func TestQuoteEconomyAdult(t *testing.T) {
	// 100.00 x 1.0, no discount.
	got, err := Quote(10000, 1.0, 0)
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	if got != 10000 {
		t.Fatalf("expected 10000, got %d", got)
	}
}

func TestQuoteChildHalfPrice(t *testing.T) {
	got, err := Quote(10000, 1.0, 50)
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	if got != 5000 {
		t.Fatalf("expected 5000, got %d", got)
	}
}

func TestQuoteRoundsHalfUpOnce(t *testing.T) {
	// 99.99 x 1.85 x 0.85 = 157.234... -> 157.23
	got, err := Quote(9999, 1.85, 15)
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	if got != 15723 {
		t.Fatalf("expected 15723, got %d", got)
	}

	// 10.01 x 1.5 = 15.015 -> half-up to 15.02
	got, err = Quote(1001, 1.5, 0)
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	if got != 1502 {
		t.Fatalf("expected 1502, got %d", got)
	}
}

func TestQuoteDeterministic(t *testing.T) {
	a, err := Quote(12345, 1.8, 30)
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	b, err := Quote(12345, 1.8, 30)
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	if a != b {
		t.Fatalf("quote not deterministic: %d vs %d", a, b)
	}
}

func TestQuoteRejectsInvalidInputs(t *testing.T) {
	if _, err := Quote(10000, 1.0, -1); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative discount, got %v", err)
	}
	if _, err := Quote(10000, 1.0, 101); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for discount above 100, got %v", err)
	}
	if _, err := Quote(-1, 1.0, 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative base price, got %v", err)
	}
	if _, err := Quote(10000, 0, 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero multiplier, got %v", err)
	}
}

func TestTicketPriceUsesWagonTypeAndPassengerType(t *testing.T) {
	trip := models.Trip{BasePrice: 10000, DepartureAt: time.Now().Add(time.Hour)}
	wagon := models.Wagon{Type: models.WagonType{Name: "Lux", FareMultiplier: 1.8}}
	senior := models.PassengerType{Code: "senior", DiscountPercent: 25}

	got, err := TicketPrice(trip, wagon, senior)
	if err != nil {
		t.Fatalf("ticket price error: %v", err)
	}
	// 100.00 x 1.8 x 0.75 = 135.00
	if got != 13500 {
		t.Fatalf("expected 13500, got %d", got)
	}
}
