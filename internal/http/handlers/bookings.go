package handlers

import (
	"net/http"

	intconfig "railbook/internal/config"
	"railbook/internal/domain/models"
	"railbook/internal/http/middleware"
	"railbook/internal/ledger"
	"railbook/internal/repositories"
	"railbook/internal/services"

	"github.com/gin-gonic/gin"
)

// seatLedger is the process-wide seat inventory, set once from main before
// the router starts serving.
var seatLedger ledger.Ledger

func SetLedger(l ledger.Ledger) {
	seatLedger = l
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Catalog:   repositories.NewCatalogStore(intconfig.DB),
		Store:     repositories.BookingRepository{},
		Ledger:    seatLedger,
		RequestID: middleware.GetRequestID(c),
	}
}

type bookingRequest struct {
	TripID     int64              `json:"trip_id"`
	Selections []models.Selection `json:"selections"`
}

// CreateBooking reserves, prices and confirms the requested seats as one
// atomic booking for the authenticated user.
func CreateBooking(c *gin.Context) {
	var req bookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := bookingService(c)
	booking, err := svc.Book(middleware.UserID(c), req.TripID, req.Selections)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"booking":     booking,
		"total_price": booking.TotalPrice(),
	})
}

// CancelBooking frees the booking's seats. Owner or admin only.
func CancelBooking(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}

	svc := bookingService(c)
	booking, err := svc.Cancel(middleware.UserID(c), middleware.UserRole(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func GetBookings(c *gin.Context) {
	svc := bookingService(c)
	bookings, err := svc.ListByUser(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func GetBookingByID(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}

	svc := bookingService(c)
	booking, err := svc.Get(middleware.UserID(c), middleware.UserRole(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
