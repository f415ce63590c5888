package handlers

import (
	"net/http"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/repositories"
	"railbook/internal/utils"

	"github.com/gin-gonic/gin"
)

func GetTrips(c *gin.Context) {
	trips, err := repositories.TripRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

func GetTripByID(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	trip, err := repositories.TripRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

type tripRequest struct {
	RouteID     int64  `json:"route_id"`
	TrainID     int64  `json:"train_id"`
	DepartureAt string `json:"departure_at"`
	ArrivalAt   string `json:"arrival_at"`
	BasePrice   int64  `json:"base_price"`
}

func CreateTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	departure, err := utils.ParseDateTime(req.DepartureAt)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "departure_at", Msg: "must be YYYY-MM-DD HH:MM:SS"})
		return
	}
	arrival, err := utils.ParseDateTime(req.ArrivalAt)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "arrival_at", Msg: "must be YYYY-MM-DD HH:MM:SS"})
		return
	}

	trip := models.Trip{
		RouteID:     req.RouteID,
		TrainID:     req.TrainID,
		DepartureAt: departure,
		ArrivalAt:   arrival,
		BasePrice:   req.BasePrice,
	}
	id, err := repositories.TripRepository{}.Create(trip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trip.ID = id
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

func DeleteTrip(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := (repositories.TripRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}

// GetTripSeats reports per-wagon availability for one trip.
func GetTripSeats(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	svc := bookingService(c)
	wagons, err := svc.TripSeats(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip_id": id, "wagons": wagons})
}
