package handlers

import (
	"fmt"
	"net/http"

	"railbook/internal/domain"
	"railbook/internal/http/middleware"
	"railbook/internal/repositories"
	"railbook/internal/services"
	"railbook/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetETicket renders the ticket's e-ticket PDF. Owner or admin only;
// tickets of other users read as not found.
func GetETicket(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}

	_, booking, err := repositories.BookingRepository{}.GetTicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.UserID != middleware.UserID(c) && middleware.UserRole(c) != "admin" {
		RespondDomainError(c, domain.NotFoundError{Resource: "ticket"})
		return
	}

	svc := services.DocsService{
		RequestID: middleware.GetRequestID(c),
		Loader: func(ticketID int64) (services.TicketDocData, error) {
			return loadTicketDocData(ticketID)
		},
	}
	pdfBytes, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// loadTicketDocData denormalizes everything the e-ticket layout prints.
func loadTicketDocData(ticketID int64) (services.TicketDocData, error) {
	var data services.TicketDocData

	ticket, booking, err := repositories.BookingRepository{}.GetTicket(ticketID)
	if err != nil {
		return data, err
	}

	trip, err := repositories.TripRepository{}.GetByID(ticket.TripID)
	if err != nil {
		return data, err
	}
	wagon, err := repositories.WagonRepository{}.GetByID(ticket.WagonID)
	if err != nil {
		return data, err
	}
	train, err := repositories.TrainRepository{}.GetByID(wagon.TrainID)
	if err != nil {
		return data, err
	}
	route, err := repositories.RouteRepository{}.GetByID(trip.RouteID)
	if err != nil {
		return data, err
	}
	origin, err := repositories.StationRepository{}.GetByID(route.OriginID)
	if err != nil {
		return data, err
	}
	dest, err := repositories.StationRepository{}.GetByID(route.DestinationID)
	if err != nil {
		return data, err
	}
	pt, err := repositories.PassengerTypeRepository{}.GetByID(ticket.PassengerTypeID)
	if err != nil {
		return data, err
	}

	return services.TicketDocData{
		TicketID:         ticket.ID,
		BookingID:        booking.ID,
		BookingReference: booking.Reference,
		PassengerName:    ticket.PassengerName,
		PassengerType:    pt.Name,
		TrainNumber:      train.Number,
		WagonNumber:      wagon.Number,
		WagonType:        wagon.Type.Name,
		SeatNumber:       ticket.SeatNumber,
		OriginStation:    fmt.Sprintf("%s (%s)", origin.Name, origin.City),
		DestStation:      fmt.Sprintf("%s (%s)", dest.Name, dest.City),
		DepartureAt:      utils.FormatDateTime(trip.DepartureAt),
		ArrivalAt:        utils.FormatDateTime(trip.ArrivalAt),
		Price:            ticket.Price,
	}, nil
}
