package api

import (
	"log"
	stdhttp "net/http"

	intconfig "railbook/internal/config"
	h "railbook/internal/http/handlers"
	"railbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Catalog reads are public; writes are admin only.
		admin := api.Group("")
		admin.Use(middleware.RequireAuth(), middleware.RequireRoles("admin"))

		api.GET("/stations", h.GetStations)
		api.GET("/stations/:id", h.GetStationByID)
		admin.POST("/stations", h.CreateStation)
		admin.PUT("/stations/:id", h.UpdateStation)
		admin.DELETE("/stations/:id", h.DeleteStation)

		api.GET("/routes", h.GetRoutes)
		admin.POST("/routes", h.CreateRoute)
		admin.DELETE("/routes/:id", h.DeleteRoute)

		api.GET("/trains", h.GetTrains)
		api.GET("/trains/:id", h.GetTrainByID)
		admin.POST("/trains", h.CreateTrain)
		admin.DELETE("/trains/:id", h.DeleteTrain)

		api.GET("/wagon-types", h.GetWagonTypes)
		admin.POST("/wagon-types", h.CreateWagonType)
		api.GET("/wagons/:id", h.GetWagonByID)
		admin.POST("/wagons", h.CreateWagon)

		api.GET("/amenities", h.GetAmenities)
		admin.POST("/amenities", h.CreateAmenity)

		api.GET("/passenger-types", h.GetPassengerTypes)
		admin.POST("/passenger-types", h.CreatePassengerType)
		admin.DELETE("/passenger-types/:id", h.DeletePassengerType)

		api.GET("/trips", h.GetTrips)
		api.GET("/trips/:id", h.GetTripByID)
		api.GET("/trips/:id/seats", h.GetTripSeats)
		admin.POST("/trips", h.CreateTrip)
		admin.DELETE("/trips/:id", h.DeleteTrip)

		// Bookings require an authenticated user.
		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth())
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.POST("/:id/cancel", h.CancelBooking)

		tickets := api.Group("/tickets")
		tickets.Use(middleware.RequireAuth())
		tickets.GET("/:id/e-ticket", h.GetETicket)
	}

	return r
}
