package handlers

import (
	"net/http"

	"railbook/internal/domain/models"
	"railbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

func GetStations(c *gin.Context) {
	stations, err := repositories.StationRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

func GetStationByID(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	station, err := repositories.StationRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"station": station})
}

func CreateStation(c *gin.Context) {
	var req models.Station
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := repositories.StationRepository{}.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"station": req})
}

func UpdateStation(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var req models.Station
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := (repositories.StationRepository{}).Update(id, req); err != nil {
		RespondDomainError(c, err)
		return
	}
	req.ID = id
	c.JSON(http.StatusOK, gin.H{"station": req})
}

func DeleteStation(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := (repositories.StationRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "station deleted"})
}

func GetRoutes(c *gin.Context) {
	routes, err := repositories.RouteRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

func CreateRoute(c *gin.Context) {
	var req models.Route
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := repositories.RouteRepository{}.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"route": req})
}

func DeleteRoute(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := (repositories.RouteRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}
