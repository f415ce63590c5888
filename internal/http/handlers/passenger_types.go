package handlers

import (
	"net/http"

	"railbook/internal/domain/models"
	"railbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

func GetPassengerTypes(c *gin.Context) {
	types, err := repositories.PassengerTypeRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passenger_types": types})
}

func CreatePassengerType(c *gin.Context) {
	var req models.PassengerType
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := repositories.PassengerTypeRepository{}.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"passenger_type": req})
}

func DeletePassengerType(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := (repositories.PassengerTypeRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "passenger type deleted"})
}
