package handlers

import (
	"net/http"

	"railbook/internal/domain/models"
	"railbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

func GetTrains(c *gin.Context) {
	trains, err := repositories.TrainRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains})
}

func GetTrainByID(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	train, err := repositories.TrainRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	wagons, err := repositories.WagonRepository{}.ListByTrain(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"train": train, "wagons": wagons})
}

func CreateTrain(c *gin.Context) {
	var req models.Train
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := repositories.TrainRepository{}.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"train": req})
}

func DeleteTrain(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := (repositories.TrainRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "train deleted"})
}

func GetWagonTypes(c *gin.Context) {
	types, err := repositories.WagonTypeRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wagon_types": types})
}

func CreateWagonType(c *gin.Context) {
	var req models.WagonType
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := repositories.WagonTypeRepository{}.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"wagon_type": req})
}

type wagonRequest struct {
	TrainID     int64   `json:"train_id"`
	Number      int     `json:"number"`
	WagonTypeID int64   `json:"wagon_type_id"`
	Seats       int     `json:"seats"`
	AmenityIDs  []int64 `json:"amenity_ids"`
}

func CreateWagon(c *gin.Context) {
	var req wagonRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	wagon := models.Wagon{
		TrainID:     req.TrainID,
		Number:      req.Number,
		WagonTypeID: req.WagonTypeID,
		Seats:       req.Seats,
	}
	repo := repositories.WagonRepository{}
	id, err := repo.Create(wagon)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(req.AmenityIDs) > 0 {
		if err := repo.SetAmenities(id, req.AmenityIDs); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	created, err := loadWagon(repo, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"wagon": created})
}

func GetWagonByID(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	wagon, err := loadWagon(repositories.WagonRepository{}, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wagon": wagon})
}

func loadWagon(repo repositories.WagonRepository, id int64) (models.Wagon, error) {
	wagon, err := repo.GetByID(id)
	if err != nil {
		return wagon, err
	}
	wagon.Amenities, err = repo.ListAmenities(id)
	return wagon, err
}

func GetAmenities(c *gin.Context) {
	amenities, err := repositories.AmenityRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amenities": amenities})
}

func CreateAmenity(c *gin.Context) {
	var req models.Amenity
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := repositories.AmenityRepository{}.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"amenity": req})
}
