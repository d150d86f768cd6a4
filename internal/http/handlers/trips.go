package handlers

import (
	"net/http"

	"tripbudget/internal/domain"
	"tripbudget/internal/http/middleware"
	"tripbudget/internal/repositories"
	"tripbudget/internal/services"

	"github.com/gin-gonic/gin"
)

func tripService(c *gin.Context) services.TripService {
	return services.TripService{
		TripRepo:  repositories.TripRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

type tripRequest struct {
	domain.TripBudget
	// PriceEdited marks the suggested price as a deliberate manual entry.
	PriceEdited bool `json:"priceEdited"`
}

type priceRequest struct {
	SuggestedPrice float64 `json:"suggestedPrice"`
}

// GET /api/trips
func ListTrips(c *gin.Context) {
	trips, pg, err := tripService(c).List(queryInt(c, "page", 1), queryInt(c, "page_size", 50))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips, "pagination": pg})
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	trip, err := tripService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := tripService(c).Create(req.TripBudget, req.PriceEdited)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := tripService(c).Update(id, req.TripBudget, req.PriceEdited)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := tripService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}

// POST /api/trips/:id/recompute
func RecomputeTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	trip, err := tripService(c).Recompute(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PUT /api/trips/:id/suggested-price
func SetTripSuggestedPrice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req priceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := tripService(c).SetSuggestedPrice(id, req.SuggestedPrice)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id/suggested-price
func ClearTripSuggestedPrice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	trip, err := tripService(c).ClearSuggestedPrice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}
