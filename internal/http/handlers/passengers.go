package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tripbudget/internal/http/middleware"
	"tripbudget/internal/repositories"
	"tripbudget/internal/services"
	"tripbudget/internal/utils"

	"github.com/gin-gonic/gin"
)

func passengerService(c *gin.Context) services.PassengerService {
	return services.PassengerService{
		PassengerRepo: repositories.PassengerRepository{},
		TripRepo:      repositories.TripRepository{},
		RequestID:     middleware.GetRequestID(c),
	}
}

// moneyField accepts a JSON number or a masked string such as
// "R$ 1.234,56", which older frontend builds still send.
type moneyField float64

func (m *moneyField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		v, err := utils.ParseBRL(raw)
		if err != nil {
			return err
		}
		*m = moneyField(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = moneyField(v)
	return nil
}

type installmentRequest struct {
	Amount *moneyField `json:"amount"`
	Date   *string     `json:"date"`
}

type lumpSumRequest struct {
	Enabled bool   `json:"enabled"`
	Method  string `json:"method"`
}

// GET /api/passengers?trip_id=N
func ListPassengers(c *gin.Context) {
	tripID, _ := strconv.ParseInt(c.Query("trip_id"), 10, 64)
	passengers, pg, err := passengerService(c).List(tripID, queryInt(c, "page", 1), queryInt(c, "page_size", 50))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passengers": passengers, "pagination": pg})
}

// GET /api/passengers/:id
func GetPassenger(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := passengerService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/passengers
func CreatePassenger(c *gin.Context) {
	var req repositories.PassengerRecord
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := passengerService(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /api/passengers/:id
func UpdatePassenger(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req repositories.PassengerRecord
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := passengerService(c).Update(id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/passengers/:id
func DeletePassenger(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := passengerService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "passenger deleted"})
}

// PUT /api/passengers/:id/installments/:index
// Amount and date travel independently; either may be present.
func SetPassengerInstallment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid installment index", err)
		return
	}
	var req installmentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Amount == nil && req.Date == nil {
		RespondError(c, http.StatusBadRequest, "amount or date is required", nil)
		return
	}

	svc := passengerService(c)
	var p repositories.PassengerRecord
	if req.Amount != nil {
		p, err = svc.SetInstallment(id, index, float64(*req.Amount))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if req.Date != nil {
		p, err = svc.SetInstallmentDate(id, index, *req.Date)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/passengers/:id/lump-sum
func SetPassengerLumpSum(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req lumpSumRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := passengerService(c).ToggleLumpSum(id, req.Enabled, req.Method)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
