package handlers

import (
	"net/http"

	"tripbudget/internal/http/middleware"
	"tripbudget/internal/repositories"
	"tripbudget/internal/services"

	"github.com/gin-gonic/gin"
)

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		TripRepo:      repositories.TripRepository{},
		PassengerRepo: repositories.PassengerRepository{},
		RequestID:     middleware.GetRequestID(c),
	}
}

// GET /api/trips/:id/summary returns the budget summary PDF (inline).
func GetTripSummaryPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := docsService(c).GenerateTripSummary(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdfBytes, filename)
}

// GET /api/passengers/:id/statement returns the payment statement PDF (inline).
func GetPassengerStatementPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := docsService(c).GeneratePaymentStatement(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdfBytes, filename)
}

func servePDF(c *gin.Context, pdfBytes []byte, filename string) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
