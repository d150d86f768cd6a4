package services

import (
	"strings"
	"testing"

	"tripbudget/internal/domain"
	"tripbudget/internal/repositories"
)

func TestDocsServiceGenerateTripSummary(t *testing.T) {
	svc := DocsService{
		FetchTrip: func(id int64) (repositories.TripRecord, error) {
			rec := storedTrip(350, true)
			rec.ID = id
			return rec, nil
		},
	}

	pdf, filename, err := svc.GenerateTripSummary(9)
	if err != nil {
		t.Fatalf("GenerateTripSummary returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateTripSummary returned empty data")
	}
	if !strings.HasPrefix(filename, "RESUMO_9_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceGeneratePaymentStatement(t *testing.T) {
	passenger := repositories.PassengerRecord{
		ID:     3,
		TripID: 9,
		Name:   "Maria Souza",
		CPF:    "12345678901",
	}
	passenger.Plan.TripPrice = 1200
	passenger.Plan.Installments[0] = domain.Installment{Date: "2024-05-01", Amount: 400}
	passenger.Plan = domain.Reconcile(passenger.Plan)

	svc := DocsService{
		FetchTrip: func(id int64) (repositories.TripRecord, error) {
			rec := storedTrip(350, true)
			rec.ID = id
			return rec, nil
		},
		FetchPassenger: func(int64) (repositories.PassengerRecord, error) {
			return passenger, nil
		},
	}

	pdf, filename, err := svc.GeneratePaymentStatement(3)
	if err != nil {
		t.Fatalf("GeneratePaymentStatement returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GeneratePaymentStatement returned empty data")
	}
	if !strings.HasPrefix(filename, "EXTRATO_3_") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceStatementNotFound(t *testing.T) {
	svc := DocsService{
		FetchPassenger: func(int64) (repositories.PassengerRecord, error) {
			return repositories.PassengerRecord{}, domain.NotFoundError{Resource: "passenger"}
		},
	}
	if _, _, err := svc.GeneratePaymentStatement(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
