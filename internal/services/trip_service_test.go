package services

import (
	"testing"

	"tripbudget/internal/domain"
	"tripbudget/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func sampleBudget() domain.TripBudget {
	return domain.TripBudget{
		Destination:   "Gramado",
		DepartureDate: "2024-03-10",
		ReturnDate:    "2024-03-13",
		VehicleType:   domain.VehicleBus,
		Freight:       8600,
	}
}

func TestTripServiceCreateComputesSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(5, 1))

	svc := TripService{TripRepo: repositories.TripRepository{DB: db}}
	rec, err := svc.Create(sampleBudget(), false)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if rec.ID != 5 {
		t.Fatalf("expected id 5, got %d", rec.ID)
	}
	if rec.PriceOverridden {
		t.Fatalf("price should not be marked overridden")
	}
	// Bus: 43 paying seats, expense 8600 -> break-even 200, suggested 240.
	if rec.Financials.BreakEvenPrice != 200 {
		t.Fatalf("break-even wrong: %.2f", rec.Financials.BreakEvenPrice)
	}
	if rec.Budget.SuggestedPrice != 240 || rec.Financials.SuggestedPrice != 240 {
		t.Fatalf("suggested wrong: budget=%.2f snapshot=%.2f",
			rec.Budget.SuggestedPrice, rec.Financials.SuggestedPrice)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripServiceCreateNormalizesDestination(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(6, 1))

	budget := sampleBudget()
	budget.Destination = "  Gramado   e  Canela "

	svc := TripService{TripRepo: repositories.TripRepository{DB: db}}
	rec, err := svc.Create(budget, false)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if rec.Budget.Destination != "Gramado e Canela" {
		t.Fatalf("destination not normalized: %q", rec.Budget.Destination)
	}
}

func TestTripServiceCreateHonorsManualPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(6, 1))

	budget := sampleBudget()
	budget.SuggestedPrice = 300

	svc := TripService{TripRepo: repositories.TripRepository{DB: db}}
	rec, err := svc.Create(budget, true)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if !rec.PriceOverridden {
		t.Fatalf("price should be marked overridden")
	}
	if rec.Financials.SuggestedPrice != 300 {
		t.Fatalf("manual price lost: %.2f", rec.Financials.SuggestedPrice)
	}
	if rec.Financials.BreakEvenPrice != 200 {
		t.Fatalf("break-even should stay computed: %.2f", rec.Financials.BreakEvenPrice)
	}
}

func TestTripServiceCreateRejectsEmptyDestination(t *testing.T) {
	svc := TripService{}
	_, err := svc.Create(domain.TripBudget{VehicleType: domain.VehicleVan}, false)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTripServiceUpdateKeepsOverrideUntilCleared(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	stored := recomputeRecord(repositories.TripRecord{ID: 1}, func() domain.TripBudget {
		b := sampleBudget()
		b.SuggestedPrice = 350
		return b
	}(), true)

	mock.ExpectExec("UPDATE trips SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := TripService{
		TripRepo:  repositories.TripRepository{DB: db},
		FetchTrip: func(int64) (repositories.TripRecord, error) { return stored, nil },
	}

	// A plain input edit, price untouched by the caller.
	budget := sampleBudget()
	budget.Freight = 9000
	rec, err := svc.Update(1, budget, false)
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if !rec.PriceOverridden || rec.Financials.SuggestedPrice != 350 {
		t.Fatalf("override should survive input edits: overridden=%t price=%.2f",
			rec.PriceOverridden, rec.Financials.SuggestedPrice)
	}
	if rec.Budget.Freight != 9000 {
		t.Fatalf("inputs not updated: %.2f", rec.Budget.Freight)
	}
}

func TestTripServiceRecomputeClearsOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	stored := recomputeRecord(repositories.TripRecord{ID: 1}, func() domain.TripBudget {
		b := sampleBudget()
		b.SuggestedPrice = 350
		return b
	}(), true)

	mock.ExpectExec("UPDATE trips SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := TripService{
		TripRepo:  repositories.TripRepository{DB: db},
		FetchTrip: func(int64) (repositories.TripRecord, error) { return stored, nil },
	}

	rec, err := svc.Recompute(1)
	if err != nil {
		t.Fatalf("recompute error: %v", err)
	}
	if rec.PriceOverridden {
		t.Fatalf("override should be cleared")
	}
	if rec.Financials.SuggestedPrice != 240 || rec.Budget.SuggestedPrice != 240 {
		t.Fatalf("computed price not restored: %.2f", rec.Financials.SuggestedPrice)
	}
}

func TestTripServiceSetSuggestedPriceRejectsNonPositive(t *testing.T) {
	svc := TripService{}
	if _, err := svc.SetSuggestedPrice(1, 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.SetSuggestedPrice(1, -10); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
