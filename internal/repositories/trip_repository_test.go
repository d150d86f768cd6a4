package repositories

import (
	"database/sql/driver"
	"testing"

	"tripbudget/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func sampleTripRecord() TripRecord {
	budget := domain.TripBudget{
		Destination:   "Gramado",
		DepartureDate: "2024-03-10",
		ReturnDate:    "2024-03-13",
		VehicleType:   domain.VehicleBus,
		CityFee:       100,
		GuideFee:      50,
		Freight:       5000,
		DriverCount:   2,
		MiscExpenses:  75,
	}
	budget.OtherRevenue[0] = 120
	cp := domain.ResolveCapacity(budget.VehicleType)
	fin := domain.ComputeFinancials(budget, cp, nil)
	// The services persist the effective price on the budget too.
	budget.SuggestedPrice = fin.SuggestedPrice
	return TripRecord{
		ID:         1,
		Budget:     budget,
		Financials: fin,
	}
}

// tripRowValues mirrors scanDest order so tests can fabricate SELECT rows.
func tripRowValues(t TripRecord) []driver.Value {
	vals := []driver.Value{t.ID}
	for _, a := range t.budgetArgs() {
		vals = append(vals, driver.Value(a))
	}
	f := t.Financials
	vals = append(vals,
		f.Categories[domain.CategoryFees], f.Categories[domain.CategoryTransport],
		f.Categories[domain.CategoryLodging], f.Categories[domain.CategoryTours],
		f.Categories[domain.CategoryGiftsExtras], f.Categories[domain.CategoryRaffles],
		f.Categories[domain.CategoryOtherRevenue],
		f.TotalExpense,
		f.SeatCount, f.GuideReservedSeats, f.PromotionalSeats,
		f.NonPayingCount, f.PayingCount, f.NightsCount,
		f.BreakEvenPrice, f.TotalRevenue, f.GrossProfit,
	)
	return vals
}

func tripRowColumns() []string {
	cols := append([]string{"id"}, budgetCols...)
	return append(cols,
		"total_fees", "total_transport", "total_lodging", "total_tours",
		"total_gifts_extras", "total_raffles", "total_other_revenue",
		"total_expense",
		"seat_count", "guide_reserved_seats", "promotional_seats",
		"non_paying_count", "paying_count", "nights_count",
		"break_even_price", "total_revenue", "gross_profit",
	)
}

func TestTripRepositoryGetByIDRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	want := sampleTripRecord()
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").WithArgs(want.ID).
		WillReturnRows(sqlmock.NewRows(tripRowColumns()).AddRow(tripRowValues(want)...))

	repo := TripRepository{DB: db}
	got, err := repo.GetByID(want.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.Budget.Destination != "Gramado" || got.Budget.VehicleType != domain.VehicleBus {
		t.Fatalf("budget not restored: %+v", got.Budget)
	}
	if got.Financials.SeatCount != 46 || got.Financials.NightsCount != 2 {
		t.Fatalf("snapshot not restored: %+v", got.Financials)
	}

	for _, cat := range []domain.Category{
		domain.CategoryFees, domain.CategoryTransport, domain.CategoryLodging,
		domain.CategoryTours, domain.CategoryGiftsExtras, domain.CategoryRaffles,
		domain.CategoryMisc, domain.CategoryOtherRevenue,
	} {
		if got.Financials.Categories[cat] != want.Financials.Categories[cat] {
			t.Fatalf("category %s not restored: got %v, want %v",
				cat, got.Financials.Categories[cat], want.Financials.Categories[cat])
		}
	}
	if got.Financials.SuggestedPrice == 0 || got.Financials.SuggestedPrice != want.Financials.SuggestedPrice {
		t.Fatalf("suggested price not restored: got %v, want %v",
			got.Financials.SuggestedPrice, want.Financials.SuggestedPrice)
	}

	// The loaded snapshot must stay internally coherent.
	f := got.Financials
	wantRevenue := f.SuggestedPrice*float64(f.PayingCount) + f.Categories[domain.CategoryOtherRevenue]
	if f.TotalRevenue != wantRevenue {
		t.Fatalf("loaded revenue %v inconsistent with price %v x paying %d + other %v",
			f.TotalRevenue, f.SuggestedPrice, f.PayingCount, f.Categories[domain.CategoryOtherRevenue])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(tripRowColumns()))

	repo := TripRepository{DB: db}
	if _, err := repo.GetByID(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestTripRepositoryCreateReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := TripRepository{DB: db}
	id, err := repo.Create(sampleTripRecord())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE trips SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM trips").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := TripRepository{DB: db}
	if err := repo.Update(sampleTripRecord()); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestTripRepositoryUpdateNoChangeIsOK(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// MySQL reports zero affected rows when values are unchanged.
	mock.ExpectExec("UPDATE trips SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM trips").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := TripRepository{DB: db}
	if err := repo.Update(sampleTripRecord()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestTripRepositoryDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM trips").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TripRepository{DB: db}
	if err := repo.Delete(3); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestTripRepositoryListPaginates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rec := sampleTripRecord()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT (.+) FROM trips ORDER BY id DESC").WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows(tripRowColumns()).AddRow(tripRowValues(rec)...))

	repo := TripRepository{DB: db}
	out, pg, err := repo.List(2, 5)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(out))
	}
	if pg.Total != 12 || pg.Page != 2 || pg.PageSize != 5 {
		t.Fatalf("pagination wrong: %+v", pg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
