package repositories

import (
	"database/sql"
	"strings"

	intconfig "tripbudget/internal/config"
	intdb "tripbudget/internal/db"
	"tripbudget/internal/domain"
)

// TripRecord is one persisted trip: the raw budget inputs, the override
// flag and the last computed financial snapshot.
type TripRecord struct {
	ID              int64                 `json:"id"`
	Budget          domain.TripBudget     `json:"budget"`
	PriceOverridden bool                  `json:"priceOverridden"`
	Financials      domain.TripFinancials `json:"financials"`
	CreatedAt       string                `json:"createdAt,omitempty"`
	UpdatedAt       string                `json:"updatedAt,omitempty"`
}

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// budgetCols lists the raw input columns in insert/scan order.
var budgetCols = []string{
	"destination", "departure_date", "return_date", "vehicle_type",
	"city_fee", "guide_fee", "other_fee", "parking",
	"freight",
	"driver_count", "driver_lunch_count", "driver_dinner_count", "driver_meal_unit",
	"driver_trip_count", "driver_trip_unit",
	"transfer1_qty", "transfer1_unit", "transfer2_qty", "transfer2_unit", "transfer3_qty", "transfer3_unit",
	"lodging_night_unit", "lodging_other_services",
	"tour1_qty", "tour1_unit", "tour2_qty", "tour2_unit", "tour3_qty", "tour3_unit",
	"gift_unit", "extra1", "extra2", "extra3",
	"raffle1_qty", "raffle1_unit", "raffle2_qty", "raffle2_unit", "raffle3_qty", "raffle3_unit",
	"other_revenue1", "other_revenue2",
	"misc_expenses",
	"suggested_price", "price_overridden",
}

// snapshotCols lists the persisted computed columns in insert/scan order.
var snapshotCols = []string{
	"total_fees", "total_transport", "total_lodging", "total_tours",
	"total_gifts_extras", "total_raffles", "total_other_revenue",
	"total_expense",
	"seat_count", "guide_reserved_seats", "promotional_seats",
	"non_paying_count", "paying_count", "nights_count",
	"break_even_price", "total_revenue", "gross_profit",
}

func (t TripRecord) budgetArgs() []any {
	b := t.Budget
	return []any{
		b.Destination, b.DepartureDate, b.ReturnDate, string(b.VehicleType),
		b.CityFee, b.GuideFee, b.OtherFee, b.Parking,
		b.Freight,
		b.DriverCount, b.DriverLunchCount, b.DriverDinnerCount, b.DriverMealUnit,
		b.DriverTripCount, b.DriverTripUnit,
		b.Transfers[0].Quantity, b.Transfers[0].UnitPrice,
		b.Transfers[1].Quantity, b.Transfers[1].UnitPrice,
		b.Transfers[2].Quantity, b.Transfers[2].UnitPrice,
		b.LodgingNightUnit, b.LodgingOtherServices,
		b.Tours[0].Quantity, b.Tours[0].UnitPrice,
		b.Tours[1].Quantity, b.Tours[1].UnitPrice,
		b.Tours[2].Quantity, b.Tours[2].UnitPrice,
		b.GiftUnit, b.Extras[0], b.Extras[1], b.Extras[2],
		b.Raffles[0].Quantity, b.Raffles[0].UnitPrice,
		b.Raffles[1].Quantity, b.Raffles[1].UnitPrice,
		b.Raffles[2].Quantity, b.Raffles[2].UnitPrice,
		b.OtherRevenue[0], b.OtherRevenue[1],
		b.MiscExpenses,
		b.SuggestedPrice, t.PriceOverridden,
	}
}

func (t TripRecord) snapshotArgs() []any {
	f := t.Financials
	return []any{
		f.Categories[domain.CategoryFees], f.Categories[domain.CategoryTransport],
		f.Categories[domain.CategoryLodging], f.Categories[domain.CategoryTours],
		f.Categories[domain.CategoryGiftsExtras], f.Categories[domain.CategoryRaffles],
		f.Categories[domain.CategoryOtherRevenue],
		f.TotalExpense,
		f.SeatCount, f.GuideReservedSeats, f.PromotionalSeats,
		f.NonPayingCount, f.PayingCount, f.NightsCount,
		f.BreakEvenPrice, f.TotalRevenue, f.GrossProfit,
	}
}

// tripRow pairs a record with the scanned per-category totals so the
// snapshot map can be rebuilt after Scan.
type tripRow struct {
	TripRecord
	cats [7]float64
}

func (t *tripRow) scanDest() []any {
	b := &t.Budget
	f := &t.Financials
	return []any{
		&t.ID,
		&b.Destination, &b.DepartureDate, &b.ReturnDate, &b.VehicleType,
		&b.CityFee, &b.GuideFee, &b.OtherFee, &b.Parking,
		&b.Freight,
		&b.DriverCount, &b.DriverLunchCount, &b.DriverDinnerCount, &b.DriverMealUnit,
		&b.DriverTripCount, &b.DriverTripUnit,
		&b.Transfers[0].Quantity, &b.Transfers[0].UnitPrice,
		&b.Transfers[1].Quantity, &b.Transfers[1].UnitPrice,
		&b.Transfers[2].Quantity, &b.Transfers[2].UnitPrice,
		&b.LodgingNightUnit, &b.LodgingOtherServices,
		&b.Tours[0].Quantity, &b.Tours[0].UnitPrice,
		&b.Tours[1].Quantity, &b.Tours[1].UnitPrice,
		&b.Tours[2].Quantity, &b.Tours[2].UnitPrice,
		&b.GiftUnit, &b.Extras[0], &b.Extras[1], &b.Extras[2],
		&b.Raffles[0].Quantity, &b.Raffles[0].UnitPrice,
		&b.Raffles[1].Quantity, &b.Raffles[1].UnitPrice,
		&b.Raffles[2].Quantity, &b.Raffles[2].UnitPrice,
		&b.OtherRevenue[0], &b.OtherRevenue[1],
		&b.MiscExpenses,
		&b.SuggestedPrice, &t.PriceOverridden,
		&t.cats[0], &t.cats[1], &t.cats[2], &t.cats[3],
		&t.cats[4], &t.cats[5], &t.cats[6],
		&f.TotalExpense,
		&f.SeatCount, &f.GuideReservedSeats, &f.PromotionalSeats,
		&f.NonPayingCount, &f.PayingCount, &f.NightsCount,
		&f.BreakEvenPrice, &f.TotalRevenue, &f.GrossProfit,
	}
}

// record rebuilds the snapshot map from the scanned totals. The misc bucket
// is not stored: it is always the raw misc_expenses input. The stored
// suggested_price column carries the effective price, computed or manual,
// so the snapshot copies it back from the budget.
func (t *tripRow) record() TripRecord {
	f := &t.Financials
	f.Categories = map[domain.Category]float64{
		domain.CategoryFees:         t.cats[0],
		domain.CategoryTransport:    t.cats[1],
		domain.CategoryLodging:      t.cats[2],
		domain.CategoryTours:        t.cats[3],
		domain.CategoryGiftsExtras:  t.cats[4],
		domain.CategoryRaffles:      t.cats[5],
		domain.CategoryMisc:         t.Budget.MiscExpenses,
		domain.CategoryOtherRevenue: t.cats[6],
	}
	f.SuggestedPrice = t.Budget.SuggestedPrice
	return t.TripRecord
}

func selectCols() string {
	cols := append([]string{"id"}, budgetCols...)
	cols = append(cols,
		"COALESCE(total_fees,0)", "COALESCE(total_transport,0)",
		"COALESCE(total_lodging,0)", "COALESCE(total_tours,0)",
		"COALESCE(total_gifts_extras,0)", "COALESCE(total_raffles,0)",
		"COALESCE(total_other_revenue,0)",
		"COALESCE(total_expense,0)",
		"COALESCE(seat_count,0)", "COALESCE(guide_reserved_seats,0)", "COALESCE(promotional_seats,0)",
		"COALESCE(non_paying_count,0)", "COALESCE(paying_count,0)", "COALESCE(nights_count,0)",
		"COALESCE(break_even_price,0)", "COALESCE(total_revenue,0)", "COALESCE(gross_profit,0)",
	)
	return strings.Join(cols, ", ")
}

// GetByID loads one trip with its stored snapshot.
func (r TripRepository) GetByID(id int64) (TripRecord, error) {
	db := r.db()
	if db == nil || id <= 0 {
		return TripRecord{}, domain.NotFoundError{Resource: "trip"}
	}

	var row tripRow
	err := db.QueryRow(`SELECT `+selectCols()+` FROM trips WHERE id = ?`, id).Scan(row.scanDest()...)
	if err == sql.ErrNoRows {
		return TripRecord{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return TripRecord{}, domain.InternalError{Msg: "failed to load trip", Err: err}
	}
	return row.record(), nil
}

// List returns trips newest-first with paging.
func (r TripRepository) List(page, pageSize int) ([]TripRecord, domain.Pagination, error) {
	db := r.db()
	pg := domain.Pagination{Page: page, PageSize: pageSize}
	if db == nil {
		return []TripRecord{}, pg, nil
	}
	if page < 1 {
		pg.Page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pg.PageSize = 50
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&pg.Total); err != nil {
		return nil, pg, domain.InternalError{Msg: "failed to count trips", Err: err}
	}

	offset := (pg.Page - 1) * pg.PageSize
	rows, err := db.Query(`SELECT `+selectCols()+` FROM trips ORDER BY id DESC LIMIT ? OFFSET ?`,
		pg.PageSize, offset)
	if err != nil {
		return nil, pg, domain.InternalError{Msg: "failed to list trips", Err: err}
	}
	defer rows.Close()

	out := []TripRecord{}
	for rows.Next() {
		var row tripRow
		if err := rows.Scan(row.scanDest()...); err != nil {
			return nil, pg, domain.InternalError{Msg: "failed to scan trip", Err: err}
		}
		out = append(out, row.record())
	}
	return out, pg, rows.Err()
}

// Create inserts a trip and returns its new id.
func (r TripRepository) Create(t TripRecord) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db unavailable"}
	}

	cols := append(append([]string{}, budgetCols...), snapshotCols...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	args := append(t.budgetArgs(), t.snapshotArgs()...)

	res, err := db.Exec(
		`INSERT INTO trips (`+strings.Join(cols, ", ")+`, created_at, updated_at)
		 VALUES (`+placeholders+`, NOW(), NOW())`, args...)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to insert trip", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to read trip id", Err: err}
	}
	return id, nil
}

// Update rewrites the full trip row, inputs and snapshot together, so the
// stored record is always internally coherent.
func (r TripRepository) Update(t TripRecord) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db unavailable"}
	}
	if t.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid trip id"}
	}

	cols := append(append([]string{}, budgetCols...), snapshotCols...)
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, c+" = ?")
	}
	args := append(t.budgetArgs(), t.snapshotArgs()...)
	args = append(args, t.ID)

	res, err := db.Exec(
		`UPDATE trips SET `+strings.Join(sets, ", ")+`, updated_at = NOW() WHERE id = ?`, args...)
	if err != nil {
		return domain.InternalError{Msg: "failed to update trip", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL also reports 0 when nothing changed; confirm existence.
		if !r.exists(t.ID) {
			return domain.NotFoundError{Resource: "trip"}
		}
	}
	return nil
}

// Delete removes a trip row.
func (r TripRepository) Delete(id int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db unavailable"}
	}
	res, err := db.Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete trip", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) exists(id int64) bool {
	db := r.db()
	if db == nil {
		return false
	}
	var one int
	err := db.QueryRow(`SELECT 1 FROM trips WHERE id = ? LIMIT 1`, id).Scan(&one)
	return err == nil
}

// HasSchema reports whether the trips table is migrated, used by db-check.
func (r TripRepository) HasSchema() bool {
	db := r.db()
	return db != nil && intdb.HasTable(db, "trips") && intdb.HasColumn(db, "trips", "price_overridden")
}
