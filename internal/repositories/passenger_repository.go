package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "tripbudget/internal/config"
	intdb "tripbudget/internal/db"
	"tripbudget/internal/domain"
)

// PassengerRecord is one persisted passenger with their payment plan.
type PassengerRecord struct {
	ID              int64  `json:"id"`
	TripID          int64  `json:"tripId"`
	Name            string `json:"name"`
	CPF             string `json:"cpf"`
	Phone           string `json:"phone,omitempty"`
	District        string `json:"district,omitempty"`
	City            string `json:"city,omitempty"`
	BoardingPoint   string `json:"boardingPoint,omitempty"`
	BoardingAddress string `json:"boardingAddress,omitempty"`
	ReferredBy      string `json:"referredBy,omitempty"`
	Seat            string `json:"seat,omitempty"`
	TripDate        string `json:"tripDate,omitempty"`

	Plan domain.PaymentPlan `json:"plan"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type PassengerRepository struct {
	DB *sql.DB
}

func (r PassengerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var passengerInfoCols = []string{
	"trip_id", "name", "cpf", "phone", "district", "city",
	"boarding_point", "boarding_address", "referred_by", "seat", "trip_date",
}

var planHeadCols = []string{
	"trip_price", "lump_sum", "lump_sum_date", "lump_sum_method", "outstanding_balance",
}

// installmentCols yields the date/amount column pair per slot: the deposit
// ("sinal") then installments 2..12, mirroring the legacy numbering.
func installmentCols() []string {
	cols := []string{"deposit_date", "deposit_amount"}
	for i := 2; i <= domain.InstallmentSlots; i++ {
		cols = append(cols, fmt.Sprintf("installment%d_date", i), fmt.Sprintf("installment%d_amount", i))
	}
	return cols
}

func (p PassengerRecord) infoArgs() []any {
	return []any{
		p.TripID, p.Name, p.CPF, p.Phone, p.District, p.City,
		p.BoardingPoint, p.BoardingAddress, p.ReferredBy, p.Seat, p.TripDate,
	}
}

func (p PassengerRecord) planArgs() []any {
	args := []any{
		p.Plan.TripPrice, p.Plan.LumpSum,
		intdb.NullIfEmpty(p.Plan.LumpSumDate), intdb.NullIfEmpty(p.Plan.LumpSumMethod),
		p.Plan.OutstandingBalance,
	}
	for _, in := range p.Plan.Installments {
		args = append(args, intdb.NullIfEmpty(in.Date), in.Amount)
	}
	return args
}

func (p *PassengerRecord) scanDest() []any {
	dest := []any{
		&p.ID,
		&p.TripID, &p.Name, &p.CPF, &p.Phone, &p.District, &p.City,
		&p.BoardingPoint, &p.BoardingAddress, &p.ReferredBy, &p.Seat, &p.TripDate,
		&p.Plan.TripPrice, &p.Plan.LumpSum, &p.Plan.LumpSumDate, &p.Plan.LumpSumMethod,
		&p.Plan.OutstandingBalance,
	}
	for i := range p.Plan.Installments {
		dest = append(dest, &p.Plan.Installments[i].Date, &p.Plan.Installments[i].Amount)
	}
	return dest
}

func passengerSelectCols() string {
	cols := []string{"id"}
	for _, c := range passengerInfoCols {
		if c == "trip_id" {
			cols = append(cols, "COALESCE(trip_id,0)")
			continue
		}
		cols = append(cols, "COALESCE("+c+",'')")
	}
	cols = append(cols,
		"COALESCE(trip_price,0)", "COALESCE(lump_sum,0)",
		"COALESCE(lump_sum_date,'')", "COALESCE(lump_sum_method,'')",
		"COALESCE(outstanding_balance,0)",
	)
	for _, c := range installmentCols() {
		if strings.HasSuffix(c, "_date") {
			cols = append(cols, "COALESCE("+c+",'')")
		} else {
			cols = append(cols, "COALESCE("+c+",0)")
		}
	}
	return strings.Join(cols, ", ")
}

// GetByID loads one passenger with the full installment schedule.
func (r PassengerRepository) GetByID(id int64) (PassengerRecord, error) {
	db := r.db()
	if db == nil || id <= 0 {
		return PassengerRecord{}, domain.NotFoundError{Resource: "passenger"}
	}

	var p PassengerRecord
	err := db.QueryRow(`SELECT `+passengerSelectCols()+` FROM passengers WHERE id = ?`, id).
		Scan(p.scanDest()...)
	if err == sql.ErrNoRows {
		return PassengerRecord{}, domain.NotFoundError{Resource: "passenger"}
	}
	if err != nil {
		return PassengerRecord{}, domain.InternalError{Msg: "failed to load passenger", Err: err}
	}
	return p, nil
}

// ListByTrip returns a trip's passengers; tripID 0 lists all.
func (r PassengerRepository) ListByTrip(tripID int64, page, pageSize int) ([]PassengerRecord, domain.Pagination, error) {
	db := r.db()
	pg := domain.Pagination{Page: page, PageSize: pageSize}
	if db == nil {
		return []PassengerRecord{}, pg, nil
	}
	if pg.Page < 1 {
		pg.Page = 1
	}
	if pg.PageSize < 1 || pg.PageSize > 200 {
		pg.PageSize = 50
	}

	where := ""
	args := []any{}
	if tripID > 0 {
		where = " WHERE trip_id = ?"
		args = append(args, tripID)
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM passengers`+where, args...).Scan(&pg.Total); err != nil {
		return nil, pg, domain.InternalError{Msg: "failed to count passengers", Err: err}
	}

	args = append(args, pg.PageSize, (pg.Page-1)*pg.PageSize)
	rows, err := db.Query(
		`SELECT `+passengerSelectCols()+` FROM passengers`+where+` ORDER BY name ASC, id ASC LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, pg, domain.InternalError{Msg: "failed to list passengers", Err: err}
	}
	defer rows.Close()

	out := []PassengerRecord{}
	for rows.Next() {
		var p PassengerRecord
		if err := rows.Scan(p.scanDest()...); err != nil {
			return nil, pg, domain.InternalError{Msg: "failed to scan passenger", Err: err}
		}
		out = append(out, p)
	}
	return out, pg, rows.Err()
}

// Create inserts a passenger and returns the new id.
func (r PassengerRepository) Create(p PassengerRecord) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "db unavailable"}
	}

	cols := append(append([]string{}, passengerInfoCols...), planHeadCols...)
	cols = append(cols, installmentCols()...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	args := append(p.infoArgs(), p.planArgs()...)

	res, err := db.Exec(
		`INSERT INTO passengers (`+strings.Join(cols, ", ")+`, created_at, updated_at)
		 VALUES (`+placeholders+`, NOW(), NOW())`, args...)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to insert passenger", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to read passenger id", Err: err}
	}
	return id, nil
}

// Update rewrites the full passenger row.
func (r PassengerRepository) Update(p PassengerRecord) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db unavailable"}
	}
	if p.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid passenger id"}
	}

	cols := append(append([]string{}, passengerInfoCols...), planHeadCols...)
	cols = append(cols, installmentCols()...)
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, c+" = ?")
	}
	args := append(p.infoArgs(), p.planArgs()...)
	args = append(args, p.ID)

	res, err := db.Exec(
		`UPDATE passengers SET `+strings.Join(sets, ", ")+`, updated_at = NOW() WHERE id = ?`, args...)
	if err != nil {
		return domain.InternalError{Msg: "failed to update passenger", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if !r.exists(p.ID) {
			return domain.NotFoundError{Resource: "passenger"}
		}
	}
	return nil
}

// UpdatePlan rewrites only the payment columns, used by installment and
// lump-sum edits so personal info writes cannot race them.
func (r PassengerRepository) UpdatePlan(id int64, plan domain.PaymentPlan) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db unavailable"}
	}
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid passenger id"}
	}

	cols := append(append([]string{}, planHeadCols...), installmentCols()...)
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, c+" = ?")
	}
	args := PassengerRecord{Plan: plan}.planArgs()
	args = append(args, id)

	res, err := db.Exec(
		`UPDATE passengers SET `+strings.Join(sets, ", ")+`, updated_at = NOW() WHERE id = ?`, args...)
	if err != nil {
		return domain.InternalError{Msg: "failed to update payment plan", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if !r.exists(id) {
			return domain.NotFoundError{Resource: "passenger"}
		}
	}
	return nil
}

// Delete removes a passenger row.
func (r PassengerRepository) Delete(id int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db unavailable"}
	}
	res, err := db.Exec(`DELETE FROM passengers WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete passenger", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "passenger"}
	}
	return nil
}

func (r PassengerRepository) exists(id int64) bool {
	db := r.db()
	if db == nil {
		return false
	}
	var one int
	err := db.QueryRow(`SELECT 1 FROM passengers WHERE id = ? LIMIT 1`, id).Scan(&one)
	return err == nil
}
