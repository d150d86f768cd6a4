package services

import (
	"fmt"
	"strings"
	"time"

	"tripbudget/internal/domain"
	"tripbudget/internal/repositories"
	"tripbudget/internal/utils"
)

// PassengerService manages passengers and their installment schedules.
// The billed trip price is sourced from the linked trip when the
// passenger is created or moved to another trip.
type PassengerService struct {
	PassengerRepo repositories.PassengerRepository
	TripRepo      repositories.TripRepository
	RequestID     string

	// Test hooks; nil defaults to the repositories and time.Now.
	FetchPassenger func(int64) (repositories.PassengerRecord, error)
	FetchTrip      func(int64) (repositories.TripRecord, error)
	Now            func() time.Time
}

func (s PassengerService) fetchPassenger(id int64) (repositories.PassengerRecord, error) {
	if s.FetchPassenger != nil {
		return s.FetchPassenger(id)
	}
	return s.PassengerRepo.GetByID(id)
}

func (s PassengerService) fetchTrip(id int64) (repositories.TripRecord, error) {
	if s.FetchTrip != nil {
		return s.FetchTrip(id)
	}
	return s.TripRepo.GetByID(id)
}

func (s PassengerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s PassengerService) Get(id int64) (repositories.PassengerRecord, error) {
	return s.fetchPassenger(id)
}

func (s PassengerService) List(tripID int64, page, pageSize int) ([]repositories.PassengerRecord, domain.Pagination, error) {
	return s.PassengerRepo.ListByTrip(tripID, page, pageSize)
}

// Create stores a passenger. The plan's trip price comes from the linked
// trip unless the caller already set one.
func (s PassengerService) Create(p repositories.PassengerRecord) (repositories.PassengerRecord, error) {
	p.Name = utils.NormalizeSpace(p.Name)
	if err := validatePassenger(p); err != nil {
		return repositories.PassengerRecord{}, err
	}
	if p.Plan.TripPrice <= 0 && p.TripID > 0 {
		price, err := s.tripPrice(p.TripID)
		if err != nil {
			return repositories.PassengerRecord{}, err
		}
		p.Plan.TripPrice = price
	}
	p.Plan = domain.Reconcile(p.Plan)

	id, err := s.PassengerRepo.Create(p)
	if err != nil {
		return repositories.PassengerRecord{}, err
	}
	p.ID = id
	utils.LogEvent(s.RequestID, "passengers", "create", fmt.Sprintf("id=%d trip_id=%d", id, p.TripID))
	return p, nil
}

// Update rewrites a passenger. Moving to another trip refreshes the
// billed price from that trip; otherwise the stored price stays.
func (s PassengerService) Update(id int64, p repositories.PassengerRecord) (repositories.PassengerRecord, error) {
	p.Name = utils.NormalizeSpace(p.Name)
	if err := validatePassenger(p); err != nil {
		return repositories.PassengerRecord{}, err
	}
	existing, err := s.fetchPassenger(id)
	if err != nil {
		return repositories.PassengerRecord{}, err
	}

	p.ID = id
	if p.Plan.TripPrice <= 0 {
		p.Plan.TripPrice = existing.Plan.TripPrice
	}
	if p.TripID > 0 && p.TripID != existing.TripID {
		price, err := s.tripPrice(p.TripID)
		if err != nil {
			return repositories.PassengerRecord{}, err
		}
		p.Plan.TripPrice = price
	}
	p.Plan = domain.Reconcile(p.Plan)

	if err := s.PassengerRepo.Update(p); err != nil {
		return repositories.PassengerRecord{}, err
	}
	utils.LogEvent(s.RequestID, "passengers", "update", fmt.Sprintf("id=%d trip_id=%d", id, p.TripID))
	return p, nil
}

// SetInstallment records a payment amount in one slot and persists the
// recomputed balance.
func (s PassengerService) SetInstallment(id int64, index int, amount float64) (repositories.PassengerRecord, error) {
	p, err := s.fetchPassenger(id)
	if err != nil {
		return repositories.PassengerRecord{}, err
	}
	plan, err := domain.SetInstallment(p.Plan, index, amount)
	if err != nil {
		return repositories.PassengerRecord{}, err
	}
	p.Plan = plan
	if err := s.PassengerRepo.UpdatePlan(id, plan); err != nil {
		return repositories.PassengerRecord{}, err
	}
	utils.LogEvent(s.RequestID, "passengers", "set_installment",
		fmt.Sprintf("id=%d slot=%s amount=%.2f balance=%.2f", id, domain.InstallmentLabel(index), amount, plan.OutstandingBalance))
	return p, nil
}

// SetInstallmentDate records when a slot was paid. Dates never move the
// balance.
func (s PassengerService) SetInstallmentDate(id int64, index int, date string) (repositories.PassengerRecord, error) {
	if date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			return repositories.PassengerRecord{}, domain.ValidationError{Field: "date", Msg: "invalid date, use YYYY-MM-DD"}
		}
	}
	p, err := s.fetchPassenger(id)
	if err != nil {
		return repositories.PassengerRecord{}, err
	}
	plan, err := domain.SetInstallmentDate(p.Plan, index, date)
	if err != nil {
		return repositories.PassengerRecord{}, err
	}
	p.Plan = plan
	if err := s.PassengerRepo.UpdatePlan(id, plan); err != nil {
		return repositories.PassengerRecord{}, err
	}
	utils.LogEvent(s.RequestID, "passengers", "set_installment_date",
		fmt.Sprintf("id=%d slot=%s date=%s", id, domain.InstallmentLabel(index), date))
	return p, nil
}

// ToggleLumpSum marks the passenger as paid in full (or undoes it).
func (s PassengerService) ToggleLumpSum(id int64, enabled bool, method string) (repositories.PassengerRecord, error) {
	p, err := s.fetchPassenger(id)
	if err != nil {
		return repositories.PassengerRecord{}, err
	}
	plan := domain.ToggleLumpSum(p.Plan, enabled, s.now())
	if enabled && strings.TrimSpace(method) != "" {
		plan.LumpSumMethod = strings.TrimSpace(method)
	}
	p.Plan = plan
	if err := s.PassengerRepo.UpdatePlan(id, plan); err != nil {
		return repositories.PassengerRecord{}, err
	}
	utils.LogEvent(s.RequestID, "passengers", "toggle_lump_sum",
		fmt.Sprintf("id=%d enabled=%t balance=%.2f", id, enabled, plan.OutstandingBalance))
	return p, nil
}

func (s PassengerService) Delete(id int64) error {
	if err := s.PassengerRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "passengers", "delete", fmt.Sprintf("id=%d", id))
	return nil
}

// tripPrice picks the billable per-seat price for a trip: the suggested
// price when set, otherwise break-even.
func (s PassengerService) tripPrice(tripID int64) (float64, error) {
	trip, err := s.fetchTrip(tripID)
	if err != nil {
		return 0, err
	}
	if trip.Budget.SuggestedPrice > 0 {
		return trip.Budget.SuggestedPrice, nil
	}
	return trip.Financials.BreakEvenPrice, nil
}

func validatePassenger(p repositories.PassengerRecord) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if cpf := utils.DigitsOnly(p.CPF); p.CPF != "" && len(cpf) != 11 {
		return domain.ValidationError{Field: "cpf", Msg: "cpf must have 11 digits"}
	}
	return nil
}
