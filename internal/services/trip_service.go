package services

import (
	"fmt"
	"strings"

	"tripbudget/internal/domain"
	"tripbudget/internal/repositories"
	"tripbudget/internal/utils"
)

// TripService owns the budget lifecycle: every write recomputes the
// financial snapshot so stored totals never drift from the inputs.
type TripService struct {
	TripRepo  repositories.TripRepository
	RequestID string

	// FetchTrip is injected by tests; defaults to the repository.
	FetchTrip func(int64) (repositories.TripRecord, error)
}

func (s TripService) fetchTrip(id int64) (repositories.TripRecord, error) {
	if s.FetchTrip != nil {
		return s.FetchTrip(id)
	}
	return s.TripRepo.GetByID(id)
}

func (s TripService) Get(id int64) (repositories.TripRecord, error) {
	return s.fetchTrip(id)
}

func (s TripService) List(page, pageSize int) ([]repositories.TripRecord, domain.Pagination, error) {
	return s.TripRepo.List(page, pageSize)
}

// Create stores a new trip. When priceEdited is set the incoming
// suggested price is treated as a manual override instead of the
// computed margin price.
func (s TripService) Create(budget domain.TripBudget, priceEdited bool) (repositories.TripRecord, error) {
	budget.Destination = utils.NormalizeSpace(budget.Destination)
	if err := validateBudget(budget); err != nil {
		return repositories.TripRecord{}, err
	}

	rec := recomputeRecord(repositories.TripRecord{Budget: budget}, budget, priceEdited && budget.SuggestedPrice > 0)
	id, err := s.TripRepo.Create(rec)
	if err != nil {
		return repositories.TripRecord{}, err
	}
	rec.ID = id
	utils.LogEvent(s.RequestID, "trips", "create", fmt.Sprintf("id=%d destination=%s", id, budget.Destination))
	return rec, nil
}

// Update rewrites a trip's inputs. An existing manual price survives
// unless the caller edits the price again or clears it via Recompute.
func (s TripService) Update(id int64, budget domain.TripBudget, priceEdited bool) (repositories.TripRecord, error) {
	budget.Destination = utils.NormalizeSpace(budget.Destination)
	if err := validateBudget(budget); err != nil {
		return repositories.TripRecord{}, err
	}
	existing, err := s.fetchTrip(id)
	if err != nil {
		return repositories.TripRecord{}, err
	}

	overridden := priceEdited && budget.SuggestedPrice > 0
	if !priceEdited && existing.PriceOverridden && existing.Budget.SuggestedPrice > 0 {
		budget.SuggestedPrice = existing.Budget.SuggestedPrice
		overridden = true
	}

	rec := recomputeRecord(existing, budget, overridden)
	if err := s.TripRepo.Update(rec); err != nil {
		return repositories.TripRecord{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "update", fmt.Sprintf("id=%d overridden=%t", id, overridden))
	return rec, nil
}

// Recompute drops any manual price and restores the computed suggestion.
func (s TripService) Recompute(id int64) (repositories.TripRecord, error) {
	existing, err := s.fetchTrip(id)
	if err != nil {
		return repositories.TripRecord{}, err
	}

	rec := recomputeRecord(existing, existing.Budget, false)
	if err := s.TripRepo.Update(rec); err != nil {
		return repositories.TripRecord{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "recompute", fmt.Sprintf("id=%d suggested=%.2f", id, rec.Budget.SuggestedPrice))
	return rec, nil
}

// ClearSuggestedPrice removes a manual price. Same effect as Recompute,
// kept as a named operation for callers that only manage the override.
func (s TripService) ClearSuggestedPrice(id int64) (repositories.TripRecord, error) {
	return s.Recompute(id)
}

// SetSuggestedPrice applies a manual per-seat price and refreshes the
// snapshot around it.
func (s TripService) SetSuggestedPrice(id int64, price float64) (repositories.TripRecord, error) {
	if price <= 0 {
		return repositories.TripRecord{}, domain.ValidationError{Field: "suggestedPrice", Msg: "price must be positive"}
	}
	existing, err := s.fetchTrip(id)
	if err != nil {
		return repositories.TripRecord{}, err
	}

	budget := existing.Budget
	budget.SuggestedPrice = price
	rec := recomputeRecord(existing, budget, true)
	if err := s.TripRepo.Update(rec); err != nil {
		return repositories.TripRecord{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "set_price", fmt.Sprintf("id=%d price=%.2f", id, price))
	return rec, nil
}

func (s TripService) Delete(id int64) error {
	if err := s.TripRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trips", "delete", fmt.Sprintf("id=%d", id))
	return nil
}

// recomputeRecord rebuilds the financial snapshot for a budget. The
// stored suggested price always matches what the snapshot used.
func recomputeRecord(base repositories.TripRecord, budget domain.TripBudget, overridden bool) repositories.TripRecord {
	cp := domain.ResolveCapacity(budget.VehicleType)

	var manual *float64
	if overridden {
		manual = &budget.SuggestedPrice
	}

	fin := domain.ComputeFinancials(budget, cp, manual)
	budget.SuggestedPrice = fin.SuggestedPrice

	base.Budget = budget
	base.PriceOverridden = overridden
	base.Financials = fin
	return base
}

func validateBudget(b domain.TripBudget) error {
	if strings.TrimSpace(b.Destination) == "" {
		return domain.ValidationError{Field: "destination", Msg: "destination is required"}
	}
	if b.DepartureDate != "" {
		if _, err := utils.ParseDate(b.DepartureDate); err != nil {
			return domain.ValidationError{Field: "departureDate", Msg: "invalid date, use YYYY-MM-DD"}
		}
	}
	if b.ReturnDate != "" {
		if _, err := utils.ParseDate(b.ReturnDate); err != nil {
			return domain.ValidationError{Field: "returnDate", Msg: "invalid date, use YYYY-MM-DD"}
		}
	}
	return nil
}
