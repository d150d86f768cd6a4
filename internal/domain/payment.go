package domain

import (
	"fmt"
	"strings"
	"time"
)

// InstallmentSlots is the fixed size of a payment schedule: slot 0 is the
// deposit ("sinal"), slots 1..11 are "Parcela 2".."Parcela 12". The
// off-by-one numbering is historical and kept for compatibility with
// existing records.
const InstallmentSlots = 12

// Installment is one dated partial payment. The date is informational only;
// the balance never depends on it.
type Installment struct {
	Date   string  `json:"date,omitempty"`
	Amount float64 `json:"amount"`
}

// PaymentPlan reconciles a passenger's trip price against recorded
// installments, or a single lump-sum payment.
type PaymentPlan struct {
	TripPrice          float64                       `json:"tripPrice"`
	LumpSum            bool                          `json:"lumpSum"`
	LumpSumDate        string                        `json:"lumpSumDate,omitempty"`
	LumpSumMethod      string                        `json:"lumpSumMethod,omitempty"`
	Installments       [InstallmentSlots]Installment `json:"installments"`
	OutstandingBalance float64                       `json:"outstandingBalance"`
}

// InvalidIndexError reports an installment write outside the schedule. It is
// a programming-contract violation, not a user-facing condition.
type InvalidIndexError struct {
	Index int
}

func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("installment index %d outside range [0,%d]", e.Index, InstallmentSlots-1)
}

// ComputeOutstandingBalance returns the trip price minus every recorded
// installment, floored at zero. Lump-sum mode always yields zero.
func ComputeOutstandingBalance(tripPrice float64, lumpSum bool, installments []Installment) float64 {
	if lumpSum {
		return 0
	}
	var paid float64
	for _, in := range installments {
		paid += num(in.Amount)
	}
	balance := num(tripPrice) - paid
	if balance < 0 {
		return 0
	}
	return balance
}

// SetInstallment writes one installment amount and recomputes the balance.
func SetInstallment(plan PaymentPlan, index int, amount float64) (PaymentPlan, error) {
	if index < 0 || index >= InstallmentSlots {
		return plan, InvalidIndexError{Index: index}
	}
	plan.Installments[index].Amount = num(amount)
	plan.OutstandingBalance = ComputeOutstandingBalance(plan.TripPrice, plan.LumpSum, plan.Installments[:])
	return plan, nil
}

// SetInstallmentDate writes one installment date. Dates are display-only, so
// the balance is left alone.
func SetInstallmentDate(plan PaymentPlan, index int, date string) (PaymentPlan, error) {
	if index < 0 || index >= InstallmentSlots {
		return plan, InvalidIndexError{Index: index}
	}
	plan.Installments[index].Date = strings.TrimSpace(date)
	return plan, nil
}

// ToggleLumpSum switches the plan between lump-sum and installment mode.
// Enabling zeroes the balance and stamps now as the payment date when none
// was set; disabling immediately recomputes from whatever installments are
// present so no stale zero balance survives.
func ToggleLumpSum(plan PaymentPlan, enabled bool, now time.Time) PaymentPlan {
	plan.LumpSum = enabled
	if enabled {
		plan.OutstandingBalance = 0
		if strings.TrimSpace(plan.LumpSumDate) == "" {
			plan.LumpSumDate = now.Format(dateLayout)
		}
		return plan
	}
	plan.OutstandingBalance = ComputeOutstandingBalance(plan.TripPrice, false, plan.Installments[:])
	return plan
}

// Reconcile recomputes the balance in place, used after bulk edits.
func Reconcile(plan PaymentPlan) PaymentPlan {
	plan.OutstandingBalance = ComputeOutstandingBalance(plan.TripPrice, plan.LumpSum, plan.Installments[:])
	return plan
}

// InstallmentLabel names a slot the way records and reports expect.
func InstallmentLabel(index int) string {
	if index == 0 {
		return "Sinal"
	}
	return fmt.Sprintf("Parcela %d", index+1)
}
