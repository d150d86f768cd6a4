package domain

import (
	"math"
	"testing"
	"time"
)

func TestComputeOutstandingBalance(t *testing.T) {
	// Deposit 400 + parcela 2 = 300, rest unset: 1200 - 700 = 500.
	ins := []Installment{
		{Date: "2024-02-01", Amount: 400},
		{Date: "2024-03-01", Amount: 300},
	}
	if got := ComputeOutstandingBalance(1200, false, ins); got != 500 {
		t.Fatalf("balance = %v, want 500", got)
	}

	// Lump-sum always zero, installments notwithstanding.
	if got := ComputeOutstandingBalance(1200, true, ins); got != 0 {
		t.Fatalf("lump-sum balance = %v, want 0", got)
	}

	// Overpayment floors at zero.
	if got := ComputeOutstandingBalance(500, false, ins); got != 0 {
		t.Fatalf("overpaid balance = %v, want 0", got)
	}

	// Empty schedule: full price outstanding.
	if got := ComputeOutstandingBalance(900, false, nil); got != 900 {
		t.Fatalf("empty schedule balance = %v, want 900", got)
	}

	// NaN amounts count as unset.
	if got := ComputeOutstandingBalance(100, false, []Installment{{Amount: math.NaN()}}); got != 100 {
		t.Fatalf("NaN amount balance = %v, want 100", got)
	}
}

func TestSetInstallment(t *testing.T) {
	plan := PaymentPlan{TripPrice: 1200}
	plan = Reconcile(plan)
	if plan.OutstandingBalance != 1200 {
		t.Fatalf("fresh plan balance = %v, want 1200", plan.OutstandingBalance)
	}

	plan, err := SetInstallment(plan, 0, 400)
	if err != nil {
		t.Fatalf("set deposit: %v", err)
	}
	plan, err = SetInstallment(plan, 1, 300)
	if err != nil {
		t.Fatalf("set parcela 2: %v", err)
	}
	if plan.OutstandingBalance != 500 {
		t.Fatalf("balance = %v, want 500", plan.OutstandingBalance)
	}

	// Editing one slot recomputes, not accumulates.
	plan, err = SetInstallment(plan, 1, 100)
	if err != nil {
		t.Fatalf("edit parcela 2: %v", err)
	}
	if plan.OutstandingBalance != 700 {
		t.Fatalf("balance after edit = %v, want 700", plan.OutstandingBalance)
	}
}

func TestSetInstallmentInvalidIndex(t *testing.T) {
	plan := PaymentPlan{TripPrice: 100}
	for _, idx := range []int{-1, InstallmentSlots, 99} {
		before := plan
		got, err := SetInstallment(plan, idx, 50)
		if err == nil {
			t.Fatalf("index %d should be rejected", idx)
		}
		if !IsInvalidIndex(err) {
			t.Fatalf("index %d: unexpected error type %T", idx, err)
		}
		if got != before {
			t.Fatalf("rejected write must not touch the plan")
		}
	}

	if _, err := SetInstallmentDate(plan, InstallmentSlots, "2024-01-01"); !IsInvalidIndex(err) {
		t.Fatalf("date write past range should be rejected, got %v", err)
	}
}

func TestSetInstallmentDateDoesNotTouchBalance(t *testing.T) {
	plan := Reconcile(PaymentPlan{TripPrice: 800})
	plan, err := SetInstallmentDate(plan, 3, " 2024-05-01 ")
	if err != nil {
		t.Fatalf("set date: %v", err)
	}
	if plan.Installments[3].Date != "2024-05-01" {
		t.Fatalf("date not stored trimmed: %q", plan.Installments[3].Date)
	}
	if plan.OutstandingBalance != 800 {
		t.Fatalf("date write changed balance: %v", plan.OutstandingBalance)
	}
}

func TestToggleLumpSum(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	plan := PaymentPlan{TripPrice: 1200}
	plan, _ = SetInstallment(plan, 0, 400)

	enabled := ToggleLumpSum(plan, true, now)
	if enabled.OutstandingBalance != 0 {
		t.Fatalf("enabling lump-sum must zero the balance, got %v", enabled.OutstandingBalance)
	}
	if enabled.LumpSumDate != "2024-06-15" {
		t.Fatalf("lump-sum date not stamped, got %q", enabled.LumpSumDate)
	}

	// Toggling back restores the installment-derived balance.
	disabled := ToggleLumpSum(enabled, false, now)
	if disabled.OutstandingBalance != plan.OutstandingBalance {
		t.Fatalf("disable should restore balance %v, got %v",
			plan.OutstandingBalance, disabled.OutstandingBalance)
	}

	// A caller-set date survives re-enabling.
	disabled.LumpSumDate = "2024-01-01"
	again := ToggleLumpSum(disabled, true, now)
	if again.LumpSumDate != "2024-01-01" {
		t.Fatalf("existing lump-sum date overwritten: %q", again.LumpSumDate)
	}
}

func TestBalanceNeverNegative(t *testing.T) {
	plan := PaymentPlan{TripPrice: 300}
	var err error
	for i := 0; i < InstallmentSlots; i++ {
		plan, err = SetInstallment(plan, i, 100)
		if err != nil {
			t.Fatalf("slot %d: %v", i, err)
		}
		if plan.OutstandingBalance < 0 {
			t.Fatalf("balance went negative at slot %d: %v", i, plan.OutstandingBalance)
		}
	}
	if plan.OutstandingBalance != 0 {
		t.Fatalf("fully overpaid plan balance = %v, want 0", plan.OutstandingBalance)
	}
}

func TestInstallmentLabel(t *testing.T) {
	cases := map[int]string{
		0:  "Sinal",
		1:  "Parcela 2",
		10: "Parcela 11",
		11: "Parcela 12",
	}
	for idx, want := range cases {
		if got := InstallmentLabel(idx); got != want {
			t.Fatalf("label(%d) = %q, want %q", idx, got, want)
		}
	}
}
