package domain

import "testing"

func TestResolveCapacityTable(t *testing.T) {
	cases := []struct {
		vehicle VehicleType
		want    Capacity
	}{
		{VehicleVan, Capacity{SeatCount: 15, GuideReservedSeats: 1, PromotionalSeats: 0}},
		{VehicleBus, Capacity{SeatCount: 46, GuideReservedSeats: 2, PromotionalSeats: 1}},
		{VehicleSleeperBus, Capacity{SeatCount: 44, GuideReservedSeats: 2, PromotionalSeats: 1}},
		{VehicleMinibus, Capacity{SeatCount: 28, GuideReservedSeats: 2, PromotionalSeats: 1}},
		{VehicleCar, Capacity{SeatCount: 7, GuideReservedSeats: 1, PromotionalSeats: 0}},
		{VehicleType(""), Capacity{}},
		{VehicleType("Trem"), Capacity{}},
	}

	for _, tc := range cases {
		got := ResolveCapacity(tc.vehicle)
		if got != tc.want {
			t.Fatalf("ResolveCapacity(%q) = %+v, want %+v", tc.vehicle, got, tc.want)
		}
	}
}

func TestCapacityPayingBreakdown(t *testing.T) {
	cp := ResolveCapacity(VehicleBus)
	if cp.NonPaying() != 3 {
		t.Fatalf("bus non-paying = %d, want 3", cp.NonPaying())
	}
	if cp.Paying() != 43 {
		t.Fatalf("bus paying = %d, want 43", cp.Paying())
	}

	zero := ResolveCapacity("")
	if zero.Paying() != 0 || zero.NonPaying() != 0 {
		t.Fatalf("empty vehicle should yield zero paying/non-paying, got %d/%d", zero.Paying(), zero.NonPaying())
	}
}

func TestCapacityPayingNeverNegative(t *testing.T) {
	cp := Capacity{SeatCount: 1, GuideReservedSeats: 2, PromotionalSeats: 1}
	if cp.Paying() != 0 {
		t.Fatalf("paying should floor at zero, got %d", cp.Paying())
	}
}
