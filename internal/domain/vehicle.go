package domain

// VehicleType enumerates the fleet presets trip budgets are keyed by.
type VehicleType string

const (
	VehicleVan        VehicleType = "Van"
	VehicleBus        VehicleType = "Bus"
	VehicleSleeperBus VehicleType = "Sleeper Bus"
	VehicleMinibus    VehicleType = "Minibus"
	VehicleCar        VehicleType = "Car"
)

// Capacity is the seating breakdown derived from a vehicle type.
type Capacity struct {
	SeatCount          int `json:"seatCount"`
	GuideReservedSeats int `json:"guideReservedSeats"`
	PromotionalSeats   int `json:"promotionalSeats"`
}

// ResolveCapacity maps a vehicle type to its fixed seating preset.
// Unrecognized or empty types resolve to zero capacity rather than failing;
// zeros then flow through every downstream formula.
func ResolveCapacity(v VehicleType) Capacity {
	switch v {
	case VehicleVan:
		return Capacity{SeatCount: 15, GuideReservedSeats: 1, PromotionalSeats: 0}
	case VehicleBus:
		return Capacity{SeatCount: 46, GuideReservedSeats: 2, PromotionalSeats: 1}
	case VehicleSleeperBus:
		return Capacity{SeatCount: 44, GuideReservedSeats: 2, PromotionalSeats: 1}
	case VehicleMinibus:
		// Two guide seats, matching the live calculator. An older helper
		// reserved one; see DESIGN.md.
		return Capacity{SeatCount: 28, GuideReservedSeats: 2, PromotionalSeats: 1}
	case VehicleCar:
		return Capacity{SeatCount: 7, GuideReservedSeats: 1, PromotionalSeats: 0}
	default:
		return Capacity{}
	}
}

// NonPaying returns the seats not sold to fare-paying passengers.
func (c Capacity) NonPaying() int {
	return c.GuideReservedSeats + c.PromotionalSeats
}

// Paying returns the sellable seat count, floored at zero.
func (c Capacity) Paying() int {
	p := c.SeatCount - c.NonPaying()
	if p < 0 {
		return 0
	}
	return p
}
