package domain

import (
	"math"
	"time"
)

// PriceMarginFactor is the default markup applied over break-even when no
// manual suggested price is in force.
const PriceMarginFactor = 1.2

const dateLayout = "2006-01-02"

// num coerces NaN and infinite values to zero. Form-sourced numbers can
// arrive non-finite; the engines treat those as unset.
func num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NightsBetween returns the lodging nights implied by a departure/return
// date pair: days apart minus one, floored at zero. Missing or unparseable
// dates yield zero.
func NightsBetween(departureDate, returnDate string) int {
	if departureDate == "" || returnDate == "" {
		return 0
	}
	dep, err := time.Parse(dateLayout, departureDate)
	if err != nil {
		return 0
	}
	ret, err := time.Parse(dateLayout, returnDate)
	if err != nil {
		return 0
	}
	days := int(ret.Sub(dep).Hours() / 24)
	if days-1 < 0 {
		return 0
	}
	return days - 1
}

// ComputeFinancials derives the full financial snapshot for one trip budget.
// manualPrice carries an operator-edited suggested price: nil means compute
// from break-even, a positive value is passed through untouched. Passing nil
// again is the recompute escape hatch. Pure function; safe to call on every
// field change.
func ComputeFinancials(b TripBudget, cp Capacity, manualPrice *float64) TripFinancials {
	nights := NightsBetween(b.DepartureDate, b.ReturnDate)

	fees := num(b.CityFee) + num(b.GuideFee) + num(b.OtherFee) + num(b.Parking)

	driverMeals := float64(b.DriverLunchCount+b.DriverDinnerCount) * num(b.DriverMealUnit) * float64(b.DriverCount)
	driverTrips := float64(b.DriverTripCount) * num(b.DriverTripUnit)

	var transfers float64
	for _, t := range b.Transfers {
		transfers += t.Total()
	}

	// Transport bundles freight, driver costs and transfers.
	transport := num(b.Freight) + driverMeals + driverTrips + transfers

	lodgingNights := float64(nights) * num(b.LodgingNightUnit) * float64(cp.SeatCount+b.DriverCount)
	lodging := lodgingNights + num(b.LodgingOtherServices)

	var tours float64
	for _, t := range b.Tours {
		tours += t.Total()
	}

	// Gifts scale with seating, not an entered quantity.
	giftCount := cp.SeatCount
	giftsTotal := float64(giftCount) * num(b.GiftUnit)
	gifts := giftsTotal + num(b.Extras[0]) + num(b.Extras[1]) + num(b.Extras[2])

	var raffles float64
	for _, r := range b.Raffles {
		raffles += r.Total()
	}

	otherRevenue := num(b.OtherRevenue[0]) + num(b.OtherRevenue[1])
	misc := num(b.MiscExpenses)

	totalExpense := fees + transport + lodging + tours + gifts + raffles + misc

	paying := cp.Paying()

	var breakEven float64
	if paying > 0 {
		breakEven = totalExpense / float64(paying)
	}

	suggested := breakEven * PriceMarginFactor
	if manualPrice != nil && num(*manualPrice) > 0 {
		suggested = num(*manualPrice)
	}

	totalRevenue := suggested*float64(paying) + otherRevenue

	return TripFinancials{
		Categories: map[Category]float64{
			CategoryFees:         fees,
			CategoryTransport:    transport,
			CategoryLodging:      lodging,
			CategoryTours:        tours,
			CategoryGiftsExtras:  gifts,
			CategoryRaffles:      raffles,
			CategoryMisc:         misc,
			CategoryOtherRevenue: otherRevenue,
		},
		TotalExpense: totalExpense,

		SeatCount:          cp.SeatCount,
		GuideReservedSeats: cp.GuideReservedSeats,
		PromotionalSeats:   cp.PromotionalSeats,
		NonPayingCount:     cp.NonPaying(),
		PayingCount:        paying,

		NightsCount:        nights,
		LodgingNightsTotal: lodgingNights,
		DriverMealsTotal:   driverMeals,
		DriverTripsTotal:   driverTrips,
		GiftCount:          giftCount,
		GiftsTotal:         giftsTotal,

		BreakEvenPrice: breakEven,
		SuggestedPrice: suggested,
		TotalRevenue:   totalRevenue,
		GrossProfit:    totalRevenue - totalExpense,
	}
}
