package domain

// Category identifies one expense (or revenue) bucket of a trip budget.
type Category string

const (
	CategoryFees         Category = "fees"
	CategoryTransport    Category = "transport"
	CategoryLodging      Category = "lodging"
	CategoryTours        Category = "tours"
	CategoryGiftsExtras  Category = "gifts_extras"
	CategoryRaffles      Category = "raffles"
	CategoryMisc         Category = "misc"
	CategoryOtherRevenue Category = "other_revenue"
)

// LineItem is a quantity/unit-price pair for slotted categories
// (transfers, tours, raffles).
type LineItem struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Total returns quantity × unit price with non-finite prices treated as zero.
func (l LineItem) Total() float64 {
	return float64(l.Quantity) * num(l.UnitPrice)
}

// TripBudget carries the raw line-item inputs for one trip. All numeric
// fields default to zero when absent; the engine never rejects a partial
// budget. Dates are YYYY-MM-DD strings, empty when unset.
type TripBudget struct {
	Destination   string      `json:"destination,omitempty"`
	DepartureDate string      `json:"departureDate"`
	ReturnDate    string      `json:"returnDate"`
	VehicleType   VehicleType `json:"vehicleType"`

	// Fees
	CityFee  float64 `json:"cityFee"`
	GuideFee float64 `json:"guideFee"`
	OtherFee float64 `json:"otherFee"`
	Parking  float64 `json:"parking"`

	// Transport
	Freight float64 `json:"freight"`

	// Drivers
	DriverCount       int     `json:"driverCount"`
	DriverLunchCount  int     `json:"driverLunchCount"`
	DriverDinnerCount int     `json:"driverDinnerCount"`
	DriverMealUnit    float64 `json:"driverMealUnit"`
	DriverTripCount   int     `json:"driverTripCount"`
	DriverTripUnit    float64 `json:"driverTripUnit"`

	// Transfers (3 fixed slots)
	Transfers [3]LineItem `json:"transfers"`

	// Lodging
	LodgingNightUnit     float64 `json:"lodgingNightUnit"`
	LodgingOtherServices float64 `json:"lodgingOtherServices"`

	// Tours (3 fixed slots)
	Tours [3]LineItem `json:"tours"`

	// Gifts and extras. Gift quantity is not an input: it always derives
	// from the vehicle's seat count.
	GiftUnit float64    `json:"giftUnit"`
	Extras   [3]float64 `json:"extras"`

	// Raffles (3 fixed slots)
	Raffles [3]LineItem `json:"raffles"`

	// Other revenue (2 slots), added to revenue, never netted off expense.
	OtherRevenue [2]float64 `json:"otherRevenue"`

	// Miscellaneous expenses, passed through as-is.
	MiscExpenses float64 `json:"miscExpenses"`

	// SuggestedPrice is both an engine output and a potential manual
	// input. The engine only honors it when the caller passes it as an
	// explicit override; see ComputeFinancials.
	SuggestedPrice float64 `json:"suggestedPrice"`
}

// TripFinancials is the snapshot ComputeFinancials returns. Every monetary
// field is non-negative except GrossProfit.
type TripFinancials struct {
	Categories   map[Category]float64 `json:"categories"`
	TotalExpense float64              `json:"totalExpense"`

	SeatCount          int `json:"seatCount"`
	GuideReservedSeats int `json:"guideReservedSeats"`
	PromotionalSeats   int `json:"promotionalSeats"`
	NonPayingCount     int `json:"nonPayingCount"`
	PayingCount        int `json:"payingCount"`

	// Intermediate figures surfaced on the results panel.
	NightsCount        int     `json:"nightsCount"`
	LodgingNightsTotal float64 `json:"lodgingNightsTotal"`
	DriverMealsTotal   float64 `json:"driverMealsTotal"`
	DriverTripsTotal   float64 `json:"driverTripsTotal"`
	GiftCount          int     `json:"giftCount"`
	GiftsTotal         float64 `json:"giftsTotal"`

	BreakEvenPrice float64 `json:"breakEvenPrice"`
	SuggestedPrice float64 `json:"suggestedPrice"`
	TotalRevenue   float64 `json:"totalRevenue"`
	GrossProfit    float64 `json:"grossProfit"`
}
