package model

// MealPrices holds a menu's per-meal-time prices. Absent meal times price
// at zero.
type MealPrices struct {
	Breakfast float64 `json:"breakfast,omitempty"`
	Lunch     float64 `json:"lunch,omitempty"`
	Dinner    float64 `json:"dinner,omitempty"`
}

// For returns the price of the given meal time.
func (p MealPrices) For(mt MealTime) float64 {
	switch mt {
	case MealTimeBreakfast:
		return p.Breakfast
	case MealTimeLunch:
		return p.Lunch
	case MealTimeDinner:
		return p.Dinner
	}
	return 0
}

// Menu is a vendor-published weekly menu. Only the pricing surface is used
// by the order core; authoring lives elsewhere.
type Menu struct {
	ID       string
	Name     string
	VendorID string
	Price    MealPrices
}
