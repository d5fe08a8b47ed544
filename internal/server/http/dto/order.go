package dto

import "time"

// MealStatusRequest describes a per-meal delivery status update payload.
type MealStatusRequest struct {
	Date     string `json:"date"`
	MealTime string `json:"mealTime"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}

// MealStatusEntryResponse describes one recorded meal-time status slot.
type MealStatusEntryResponse struct {
	Date      time.Time `json:"date"`
	MealTime  string    `json:"mealTime"`
	Status    string    `json:"status"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	Notes     string    `json:"notes,omitempty"`
}

// OrderStatusRequest describes an order-level status change payload.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse describes one subscription line of an order.
type OrderItemResponse struct {
	ID                string                    `json:"id"`
	Menu              string                    `json:"menu"`
	Plan              string                    `json:"plan,omitempty"`
	Vendor            string                    `json:"vendor"`
	Quantity          int                       `json:"quantity"`
	StartDate         time.Time                 `json:"startDate"`
	EndDate           time.Time                 `json:"endDate"`
	SkippedDates      []time.Time               `json:"skippedDates,omitempty"`
	SelectedMealTimes []string                  `json:"selectedMealTimes"`
	ItemTotalPrice    float64                   `json:"itemTotalPrice"`
	OrderStatus       []MealStatusEntryResponse `json:"orderStatus"`
}

// OrderResponse describes an order with embedded items and refunds.
type OrderResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	TotalAmount float64             `json:"totalAmount"`
	Currency    string              `json:"currency"`
	Status      string              `json:"orderStatus"`
	OrderDate   time.Time           `json:"orderDate"`
	InvoiceURL  string              `json:"invoiceUrl,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	Refunds     []RefundResponse    `json:"refunds,omitempty"`
}

// ScheduleEntryResponse describes one deliverable meal on the daily schedule.
type ScheduleEntryResponse struct {
	OrderID  string          `json:"orderId"`
	ItemID   string          `json:"itemId"`
	UserID   string          `json:"userId"`
	Menu     string          `json:"menu"`
	Vendor   string          `json:"vendor"`
	Quantity int             `json:"quantity"`
	Status   string          `json:"status"`
	Address  AddressResponse `json:"address"`
}

// AddressResponse is a delivery destination.
type AddressResponse struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}
