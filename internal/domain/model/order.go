package model

import (
	"strings"
	"time"
)

// OrderStatus describes order-level lifecycle.
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusConfirmed         OrderStatus = "confirmed"
	OrderStatusReadyForDelivery  OrderStatus = "readyForDelivery"
	OrderStatusDelivered         OrderStatus = "delivered"
	OrderStatusCancelled         OrderStatus = "cancelled"
	OrderStatusFailed            OrderStatus = "failed"
	OrderStatusRefundPending     OrderStatus = "refund_pending"
	OrderStatusPartiallyRefunded OrderStatus = "partially_refunded"
	OrderStatusRefunded          OrderStatus = "refunded"
)

// MealStatus describes per-meal delivery progress.
type MealStatus string

const (
	MealStatusPending          MealStatus = "pending"
	MealStatusPreparing        MealStatus = "preparing"
	MealStatusReadyForDelivery MealStatus = "readyForDelivery"
	MealStatusDelivered        MealStatus = "delivered"
	MealStatusCancelled        MealStatus = "cancelled"
)

// Consumed reports whether the meal was prepared or handed over, making it
// ineligible for refund.
func (s MealStatus) Consumed() bool {
	return s == MealStatusDelivered || s == MealStatusReadyForDelivery
}

// RefundStatus mirrors the payment gateway refund lifecycle.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "PENDING"
	RefundStatusOnHold    RefundStatus = "ONHOLD"
	RefundStatusSuccess   RefundStatus = "SUCCESS"
	RefundStatusCancelled RefundStatus = "CANCELLED"
	RefundStatusFailed    RefundStatus = "FAILED"
)

// ValidRefundStatus reports whether s is a known gateway refund status.
func ValidRefundStatus(s RefundStatus) bool {
	switch s {
	case RefundStatusPending, RefundStatusOnHold, RefundStatusSuccess, RefundStatusCancelled, RefundStatusFailed:
		return true
	}
	return false
}

// Settled reports whether the gateway will not move this refund again.
func (s RefundStatus) Settled() bool {
	return s == RefundStatusSuccess || s == RefundStatusCancelled || s == RefundStatusFailed
}

// Address is a delivery destination.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// Empty reports whether no address fields are set.
func (a Address) Empty() bool {
	return a.Street == "" && a.City == "" && a.Zip == ""
}

// PersonDetails identifies a person covered by a subscription item.
type PersonDetails struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// PaymentDetails is the gateway payment snapshot captured at checkout.
type PaymentDetails struct {
	CFPaymentID   string     `json:"cfPaymentId,omitempty"`
	Status        string     `json:"status,omitempty"`
	PaymentTime   *time.Time `json:"paymentTime,omitempty"`
	BankReference string     `json:"bankReference,omitempty"`
	Method        string     `json:"method,omitempty"`
}

// Captured reports whether the snapshot indicates a completed payment.
func (p PaymentDetails) Captured() bool {
	return p.Status == "SUCCESS" || p.Status == "PAID"
}

// MealStatusEntry records delivery progress for one (date, meal time) slot of
// an order item. At most one entry exists per slot; updates replace in place.
type MealStatusEntry struct {
	Date      time.Time  `json:"date"`
	MealTime  MealTime   `json:"mealTime"`
	Status    MealStatus `json:"status"`
	UpdatedBy string     `json:"updatedBy"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Notes     string     `json:"notes,omitempty"`
}

// Refund is a local cache of a gateway refund. The gateway is the source of
// truth for Status; local records only converge to it.
type Refund struct {
	CFRefundID string       `json:"cfRefundId"`
	RefundID   string       `json:"refundId"`
	Amount     float64      `json:"amount"`
	Currency   string       `json:"currency"`
	Status     RefundStatus `json:"status"`
	Note       string       `json:"note,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// OrderItem is one subscription line within an order. Its ID is assigned at
// checkout and is stable across the order lifetime.
type OrderItem struct {
	ID                string            `json:"id"`
	MenuID            string            `json:"menu"`
	PlanID            string            `json:"plan"`
	VendorID          string            `json:"vendor"`
	Quantity          int               `json:"quantity"`
	PersonDetails     []PersonDetails   `json:"personDetails,omitempty"`
	StartDate         time.Time         `json:"startDate"`
	EndDate           time.Time         `json:"endDate"`
	SkippedDates      []time.Time       `json:"skippedDates,omitempty"`
	SelectedMealTimes []MealTime        `json:"selectedMealTimes"`
	ItemTotalPrice    float64           `json:"itemTotalPrice"`
	DeliveryStatus    []MealStatusEntry `json:"orderStatus"`
}

// InWindow reports whether date lies within [StartDate, EndDate] inclusive,
// compared on normalized calendar days.
func (it *OrderItem) InWindow(date time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(NormalizeDate(it.StartDate)) && !d.After(NormalizeDate(it.EndDate))
}

// Skipped reports whether date is excluded from delivery.
func (it *OrderItem) Skipped(date time.Time) bool {
	for _, s := range it.SkippedDates {
		if SameDay(s, date) {
			return true
		}
	}
	return false
}

// HasMealTime reports whether the item subscribes to mt. Comparison is
// case-insensitive: legacy records carry capitalized meal-time labels.
func (it *OrderItem) HasMealTime(mt MealTime) bool {
	for _, m := range it.SelectedMealTimes {
		if strings.EqualFold(string(m), string(mt)) {
			return true
		}
	}
	return false
}

// DeliversOn reports whether the item delivers mt on date.
func (it *OrderItem) DeliversOn(date time.Time, mt MealTime) bool {
	return it.InWindow(date) && !it.Skipped(date) && it.HasMealTime(mt)
}

// StatusFor returns the recorded status for the (date, meal time) slot,
// defaulting to pending when no entry exists.
func (it *OrderItem) StatusFor(date time.Time, mt MealTime) MealStatus {
	for i := range it.DeliveryStatus {
		e := &it.DeliveryStatus[i]
		if e.MealTime == mt && SameDay(e.Date, date) {
			return e.Status
		}
	}
	return MealStatusPending
}

// UpsertStatus replaces the entry matching (date, meal time) or appends a new
// one. The (date, mealTime) pair is the composite key; no history is kept.
func (it *OrderItem) UpsertStatus(entry MealStatusEntry) *MealStatusEntry {
	for i := range it.DeliveryStatus {
		e := &it.DeliveryStatus[i]
		if e.MealTime == entry.MealTime && SameDay(e.Date, entry.Date) {
			*e = entry
			return e
		}
	}
	it.DeliveryStatus = append(it.DeliveryStatus, entry)
	return &it.DeliveryStatus[len(it.DeliveryStatus)-1]
}

// Order is the aggregate root. Items and refunds are embedded and have no
// independent lifecycle; every mutation rewrites the aggregate guarded by
// Version.
type Order struct {
	ID                 string
	UserID             string
	Items              []OrderItem
	TotalAmount        float64
	Currency           string
	Status             OrderStatus
	OrderDate          time.Time
	PaymentSessionID   string
	PaymentDetails     PaymentDetails
	PaymentConfirmedAt *time.Time
	DeliveryAddresses  map[string]Address
	InvoiceURL         string
	Refunds            []Refund
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Item returns the embedded item with the given id, or nil.
func (o *Order) Item(itemID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// HasVendor reports whether any item belongs to vendorID.
func (o *Order) HasVendor(vendorID string) bool {
	for i := range o.Items {
		if o.Items[i].VendorID == vendorID {
			return true
		}
	}
	return false
}

// FindRefund matches a refund by gateway id or local id. Either argument may
// be empty; empty keys never match.
func (o *Order) FindRefund(cfRefundID, refundID string) *Refund {
	for i := range o.Refunds {
		r := &o.Refunds[i]
		if cfRefundID != "" && r.CFRefundID == cfRefundID {
			return r
		}
		if refundID != "" && r.RefundID == refundID {
			return r
		}
	}
	return nil
}

// ClaimedRefundTotal sums refund amounts still claimed against the order,
// counting PENDING and ONHOLD alongside SUCCESS. Only CANCELLED and FAILED
// refunds release their amount.
func (o *Order) ClaimedRefundTotal() float64 {
	var total float64
	for _, r := range o.Refunds {
		if r.Status == RefundStatusCancelled || r.Status == RefundStatusFailed {
			continue
		}
		total += r.Amount
	}
	return total
}

// AddressFor resolves the delivery address for a meal time: the explicit
// per-meal-time order address wins, then a single order-level address.
// The zero Address means the order carries no usable mapping and the caller
// should fall back to the customer's saved address.
func (o *Order) AddressFor(mt MealTime) Address {
	if addr, ok := o.DeliveryAddresses[string(mt)]; ok {
		return addr
	}
	if len(o.DeliveryAddresses) == 1 {
		for _, addr := range o.DeliveryAddresses {
			return addr
		}
	}
	return Address{}
}
