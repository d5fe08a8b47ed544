package dto

import "time"

// CreateRefundRequest describes a manual refund initiation payload.
type CreateRefundRequest struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// CancelRefundRequest carries the operator remark for a refund cancellation.
type CancelRefundRequest struct {
	Remarks string `json:"remarks,omitempty"`
}

// RefundResponse describes a refund record.
type RefundResponse struct {
	CFRefundID string    `json:"cfRefundId"`
	RefundID   string    `json:"refundId"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RefundCalculationResponse is the suggested refund breakdown for an order.
type RefundCalculationResponse struct {
	SuggestedAmount      float64 `json:"suggestedAmount"`
	ConsumedAmount       float64 `json:"consumedAmount"`
	ConsumedMealsCount   int     `json:"consumedMealsCount"`
	TotalAlreadyRefunded float64 `json:"totalAlreadyRefunded"`
}
