package dto

import "github.com/tiffinbox/tiffinbox/internal/domain/model"

// RefundWebhookType is the gateway event type handled by the reconciler.
const RefundWebhookType = "REFUND_STATUS_WEBHOOK"

// RefundWebhookPayload mirrors the gateway refund webhook envelope.
type RefundWebhookPayload struct {
	Type      string            `json:"type"`
	EventTime string            `json:"event_time"`
	Data      RefundWebhookData `json:"data"`
}

// RefundWebhookData is the envelope body.
type RefundWebhookData struct {
	Refund RefundWebhookRefund `json:"refund"`
}

// RefundWebhookRefund is the refund snapshot reported by the gateway.
// CFRefundID arrives as a bare number or a string depending on the gateway
// API version, so it is decoded leniently.
type RefundWebhookRefund struct {
	OrderID        string          `json:"order_id"`
	CFRefundID     model.GatewayID `json:"cf_refund_id"`
	RefundID       string          `json:"refund_id"`
	RefundAmount   float64         `json:"refund_amount"`
	RefundCurrency string          `json:"refund_currency"`
	RefundStatus   string          `json:"refund_status"`
	RefundNote     string          `json:"refund_note"`
}
