package model

import (
	"encoding/json"
	"fmt"
)

// GatewayID is an identifier assigned by the payment gateway. The gateway
// emits it as a bare number on some API versions and as a string on others,
// so decoding accepts both.
type GatewayID string

// UnmarshalJSON decodes a JSON string, number or null into the identifier.
func (id *GatewayID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = GatewayID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("gateway id: %w", err)
	}
	*id = GatewayID(n.String())
	return nil
}

func (id GatewayID) String() string { return string(id) }

// GatewayOrderStatusPaid is the gateway order status confirming that payment
// was captured. Refunds are only possible against captured payments.
const GatewayOrderStatusPaid = "PAID"

// GatewayOrder is the gateway's view of an order's payment.
type GatewayOrder struct {
	OrderID  string
	Status   string
	Amount   float64
	Currency string
}

// Captured reports whether the gateway confirms the payment as captured.
func (g GatewayOrder) Captured() bool {
	return g.Status == GatewayOrderStatusPaid
}

// GatewayRefund is the gateway's record of a refund. It is the source of
// truth for refund status.
type GatewayRefund struct {
	CFRefundID string
	RefundID   string
	OrderID    string
	Amount     float64
	Currency   string
	Status     RefundStatus
	Note       string
}
