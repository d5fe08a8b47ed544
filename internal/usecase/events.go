package usecase

import "context"

// Event types emitted by the order core.
const (
	EventOrderStatusChanged = "order.status_changed"
	EventMealStatusChanged  = "order.meal_status_changed"
	EventRefundInitiated    = "refund.initiated"
	EventRefundCancelled    = "refund.cancelled"
	EventRefundReconciled   = "refund.reconciled"
)

// EventPublisher broadcasts order lifecycle events. Delivery is best effort;
// implementations report failures themselves and never block the operation.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, orderID string, payload map[string]any)
}
