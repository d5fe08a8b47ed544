package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/domain/repository"
)

// RefundWebhook is a validated gateway refund notification. Delivery is
// at-least-once and unordered; applying the same payload twice must produce
// the same end state.
type RefundWebhook struct {
	OrderID    string
	CFRefundID string
	RefundID   string
	Amount     float64
	Currency   string
	Status     model.RefundStatus
	Note       string
}

var orderIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// WebhookUseCase applies asynchronous gateway refund updates to local state.
type WebhookUseCase struct {
	orders repository.OrderRepository
	events EventPublisher
	now    func() time.Time
}

// NewWebhookUseCase constructs WebhookUseCase.
func NewWebhookUseCase(orders repository.OrderRepository, events EventPublisher) *WebhookUseCase {
	return &WebhookUseCase{orders: orders, events: events, now: time.Now}
}

// HandleRefundWebhook upserts the refund reported by the gateway and
// recomputes the order-level refund status. Unknown refunds are appended,
// self-healing against missed creation events.
func (u *WebhookUseCase) HandleRefundWebhook(ctx context.Context, hook RefundWebhook) error {
	if !orderIDPattern.MatchString(hook.OrderID) {
		return fmt.Errorf("%w: malformed order identifier", domainErrors.ErrInvalidInput)
	}
	if hook.CFRefundID == "" && hook.RefundID == "" {
		return fmt.Errorf("%w: refund identifier missing", domainErrors.ErrInvalidInput)
	}
	if !model.ValidRefundStatus(hook.Status) {
		return fmt.Errorf("%w: unknown refund status %q", domainErrors.ErrInvalidInput, hook.Status)
	}

	order, err := u.orders.GetByID(ctx, hook.OrderID)
	if err != nil {
		return err
	}

	changed := false
	refund := order.FindRefund(hook.CFRefundID, hook.RefundID)
	if refund != nil {
		if refund.Status != hook.Status {
			refund.Status = hook.Status
			refund.UpdatedAt = u.now()
			changed = true
		}
		if refund.CFRefundID == "" && hook.CFRefundID != "" {
			refund.CFRefundID = hook.CFRefundID
			changed = true
		}
	} else {
		order.Refunds = append(order.Refunds, model.Refund{
			CFRefundID: hook.CFRefundID,
			RefundID:   hook.RefundID,
			Amount:     hook.Amount,
			Currency:   hook.Currency,
			Status:     hook.Status,
			Note:       "created from gateway webhook",
			CreatedAt:  u.now(),
			UpdatedAt:  u.now(),
		})
		changed = true
	}

	if next := refundedOrderStatus(order); next != "" && next != order.Status {
		order.Status = next
		changed = true
	}

	if !changed {
		// Replayed delivery; state already converged.
		return nil
	}
	if err := u.orders.Save(ctx, order); err != nil {
		return err
	}

	u.events.Publish(ctx, EventRefundReconciled, order.ID, map[string]any{
		"refundId": hook.RefundID,
		"status":   string(hook.Status),
	})
	return nil
}

// refundedOrderStatus derives the order-level refund status from the full
// refund list. Empty result means leave the current status untouched.
func refundedOrderStatus(order *model.Order) model.OrderStatus {
	if len(order.Refunds) == 0 {
		return ""
	}

	var successTotal float64
	allSettled := true
	anyPending := false
	for _, r := range order.Refunds {
		if r.Status == model.RefundStatusSuccess {
			successTotal += r.Amount
		}
		if !r.Status.Settled() {
			allSettled = false
		}
		if r.Status == model.RefundStatusPending || r.Status == model.RefundStatusOnHold {
			anyPending = true
		}
	}

	switch {
	case allSettled && successTotal >= order.TotalAmount:
		return model.OrderStatusRefunded
	case allSettled && successTotal > 0:
		return model.OrderStatusPartiallyRefunded
	case anyPending:
		return model.OrderStatusRefundPending
	default:
		return ""
	}
}
