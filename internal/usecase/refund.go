package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/domain/repository"
)

// CreateRefundRequest is the gateway refund creation payload. RefundID is the
// caller-generated idempotency key: re-issuing the same request is safe.
type CreateRefundRequest struct {
	RefundID string
	Amount   float64
	Note     string
	Speed    string
}

// PaymentGateway is the synchronous surface of the external payment gateway
// consumed by the refund subsystem.
type PaymentGateway interface {
	GetOrder(ctx context.Context, orderID string) (*model.GatewayOrder, error)
	CreateRefund(ctx context.Context, orderID string, req CreateRefundRequest) (*model.GatewayRefund, error)
	ListRefunds(ctx context.Context, orderID string) ([]model.GatewayRefund, error)
	UpdateRefund(ctx context.Context, orderID, refundID, status, remarks string) (*model.GatewayRefund, error)
}

// RefundCalculation is the suggested refund breakdown for a cancelled order.
type RefundCalculation struct {
	SuggestedAmount      float64
	ConsumedAmount       float64
	ConsumedMealsCount   int
	TotalAlreadyRefunded float64
}

// RefundUseCase calculates, processes and cancels refunds against the
// payment gateway, keeping local refund records converged to gateway truth.
type RefundUseCase struct {
	orders  repository.OrderRepository
	menus   repository.MenuRepository
	gateway PaymentGateway
	events  EventPublisher
	logger  *slog.Logger
	now     func() time.Time
}

// NewRefundUseCase constructs RefundUseCase.
func NewRefundUseCase(orders repository.OrderRepository, menus repository.MenuRepository, gateway PaymentGateway, events EventPublisher, logger *slog.Logger) *RefundUseCase {
	return &RefundUseCase{orders: orders, menus: menus, gateway: gateway, events: events, logger: logger, now: time.Now}
}

// Calculate derives the suggested refund for a cancelled order from its
// consumption ledger and already-claimed refunds. Admin only.
func (u *RefundUseCase) Calculate(ctx context.Context, actor model.Actor, orderID string) (*RefundCalculation, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrAccessDenied
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	menuIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		menuIDs = append(menuIDs, item.MenuID)
	}
	prices, err := u.menus.MealPrices(ctx, menuIDs)
	if err != nil {
		return nil, err
	}
	return calculateRefund(order, prices)
}

// calculateRefund is pure: same order snapshot and prices, same result.
func calculateRefund(order *model.Order, prices map[string]model.MealPrices) (*RefundCalculation, error) {
	if order.Status != model.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: refunds require a cancelled order, status is %s", domainErrors.ErrConflict, order.Status)
	}

	calc := &RefundCalculation{TotalAlreadyRefunded: order.ClaimedRefundTotal()}
	if calc.TotalAlreadyRefunded >= order.TotalAmount {
		return nil, fmt.Errorf("%w: order already fully refunded", domainErrors.ErrConflict)
	}

	if len(order.Items) == 0 {
		calc.SuggestedAmount = order.TotalAmount - calc.TotalAlreadyRefunded
		return calc, nil
	}

	for _, item := range order.Items {
		for _, entry := range item.DeliveryStatus {
			if !entry.Status.Consumed() {
				continue
			}
			calc.ConsumedAmount += prices[item.MenuID].For(entry.MealTime) * float64(item.Quantity)
			calc.ConsumedMealsCount += item.Quantity
		}
	}

	calc.SuggestedAmount = order.TotalAmount - calc.ConsumedAmount - calc.TotalAlreadyRefunded
	if calc.SuggestedAmount < 0 {
		calc.SuggestedAmount = 0
	}
	if calc.ConsumedMealsCount == 0 {
		// Nothing was prepared: refund everything not yet claimed.
		calc.SuggestedAmount = order.TotalAmount - calc.TotalAlreadyRefunded
	}
	if calc.SuggestedAmount == 0 {
		return nil, fmt.Errorf("%w: already refunded at the eligible amount", domainErrors.ErrConflict)
	}
	return calc, nil
}

// Process initiates a refund at the gateway and records it locally. Every
// step is a hard gate; nothing is persisted when the gateway rejects the
// refund. Admin only.
func (u *RefundUseCase) Process(ctx context.Context, actor model.Actor, orderID string, amount float64, note string) (*model.Refund, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrAccessDenied
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: refund amount must be positive", domainErrors.ErrInvalidInput)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	gatewayOrder, err := u.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, domainErrors.Gateway("get order", err)
	}
	if !gatewayOrder.Captured() {
		return nil, fmt.Errorf("%w: payment not captured, gateway reports %q", domainErrors.ErrConflict, gatewayOrder.Status)
	}

	refundedTotal, err := u.syncRefunds(ctx, order)
	if err != nil {
		return nil, err
	}

	// Both formulations of the headroom gate, as they guard against
	// different drift: the request alone and the running total.
	available := gatewayOrder.Amount - refundedTotal
	if amount > available || refundedTotal+amount > gatewayOrder.Amount {
		return nil, fmt.Errorf("%w: requested %.2f exceeds refundable %.2f (captured %.2f, already claimed %.2f)",
			domainErrors.ErrConflict, amount, available, gatewayOrder.Amount, refundedTotal)
	}

	refundID := fmt.Sprintf("rfnd_%s_%d_%s", orderID, u.now().UnixMilli(), uuid.NewString()[:8])
	created, err := u.gateway.CreateRefund(ctx, orderID, CreateRefundRequest{
		RefundID: refundID,
		Amount:   amount,
		Note:     note,
	})
	if err != nil {
		// The gateway never accepted this refund; leave no local trace.
		return nil, domainErrors.Gateway("create refund", err)
	}

	refund := model.Refund{
		CFRefundID: created.CFRefundID,
		RefundID:   created.RefundID,
		Amount:     created.Amount,
		Currency:   created.Currency,
		Status:     created.Status,
		Note:       created.Note,
		CreatedAt:  u.now(),
		UpdatedAt:  u.now(),
	}
	if refund.RefundID == "" {
		refund.RefundID = refundID
	}
	if refund.Currency == "" {
		refund.Currency = order.Currency
	}
	if !model.ValidRefundStatus(refund.Status) {
		refund.Status = model.RefundStatusPending
	}
	order.Refunds = append(order.Refunds, refund)

	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	u.events.Publish(ctx, EventRefundInitiated, order.ID, map[string]any{
		"refundId": refund.RefundID,
		"amount":   refund.Amount,
	})
	return &refund, nil
}

// CancelRefund cancels a still-pending refund both at the gateway and
// locally. Admin only.
func (u *RefundUseCase) CancelRefund(ctx context.Context, actor model.Actor, orderID, refundID, remarks string) (*model.Refund, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrAccessDenied
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := u.syncRefunds(ctx, order); err != nil {
		return nil, err
	}

	refund := order.FindRefund(refundID, refundID)
	if refund == nil {
		return nil, fmt.Errorf("%w: refund %s", domainErrors.ErrNotFound, refundID)
	}
	if refund.Status != model.RefundStatusPending && refund.Status != model.RefundStatusOnHold {
		return nil, fmt.Errorf("%w: refund is %s and can no longer be cancelled", domainErrors.ErrConflict, refund.Status)
	}

	updated, err := u.gateway.UpdateRefund(ctx, orderID, refund.RefundID, string(model.RefundStatusCancelled), remarks)
	if err != nil {
		return nil, domainErrors.Gateway("update refund", err)
	}
	refund.Status = updated.Status
	refund.UpdatedAt = u.now()
	if remarks != "" {
		refund.Note = remarks
	}

	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	u.events.Publish(ctx, EventRefundCancelled, order.ID, map[string]any{
		"refundId": refund.RefundID,
	})
	result := *refund
	return &result, nil
}

// syncRefunds reconciles local refund records against the gateway and returns
// the gateway-reported refunded total (excluding CANCELLED, FAILED and
// ONHOLD). When the gateway listing is unavailable it falls back to the local
// ledger excluding CANCELLED and FAILED; the computation then runs with
// degraded confidence rather than aborting.
func (u *RefundUseCase) syncRefunds(ctx context.Context, order *model.Order) (float64, error) {
	gatewayRefunds, err := u.gateway.ListRefunds(ctx, order.ID)
	if err != nil {
		u.logger.Warn("gateway refund listing unavailable, falling back to local ledger",
			slog.String("order", order.ID), slog.String("error", err.Error()))
		return order.ClaimedRefundTotal(), nil
	}

	changed := false
	var total float64
	for _, gw := range gatewayRefunds {
		if local := order.FindRefund(gw.CFRefundID, gw.RefundID); local != nil && local.Status != gw.Status {
			local.Status = gw.Status
			local.UpdatedAt = u.now()
			changed = true
		}
		switch gw.Status {
		case model.RefundStatusCancelled, model.RefundStatusFailed, model.RefundStatusOnHold:
		default:
			total += gw.Amount
		}
	}
	if changed {
		// Headroom must never be computed from stale local state.
		if err := u.orders.Save(ctx, order); err != nil {
			return 0, err
		}
	}
	return total, nil
}
