package test

import (
	"context"
	"time"

	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn         func(context.Context, model.Actor) ([]model.Order, error)
	OrderFn          func(context.Context, model.Actor, string) (*model.Order, error)
	SetOrderStatusFn func(context.Context, model.Actor, string, string) (*model.Order, error)
}

// Orders returns configured orders.
func (s OrderFacadeStub) Orders(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, actor)
	}
	return []model.Order{{ID: "ord-1", Status: model.OrderStatusConfirmed}}, nil
}

// Order returns a single configured order.
func (s OrderFacadeStub) Order(ctx context.Context, actor model.Actor, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusConfirmed}, nil
}

// SetOrderStatus delegates to override or echoes the change.
func (s OrderFacadeStub) SetOrderStatus(ctx context.Context, actor model.Actor, orderID, status string) (*model.Order, error) {
	if s.SetOrderStatusFn != nil {
		return s.SetOrderStatusFn(ctx, actor, orderID, status)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatus(status)}, nil
}

// MealStatusFacadeStub simulates the meal-time ledger surface.
type MealStatusFacadeStub struct {
	SetMealStatusFn func(context.Context, model.Actor, usecase.SetMealStatusInput) (*model.MealStatusEntry, error)
	HistoryFn       func(context.Context, model.Actor, string, string) ([]model.MealStatusEntry, error)
	ScheduleFn      func(context.Context, model.Actor, string) (usecase.DailySchedule, error)
}

// SetMealStatus delegates or returns a delivered entry.
func (s MealStatusFacadeStub) SetMealStatus(ctx context.Context, actor model.Actor, in usecase.SetMealStatusInput) (*model.MealStatusEntry, error) {
	if s.SetMealStatusFn != nil {
		return s.SetMealStatusFn(ctx, actor, in)
	}
	return &model.MealStatusEntry{
		MealTime:  model.MealTime(in.MealTime),
		Status:    model.MealStatus(in.Status),
		UpdatedBy: actor.ID,
		UpdatedAt: time.Unix(0, 0),
	}, nil
}

// MealStatusHistory delegates or returns an empty ledger.
func (s MealStatusFacadeStub) MealStatusHistory(ctx context.Context, actor model.Actor, orderID, itemID string) ([]model.MealStatusEntry, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, actor, orderID, itemID)
	}
	return nil, nil
}

// MealSchedule delegates or returns an empty schedule.
func (s MealStatusFacadeStub) MealSchedule(ctx context.Context, actor model.Actor, date string) (usecase.DailySchedule, error) {
	if s.ScheduleFn != nil {
		return s.ScheduleFn(ctx, actor, date)
	}
	return usecase.DailySchedule{}, nil
}

// RefundFacadeStub simulates refund operations.
type RefundFacadeStub struct {
	CalculateFn func(context.Context, model.Actor, string) (*usecase.RefundCalculation, error)
	CreateFn    func(context.Context, model.Actor, string, float64, string) (*model.Refund, error)
	CancelFn    func(context.Context, model.Actor, string, string, string) (*model.Refund, error)
}

// CalculateRefund delegates or returns a fixed suggestion.
func (s RefundFacadeStub) CalculateRefund(ctx context.Context, actor model.Actor, orderID string) (*usecase.RefundCalculation, error) {
	if s.CalculateFn != nil {
		return s.CalculateFn(ctx, actor, orderID)
	}
	return &usecase.RefundCalculation{SuggestedAmount: 100}, nil
}

// CreateRefund delegates or returns a pending refund.
func (s RefundFacadeStub) CreateRefund(ctx context.Context, actor model.Actor, orderID string, amount float64, note string) (*model.Refund, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, orderID, amount, note)
	}
	return &model.Refund{RefundID: "rfnd_stub", Amount: amount, Status: model.RefundStatusPending, Note: note}, nil
}

// CancelRefund delegates or returns a cancelled refund.
func (s RefundFacadeStub) CancelRefund(ctx context.Context, actor model.Actor, orderID, refundID, remarks string) (*model.Refund, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, orderID, refundID, remarks)
	}
	return &model.Refund{RefundID: refundID, Status: model.RefundStatusCancelled}, nil
}

// WebhookFacadeStub simulates webhook processing.
type WebhookFacadeStub struct {
	HandleFn func(context.Context, usecase.RefundWebhook) error
	Hooks    []usecase.RefundWebhook
}

// HandleRefundWebhook records the hook and delegates when overridden.
func (s *WebhookFacadeStub) HandleRefundWebhook(ctx context.Context, hook usecase.RefundWebhook) error {
	s.Hooks = append(s.Hooks, hook)
	if s.HandleFn != nil {
		return s.HandleFn(ctx, hook)
	}
	return nil
}

// OrderingFacadeStub aggregates facade stubs for HTTP layer tests.
type OrderingFacadeStub struct {
	OrderFacadeStub
	MealStatusFacadeStub
	RefundFacadeStub
	*WebhookFacadeStub
}

// NewOrderingFacadeStub constructs an aggregate stub with default behaviour.
func NewOrderingFacadeStub() *OrderingFacadeStub {
	return &OrderingFacadeStub{WebhookFacadeStub: &WebhookFacadeStub{}}
}
