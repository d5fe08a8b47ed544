package handlers

import (
	"context"

	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

// OrderFacade exposes order reads and order-level status changes.
type OrderFacade interface {
	Orders(ctx context.Context, actor model.Actor) ([]model.Order, error)
	Order(ctx context.Context, actor model.Actor, orderID string) (*model.Order, error)
	SetOrderStatus(ctx context.Context, actor model.Actor, orderID, status string) (*model.Order, error)
}

// MealStatusFacade exposes the per-meal delivery ledger.
type MealStatusFacade interface {
	SetMealStatus(ctx context.Context, actor model.Actor, in usecase.SetMealStatusInput) (*model.MealStatusEntry, error)
	MealStatusHistory(ctx context.Context, actor model.Actor, orderID, itemID string) ([]model.MealStatusEntry, error)
	MealSchedule(ctx context.Context, actor model.Actor, date string) (usecase.DailySchedule, error)
}

// RefundFacade exposes refund calculation, initiation and cancellation.
type RefundFacade interface {
	CalculateRefund(ctx context.Context, actor model.Actor, orderID string) (*usecase.RefundCalculation, error)
	CreateRefund(ctx context.Context, actor model.Actor, orderID string, amount float64, note string) (*model.Refund, error)
	CancelRefund(ctx context.Context, actor model.Actor, orderID, refundID, remarks string) (*model.Refund, error)
}

// WebhookFacade applies asynchronous gateway refund notifications.
type WebhookFacade interface {
	HandleRefundWebhook(ctx context.Context, hook usecase.RefundWebhook) error
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	OrderFacade
	MealStatusFacade
	RefundFacade
	WebhookFacade
}
