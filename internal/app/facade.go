package app

import (
	"context"

	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

// OrderingFacade is the application entry point aggregating order lifecycle,
// refund and webhook operations behind one surface for the HTTP layer.
type OrderingFacade struct {
	meals    *usecase.MealStatusUseCase
	statuses *usecase.OrderStatusUseCase
	queries  *usecase.OrderQueryUseCase
	refunds  *usecase.RefundUseCase
	webhooks *usecase.WebhookUseCase
}

// NewOrderingFacade constructs OrderingFacade.
func NewOrderingFacade(
	meals *usecase.MealStatusUseCase,
	statuses *usecase.OrderStatusUseCase,
	queries *usecase.OrderQueryUseCase,
	refunds *usecase.RefundUseCase,
	webhooks *usecase.WebhookUseCase,
) *OrderingFacade {
	return &OrderingFacade{
		meals:    meals,
		statuses: statuses,
		queries:  queries,
		refunds:  refunds,
		webhooks: webhooks,
	}
}

func (f *OrderingFacade) Orders(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	return f.queries.List(ctx, actor)
}

func (f *OrderingFacade) Order(ctx context.Context, actor model.Actor, orderID string) (*model.Order, error) {
	return f.queries.Get(ctx, actor, orderID)
}

func (f *OrderingFacade) SetOrderStatus(ctx context.Context, actor model.Actor, orderID, status string) (*model.Order, error) {
	return f.statuses.SetOrderStatus(ctx, actor, orderID, status)
}

func (f *OrderingFacade) SetMealStatus(ctx context.Context, actor model.Actor, in usecase.SetMealStatusInput) (*model.MealStatusEntry, error) {
	return f.meals.SetMealStatus(ctx, actor, in)
}

func (f *OrderingFacade) MealStatusHistory(ctx context.Context, actor model.Actor, orderID, itemID string) ([]model.MealStatusEntry, error) {
	return f.meals.StatusHistory(ctx, actor, orderID, itemID)
}

func (f *OrderingFacade) MealSchedule(ctx context.Context, actor model.Actor, date string) (usecase.DailySchedule, error) {
	return f.meals.ScheduleForDate(ctx, actor, date)
}

func (f *OrderingFacade) CalculateRefund(ctx context.Context, actor model.Actor, orderID string) (*usecase.RefundCalculation, error) {
	return f.refunds.Calculate(ctx, actor, orderID)
}

func (f *OrderingFacade) CreateRefund(ctx context.Context, actor model.Actor, orderID string, amount float64, note string) (*model.Refund, error) {
	return f.refunds.Process(ctx, actor, orderID, amount, note)
}

func (f *OrderingFacade) CancelRefund(ctx context.Context, actor model.Actor, orderID, refundID, remarks string) (*model.Refund, error) {
	return f.refunds.CancelRefund(ctx, actor, orderID, refundID, remarks)
}

func (f *OrderingFacade) HandleRefundWebhook(ctx context.Context, hook usecase.RefundWebhook) error {
	return f.webhooks.HandleRefundWebhook(ctx, hook)
}
