package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	testhelpers "github.com/tiffinbox/tiffinbox/internal/test"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

func newFacade(order *model.Order) (*OrderingFacade, *testhelpers.PublisherStub) {
	repo := testhelpers.NewOrderRepositoryStub(order)
	menus := &testhelpers.MenuRepositoryStub{}
	addresses := &testhelpers.AddressRepositoryStub{}
	gateway := &testhelpers.GatewayStub{}
	events := &testhelpers.PublisherStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	facade := NewOrderingFacade(
		usecase.NewMealStatusUseCase(repo, addresses, events),
		usecase.NewOrderStatusUseCase(repo, events),
		usecase.NewOrderQueryUseCase(repo),
		usecase.NewRefundUseCase(repo, menus, gateway, events, logger),
		usecase.NewWebhookUseCase(repo, events),
	)
	return facade, events
}

func sampleOrder() *model.Order {
	start, _ := model.ParseDate("2026-03-01")
	end, _ := model.ParseDate("2026-03-07")
	return &model.Order{
		ID:             "ord-1",
		UserID:         "user-1",
		Currency:       "INR",
		Status:         model.OrderStatusConfirmed,
		TotalAmount:    1000,
		PaymentDetails: model.PaymentDetails{Status: "SUCCESS"},
		Items: []model.OrderItem{{
			ID:                "item-1",
			MenuID:            "menu-1",
			VendorID:          "vendor-1",
			Quantity:          1,
			StartDate:         start,
			EndDate:           end,
			SelectedMealTimes: []model.MealTime{model.MealTimeLunch},
			ItemTotalPrice:    1000,
		}},
		Version: 1,
	}
}

func TestFacadeOrderLifecycle(t *testing.T) {
	admin := model.Actor{ID: "admin-1", Role: model.RoleAdmin}
	facade, events := newFacade(sampleOrder())
	ctx := context.Background()

	orders, err := facade.Orders(ctx, admin)
	if err != nil || len(orders) != 1 {
		t.Fatalf("Orders = %v, %v", orders, err)
	}

	order, err := facade.Order(ctx, admin, "ord-1")
	if err != nil || order.ID != "ord-1" {
		t.Fatalf("Order = %+v, %v", order, err)
	}

	entry, err := facade.SetMealStatus(ctx, admin, usecase.SetMealStatusInput{
		OrderID: "ord-1", ItemID: "item-1", Date: "2026-03-02", MealTime: "lunch", Status: "delivered",
	})
	if err != nil || entry.Status != model.MealStatusDelivered {
		t.Fatalf("SetMealStatus = %+v, %v", entry, err)
	}

	history, err := facade.MealStatusHistory(ctx, admin, "ord-1", "item-1")
	if err != nil || len(history) != 1 {
		t.Fatalf("MealStatusHistory = %v, %v", history, err)
	}

	schedule, err := facade.MealSchedule(ctx, admin, "2026-03-02")
	if err != nil || len(schedule[model.MealTimeLunch]) != 1 {
		t.Fatalf("MealSchedule = %v, %v", schedule, err)
	}

	updated, err := facade.SetOrderStatus(ctx, admin, "ord-1", "cancelled")
	if err != nil || updated.Status != model.OrderStatusCancelled {
		t.Fatalf("SetOrderStatus = %+v, %v", updated, err)
	}

	if len(events.Events) == 0 {
		t.Fatal("expected lifecycle events to be published")
	}
}

func TestFacadeRefundFlow(t *testing.T) {
	admin := model.Actor{ID: "admin-1", Role: model.RoleAdmin}
	order := sampleOrder()
	order.Status = model.OrderStatusCancelled
	facade, _ := newFacade(order)
	ctx := context.Background()

	calc, err := facade.CalculateRefund(ctx, admin, "ord-1")
	if err != nil || calc.SuggestedAmount != 1000 {
		t.Fatalf("CalculateRefund = %+v, %v", calc, err)
	}

	refund, err := facade.CreateRefund(ctx, admin, "ord-1", 400, "partial")
	if err != nil || refund.Status != model.RefundStatusPending {
		t.Fatalf("CreateRefund = %+v, %v", refund, err)
	}

	cancelled, err := facade.CancelRefund(ctx, admin, "ord-1", refund.RefundID, "changed mind")
	if err != nil || cancelled.Status != model.RefundStatusCancelled {
		t.Fatalf("CancelRefund = %+v, %v", cancelled, err)
	}

	err = facade.HandleRefundWebhook(ctx, usecase.RefundWebhook{
		OrderID: "ord-1", RefundID: refund.RefundID, Amount: 400, Status: model.RefundStatusCancelled,
	})
	if err != nil {
		t.Fatalf("HandleRefundWebhook: %v", err)
	}

	if _, err := facade.CreateRefund(ctx, admin, "ghost", 100, ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
