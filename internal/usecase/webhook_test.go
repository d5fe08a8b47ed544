package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	testhelpers "github.com/tiffinbox/tiffinbox/internal/test"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

func newWebhookFixture(order *model.Order) (*usecase.WebhookUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.PublisherStub) {
	repo := testhelpers.NewOrderRepositoryStub(order)
	events := &testhelpers.PublisherStub{}
	return usecase.NewWebhookUseCase(repo, events), repo, events
}

func TestHandleRefundWebhookValidation(t *testing.T) {
	uc, _, _ := newWebhookFixture(subscriptionOrder())

	tests := []struct {
		name string
		hook usecase.RefundWebhook
	}{
		{"malformed order id", usecase.RefundWebhook{OrderID: "ord 1; drop", RefundID: "r1", Status: model.RefundStatusSuccess}},
		{"empty order id", usecase.RefundWebhook{RefundID: "r1", Status: model.RefundStatusSuccess}},
		{"missing refund ids", usecase.RefundWebhook{OrderID: "ord-1", Status: model.RefundStatusSuccess}},
		{"unknown status", usecase.RefundWebhook{OrderID: "ord-1", RefundID: "r1", Status: "GONE"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := uc.HandleRefundWebhook(context.Background(), tc.hook); !errors.Is(err, domainErrors.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}

	t.Run("unknown order", func(t *testing.T) {
		err := uc.HandleRefundWebhook(context.Background(), usecase.RefundWebhook{OrderID: "ghost", RefundID: "r1", Status: model.RefundStatusSuccess})
		if !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestHandleRefundWebhookUpdatesKnownRefund(t *testing.T) {
	order := subscriptionOrder()
	order.Status = model.OrderStatusRefundPending
	order.Refunds = []model.Refund{{CFRefundID: "cf-1", RefundID: "r1", Amount: 2000, Status: model.RefundStatusPending}}
	uc, repo, events := newWebhookFixture(order)

	hook := usecase.RefundWebhook{OrderID: "ord-1", CFRefundID: "cf-1", RefundID: "r1", Amount: 2000, Status: model.RefundStatusSuccess}
	if err := uc.HandleRefundWebhook(context.Background(), hook); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Refunds[0].Status != model.RefundStatusSuccess {
		t.Fatalf("expected refund converged to SUCCESS, got %s", order.Refunds[0].Status)
	}
	if order.Status != model.OrderStatusRefunded {
		t.Fatalf("expected order refunded, got %s", order.Status)
	}
	if len(repo.Saved) != 1 {
		t.Fatalf("expected one save, got %d", len(repo.Saved))
	}
	if got := events.Types(); len(got) != 1 || got[0] != usecase.EventRefundReconciled {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestHandleRefundWebhookReplayIsIdempotent(t *testing.T) {
	order := subscriptionOrder()
	order.Refunds = []model.Refund{{CFRefundID: "cf-1", RefundID: "r1", Amount: 2000, Status: model.RefundStatusPending}}
	uc, repo, events := newWebhookFixture(order)

	hook := usecase.RefundWebhook{OrderID: "ord-1", CFRefundID: "cf-1", RefundID: "r1", Amount: 2000, Status: model.RefundStatusSuccess}
	for i := 0; i < 2; i++ {
		if err := uc.HandleRefundWebhook(context.Background(), hook); err != nil {
			t.Fatalf("delivery %d: unexpected error: %v", i+1, err)
		}
	}

	if len(repo.Saved) != 1 {
		t.Fatalf("replay must not write again, got %d saves", len(repo.Saved))
	}
	if len(events.Events) != 1 {
		t.Fatalf("replay must not publish again, got %d events", len(events.Events))
	}
}

func TestHandleRefundWebhookSelfHealsUnknownRefund(t *testing.T) {
	order := subscriptionOrder()
	uc, repo, _ := newWebhookFixture(order)

	hook := usecase.RefundWebhook{OrderID: "ord-1", CFRefundID: "cf-9", RefundID: "r9", Amount: 500, Currency: "INR", Status: model.RefundStatusPending}
	if err := uc.HandleRefundWebhook(context.Background(), hook); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order.Refunds) != 1 {
		t.Fatalf("expected refund appended, got %+v", order.Refunds)
	}
	appended := order.Refunds[0]
	if appended.CFRefundID != "cf-9" || appended.Amount != 500 {
		t.Fatalf("unexpected appended refund: %+v", appended)
	}
	if appended.Note != "created from gateway webhook" {
		t.Fatalf("unexpected note: %q", appended.Note)
	}
	if order.Status != model.OrderStatusRefundPending {
		t.Fatalf("expected refund pending order status, got %s", order.Status)
	}
	if len(repo.Saved) != 1 {
		t.Fatalf("expected one save, got %d", len(repo.Saved))
	}
}

func TestHandleRefundWebhookBackfillsGatewayID(t *testing.T) {
	order := subscriptionOrder()
	order.Refunds = []model.Refund{{RefundID: "r1", Amount: 500, Status: model.RefundStatusSuccess}}
	uc, repo, _ := newWebhookFixture(order)

	hook := usecase.RefundWebhook{OrderID: "ord-1", CFRefundID: "cf-1", RefundID: "r1", Amount: 500, Status: model.RefundStatusSuccess}
	if err := uc.HandleRefundWebhook(context.Background(), hook); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Refunds[0].CFRefundID != "cf-1" {
		t.Fatalf("expected gateway id backfilled, got %q", order.Refunds[0].CFRefundID)
	}
	if len(order.Refunds) != 1 {
		t.Fatalf("backfill must not duplicate the refund: %+v", order.Refunds)
	}
	if len(repo.Saved) != 1 {
		t.Fatalf("expected one save, got %d", len(repo.Saved))
	}
}

func TestHandleRefundWebhookPartialRefund(t *testing.T) {
	order := subscriptionOrder()
	order.Refunds = []model.Refund{
		{RefundID: "r1", Amount: 600, Status: model.RefundStatusPending},
		{RefundID: "r2", Amount: 400, Status: model.RefundStatusCancelled},
	}
	uc, _, _ := newWebhookFixture(order)

	hook := usecase.RefundWebhook{OrderID: "ord-1", RefundID: "r1", Amount: 600, Status: model.RefundStatusSuccess}
	if err := uc.HandleRefundWebhook(context.Background(), hook); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 600 of 2000 succeeded, the rest is settled without success.
	if order.Status != model.OrderStatusPartiallyRefunded {
		t.Fatalf("expected partially refunded, got %s", order.Status)
	}
}

func TestHandleRefundWebhookFailedRefundKeepsStatus(t *testing.T) {
	order := subscriptionOrder()
	order.Refunds = []model.Refund{{RefundID: "r1", Amount: 600, Status: model.RefundStatusPending}}
	uc, _, _ := newWebhookFixture(order)

	hook := usecase.RefundWebhook{OrderID: "ord-1", RefundID: "r1", Amount: 600, Status: model.RefundStatusFailed}
	if err := uc.HandleRefundWebhook(context.Background(), hook); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All refunds settled with zero success: the order status is untouched.
	if order.Status != model.OrderStatusConfirmed {
		t.Fatalf("expected order status unchanged, got %s", order.Status)
	}
	if order.Refunds[0].Status != model.RefundStatusFailed {
		t.Fatalf("expected refund marked failed, got %s", order.Refunds[0].Status)
	}
}

func TestHandleRefundWebhookSavePropagates(t *testing.T) {
	order := subscriptionOrder()
	order.Refunds = []model.Refund{{RefundID: "r1", Amount: 600, Status: model.RefundStatusPending}}
	uc, repo, events := newWebhookFixture(order)
	repo.SaveFn = func(context.Context, *model.Order) error {
		return domainErrors.ErrVersionConflict
	}

	hook := usecase.RefundWebhook{OrderID: "ord-1", RefundID: "r1", Amount: 600, Status: model.RefundStatusSuccess}
	if err := uc.HandleRefundWebhook(context.Background(), hook); !errors.Is(err, domainErrors.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
	if len(events.Events) != 0 {
		t.Fatalf("no event must fire on failed save, got %+v", events.Events)
	}
}
