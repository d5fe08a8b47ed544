package test

import (
	"context"

	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

// CreateRefundCall records one refund creation request.
type CreateRefundCall struct {
	OrderID string
	Request usecase.CreateRefundRequest
}

// UpdateRefundCall records one refund update request.
type UpdateRefundCall struct {
	OrderID  string
	RefundID string
	Status   string
	Remarks  string
}

// GatewayStub simulates the payment gateway with function overrides and call
// recording.
type GatewayStub struct {
	GetOrderFn     func(context.Context, string) (*model.GatewayOrder, error)
	CreateRefundFn func(context.Context, string, usecase.CreateRefundRequest) (*model.GatewayRefund, error)
	ListRefundsFn  func(context.Context, string) ([]model.GatewayRefund, error)
	UpdateRefundFn func(context.Context, string, string, string, string) (*model.GatewayRefund, error)

	Order   *model.GatewayOrder
	Refunds []model.GatewayRefund

	CreateCalls []CreateRefundCall
	UpdateCalls []UpdateRefundCall
}

// GetOrder returns configured order or a captured payment matching the id.
func (s *GatewayStub) GetOrder(ctx context.Context, orderID string) (*model.GatewayOrder, error) {
	if s.GetOrderFn != nil {
		return s.GetOrderFn(ctx, orderID)
	}
	if s.Order != nil {
		return s.Order, nil
	}
	return &model.GatewayOrder{OrderID: orderID, Status: model.GatewayOrderStatusPaid, Amount: 1000, Currency: "INR"}, nil
}

// CreateRefund records the call and echoes the request as a pending refund.
func (s *GatewayStub) CreateRefund(ctx context.Context, orderID string, req usecase.CreateRefundRequest) (*model.GatewayRefund, error) {
	s.CreateCalls = append(s.CreateCalls, CreateRefundCall{OrderID: orderID, Request: req})
	if s.CreateRefundFn != nil {
		return s.CreateRefundFn(ctx, orderID, req)
	}
	return &model.GatewayRefund{
		CFRefundID: "cf-" + req.RefundID,
		RefundID:   req.RefundID,
		OrderID:    orderID,
		Amount:     req.Amount,
		Currency:   "INR",
		Status:     model.RefundStatusPending,
		Note:       req.Note,
	}, nil
}

// ListRefunds returns the configured refund slice.
func (s *GatewayStub) ListRefunds(ctx context.Context, orderID string) ([]model.GatewayRefund, error) {
	if s.ListRefundsFn != nil {
		return s.ListRefundsFn(ctx, orderID)
	}
	return s.Refunds, nil
}

// UpdateRefund records the call and echoes the requested status.
func (s *GatewayStub) UpdateRefund(ctx context.Context, orderID, refundID, status, remarks string) (*model.GatewayRefund, error) {
	s.UpdateCalls = append(s.UpdateCalls, UpdateRefundCall{OrderID: orderID, RefundID: refundID, Status: status, Remarks: remarks})
	if s.UpdateRefundFn != nil {
		return s.UpdateRefundFn(ctx, orderID, refundID, status, remarks)
	}
	return &model.GatewayRefund{RefundID: refundID, OrderID: orderID, Status: model.RefundStatus(status), Note: remarks}, nil
}
