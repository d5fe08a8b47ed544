package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/domain/repository"
)

// OrderStatusUseCase applies role-gated order status transitions.
type OrderStatusUseCase struct {
	orders repository.OrderRepository
	events EventPublisher
}

// NewOrderStatusUseCase constructs OrderStatusUseCase.
func NewOrderStatusUseCase(orders repository.OrderRepository, events EventPublisher) *OrderStatusUseCase {
	return &OrderStatusUseCase{orders: orders, events: events}
}

// SetOrderStatus assigns the target status. Admin may set readyForDelivery,
// delivered or cancelled; vendors may set readyForDelivery only, and only on
// orders that contain at least one of their items. No side effects on items
// or refunds.
func (u *OrderStatusUseCase) SetOrderStatus(ctx context.Context, actor model.Actor, orderID, target string) (*model.Order, error) {
	status := model.OrderStatus(target)
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleVendor {
		return nil, domainErrors.ErrAccessDenied
	}
	if !orderStatusAllowed(actor.Role, status) {
		return nil, fmt.Errorf("%w: status %q not allowed for role %s", domainErrors.ErrInvalidInput, target, actor.Role)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !vendorOwns(actor, order) {
		return nil, domainErrors.ErrAccessDenied
	}

	previous := order.Status
	order.Status = status
	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	u.events.Publish(ctx, EventOrderStatusChanged, order.ID, map[string]any{
		"from": string(previous),
		"to":   string(status),
	})
	return order, nil
}

// OrderQueryUseCase serves order reads for the staff surface.
type OrderQueryUseCase struct {
	orders repository.OrderRepository
}

// NewOrderQueryUseCase constructs OrderQueryUseCase.
func NewOrderQueryUseCase(orders repository.OrderRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orders: orders}
}

// List returns all orders for admins and vendor-owned orders for vendors.
func (u *OrderQueryUseCase) List(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	switch actor.Role {
	case model.RoleAdmin:
		return u.orders.List(ctx)
	case model.RoleVendor:
		if actor.VendorID == "" {
			return nil, domainErrors.ErrAccessDenied
		}
		return u.orders.ListByVendor(ctx, actor.VendorID)
	default:
		return nil, domainErrors.ErrAccessDenied
	}
}

// Get returns one order; vendors may only read orders containing their items.
func (u *OrderQueryUseCase) Get(ctx context.Context, actor model.Actor, orderID string) (*model.Order, error) {
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleVendor {
		return nil, domainErrors.ErrAccessDenied
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !vendorOwns(actor, order) {
		return nil, domainErrors.ErrAccessDenied
	}
	return order, nil
}
