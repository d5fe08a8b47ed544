package repository

import (
	"context"

	"github.com/tiffinbox/tiffinbox/internal/domain/model"
)

// OrderRepository persists the Order aggregate. Save performs a
// compare-and-swap on Order.Version and returns ErrVersionConflict when a
// concurrent writer got there first; callers reload and retry explicitly.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	Save(ctx context.Context, order *model.Order) error
	List(ctx context.Context) ([]model.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error)
	ListPaid(ctx context.Context) ([]model.Order, error)
}
