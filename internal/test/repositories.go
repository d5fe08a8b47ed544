package test

import (
	"context"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
)

// OrderRepositoryStub keeps orders in memory and allows per-call overrides.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	SaveFn         func(context.Context, *model.Order) error
	ListFn         func(context.Context) ([]model.Order, error)
	ListByVendorFn func(context.Context, string) ([]model.Order, error)
	ListPaidFn     func(context.Context) ([]model.Order, error)

	Orders map[string]*model.Order
	Saved  []*model.Order
}

// NewOrderRepositoryStub constructs a stub seeded with the given orders.
func NewOrderRepositoryStub(orders ...*model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
	for _, o := range orders {
		s.Orders[o.ID] = o
	}
	return s
}

// Create stores the order unless overridden.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if _, exists := s.Orders[order.ID]; exists {
		return domainErrors.ErrConflict
	}
	order.Version = 1
	s.Orders[order.ID] = order
	return nil
}

// GetByID returns the stored order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Save records the write and bumps the version like the real repository.
func (s *OrderRepositoryStub) Save(ctx context.Context, order *model.Order) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, order)
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	order.Version++
	s.Orders[order.ID] = order
	s.Saved = append(s.Saved, order)
	return nil
}

// List returns every stored order.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	result := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		result = append(result, *o)
	}
	return result, nil
}

// ListByVendor filters stored orders by vendor ownership.
func (s *OrderRepositoryStub) ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	if s.ListByVendorFn != nil {
		return s.ListByVendorFn(ctx, vendorID)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.HasVendor(vendorID) {
			result = append(result, *o)
		}
	}
	return result, nil
}

// ListPaid filters stored orders by captured payment.
func (s *OrderRepositoryStub) ListPaid(ctx context.Context) ([]model.Order, error) {
	if s.ListPaidFn != nil {
		return s.ListPaidFn(ctx)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.PaymentDetails.Captured() {
			result = append(result, *o)
		}
	}
	return result, nil
}

// MenuRepositoryStub serves meal prices from a fixed map.
type MenuRepositoryStub struct {
	PricesFn func(context.Context, []string) (map[string]model.MealPrices, error)
	Prices   map[string]model.MealPrices
	Err      error
}

// MealPrices returns prices for the requested menu ids.
func (s *MenuRepositoryStub) MealPrices(ctx context.Context, menuIDs []string) (map[string]model.MealPrices, error) {
	if s.PricesFn != nil {
		return s.PricesFn(ctx, menuIDs)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	result := make(map[string]model.MealPrices, len(menuIDs))
	for _, id := range menuIDs {
		if p, ok := s.Prices[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

// AddressRepositoryStub resolves saved customer addresses from a fixed map
// keyed by "userID/mealTime".
type AddressRepositoryStub struct {
	AddressFn func(context.Context, string, model.MealTime) (*model.Address, error)
	Addresses map[string]model.Address
}

// MealTimeAddress returns the saved address or not found.
func (s *AddressRepositoryStub) MealTimeAddress(ctx context.Context, userID string, mt model.MealTime) (*model.Address, error) {
	if s.AddressFn != nil {
		return s.AddressFn(ctx, userID, mt)
	}
	if addr, ok := s.Addresses[userID+"/"+string(mt)]; ok {
		return &addr, nil
	}
	return nil, domainErrors.ErrNotFound
}
