package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/domain/repository"
)

// MealStatusUseCase maintains the per-item, per-(date, meal time) delivery
// ledger and the daily schedule view built on top of it.
type MealStatusUseCase struct {
	orders    repository.OrderRepository
	addresses repository.AddressRepository
	events    EventPublisher
	now       func() time.Time
}

// NewMealStatusUseCase constructs MealStatusUseCase.
func NewMealStatusUseCase(orders repository.OrderRepository, addresses repository.AddressRepository, events EventPublisher) *MealStatusUseCase {
	return &MealStatusUseCase{orders: orders, addresses: addresses, events: events, now: time.Now}
}

// SetMealStatusInput carries raw caller input; validation happens here, not
// in the transport layer.
type SetMealStatusInput struct {
	OrderID  string
	ItemID   string
	Date     string
	MealTime string
	Status   string
	Notes    string
}

// SetMealStatus validates and upserts a delivery status entry. Violations are
// rejected, never silently corrected.
func (u *MealStatusUseCase) SetMealStatus(ctx context.Context, actor model.Actor, in SetMealStatusInput) (*model.MealStatusEntry, error) {
	status := model.MealStatus(in.Status)
	switch status {
	case model.MealStatusPending, model.MealStatusPreparing, model.MealStatusReadyForDelivery,
		model.MealStatusDelivered, model.MealStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown meal status %q", domainErrors.ErrInvalidInput, in.Status)
	}
	if !mealStatusAllowed(actor.Role, status) {
		return nil, fmt.Errorf("%w: status %q not allowed for role %s", domainErrors.ErrAccessDenied, in.Status, actor.Role)
	}

	date, err := model.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err)
	}
	mealTime, err := model.ParseMealTime(in.MealTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err)
	}

	order, err := u.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	item := order.Item(in.ItemID)
	if item == nil {
		return nil, fmt.Errorf("%w: order item %s", domainErrors.ErrNotFound, in.ItemID)
	}
	if actor.Role == model.RoleVendor && item.VendorID != actor.VendorID {
		return nil, domainErrors.ErrAccessDenied
	}

	if !item.InWindow(date) {
		return nil, fmt.Errorf("%w: date %s outside subscription window", domainErrors.ErrConflict, in.Date)
	}
	if item.Skipped(date) {
		return nil, fmt.Errorf("%w: date %s is skipped for this item", domainErrors.ErrConflict, in.Date)
	}
	if !item.HasMealTime(mealTime) {
		return nil, fmt.Errorf("%w: meal time %s not selected for this item", domainErrors.ErrConflict, mealTime)
	}

	entry := item.UpsertStatus(model.MealStatusEntry{
		Date:      date,
		MealTime:  mealTime,
		Status:    status,
		UpdatedBy: actor.ID,
		UpdatedAt: u.now(),
		Notes:     in.Notes,
	})

	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	u.events.Publish(ctx, EventMealStatusChanged, order.ID, map[string]any{
		"item":     item.ID,
		"date":     date.Format(model.DateLayout),
		"mealTime": string(mealTime),
		"status":   string(status),
	})

	result := *entry
	return &result, nil
}

// StatusHistory returns the item's delivery ledger. Vendors see only their
// own items.
func (u *MealStatusUseCase) StatusHistory(ctx context.Context, actor model.Actor, orderID, itemID string) ([]model.MealStatusEntry, error) {
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleVendor {
		return nil, domainErrors.ErrAccessDenied
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item := order.Item(itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: order item %s", domainErrors.ErrNotFound, itemID)
	}
	if actor.Role == model.RoleVendor && item.VendorID != actor.VendorID {
		return nil, domainErrors.ErrAccessDenied
	}
	return item.DeliveryStatus, nil
}

// ScheduleEntry is one deliverable meal on a schedule day.
type ScheduleEntry struct {
	OrderID  string
	ItemID   string
	UserID   string
	MenuID   string
	VendorID string
	Quantity int
	Status   model.MealStatus
	Address  model.Address
}

// DailySchedule buckets deliverable meals by meal time.
type DailySchedule map[model.MealTime][]ScheduleEntry

// ScheduleForDate builds the delivery schedule for one calendar day across
// all paid orders. Vendors see only their own items. Addresses resolve by
// priority: per-meal-time order address, single order-level address, the
// customer's saved meal-time address, empty.
func (u *MealStatusUseCase) ScheduleForDate(ctx context.Context, actor model.Actor, rawDate string) (DailySchedule, error) {
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleVendor {
		return nil, domainErrors.ErrAccessDenied
	}
	date, err := model.ParseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err)
	}

	orders, err := u.orders.ListPaid(ctx)
	if err != nil {
		return nil, err
	}

	schedule := DailySchedule{
		model.MealTimeBreakfast: {},
		model.MealTimeLunch:     {},
		model.MealTimeDinner:    {},
	}
	for i := range orders {
		order := &orders[i]
		for j := range order.Items {
			item := &order.Items[j]
			if actor.Role == model.RoleVendor && item.VendorID != actor.VendorID {
				continue
			}
			for _, mt := range model.MealTimes {
				if !item.DeliversOn(date, mt) {
					continue
				}
				schedule[mt] = append(schedule[mt], ScheduleEntry{
					OrderID:  order.ID,
					ItemID:   item.ID,
					UserID:   order.UserID,
					MenuID:   item.MenuID,
					VendorID: item.VendorID,
					Quantity: item.Quantity,
					Status:   item.StatusFor(date, mt),
					Address:  u.resolveAddress(ctx, order, mt),
				})
			}
		}
	}
	return schedule, nil
}

func (u *MealStatusUseCase) resolveAddress(ctx context.Context, order *model.Order, mt model.MealTime) model.Address {
	if addr := order.AddressFor(mt); !addr.Empty() {
		return addr
	}
	if saved, err := u.addresses.MealTimeAddress(ctx, order.UserID, mt); err == nil && saved != nil {
		return *saved
	}
	return model.Address{}
}
