package repository

import (
	"context"

	"github.com/tiffinbox/tiffinbox/internal/domain/model"
)

// MenuRepository exposes the pricing surface of menus needed by refund math.
type MenuRepository interface {
	// MealPrices returns per-meal-time prices keyed by menu id. Unknown menu
	// ids are simply absent from the result.
	MealPrices(ctx context.Context, menuIDs []string) (map[string]model.MealPrices, error)
}

// AddressRepository resolves a customer's saved per-meal-time delivery
// address, used as the fallback when an order carries no usable mapping.
type AddressRepository interface {
	MealTimeAddress(ctx context.Context, userID string, mt model.MealTime) (*model.Address, error)
}
