package usecase

import (
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
)

// Role policy for status mutations. Kept in one place instead of scattered
// per-route checks.

var mealStatusByRole = map[model.Role][]model.MealStatus{
	model.RoleAdmin: {
		model.MealStatusPending,
		model.MealStatusPreparing,
		model.MealStatusReadyForDelivery,
		model.MealStatusDelivered,
		model.MealStatusCancelled,
	},
	model.RoleVendor: {
		model.MealStatusPreparing,
		model.MealStatusReadyForDelivery,
	},
}

var orderStatusByRole = map[model.Role][]model.OrderStatus{
	model.RoleAdmin: {
		model.OrderStatusReadyForDelivery,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	},
	model.RoleVendor: {
		model.OrderStatusReadyForDelivery,
	},
}

// mealStatusAllowed reports whether role may set the given meal status.
func mealStatusAllowed(role model.Role, status model.MealStatus) bool {
	for _, s := range mealStatusByRole[role] {
		if s == status {
			return true
		}
	}
	return false
}

// orderStatusAllowed reports whether role may set the given order status.
// Refund-related statuses are reachable only through the refund subsystem and
// are deliberately absent from every allow list.
func orderStatusAllowed(role model.Role, status model.OrderStatus) bool {
	for _, s := range orderStatusByRole[role] {
		if s == status {
			return true
		}
	}
	return false
}

// vendorOwns reports whether a vendor actor owns at least one item of the
// order. Admin actors pass unconditionally.
func vendorOwns(actor model.Actor, order *model.Order) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	return actor.VendorID != "" && order.HasVendor(actor.VendorID)
}
