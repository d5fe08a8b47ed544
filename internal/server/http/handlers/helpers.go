package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/server/http/dto"
	"github.com/tiffinbox/tiffinbox/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *gin.Context) model.Actor {
	actor, _ := middleware.CurrentActor(c)
	return actor
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var gatewayErr *domainErrors.GatewayError
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domainErrors.ErrVersionConflict), errors.Is(err, domainErrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toEntryResponse(e model.MealStatusEntry) dto.MealStatusEntryResponse {
	return dto.MealStatusEntryResponse{
		Date:      e.Date,
		MealTime:  string(e.MealTime),
		Status:    string(e.Status),
		UpdatedBy: e.UpdatedBy,
		UpdatedAt: e.UpdatedAt,
		Notes:     e.Notes,
	}
}

func toRefundResponse(r model.Refund) dto.RefundResponse {
	return dto.RefundResponse{
		CFRefundID: r.CFRefundID,
		RefundID:   r.RefundID,
		Amount:     r.Amount,
		Currency:   r.Currency,
		Status:     string(r.Status),
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toItemResponse(it model.OrderItem) dto.OrderItemResponse {
	mealTimes := make([]string, 0, len(it.SelectedMealTimes))
	for _, mt := range it.SelectedMealTimes {
		mealTimes = append(mealTimes, string(mt))
	}
	entries := make([]dto.MealStatusEntryResponse, 0, len(it.DeliveryStatus))
	for _, e := range it.DeliveryStatus {
		entries = append(entries, toEntryResponse(e))
	}
	return dto.OrderItemResponse{
		ID:                it.ID,
		Menu:              it.MenuID,
		Plan:              it.PlanID,
		Vendor:            it.VendorID,
		Quantity:          it.Quantity,
		StartDate:         it.StartDate,
		EndDate:           it.EndDate,
		SkippedDates:      it.SkippedDates,
		SelectedMealTimes: mealTimes,
		ItemTotalPrice:    it.ItemTotalPrice,
		OrderStatus:       entries,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, toItemResponse(it))
	}
	refunds := make([]dto.RefundResponse, 0, len(o.Refunds))
	for _, r := range o.Refunds {
		refunds = append(refunds, toRefundResponse(r))
	}
	return dto.OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Currency:    o.Currency,
		Status:      string(o.Status),
		OrderDate:   o.OrderDate,
		InvoiceURL:  o.InvoiceURL,
		Items:       items,
		Refunds:     refunds,
	}
}
