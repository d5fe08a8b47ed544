package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiffinbox/tiffinbox/internal/server/http/dto"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

// OrderHandler manages order reads and status endpoints.
type OrderHandler struct {
	facade OrderingFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderingFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// SetStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) SetStatus(c *gin.Context) {
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	order, err := h.facade.SetOrderStatus(c.Request.Context(), CurrentActor(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// SetMealStatus handles PATCH /api/orders/:id/items/:itemId/meal-status.
func (h *OrderHandler) SetMealStatus(c *gin.Context) {
	var req dto.MealStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	entry, err := h.facade.SetMealStatus(c.Request.Context(), CurrentActor(c), usecase.SetMealStatusInput{
		OrderID:  c.Param("id"),
		ItemID:   c.Param("itemId"),
		Date:     req.Date,
		MealTime: req.MealTime,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(*entry))
}

// StatusHistory handles GET /api/orders/:id/items/:itemId/status-history.
func (h *OrderHandler) StatusHistory(c *gin.Context) {
	entries, err := h.facade.MealStatusHistory(c.Request.Context(), CurrentActor(c), c.Param("id"), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.MealStatusEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, toEntryResponse(e))
	}
	c.JSON(http.StatusOK, response)
}

// MealSchedule handles GET /api/orders/items/meal-schedule?date=YYYY-MM-DD.
func (h *OrderHandler) MealSchedule(c *gin.Context) {
	schedule, err := h.facade.MealSchedule(c.Request.Context(), CurrentActor(c), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make(map[string][]dto.ScheduleEntryResponse, len(schedule))
	for mt, entries := range schedule {
		bucket := make([]dto.ScheduleEntryResponse, 0, len(entries))
		for _, e := range entries {
			bucket = append(bucket, dto.ScheduleEntryResponse{
				OrderID:  e.OrderID,
				ItemID:   e.ItemID,
				UserID:   e.UserID,
				Menu:     e.MenuID,
				Vendor:   e.VendorID,
				Quantity: e.Quantity,
				Status:   string(e.Status),
				Address: dto.AddressResponse{
					Street: e.Address.Street,
					City:   e.Address.City,
					Zip:    e.Address.Zip,
				},
			})
		}
		response[string(mt)] = bucket
	}
	c.JSON(http.StatusOK, response)
}
