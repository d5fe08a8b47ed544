package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiffinbox/tiffinbox/internal/server/http/dto"
	"github.com/tiffinbox/tiffinbox/internal/server/http/middleware"
)

// RefundHandler manages refund calculation, initiation and cancellation.
type RefundHandler struct {
	facade RefundFacade
}

// NewRefundHandler constructs RefundHandler.
func NewRefundHandler(facade RefundFacade) *RefundHandler {
	return &RefundHandler{facade: facade}
}

// Calculate handles GET /api/orders/:id/refund/calculate.
func (h *RefundHandler) Calculate(c *gin.Context) {
	calc, err := h.facade.CalculateRefund(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RefundCalculationResponse{
		SuggestedAmount:      calc.SuggestedAmount,
		ConsumedAmount:       calc.ConsumedAmount,
		ConsumedMealsCount:   calc.ConsumedMealsCount,
		TotalAlreadyRefunded: calc.TotalAlreadyRefunded,
	})
}

// Create handles POST /api/orders/:id/refund/process.
func (h *RefundHandler) Create(c *gin.Context) {
	var req dto.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	refund, err := h.facade.CreateRefund(c.Request.Context(), CurrentActor(c), c.Param("id"), req.Amount, req.Note)
	middleware.RecordRefundOperation("create", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRefundResponse(*refund))
}

// Cancel handles POST /api/orders/:id/refund/:refundId/cancel.
func (h *RefundHandler) Cancel(c *gin.Context) {
	var req dto.CancelRefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
			return
		}
	}

	refund, err := h.facade.CancelRefund(c.Request.Context(), CurrentActor(c), c.Param("id"), c.Param("refundId"), req.Remarks)
	middleware.RecordRefundOperation("cancel", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRefundResponse(*refund))
}
