package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/server/http/dto"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

// WebhookHandler receives asynchronous gateway notifications.
type WebhookHandler struct {
	facade WebhookFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Refund handles POST /api/refund/webhook. The gateway redelivers on any
// non-2xx response, so validation failures return 400 (drop the payload) while
// internal errors return 500 (force redelivery).
func (h *WebhookHandler) Refund(c *gin.Context) {
	var payload dto.RefundWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}
	if payload.Type != dto.RefundWebhookType {
		// Unrelated event types are acknowledged without processing.
		c.Status(http.StatusOK)
		return
	}

	refund := payload.Data.Refund
	err := h.facade.HandleRefundWebhook(c.Request.Context(), usecase.RefundWebhook{
		OrderID:    refund.OrderID,
		CFRefundID: refund.CFRefundID.String(),
		RefundID:   refund.RefundID,
		Amount:     refund.RefundAmount,
		Currency:   refund.RefundCurrency,
		Status:     model.RefundStatus(refund.RefundStatus),
		Note:       refund.RefundNote,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidInput) {
			respondError(c, err)
			return
		}
		// Version conflicts and other internal failures must surface as 500
		// so the gateway retries the delivery.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}
	c.Status(http.StatusOK)
}
