package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/pkg/identity"
	"github.com/tiffinbox/tiffinbox/internal/server/http/handlers"
	"github.com/tiffinbox/tiffinbox/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. The webhook
// endpoint stays unauthenticated: the gateway signs nothing in this surface
// and payload validation is strict instead.
func Setup(facade handlers.OrderingFacade, verifier identity.Verifier, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	refundHandler := handlers.NewRefundHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.POST("/refund/webhook", webhookHandler.Refund)

	staff := api.Group("/orders")
	staff.Use(middleware.AuthRequired(verifier))
	staff.Use(middleware.RequireRoles(model.RoleAdmin, model.RoleVendor))
	staff.GET("", orderHandler.List)
	staff.GET("/items/meal-schedule", orderHandler.MealSchedule)
	staff.GET("/:id", orderHandler.Get)
	staff.PATCH("/:id/status", orderHandler.SetStatus)
	staff.PATCH("/:id/items/:itemId/meal-status", orderHandler.SetMealStatus)
	staff.GET("/:id/items/:itemId/status-history", orderHandler.StatusHistory)

	refunds := api.Group("/orders")
	refunds.Use(middleware.AuthRequired(verifier))
	refunds.Use(middleware.RequireRoles(model.RoleAdmin))
	refunds.GET("/:id/refund/calculate", refundHandler.Calculate)
	refunds.POST("/:id/refund/process", refundHandler.Create)
	refunds.POST("/:id/refund/:refundId/cancel", refundHandler.Cancel)

	return engine
}
