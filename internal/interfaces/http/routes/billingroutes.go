package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/skolar-inc/skolar/internal/interfaces/http/handlers"
	"github.com/skolar-inc/skolar/internal/interfaces/http/middleware"
	"github.com/skolar-inc/skolar/internal/shared/constants"
)

// BillingRouteConfig holds dependencies for the review workflow routes.
type BillingRouteConfig struct {
	BillingHandler *handlers.BillingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupBillingRoutes configures the subscription request review routes.
func SetupBillingRoutes(api *gin.RouterGroup, cfg *BillingRouteConfig) {
	requests := api.Group("/admin/subscription-requests")
	requests.Use(cfg.AuthMiddleware.RequireAuth())
	requests.Use(middleware.RequireRole(constants.RoleAdmin, constants.RoleReviewer))
	{
		requests.GET("", cfg.BillingHandler.ListRequests)
		requests.GET("/:id", cfg.BillingHandler.GetRequest)
		requests.POST("/:id/decide", cfg.BillingHandler.DecideRequest)
	}
}
