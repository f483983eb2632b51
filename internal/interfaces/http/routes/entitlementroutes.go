package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/skolar-inc/skolar/internal/interfaces/http/handlers"
	"github.com/skolar-inc/skolar/internal/interfaces/http/middleware"
)

// EntitlementRouteConfig holds dependencies for entitlement lookup routes.
type EntitlementRouteConfig struct {
	EntitlementHandler *handlers.EntitlementHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// SetupEntitlementRoutes configures the school entitlement routes.
func SetupEntitlementRoutes(api *gin.RouterGroup, cfg *EntitlementRouteConfig) {
	schools := api.Group("/schools")
	schools.Use(cfg.AuthMiddleware.RequireAuth())
	{
		schools.GET("/:id/entitlement", cfg.EntitlementHandler.GetEntitlement)
	}
}
