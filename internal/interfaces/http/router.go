package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/skolar-inc/skolar/internal/application/billing/usecases"
	"github.com/skolar-inc/skolar/internal/domain/billing"
	"github.com/skolar-inc/skolar/internal/infrastructure/auth"
	"github.com/skolar-inc/skolar/internal/infrastructure/cache"
	"github.com/skolar-inc/skolar/internal/infrastructure/config"
	"github.com/skolar-inc/skolar/internal/infrastructure/persistence/schema"
	"github.com/skolar-inc/skolar/internal/infrastructure/repository"
	"github.com/skolar-inc/skolar/internal/interfaces/http/handlers"
	"github.com/skolar-inc/skolar/internal/interfaces/http/middleware"
	"github.com/skolar-inc/skolar/internal/interfaces/http/routes"
	"github.com/skolar-inc/skolar/internal/shared/db"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

// Router owns the gin engine and the wiring of the billing workflow.
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	logger logger.Interface
}

func NewRouter(gdb *gorm.DB, cfg *config.Config, logger logger.Interface) *Router {
	return &Router{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		logger: logger,
	}
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// SetupRoutes builds every repository, use case, and handler, and mounts the
// route tree.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	probe := schema.NewProbe(r.db, r.logger)
	tm := db.NewTransactionManager(r.db)

	requests := repository.NewRequestRepository(r.db, probe, r.logger)
	plans := repository.NewPlanRepository(r.db, r.logger)
	proofs := repository.NewProofRepository(r.db, probe, r.logger)
	subscriptions := repository.NewSubscriptionRepository(r.db, probe, r.logger)
	auditLogs := repository.NewAuditLogRepository(r.db, probe, r.logger)
	calculator := billing.NewPeriodCalculator(subscriptions)

	entitlements := r.buildEntitlementCache()

	decideUC := usecases.NewDecideRequestUseCase(
		requests, plans, proofs, subscriptions, calculator,
		auditLogs, entitlements, tm, r.logger,
	)
	listUC := usecases.NewListRequestsUseCase(requests, r.logger)
	getUC := usecases.NewGetRequestUseCase(requests, r.logger)
	entitlementUC := usecases.NewGetEntitlementUseCase(subscriptions, entitlements, r.logger)

	jwtService := auth.NewJWTService(r.cfg.Auth.JWT.Secret, r.cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, r.logger)

	billingHandler := handlers.NewBillingHandler(decideUC, listUC, getUC)
	entitlementHandler := handlers.NewEntitlementHandler(entitlementUC)
	healthHandler := handlers.NewHealthHandler(r.db)

	r.engine.GET("/health", healthHandler.Health)

	api := r.engine.Group("/api/v1")
	routes.SetupBillingRoutes(api, &routes.BillingRouteConfig{
		BillingHandler: billingHandler,
		AuthMiddleware: authMiddleware,
	})
	routes.SetupEntitlementRoutes(api, &routes.EntitlementRouteConfig{
		EntitlementHandler: entitlementHandler,
		AuthMiddleware:     authMiddleware,
	})
}

func (r *Router) buildEntitlementCache() cache.EntitlementCache {
	if !r.cfg.Redis.Enabled {
		return cache.NoopEntitlementCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     r.cfg.Redis.GetAddr(),
		Password: r.cfg.Redis.Password,
		DB:       r.cfg.Redis.DB,
	})
	ttl := time.Duration(r.cfg.Billing.EntitlementCacheTTL) * time.Second

	return cache.NewRedisEntitlementCache(client, ttl, r.logger)
}
