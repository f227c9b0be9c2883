package handlers

import (
	"time"

	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/middleware"
	"github.com/propbooks/propbooks_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes behind the actor and rate limit middleware
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Rate limit by client IP. The format comes from config, e.g. "300-M".
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		rate = limiter.Rate{Period: time.Minute, Limit: 300}
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	// Every v1 route requires the pre-authenticated actor identity header;
	// authentication itself happens upstream at the platform gateway.
	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter), middleware.ActorMiddleware())

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, services.Account, services.Reporting)
	registerCategoryRoutes(v1, services.Category)
	registerExchangeRateRoutes(v1, services.ExchangeRate)
	registerJournalRoutes(v1, services.Journal)
	registerDocumentRoutes(v1, services.Document)
	registerReportingRoutes(v1, services.Reporting)
	registerLedgerRoutes(v1, services.Reporting)
	registerAuditRoutes(v1, services.Audit)
}
