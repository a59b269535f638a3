package handlers

import (
	"net/http"
	"time"

	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
	"github.com/bacaxnot/finance-sub000/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RouteOptions carries the optional pieces of the router.
type RouteOptions struct {
	// Idempotency enables Idempotency-Key replay on mutating routes when set.
	Idempotency    portsrepo.IdempotencyRepository
	IdempotencyTTL time.Duration
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerAuthRoutes(r, services.User, services.Token)

	setupAPIV1Routes(r, cfg, services, opts)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	var mutating []gin.HandlerFunc
	if opts.Idempotency != nil {
		mutating = append(mutating, middleware.Idempotency(opts.Idempotency, opts.IdempotencyTTL))
	}

	registerUserRoutes(v1, services.User)
	registerAccountRoutes(v1, services.Account, services.Balance, services.Transaction, mutating...)
	registerTransactionRoutes(v1, services.Transaction, mutating...)
	registerCategoryRoutes(v1, services.Category, mutating...)
}

// withMiddleware returns a fresh chain of the given middleware followed by handler.
func withMiddleware(middlewares []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	chain = append(chain, middlewares...)
	return append(chain, handler)
}
