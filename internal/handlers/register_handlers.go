package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/vip_gift_workflow/cmd/docs"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
	"github.com/SscSPs/vip_gift_workflow/internal/middleware"
	"github.com/SscSPs/vip_gift_workflow/internal/platform/config"
	"github.com/SscSPs/vip_gift_workflow/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	gatherer prometheus.Gatherer,
	posthogClient *utils.PosthogClientWrapper,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	setupAPIV1Routes(r, cfg, services, posthogClient)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(posthogClient))

	var guards []gin.HandlerFunc
	if limiterInstance, err := middleware.NewMemoryLimiter(cfg.BulkActionRateLimit); err != nil {
		slog.Warn("Invalid BULK_ACTION_RATE_LIMIT, bulk actions are not rate limited",
			slog.String("rate", cfg.BulkActionRateLimit), slog.String("error", err.Error()))
	} else {
		guards = append(guards, middleware.RateLimit(limiterInstance))
	}

	RegisterBulkActionRoutes(v1, services.BulkAction, guards...)
	RegisterGiftRoutes(v1, services.Gift)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
