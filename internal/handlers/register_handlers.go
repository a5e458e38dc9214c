package handlers

import (
	"net/http"

	"github.com/SscSPs/docflow_app/cmd/docs"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/SscSPs/docflow_app/internal/middleware"
	"github.com/SscSPs/docflow_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", healthCheck)

	// Register public authentication routes
	RegisterAuthRoutes(r, middleware.NewMemoryRateLimiter(cfg.LoginRateLimit), services.User, services.TokenService)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterUserRoutes(v1, service.User)
	RegisterDocumentRoutes(v1, service.Workflow, service.History, cfg.MaxUploadBytes)
	RegisterAssistantRoutes(v1, service.Assistant)
	RegisterCatalogRoutes(v1, service.Catalog)
	RegisterReportingRoutes(v1, service.Reporting)
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

// healthCheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.Envelope
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK("OK", nil))
}
