package handlers

import (
	"github.com/SscSPs/fin_manager_app/cmd/docs"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/SscSPs/fin_manager_app/internal/platform/config"
	"github.com/SscSPs/fin_manager_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Dependencies carries the transport-level collaborators shared by the route groups.
type Dependencies struct {
	Cookies middleware.SessionCookies
	// LoginLimiter throttles the login and signup endpoints per client IP. Nil disables it.
	LoginLimiter *limiter.Limiter
	// Analytics may be nil.
	Analytics *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes. The session gate is expected to be
// installed on the engine already.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)

	registerAuthRoutes(r, services.Session, services.User, deps.Cookies, deps.LoginLimiter)
	registerProfileRoutes(r.Group("/api"), services.User)

	setupAPIV1Routes(r, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific resource route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, deps Dependencies) {
	v1 := r.Group("/api/v1")

	registerUserRoutes(v1.Group("", middleware.RequireRole(domain.RoleAdmin)), services.User)
	registerEntityRoutes(v1, services.Entity)
	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction)
	registerTransferRoutes(v1, services.Transfer, deps.Analytics)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
