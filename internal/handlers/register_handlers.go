package handlers

import (
	"github.com/agencydesk/agency_desk_app/cmd/docs"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/middleware"
	"github.com/agencydesk/agency_desk_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes, rate limited per client IP
	registerAuthRoutes(r, cfg, services, newAuthRateLimiter())

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// newAuthRateLimiter builds the in-memory limiter applied to credential
// endpoints (login, register, 2FA verification, Google sign-in).
func newAuthRateLimiter() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted("10-M")
	if err != nil {
		panic(err)
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}

func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("agencyrole", func(fl validator.FieldLevel) bool {
		return domain.AgencyRole(fl.Field().String()).IsAssignable()
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerMFARoutes(v1, services.MFA)
	registerAgencyTopLevelRoutes(v1, services.Agency)

	// Everything below is scoped to one agency; membership (at any role) is
	// checked once here, the services enforce the per-operation minimums.
	agency := v1.Group("/agencies/:agency_id", middleware.RequireAgencyRole(services.Agency, domain.RoleReadOnly))

	registerAgencyScopedRoutes(agency, services.Agency)
	registerClientRoutes(agency, services.Client)
	RegisterLeadRoutes(agency, services.Lead)
	registerProjectRoutes(agency, services.Project)
	registerJobRoutes(agency, services.Job)
	registerInvoiceRoutes(agency, services.Invoice)
	registerPaymentRoutes(agency, services.Payment)
	registerLeaveRoutes(agency, services.Leave)
	registerReimbursementRoutes(agency, services.Reimbursement)
	registerNotificationRoutes(agency, services.Notification)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
