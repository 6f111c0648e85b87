package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	"github.com/BruksfildServices01/estate-listings/internal/cache"
	"github.com/BruksfildServices01/estate-listings/internal/config"
	"github.com/BruksfildServices01/estate-listings/internal/handlers"
	"github.com/BruksfildServices01/estate-listings/internal/identity"
	infraRepo "github.com/BruksfildServices01/estate-listings/internal/infra/repository"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/metrics"
	"github.com/BruksfildServices01/estate-listings/internal/middleware"
	"github.com/BruksfildServices01/estate-listings/internal/payment"
	"github.com/BruksfildServices01/estate-listings/internal/storage"
	"github.com/BruksfildServices01/estate-listings/internal/timezone"
	ucCredit "github.com/BruksfildServices01/estate-listings/internal/usecase/credit"
	ucPayment "github.com/BruksfildServices01/estate-listings/internal/usecase/payment"
	ucProperty "github.com/BruksfildServices01/estate-listings/internal/usecase/property"
	ucSession "github.com/BruksfildServices01/estate-listings/internal/usecase/session"
	"github.com/BruksfildServices01/estate-listings/internal/validators"
)

// Deps are the process-wide clients built in main. Identity may be nil.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Cache    cache.PageCache
	Audit    audit.Sink
	Blobs    storage.BlobStore
	Payments payment.Provider
	Identity identity.ExternalProvider
}

const (
	authBurst    = 10
	webhookBurst = 40
)

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.CORSMiddleware(cfg.CORSOrigins),
		middleware.RequestLogger(d.Logger),
		middleware.Metrics(d.Metrics),
		gin.Recovery(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	propertyRepo := infraRepo.NewPropertyGormRepository(d.DB)
	creditRepo := infraRepo.NewCreditGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	auditStore := audit.NewStore(d.DB)

	tokens := identity.NewTokens(cfg.JWTSecret)
	uploader := storage.NewUploader(d.Blobs, storage.NewTranscoder())

	// ======================================================
	// USE CASES
	// ======================================================
	listPropertiesUC := ucProperty.NewListProperties(propertyRepo, d.Cache)
	listUserPropertiesUC := ucProperty.NewListUserProperties(propertyRepo, d.Cache)
	getPropertyUC := ucProperty.NewGetProperty(propertyRepo)
	createListingUC := ucProperty.NewCreateListing(propertyRepo, d.Cache, d.Audit, d.Metrics)

	refillUC := ucCredit.NewRefill(creditRepo, d.Cache, d.Audit, d.Metrics)
	canListUC := ucCredit.NewCanList(creditRepo)
	plansUC := ucCredit.NewListPlans()

	createIntentUC := ucPayment.NewCreateIntent(d.Payments, d.Audit)
	handleWebhookUC := ucPayment.NewHandleWebhook(d.Payments, refillUC, d.Metrics)

	resolver := ucSession.NewResolver(tokens, userRepo, d.Identity)
	registerUC := ucSession.NewRegister(userRepo, d.Audit, validators.NewEmailDomains().Valid)
	loginUC := ucSession.NewLogin(userRepo, tokens)

	// ======================================================
	// HANDLERS
	// ======================================================
	propertyHandler := handlers.NewPropertyHandler(
		listPropertiesUC,
		listUserPropertiesUC,
		getPropertyUC,
		createListingUC,
	)
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, cfg.IsProduction())
	meHandler := handlers.NewMeHandler(canListUC)
	creditHandler := handlers.NewCreditHandler(plansUC)
	paymentHandler := handlers.NewPaymentHandler(createIntentUC, handleWebhookUC)
	uploadHandler := handlers.NewUploadHandler(uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditStore, timezone.Location(cfg.Timezone))

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// WEBHOOK (provider-signed, no session)
		// ------------------------------
		api.POST("/payments/webhook",
			middleware.RateLimit(cfg.WebhookRateLimit, webhookBurst),
			paymentHandler.Webhook,
		)

		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(cfg.AuthRateLimit, authBurst))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// ------------------------------
		// SESSION-AWARE (anonymous allowed)
		// ------------------------------
		public := api.Group("/")
		public.Use(middleware.Session(resolver))
		{
			public.GET("/properties", propertyHandler.List)
			public.GET("/properties/:id", propertyHandler.Get)

			public.GET("/credits/plans", creditHandler.Plans)
			public.GET("/credits/plans/:productId", creditHandler.Plan)

			public.POST("/payments/intent", paymentHandler.CreateIntent)
		}

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.Session(resolver), middleware.RequireUser())
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/can-list", meHandler.CanList)
			secured.GET("/me/properties", propertyHandler.Mine)

			secured.POST("/properties", propertyHandler.Create)
			secured.POST("/uploads", uploadHandler.Images)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.Session(resolver), middleware.RequireAdmin())
		{
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
