package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	catalogapp "github.com/lucamadonia/dpp-backend/internal/application/catalog"
	identityapp "github.com/lucamadonia/dpp-backend/internal/application/identity"
	inventoryapp "github.com/lucamadonia/dpp-backend/internal/application/inventory"
	labelapp "github.com/lucamadonia/dpp-backend/internal/application/label"
	passportapp "github.com/lucamadonia/dpp-backend/internal/application/passport"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/auth"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/cache"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/config"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/logger"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/persistence"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/rendering"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/storage"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/telemetry"
	"github.com/lucamadonia/dpp-backend/internal/interfaces/http/handler"
	"github.com/lucamadonia/dpp-backend/internal/interfaces/http/middleware"
	"github.com/lucamadonia/dpp-backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting DPP Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if tracerProvider.IsEnabled() {
		if err := db.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	designRepo := persistence.NewGormLabelDesignRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)

	// Public passport cache: Redis when enabled, in-process otherwise
	var passportCache passportapp.PassportCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisPassportCache(&cfg.Redis, cfg.Passport.CacheTTL, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis cache", zap.Error(err))
			}
		}()
		passportCache = redisCache
		log.Info("Passport cache backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		memCache := cache.NewInMemoryPassportCache(cfg.Passport.CacheTTL)
		defer memCache.Close()
		passportCache = memCache
		log.Info("Passport cache backed by in-process store")
	}

	// PDF renderer
	var pdfRenderer rendering.PDFRenderer
	if cfg.Rendering.ChromeEnabled {
		pdfRenderer, err = rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
			DefaultTimeout: cfg.Rendering.RenderTimeout,
			NoSandbox:      true, // containers run Chrome as root
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
	} else {
		pdfRenderer = rendering.NewDisabledRenderer()
		log.Warn("PDF rendering disabled, label render requests will fail")
	}
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	// Artifact storage for rendered labels
	artifactStorage, err := storage.NewArtifactStorage(&cfg.Storage, cfg.Passport.PublicBaseURL, log)
	if err != nil {
		log.Fatal("Failed to initialize artifact storage", zap.Error(err))
	}
	if s3Store, ok := artifactStorage.(*storage.S3ArtifactStorage); ok {
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	identityService := identityapp.NewIdentityService(tenantRepo, userRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo, tenantRepo, log)
	passportService := passportapp.NewPassportService(
		batchRepo, productRepo, tenantRepo,
		passportCache, cfg.Passport.CacheTTL, cfg.Passport.PublicBaseURL, log,
	)
	inventoryService := inventoryapp.NewInventoryService(stockRepo, batchRepo, log)
	labelService := labelapp.NewLabelService(
		designRepo, batchRepo, productRepo, tenantRepo,
		rendering.NewHTMLBuilder(log), pdfRenderer, artifactStorage,
		cfg.Passport.PublicBaseURL, cfg.Rendering.RenderTimeout, log,
	)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(identityService)
	tenantHandler := handler.NewTenantHandler(identityService)
	userHandler := handler.NewUserHandler(identityService)
	productHandler := handler.NewProductHandler(productService)
	batchHandler := handler.NewBatchHandler(passportService)
	labelHandler := handler.NewLabelHandler(labelService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	publicHandler := handler.NewPublicPassportHandler(passportService)
	systemHandler := handler.NewSystemHandler(db.DB)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, recovery, request logging, security
	// headers, CORS, then tracing
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORSWithConfig(middleware.CORSFromHTTPConfig(&cfg.HTTP)))
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	// Health endpoints outside API versioning
	engine.GET("/healthz", systemHandler.Healthz)
	engine.GET("/readyz", systemHandler.Readyz)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Public routes: registration, login and the consumer passport page
	publicAuthRoutes := router.NewDomainGroup("auth-public", "/auth")
	publicAuthRoutes.POST("/register", authHandler.Register)
	publicAuthRoutes.POST("/login", authHandler.Login)

	publicPassportRoutes := router.NewDomainGroup("public", "/public")
	publicPassportRoutes.GET("/passports/:slug", publicHandler.GetPassport)

	r.RegisterPublic(publicAuthRoutes)
	r.RegisterPublic(publicPassportRoutes)

	// Everything below requires a valid access token
	r.UseProtected(middleware.JWTAuthMiddleware(jwtService, log))

	adminOnly := middleware.RequireRole("admin")
	canEdit := middleware.RequireRole("admin", "editor")

	// Account routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Tenant self-management
	tenantRoutes := router.NewDomainGroup("tenant", "/tenant")
	tenantRoutes.GET("", tenantHandler.GetTenant)
	tenantRoutes.PUT("", adminOnly, tenantHandler.UpdateTenant)
	tenantRoutes.PUT("/plan", adminOnly, tenantHandler.ChangePlan)

	// User management
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(adminOnly)
	userRoutes.POST("", userHandler.CreateUser)
	userRoutes.GET("", userHandler.ListUsers)
	userRoutes.GET("/:id", userHandler.GetUser)
	userRoutes.PUT("/:id", userHandler.UpdateUser)
	userRoutes.DELETE("/:id", userHandler.DeleteUser)
	userRoutes.POST("/:id/activate", userHandler.ActivateUser)
	userRoutes.POST("/:id/deactivate", userHandler.DeactivateUser)

	// Product catalog
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.POST("", canEdit, productHandler.CreateProduct)
	productRoutes.GET("", productHandler.ListProducts)
	productRoutes.GET("/:id", productHandler.GetProduct)
	productRoutes.PUT("/:id", canEdit, productHandler.UpdateProduct)
	productRoutes.DELETE("/:id", canEdit, productHandler.DeleteProduct)
	productRoutes.PUT("/:id/materials", canEdit, productHandler.SetMaterials)
	productRoutes.POST("/:id/certifications", canEdit, productHandler.AddCertification)
	productRoutes.DELETE("/:id/certifications", canEdit, productHandler.RemoveCertification)
	productRoutes.PUT("/:id/carbon", canEdit, productHandler.SetCarbonFootprint)
	productRoutes.POST("/:id/activate", canEdit, productHandler.ActivateProduct)
	productRoutes.POST("/:id/deactivate", canEdit, productHandler.DeactivateProduct)
	productRoutes.POST("/:id/discontinue", canEdit, productHandler.DiscontinueProduct)

	// Batches and passport lifecycle
	batchRoutes := router.NewDomainGroup("batches", "/batches")
	batchRoutes.POST("", canEdit, batchHandler.CreateBatch)
	batchRoutes.GET("", batchHandler.ListBatches)
	batchRoutes.GET("/:id", batchHandler.GetBatch)
	batchRoutes.PUT("/:id", canEdit, batchHandler.UpdateBatch)
	batchRoutes.DELETE("/:id", canEdit, batchHandler.DeleteBatch)
	batchRoutes.POST("/:id/publish", canEdit, batchHandler.PublishBatch)
	batchRoutes.POST("/:id/archive", canEdit, batchHandler.ArchiveBatch)

	// Label editor, templates and rendering
	labelRoutes := router.NewDomainGroup("labels", "/labels")
	labelRoutes.GET("/designs", labelHandler.ListDesigns)
	labelRoutes.GET("/designs/:category", labelHandler.GetDesign)
	labelRoutes.PUT("/designs/:category", canEdit, labelHandler.SaveDesign)
	labelRoutes.DELETE("/designs/:category", canEdit, labelHandler.ResetDesign)
	labelRoutes.GET("/templates", labelHandler.ListTemplates)
	labelRoutes.GET("/templates/:id", labelHandler.GetTemplate)
	labelRoutes.GET("/fields", labelHandler.ListFields)
	labelRoutes.POST("/render", canEdit, labelHandler.RenderLabel)
	labelRoutes.POST("/preview", labelHandler.PreviewDesign)

	// Stock tracking
	stockRoutes := router.NewDomainGroup("stock", "/stock")
	stockRoutes.POST("/receive", canEdit, inventoryHandler.ReceiveStock)
	stockRoutes.POST("/ship", canEdit, inventoryHandler.ShipStock)
	stockRoutes.POST("/adjust", canEdit, inventoryHandler.AdjustStock)
	stockRoutes.GET("", inventoryHandler.ListStock)
	stockRoutes.GET("/:id", inventoryHandler.GetStockItem)
	stockRoutes.GET("/:id/movements", inventoryHandler.ListMovements)
	stockRoutes.GET("/products/:productID", inventoryHandler.StockByProduct)

	// System info
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(authRoutes).
		Register(tenantRoutes).
		Register(userRoutes).
		Register(productRoutes).
		Register(batchRoutes).
		Register(labelRoutes).
		Register(stockRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
