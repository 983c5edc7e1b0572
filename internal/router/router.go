package router

import (
	"time"

	"github.com/IAmPiHi/StockSystem/internal/config"
	"github.com/IAmPiHi/StockSystem/internal/handler"
	"github.com/IAmPiHi/StockSystem/internal/middleware"
	"github.com/IAmPiHi/StockSystem/internal/report"
	"github.com/IAmPiHi/StockSystem/internal/repository"
	"github.com/IAmPiHi/StockSystem/internal/service"
	"github.com/IAmPiHi/StockSystem/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// The aggregator and materializer are built in main (the scheduler shares
// them) and injected here.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, agg *report.Aggregator, mat *report.Materializer) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, saleRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, dispatcher, nil)
	reportSvc := service.NewReportService(agg, mat, saleSvc, rdb, nil)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	reportsH := handler.NewReportsHandler(reportSvc, nil)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: clerk, admin — declared per-endpoint
		v1.GET("/categories", middleware.RequireRole("clerk", "admin"), categoriesH.List)
		v1.POST("/categories", middleware.RequireRole("admin"), categoriesH.Create)

		v1.GET("/products", middleware.RequireRole("clerk", "admin"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("clerk", "admin"), productsH.Get)
		// Adding stock and deleting are admin operations
		v1.POST("/products", middleware.RequireRole("admin"), productsH.Add)
		v1.DELETE("/products/:id", middleware.RequireRole("admin"), productsH.Delete)

		v1.POST("/sales", middleware.RequireRole("clerk", "admin"), salesH.Sell)
		v1.GET("/sales", middleware.RequireRole("clerk", "admin"), salesH.Recent)

		reports := v1.Group("/reports", middleware.RequireRole("clerk", "admin"))
		{
			reports.GET("/dashboard", reportsH.Dashboard)
			reports.GET("/artifacts", reportsH.ListArtifacts)
			reports.GET("/artifacts/:name", reportsH.ReadArtifact)
			// Manual exports are admin operations
			reports.POST("/daily", middleware.RequireRole("admin"), reportsH.GenerateDaily)
			reports.POST("/monthly", middleware.RequireRole("admin"), reportsH.GenerateMonthly)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
