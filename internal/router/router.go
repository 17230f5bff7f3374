package router

import (
	"time"

	"github.com/thomasasfar/api-apotek/internal/config"
	"github.com/thomasasfar/api-apotek/internal/handler"
	"github.com/thomasasfar/api-apotek/internal/middleware"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"
	"github.com/thomasasfar/api-apotek/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	supplierRepo := repository.NewSupplierRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	productRepo := repository.NewProductRepository(db)
	stockRepo := repository.NewStockRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	userSvc := service.NewUserService(userRepo, cfg)
	supplierSvc := service.NewSupplierService(supplierRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	groupSvc := service.NewGroupService(groupRepo)
	unitSvc := service.NewUnitService(unitRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, groupRepo, unitRepo, rdb, log.Logger)
	stockSvc := service.NewStockService(stockRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, stockRepo, productRepo, supplierRepo, log.Logger)
	saleSvc := service.NewSaleService(saleRepo, stockRepo, productRepo, cfg.SaleCodePrefix, log.Logger)

	// ── Handlers ─────────────────────────────────────────────────────────────
	usersH := handler.NewUsersHandler(userSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	groupsH := handler.NewGroupsHandler(groupSvc)
	unitsH := handler.NewUnitsHandler(unitSvc)
	productsH := handler.NewProductsHandler(productSvc)
	stocksH := handler.NewStocksHandler(stockSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	salesH := handler.NewSalesHandler(saleSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/api/users/login", middleware.LoginRateLimiter(), usersH.Login)
	r.GET("/api/price/:code", productsH.CheckPrice)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		admin := middleware.RequireRole(model.RoleSuperadmin)
		staff := middleware.RequireRole(model.RoleSuperadmin, model.RolePramuniaga)

		api.GET("/users/current", usersH.Current)
		users := api.Group("/users", admin)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.Search)
		}

		suppliers := api.Group("/suppliers", admin)
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.Search)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
		}

		categories := api.Group("/categories", admin)
		{
			categories.POST("", categoriesH.Create)
			categories.GET("", categoriesH.Search)
			categories.GET("/:id", categoriesH.Get)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		groups := api.Group("/groups", admin)
		{
			groups.POST("", groupsH.Create)
			groups.GET("", groupsH.Search)
			groups.GET("/:id", groupsH.Get)
			groups.PUT("/:id", groupsH.Update)
			groups.DELETE("/:id", groupsH.Delete)
		}

		units := api.Group("/units", admin)
		{
			units.POST("", unitsH.Create)
			units.GET("", unitsH.Search)
			units.GET("/:id", unitsH.Get)
			units.PUT("/:id", unitsH.Update)
			units.DELETE("/:id", unitsH.Delete)
		}

		products := api.Group("/products", admin)
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.Search)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		purchases := api.Group("/purchases", staff)
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.Search)
			purchases.GET("/:id", purchasesH.Get)
		}

		sales := api.Group("/sales", staff)
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.Search)
			sales.GET("/:id", salesH.Get)
		}

		stocks := api.Group("/stocks", staff)
		{
			stocks.GET("", stocksH.Search)
			stocks.GET("/:id", stocksH.Get)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
