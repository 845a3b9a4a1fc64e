package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	accountHandlers "github.com/architect/backoffice/internal/accounts/handlers"
	accountModels "github.com/architect/backoffice/internal/accounts/models"
	accountRepo "github.com/architect/backoffice/internal/accounts/repository"
	accountServices "github.com/architect/backoffice/internal/accounts/services"
	catalogHandlers "github.com/architect/backoffice/internal/catalog/handlers"
	catalogModels "github.com/architect/backoffice/internal/catalog/models"
	catalogRepo "github.com/architect/backoffice/internal/catalog/repository"
	catalogServices "github.com/architect/backoffice/internal/catalog/services"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/database"
	commonHandlers "github.com/architect/backoffice/internal/common/handlers"
	"github.com/architect/backoffice/internal/common/health"
	"github.com/architect/backoffice/internal/common/middleware"
	currencyHandlers "github.com/architect/backoffice/internal/currency/handlers"
	currencyModels "github.com/architect/backoffice/internal/currency/models"
	currencyRepo "github.com/architect/backoffice/internal/currency/repository"
	currencyServices "github.com/architect/backoffice/internal/currency/services"
	geoHandlers "github.com/architect/backoffice/internal/geo/handlers"
	geoModels "github.com/architect/backoffice/internal/geo/models"
	geoRepo "github.com/architect/backoffice/internal/geo/repository"
	geoServices "github.com/architect/backoffice/internal/geo/services"
	peopleHandlers "github.com/architect/backoffice/internal/people/handlers"
	peopleModels "github.com/architect/backoffice/internal/people/models"
	peopleRepo "github.com/architect/backoffice/internal/people/repository"
	peopleServices "github.com/architect/backoffice/internal/people/services"
	storeHandlers "github.com/architect/backoffice/internal/store/handlers"
	storeModels "github.com/architect/backoffice/internal/store/models"
	storeRepo "github.com/architect/backoffice/internal/store/repository"
	storeServices "github.com/architect/backoffice/internal/store/services"
	"github.com/architect/backoffice/pkg/config"
	"github.com/architect/backoffice/pkg/logger"
	"github.com/architect/backoffice/pkg/password"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	err = database.Migrate(db,
		&accountModels.User{},
		&accountModels.Session{},
		&geoModels.Department{},
		&geoModels.Province{},
		&geoModels.District{},
		&currencyModels.CurrencyType{},
		&currencyModels.ExchangeRate{},
		&catalogModels.Category{},
		&catalogModels.Tag{},
		&catalogModels.Product{},
		&storeModels.Coupon{},
		&storeModels.Order{},
		&storeModels.OrderItem{},
		&peopleModels.Person{},
		&peopleModels.Address{},
	)
	if err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	clock := audit.SystemClock()
	transitions := audit.NewTransitioner(db, clock)
	passwords := password.NewManager()

	users := accountRepo.NewUserRepository(db)
	sessions := accountRepo.NewSessionRepository(db)
	auth := accountServices.NewAuthService(
		users, sessions, passwords, clock,
		cfg.Auth.MaxFailedAttempts,
		cfg.Auth.LockoutDuration,
		cfg.Auth.SessionTTL,
	)

	geo := geoServices.NewGeoService(geoRepo.NewGeoRepository(db))

	currencies := currencyRepo.NewCurrencyRepository(db)
	rates := currencyRepo.NewRateRepository(db)
	currency := currencyServices.NewCurrencyService(currencies, rates)

	categories := catalogRepo.NewCategoryRepository(db)
	products := catalogRepo.NewProductRepository(db)
	tags := catalogRepo.NewTagRepository(db)
	categoryService := catalogServices.NewCategoryService(categories)
	productService := catalogServices.NewProductService(products, categories, transitions)
	tagService := catalogServices.NewTagService(tags)

	coupons := storeServices.NewCouponService(storeRepo.NewCouponRepository(db), clock)
	orders := storeServices.NewOrderService(
		storeRepo.NewOrderRepository(db), products, coupons, transitions, clock, logger.Get())

	people := peopleServices.NewPeopleService(
		peopleRepo.NewPeopleRepository(db), geo, transitions, clock)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ClientIPMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.ErrorHandler())

	healthHandler := commonHandlers.NewHealthHandler(health.NewChecker(db, version))
	router.GET("/health", healthHandler.Health)
	router.GET("/health/liveness", healthHandler.Liveness)
	router.GET("/health/readiness", healthHandler.Readiness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := accountHandlers.NewAuthHandler(auth)
	geoHandler := geoHandlers.NewGeoHandler(geo)
	currencyHandler := currencyHandlers.NewCurrencyHandler(currency)
	catalogHandler := catalogHandlers.NewCatalogHandler(categoryService, productService, tagService)
	storeHandler := storeHandlers.NewStoreHandler(orders, coupons)
	peopleHandler := peopleHandlers.NewPeopleHandler(people)

	requireAuth := middleware.AuthRequired(auth)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", requireAuth, authHandler.Logout)
			authGroup.GET("/me", requireAuth, authHandler.Me)
			authGroup.POST("/users", requireAuth, authHandler.CreateUser)
			authGroup.POST("/password", requireAuth, authHandler.ChangePassword)
		}

		geoGroup := v1.Group("/geo")
		{
			geoGroup.GET("/departments", geoHandler.ListDepartments)
			geoGroup.POST("/departments", requireAuth, geoHandler.CreateDepartment)
			geoGroup.GET("/departments/:id/provinces", geoHandler.ListProvinces)
			geoGroup.POST("/provinces", requireAuth, geoHandler.CreateProvince)
			geoGroup.GET("/provinces/:id/districts", geoHandler.ListDistricts)
			geoGroup.POST("/districts", requireAuth, geoHandler.CreateDistrict)
		}

		currencyGroup := v1.Group("/currencies")
		{
			currencyGroup.GET("", currencyHandler.ListCurrencies)
			currencyGroup.POST("", requireAuth, currencyHandler.CreateCurrency)
			currencyGroup.POST("/rates", requireAuth, currencyHandler.RegisterRate)
			currencyGroup.GET("/convert", currencyHandler.Convert)
		}

		catalogGroup := v1.Group("/catalog")
		{
			catalogGroup.GET("/categories", catalogHandler.ListCategories)
			catalogGroup.POST("/categories", requireAuth, catalogHandler.CreateCategory)
			catalogGroup.GET("/categories/:id", catalogHandler.GetCategory)
			catalogGroup.GET("/categories/:id/ancestors", catalogHandler.CategoryAncestors)
			catalogGroup.GET("/categories/:id/descendants", catalogHandler.CategoryDescendants)

			catalogGroup.GET("/tags", catalogHandler.ListTags)
			catalogGroup.POST("/tags", requireAuth, catalogHandler.CreateTag)

			catalogGroup.GET("/products", catalogHandler.ListProducts)
			catalogGroup.POST("/products", requireAuth, catalogHandler.CreateProduct)
			catalogGroup.GET("/products/search", catalogHandler.SearchProducts)
			catalogGroup.GET("/products/:id", catalogHandler.GetProduct)
			catalogGroup.POST("/products/:id/stock", requireAuth, catalogHandler.AdjustStock)
			catalogGroup.DELETE("/products/:id", requireAuth, catalogHandler.DeleteProduct)

			catalogGroup.POST("/products/bulk/delete", requireAuth, catalogHandler.BulkDeleteProducts)
			catalogGroup.POST("/products/bulk/restore", requireAuth, catalogHandler.BulkRestoreProducts)
			catalogGroup.POST("/products/bulk/block", requireAuth, catalogHandler.BulkBlockProducts)
			catalogGroup.POST("/products/bulk/unblock", requireAuth, catalogHandler.BulkUnblockProducts)
		}

		storeGroup := v1.Group("/store")
		{
			storeGroup.GET("/coupons", requireAuth, storeHandler.ListCoupons)
			storeGroup.POST("/coupons", requireAuth, storeHandler.CreateCoupon)

			storeGroup.GET("/orders", requireAuth, storeHandler.ListOrders)
			storeGroup.POST("/orders", requireAuth, storeHandler.CreateOrder)
			storeGroup.GET("/orders/:id", requireAuth, storeHandler.GetOrder)
			storeGroup.POST("/orders/:id/coupon", requireAuth, storeHandler.ApplyCoupon)
			storeGroup.POST("/orders/:id/pay", requireAuth, storeHandler.PayOrder)
			storeGroup.POST("/orders/:id/ship", requireAuth, storeHandler.ShipOrder)
			storeGroup.POST("/orders/:id/deliver", requireAuth, storeHandler.DeliverOrder)
			storeGroup.POST("/orders/:id/cancel", requireAuth, storeHandler.CancelOrder)
			storeGroup.DELETE("/orders/:id", requireAuth, storeHandler.DeleteOrder)
		}

		peopleGroup := v1.Group("/people")
		{
			peopleGroup.GET("", requireAuth, peopleHandler.ListPersons)
			peopleGroup.POST("", requireAuth, peopleHandler.CreatePerson)
			peopleGroup.GET("/:id", requireAuth, peopleHandler.GetPerson)
			peopleGroup.POST("/:id/approve", requireAuth, peopleHandler.ApprovePerson)
			peopleGroup.POST("/:id/reject", requireAuth, peopleHandler.RejectPerson)
			peopleGroup.POST("/:id/block", requireAuth, peopleHandler.BlockPerson)
			peopleGroup.POST("/:id/unblock", requireAuth, peopleHandler.UnblockPerson)
			peopleGroup.DELETE("/:id", requireAuth, peopleHandler.DeletePerson)
			peopleGroup.GET("/:id/addresses", requireAuth, peopleHandler.ListAddresses)
			peopleGroup.POST("/:id/addresses", requireAuth, peopleHandler.AddAddress)
		}
	}

	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("address", address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
