package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	accountModels "github.com/architect/backoffice/internal/accounts/models"
	accountRepo "github.com/architect/backoffice/internal/accounts/repository"
	accountServices "github.com/architect/backoffice/internal/accounts/services"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/database"
	currencyModels "github.com/architect/backoffice/internal/currency/models"
	currencyRepo "github.com/architect/backoffice/internal/currency/repository"
	currencyServices "github.com/architect/backoffice/internal/currency/services"
	geoModels "github.com/architect/backoffice/internal/geo/models"
	geoRepo "github.com/architect/backoffice/internal/geo/repository"
	geoServices "github.com/architect/backoffice/internal/geo/services"
	"github.com/architect/backoffice/pkg/config"
	"github.com/architect/backoffice/pkg/logger"
	"github.com/architect/backoffice/pkg/password"
)

// Seeds the base currency set, a starter geographic tree and the initial
// admin account. Safe to run once against an empty database.
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
	)
	if err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	clock := audit.SystemClock()

	auth := accountServices.NewAuthService(
		accountRepo.NewUserRepository(db),
		accountRepo.NewSessionRepository(db),
		password.NewManager(),
		clock,
		cfg.Auth.MaxFailedAttempts,
		cfg.Auth.LockoutDuration,
		cfg.Auth.SessionTTL,
	)

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		logger.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	admin, err := auth.CreateUser(accountModels.CreateUserRequest{
		Username: "admin",
		Email:    "admin@backoffice.local",
		Password: adminPassword,
		IsStaff:  true,
	}, uuid.Nil)
	if err != nil {
		logger.Fatal("Failed to create admin user", zap.Error(err))
	}
	logger.Info("Created admin user", zap.String("id", admin.ID.String()))

	currency := currencyServices.NewCurrencyService(
		currencyRepo.NewCurrencyRepository(db),
		currencyRepo.NewRateRepository(db),
	)

	currencies := []currencyModels.CreateCurrencyRequest{
		{Code: "PEN", Description: "Peruvian Sol", Symbol: "S/", DecimalPlaces: 2, IsBaseCurrency: true},
		{Code: "USD", Description: "US Dollar", Symbol: "$", DecimalPlaces: 2},
		{Code: "EUR", Description: "Euro", Symbol: "€", DecimalPlaces: 2},
	}
	for _, req := range currencies {
		if _, err := currency.CreateCurrency(req); err != nil {
			logger.Warn("Skipping currency", zap.String("code", req.Code), zap.Error(err))
			continue
		}
		logger.Info("Seeded currency", zap.String("code", req.Code))
	}

	geo := geoServices.NewGeoService(geoRepo.NewGeoRepository(db))

	dept, err := geo.CreateDepartment(geoModels.CreateDepartmentRequest{Description: "Lima"}, admin.ID)
	if err != nil {
		logger.Fatal("Failed to seed department", zap.Error(err))
	}
	prov, err := geo.CreateProvince(geoModels.CreateProvinceRequest{
		Description:  "Lima",
		DepartmentID: dept.ID,
	}, admin.ID)
	if err != nil {
		logger.Fatal("Failed to seed province", zap.Error(err))
	}
	districts := []string{"Miraflores", "San Isidro", "Barranco"}
	for _, name := range districts {
		_, err := geo.CreateDistrict(geoModels.CreateDistrictRequest{
			Description: name,
			ProvinceID:  prov.ID,
		}, admin.ID)
		if err != nil {
			logger.Fatal("Failed to seed district", zap.Error(err))
		}
	}

	logger.Info("Seeding complete")
}
