package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	accountAPI "github.com/ridloal/hidayah-backoffice/internal/account/api"
	accountDomain "github.com/ridloal/hidayah-backoffice/internal/account/domain"
	accountRepo "github.com/ridloal/hidayah-backoffice/internal/account/repository"
	accountService "github.com/ridloal/hidayah-backoffice/internal/account/service"
	catalogAPI "github.com/ridloal/hidayah-backoffice/internal/catalog/api"
	catalogDomain "github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	catalogRepo "github.com/ridloal/hidayah-backoffice/internal/catalog/repository"
	catalogService "github.com/ridloal/hidayah-backoffice/internal/catalog/service"
	"github.com/ridloal/hidayah-backoffice/internal/platform/config"
	"github.com/ridloal/hidayah-backoffice/internal/platform/database"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/platform/middleware"
	"github.com/ridloal/hidayah-backoffice/internal/platform/validation"
	salesAPI "github.com/ridloal/hidayah-backoffice/internal/sales/api"
	salesDomain "github.com/ridloal/hidayah-backoffice/internal/sales/domain"
	salesRepo "github.com/ridloal/hidayah-backoffice/internal/sales/repository"
	salesService "github.com/ridloal/hidayah-backoffice/internal/sales/service"
)

func mountCatalog[T catalogDomain.Entity[T]](router *gin.RouterGroup, gdb *gorm.DB, path string) {
	repo := catalogRepo.NewGormRepository[T](gdb)
	catalogAPI.NewCatalogHandler(path, catalogService.NewCatalogService(repo)).RegisterRoutes(router)
}

func main() {
	if config.LoadDotEnv() {
		logger.Info("Loaded configuration from .env")
	}
	dbCfg := config.LoadDBConfig()
	serverCfg := config.LoadServerConfig("8000") // aplikasi mobile lama memakai port 8000
	seedCfg := config.LoadSeedConfig()

	logger.Info("Starting Hidayah back-office API...")

	// Harga dikirim sebagai angka JSON, bukan string
	decimal.MarshalJSONWithoutQuotes = true
	if !validation.RegisterGin() {
		logger.Warn("gin binding validator is not go-playground/validator; decimal rules are skipped")
	}

	loc, err := time.LoadLocation(config.GetEnv("APP_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		logger.Error("Invalid APP_TIMEZONE, falling back to local time", err)
		loc = time.Local
	}

	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database", err)
		return
	}
	defer db.Close()

	gdb, err := database.OpenGorm(db)
	if err != nil {
		logger.Error("Failed to initialise gorm", err)
		return
	}
	models := append(catalogDomain.Models(), &salesDomain.Sale{}, &salesDomain.SaleItem{}, &accountDomain.User{})
	if err := gdb.AutoMigrate(models...); err != nil {
		logger.Error("Failed to migrate schema", err)
		return
	}

	// Setup Dependencies
	userService := accountService.NewUserService(accountRepo.NewPostgresUserRepository(db))
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = userService.EnsureUsers(seedCtx, []accountService.SeedUser{
		{Nama: "Administrator", Username: "admin", Role: accountDomain.RoleAdmin, Password: seedCfg.AdminPassword},
		{Nama: "Operator", Username: "operator", Role: accountDomain.RoleOperator, Password: seedCfg.OperatorPassword},
	})
	cancel()
	if err != nil {
		logger.Error("Failed to seed users", err)
		return
	}

	saleService := salesService.NewSalesService(salesRepo.NewPostgresSaleRepository(db), loc)

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())
	api := router.Group("/api")

	mountCatalog[catalogDomain.Barang](api, gdb, "barang")
	mountCatalog[catalogDomain.Jasa](api, gdb, "jasa")
	mountCatalog[catalogDomain.Distributor](api, gdb, "distributors")
	mountCatalog[catalogDomain.Karyawan](api, gdb, "employees")
	mountCatalog[catalogDomain.Kategori](api, gdb, "kategori")
	mountCatalog[catalogDomain.Pelanggan](api, gdb, "pelanggan")
	salesAPI.NewSalesHandler(saleService).RegisterRoutes(api)
	accountAPI.NewUserHandler(userService).RegisterRoutes(api)

	logger.Info("Back-office API running on port " + serverCfg.Port)
	if errSrv := router.Run(serverCfg.Port); errSrv != nil {
		logger.Error("Failed to run back-office API server", errSrv)
	}
}
