package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cantina-ativa/canteen-api/internal/application/service"
	"github.com/cantina-ativa/canteen-api/internal/config"
	"github.com/cantina-ativa/canteen-api/internal/infrastructure/repository"
	"github.com/cantina-ativa/canteen-api/internal/infrastructure/storage"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/handler"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/routes"
)

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.InfoLevel
	if cfg.App.Debug {
		level = zap.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stderr), level),
	}

	if cfg.App.LogFile != "" {
		file, err := os.OpenFile(cfg.App.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Monetary values are stored as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Ensure the data and export directories exist
	for _, dir := range []string{cfg.Storage.DataDir, cfg.Storage.ExportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("failed to create directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	maxPrice, err := decimal.NewFromString(cfg.Catalog.MaxPrice)
	if err != nil {
		logger.Fatal("invalid PRODUCT_MAX_PRICE", zap.String("value", cfg.Catalog.MaxPrice), zap.Error(err))
	}

	// Initialize the JSON document store and repositories
	store := storage.NewStore(logger)
	productRepo := repository.NewProductRepository(store, cfg.ProductsFile())
	clientRepo := repository.NewClientRepository(store, cfg.ClientsFile())
	companyRepo := repository.NewCompanyRepository(store, cfg.CompanyFile())

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, maxPrice, cfg.Catalog.LowStockAlert, logger)
	ledgerService := service.NewLedgerService(clientRepo, catalogService, logger)
	cartService := service.NewCartService(catalogService, ledgerService, logger)
	reportService := service.NewReportService(clientRepo, cfg.Storage.ExportDir, logger)
	receiptService := service.NewReceiptService(clientRepo, companyRepo, cfg.Storage.ExportDir, logger)
	companyService := service.NewCompanyService(companyRepo, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product: handler.NewProductHandler(catalogService),
		Client:  handler.NewClientHandler(ledgerService),
		Sale:    handler.NewSaleHandler(ledgerService),
		Cart:    handler.NewCartHandler(cartService),
		Report:  handler.NewReportHandler(reportService),
		Receipt: handler.NewReceiptHandler(receiptService),
		Company: handler.NewCompanyHandler(companyService),
	}

	router := routes.Setup(handlers, &routes.Deps{Cfg: cfg, Logger: logger})

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
