package app

import (
	"database/sql"

	"go-payslip/internal/directory"
	"go-payslip/internal/ingestion"
	"go-payslip/internal/mapping"
	"go-payslip/internal/messaging/kafka"
	"go-payslip/internal/middleware"
	"go-payslip/internal/payrollitem"
	"go-payslip/internal/payslip"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	mappingRepo := mapping.NewRepository(gormDB)
	payrollItemRepo := payrollitem.NewRepository(gormDB)
	directoryRepo := directory.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	uploadRepo := ingestion.NewUploadRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	mappingService := mapping.NewServiceWithCache(mappingRepo, rdb)
	payrollItemService := payrollitem.NewService(payrollItemRepo)
	payslipService := payslip.NewService(payslipRepo)
	ingestionService := ingestion.NewService(
		db,
		uploadRepo,
		payrollItemRepo,
		mappingService,
		directoryRepo,
		payslipRepo,
		outboxRepo,
		ingestion.NewHTTPFetcher(nil),
		zap.L(),
	)

	// --- Handlers ---
	mappingHandler := mapping.NewHandler(mappingService)
	payrollItemHandler := payrollitem.NewHandler(payrollItemService)
	payslipHandler := payslip.NewHandler(payslipService)
	ingestionHandler := ingestion.NewHandlerWithRedis(ingestionService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.ContextLogger(zap.L()))
	{
		mapping.RegisterRoutes(api, mappingHandler)
		payrollitem.RegisterRoutes(api, payrollItemHandler)
		payslip.RegisterRoutes(api, payslipHandler)
		ingestion.RegisterRoutes(api, ingestionHandler, rdb)
	}

	return nil
}
