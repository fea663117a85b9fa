package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-payslip/internal/directory"
	"go-payslip/internal/events"
	"go-payslip/internal/ingestion"
	"go-payslip/internal/mapping"
	"go-payslip/internal/messaging/kafka"
	"go-payslip/internal/messaging/kafka/consumer"
	"go-payslip/internal/payrollitem"
	"go-payslip/internal/payslip"
	"go-payslip/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	uploadRepo := ingestion.NewUploadRepository(gormDB)
	payrollItemRepo := payrollitem.NewRepository(gormDB)
	mappingService := mapping.NewService(mapping.NewRepository(gormDB))
	directoryRepo := directory.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ingestionService := ingestion.NewService(
		sqlDB,
		uploadRepo,
		payrollItemRepo,
		mappingService,
		directoryRepo,
		payslipRepo,
		outboxRepo,
		ingestion.NewHTTPFetcher(nil),
		zap.L(),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayslipNotificationRequestedTopic,
		GroupID:        "go-payslip-notification",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeNotificationRequests(ctx, reader, ingestionService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
