package consumer

import (
	"context"
	"encoding/json"

	"go-payslip/internal/events"
	"go-payslip/internal/ingestion"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeNotificationRequests dispatches payslip-published notifications.
// The actual delivery channel (mail, push) lives outside this service; here
// the request is handed over and the upload is marked notified.
func ConsumeNotificationRequests(
	ctx context.Context,
	reader *kafkago.Reader,
	ingestionService ingestion.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_notification")
	log.Info("payslip notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.PayslipNotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := ingestionService.MarkNotified(ctx, event.UploadID); err != nil {
			log.Error("mark upload notified failed",
				zap.String("upload_id", event.UploadID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}

		log.Info("payslip notification dispatched",
			zap.String("upload_id", event.UploadID),
			zap.String("company_id", event.CompanyID),
			zap.Time("scheduled_date", event.ScheduledDate),
		)
	}
}
