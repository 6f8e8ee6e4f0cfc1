package consumer

import (
	"context"
	"encoding/json"

	"github.com/dapphari007/LMS/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_notification_consumer.go -destination=mock/sender_mock.go -package=mock

// Sender delivers one decoded notification to its recipient. The
// consumer owns offsets and retries; implementations just deliver.
type Sender interface {
	Send(ctx context.Context, event events.LeaveNotificationEvent) error
}

func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	sender Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notification")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		var event events.LeaveNotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// Poison message: commit and move on.
			log.Error("decode leave notification event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.Send(ctx, event); err != nil {
			log.Error("deliver leave notification failed",
				zap.String("event_type", event.EventType),
				zap.String("recipient_id", event.RecipientID),
				zap.String("leave_request_id", event.LeaveRequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification delivered",
			zap.String("event_type", event.EventType),
			zap.String("recipient_id", event.RecipientID),
			zap.String("leave_request_id", event.LeaveRequestID),
		)
	}
}
