package consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/dapphari007/LMS/internal/events"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// logSender is the default delivery channel: it records the message in
// the application log and deduplicates redeliveries through redis, so a
// consumer restart does not notify the same recipient twice.
type logSender struct {
	rdb    *redis.Client
	logger *zap.Logger
}

const dedupeTTL = 24 * time.Hour

func NewLogSender(rdb *redis.Client, logger *zap.Logger) Sender {
	return &logSender{rdb: rdb, logger: logger.Named("notification.sender")}
}

func (s *logSender) Send(ctx context.Context, event events.LeaveNotificationEvent) error {
	if s.rdb != nil {
		key := fmt.Sprintf("notif:%s:%s:%s", event.LeaveRequestID, event.EventType, event.RecipientID)
		fresh, err := s.rdb.SetNX(ctx, key, 1, dedupeTTL).Result()
		if err == nil && !fresh {
			s.logger.Debug("duplicate notification suppressed", zap.String("key", key))
			return nil
		}
		// On redis failure deliver anyway; a duplicate beats a lost message.
	}

	s.logger.Info("notification",
		zap.String("recipient_id", event.RecipientID),
		zap.String("event_type", event.EventType),
		zap.String("leave_request_id", event.LeaveRequestID),
		zap.String("status", event.Status),
		zap.String("message", event.Message),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
