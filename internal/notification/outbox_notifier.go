package notification

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/dapphari007/LMS/internal/events"
	"github.com/dapphari007/LMS/internal/messaging/kafka"
	"github.com/dapphari007/LMS/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// outboxNotifier writes notifications to the transactional outbox; the
// producer worker drains them to Kafka.
type outboxNotifier struct {
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewOutboxNotifier(outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &outboxNotifier{outboxRepo: outboxRepo, logger: l}
}

// WithTx enlists the outbox insert in tx: the notification row exists
// exactly when the state change it announces does.
func (n *outboxNotifier) WithTx(tx *sql.Tx) Notifier {
	return &outboxNotifier{outboxRepo: n.outboxRepo.WithTx(tx), logger: n.logger}
}

func (n *outboxNotifier) Notify(ctx context.Context, notif Notification) error {
	event := events.LeaveNotificationEvent{
		EventType:      notif.EventType,
		RecipientID:    notif.RecipientID,
		LeaveRequestID: notif.LeaveRequestID,
		RequesterID:    notif.RequesterID,
		Status:         notif.Status,
		Message:        notif.Message,
		OccurredAt:     notif.OccurredAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	row := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   notif.LeaveRequestID,
		EventType:     notif.EventType,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}

	if err := n.outboxRepo.Create(ctx, row); err != nil {
		return err
	}

	n.logger.Debug("notification enqueued",
		zap.String("event_type", notif.EventType),
		zap.String("recipient_id", notif.RecipientID),
		zap.String("leave_request_id", notif.LeaveRequestID),
	)
	return nil
}
