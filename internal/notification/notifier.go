package notification

import (
	"context"
	"database/sql"
	"time"
)

// Notification is one message addressed to one user about a leave
// request transition.
type Notification struct {
	RecipientID    string
	LeaveRequestID string
	RequesterID    string
	EventType      string
	Status         string
	Message        string
	OccurredAt     time.Time
}

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock

// Notifier enqueues notifications for delivery. WithTx binds the
// notifier to the caller's transaction, so the enqueued row commits or
// rolls back together with the state change it announces. Failures are
// the caller's to log, never to propagate into the request outcome.
type Notifier interface {
	WithTx(tx *sql.Tx) Notifier
	Notify(ctx context.Context, n Notification) error
}
