package notification

import (
	"context"
	"database/sql"
)

type noopNotifier struct{}

// NewNoopNotifier is used in tests and in deployments without a broker.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (n noopNotifier) WithTx(*sql.Tx) Notifier {
	return n
}

func (noopNotifier) Notify(context.Context, Notification) error {
	return nil
}
