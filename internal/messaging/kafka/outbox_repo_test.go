package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/dapphari007/LMS/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     uuid.NewString(),
		AggregateType: "leave_request",
		AggregateID:   uuid.NewString(),
		EventType:     "leave.submitted",
		Topic:         "hr.leave.notification.v1",
		Payload:       []byte(`{"event_type":"leave.submitted"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event := validEvent()
		mock.ExpectExec("INSERT INTO notification_outbox").
			WithArgs(
				event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := kafka.NewOutboxRepository(db)
		assert.NoError(t, repo.Create(context.Background(), event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid event never touches the database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event := validEvent()
		event.Payload = nil

		repo := kafka.NewOutboxRepository(db)
		assert.Error(t, repo.Create(context.Background(), event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "coalesce",
	}).AddRow(
		uuid.NewString(), "leave_request", uuid.NewString(), "leave.approved",
		"hr.leave.notification.v1", []byte(`{}`), kafka.OutboxStatusPending, 0, now,
	)

	mock.ExpectQuery("FROM notification_outbox").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	repo := kafka.NewOutboxRepository(db)
	events, err := repo.ListDue(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "leave.approved", events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkTransitions(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.NewString()
	mock.ExpectExec("UPDATE notification_outbox").
		WithArgs(id, kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE notification_outbox").
		WithArgs(id, kafka.OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := kafka.NewOutboxRepository(db)
	assert.NoError(t, repo.MarkSent(context.Background(), id))
	assert.NoError(t, repo.MarkFailed(context.Background(), id, "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*kafka.OutboxEvent)
		wantErr bool
	}{
		{name: "valid", mutate: func(e *kafka.OutboxEvent) {}},
		{name: "missing id", mutate: func(e *kafka.OutboxEvent) { e.ID = "" }, wantErr: true},
		{name: "missing topic", mutate: func(e *kafka.OutboxEvent) { e.Topic = "" }, wantErr: true},
		{name: "empty payload", mutate: func(e *kafka.OutboxEvent) { e.Payload = nil }, wantErr: true},
		{name: "unknown status", mutate: func(e *kafka.OutboxEvent) { e.Status = "queued" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent()
			tt.mutate(&event)
			err := kafka.ValidateOutboxEvent(event)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
