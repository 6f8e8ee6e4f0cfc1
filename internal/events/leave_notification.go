package events

import "time"

const LeaveNotificationTopic = "hr.leave.notification.v1"

// LeaveNotificationEvent carries one user-facing message about a leave
// request transition. The payload is self-contained so the consumer can
// deliver it without querying the database.
type LeaveNotificationEvent struct {
	EventType      string    `json:"event_type"`
	RecipientID    string    `json:"recipient_id"`
	LeaveRequestID string    `json:"leave_request_id"`
	RequesterID    string    `json:"requester_id"`
	Status         string    `json:"status"`
	Message        string    `json:"message"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const (
	EventLeaveSubmitted        = "leave.submitted"
	EventLeaveApprovalRequired = "leave.approval_required"
	EventLeaveApproved         = "leave.approved"
	EventLeaveRejected         = "leave.rejected"
	EventLeaveCancelled        = "leave.cancelled"
	EventLeaveDeleted          = "leave.deleted"
	EventLeaveDeletionPending  = "leave.deletion_pending"
	EventLeaveDeletionApproved = "leave.deletion_approved"
	EventLeaveDeletionRejected = "leave.deletion_rejected"
)
