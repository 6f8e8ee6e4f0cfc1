package leaverequest

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending           = "pending"
	StatusPartiallyApproved = "partially_approved"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusCancelled         = "cancelled"
	StatusPendingDeletion   = "pending_deletion"
)

const (
	RequestTypeFullDay    = "full_day"
	RequestTypeFirstHalf  = "first_half"
	RequestTypeSecondHalf = "second_half"
)

// HalfDayCount is the day value of a half-day request.
var HalfDayCount = decimal.NewFromFloat(0.5)

// ApprovalHistoryEntry records one completed approval step.
type ApprovalHistoryEntry struct {
	Level        int       `json:"level"`
	ApproverID   string    `json:"approver_id"`
	ApproverName string    `json:"approver_name"`
	ApprovedAt   time.Time `json:"approved_at"`
	Comments     string    `json:"comments,omitempty"`
}

// WorkflowMetadata is the request's denormalized approval state, stored
// as a JSONB column. RequiredApprovalLevels is fixed at creation time
// with the requester's own-role levels already filtered out, so the
// request survives later workflow edits or deletion intact.
type WorkflowMetadata struct {
	RequestUserRole        string                 `json:"request_user_role"`
	WorkflowID             string                 `json:"workflow_id"`
	CurrentApprovalLevel   int                    `json:"current_approval_level"`
	RequiredApprovalLevels []int                  `json:"required_approval_levels"`
	ApprovalHistory        []ApprovalHistoryEntry `json:"approval_history"`
	IsFullyApproved        bool                   `json:"is_fully_approved"`

	DeletionRequestedBy       string     `json:"deletion_requested_by,omitempty"`
	DeletionRequestedAt       *time.Time `json:"deletion_requested_at,omitempty"`
	OriginalStatus            string     `json:"original_status,omitempty"`
	DeletionRejectedBy        string     `json:"deletion_rejected_by,omitempty"`
	DeletionRejectedAt        *time.Time `json:"deletion_rejected_at,omitempty"`
	DeletionRejectionComments string     `json:"deletion_rejection_comments,omitempty"`
}

func (m WorkflowMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *WorkflowMetadata) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = WorkflowMetadata{}
		return nil
	default:
		return fmt.Errorf("unsupported workflow metadata column type %T", value)
	}
}

// NextRequiredLevel returns the lowest required level strictly above
// CurrentApprovalLevel, or 0 when every required level is done. Level
// numbers need not be contiguous.
func (m WorkflowMetadata) NextRequiredLevel() int {
	for _, lvl := range m.RequiredApprovalLevels {
		if lvl > m.CurrentApprovalLevel {
			return lvl
		}
	}
	return 0
}

// HighestRequiredLevel returns the last required level, or 0 when the
// list is empty.
func (m WorkflowMetadata) HighestRequiredLevel() int {
	if len(m.RequiredApprovalLevels) == 0 {
		return 0
	}
	return m.RequiredApprovalLevels[len(m.RequiredApprovalLevels)-1]
}

type LeaveRequest struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	LeaveTypeID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	StartDate        time.Time        `gorm:"type:date;not null"`
	EndDate          time.Time        `gorm:"type:date;not null"`
	RequestType      string           `gorm:"type:varchar(20);not null;default:'full_day'"`
	NumberOfDays     decimal.Decimal  `gorm:"type:numeric(5,2);not null"`
	Reason           string           `gorm:"type:text"`
	Status           string           `gorm:"type:varchar(30);not null;default:'pending';index"`
	ApproverID       *uuid.UUID       `gorm:"type:uuid"`
	ApproverComments string           `gorm:"type:text"`
	ApprovedAt       *time.Time       `gorm:"type:timestamptz"`
	Metadata         WorkflowMetadata `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsHalfDay reports whether this request covers half of a single day.
func (r LeaveRequest) IsHalfDay() bool {
	return r.RequestType == RequestTypeFirstHalf || r.RequestType == RequestTypeSecondHalf
}
