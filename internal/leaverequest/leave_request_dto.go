package leaverequest

import "time"

type CreateLeaveRequestRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	RequestType string `json:"request_type" binding:"omitempty,oneof=full_day first_half second_half"`
	Reason      string `json:"reason" binding:"omitempty,max=1000"`
}

type DecisionRequest struct {
	Comments string `json:"comments" binding:"omitempty,max=1000"`
}

type LeaveRequestResponse struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	LeaveTypeID      string           `json:"leave_type_id"`
	StartDate        string           `json:"start_date"`
	EndDate          string           `json:"end_date"`
	RequestType      string           `json:"request_type"`
	NumberOfDays     string           `json:"number_of_days"`
	Reason           string           `json:"reason,omitempty"`
	Status           string           `json:"status"`
	ApproverID       string           `json:"approver_id,omitempty"`
	ApproverComments string           `json:"approver_comments,omitempty"`
	ApprovedAt       *time.Time       `json:"approved_at,omitempty"`
	Metadata         WorkflowMetadata `json:"metadata"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// DeleteOutcome tells the caller whether the row was removed or parked
// in the deletion-approval flow.
type DeleteOutcome struct {
	Deleted         bool   `json:"deleted"`
	PendingDeletion bool   `json:"pending_deletion"`
	Status          string `json:"status,omitempty"`
}

// OverlapDetail is attached to overlap conflict errors so the caller
// can show which requests collide.
type OverlapDetail struct {
	RequestID string `json:"request_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

const dateLayout = "2006-01-02"

func mapToResponse(r *LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:               r.ID.String(),
		UserID:           r.UserID.String(),
		LeaveTypeID:      r.LeaveTypeID.String(),
		StartDate:        r.StartDate.Format(dateLayout),
		EndDate:          r.EndDate.Format(dateLayout),
		RequestType:      r.RequestType,
		NumberOfDays:     r.NumberOfDays.String(),
		Reason:           r.Reason,
		Status:           r.Status,
		ApproverComments: r.ApproverComments,
		ApprovedAt:       r.ApprovedAt,
		Metadata:         r.Metadata,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.ApproverID != nil {
		resp.ApproverID = r.ApproverID.String()
	}
	return resp
}

func mapOverlapDetails(requests []LeaveRequest) []OverlapDetail {
	details := make([]OverlapDetail, len(requests))
	for i, r := range requests {
		details[i] = OverlapDetail{
			RequestID: r.ID.String(),
			StartDate: r.StartDate.Format(dateLayout),
			EndDate:   r.EndDate.Format(dateLayout),
			Status:    r.Status,
		}
	}
	return details
}
