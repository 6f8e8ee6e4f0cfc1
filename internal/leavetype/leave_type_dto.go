package leavetype

type LeaveTypeResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	DefaultDays      string `json:"default_days"`
	AllowHalfDay     bool   `json:"allow_half_day"`
	IsCarryForward   bool   `json:"is_carry_forward"`
	ApplicableGender string `json:"applicable_gender,omitempty"`
}

func mapToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:               t.ID.String(),
		Name:             t.Name,
		Description:      t.Description,
		DefaultDays:      t.DefaultDays.String(),
		AllowHalfDay:     t.AllowHalfDay,
		IsCarryForward:   t.IsCarryForward,
		ApplicableGender: t.ApplicableGender,
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapToResponse(t)
	}
	return resp
}
