package workflow

type LevelInput struct {
	Level int `json:"level" binding:"required,gt=0"`
	// Roles accepts role ids or role names; both are resolved to ids
	// before the workflow is stored.
	Roles              []string `json:"roles" binding:"required,min=1"`
	DepartmentSpecific bool     `json:"department_specific"`
	Required           bool     `json:"required"`
}

type CreateWorkflowRequest struct {
	Name       string       `json:"name" binding:"required,max=100"`
	MinDays    string       `json:"min_days" binding:"required"`
	MaxDays    string       `json:"max_days" binding:"required"`
	Levels     []LevelInput `json:"levels" binding:"required,min=1,dive"`
	CategoryID *string      `json:"category_id"`
}

type UpdateWorkflowRequest struct {
	Name       string       `json:"name" binding:"required,max=100"`
	MinDays    string       `json:"min_days" binding:"required"`
	MaxDays    string       `json:"max_days" binding:"required"`
	Levels     []LevelInput `json:"levels" binding:"required,min=1,dive"`
	IsActive   *bool        `json:"is_active"`
	CategoryID *string      `json:"category_id"`
}

type LevelResponse struct {
	Level              int      `json:"level"`
	RoleIDs            []string `json:"role_ids"`
	DepartmentSpecific bool     `json:"department_specific"`
	Required           bool     `json:"required"`
}

type WorkflowResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	MinDays    string          `json:"min_days"`
	MaxDays    string          `json:"max_days"`
	Levels     []LevelResponse `json:"levels"`
	IsActive   bool            `json:"is_active"`
	CategoryID *string         `json:"category_id,omitempty"`
}
