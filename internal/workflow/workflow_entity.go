package workflow

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApprovalLevel is one approval step of a workflow. Role references are
// resolved to ids at write time, so read sites never re-parse them.
type ApprovalLevel struct {
	Level              int         `json:"level"`
	RoleIDs            []uuid.UUID `json:"role_ids"`
	DepartmentSpecific bool        `json:"department_specific"`
	Required           bool        `json:"required"`
}

// HasRole reports whether roleID may approve at this level.
func (l ApprovalLevel) HasRole(roleID uuid.UUID) bool {
	for _, id := range l.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// ApprovalLevels is the ordered level list, stored as a JSONB column.
type ApprovalLevels []ApprovalLevel

func (ls ApprovalLevels) Value() (driver.Value, error) {
	return json.Marshal(ls)
}

func (ls *ApprovalLevels) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ls)
	case string:
		return json.Unmarshal([]byte(v), ls)
	case nil:
		*ls = nil
		return nil
	default:
		return fmt.Errorf("unsupported approval levels column type %T", value)
	}
}

// Sorted returns the levels ordered by level number ascending.
func (ls ApprovalLevels) Sorted() ApprovalLevels {
	out := make(ApprovalLevels, len(ls))
	copy(out, ls)
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// ByNumber returns the level with the given number.
func (ls ApprovalLevels) ByNumber(level int) (ApprovalLevel, bool) {
	for _, l := range ls {
		if l.Level == level {
			return l, true
		}
	}
	return ApprovalLevel{}, false
}

type Workflow struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_workflow_name"`
	MinDays        decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	MaxDays        decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	ApprovalLevels ApprovalLevels  `gorm:"type:jsonb;not null"`
	IsActive       bool            `gorm:"not null;default:true"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Contains reports whether days falls inside the workflow's
// [MinDays, MaxDays] window.
func (w Workflow) Contains(days decimal.Decimal) bool {
	return days.GreaterThanOrEqual(w.MinDays) && days.LessThanOrEqual(w.MaxDays)
}
