package leavetype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Gender applicability markers. Empty ApplicableGender means the type
// applies to everyone.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type LeaveType struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description      string          `gorm:"type:text"`
	DefaultDays      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	IsActive         bool            `gorm:"not null;default:true"`
	AllowHalfDay     bool            `gorm:"not null;default:false"`
	IsCarryForward   bool            `gorm:"not null;default:false"`
	ApplicableGender string          `gorm:"type:varchar(10)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// AppliesTo reports whether this leave type may be used by a person of
// the given gender.
func (t LeaveType) AppliesTo(gender string) bool {
	return t.ApplicableGender == "" || t.ApplicableGender == gender
}
