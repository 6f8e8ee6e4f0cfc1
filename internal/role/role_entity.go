package role

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known role names referenced by the authorization rules. Concrete
// role rows may define more; these are the ones with special semantics.
const (
	NameAdmin    = "admin"
	NameHR       = "hr"
	NameManager  = "manager"
	NameTeamLead = "team_lead"
	NameEmployee = "employee"
)

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
