package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is the per-user, per-leave-type, per-year ledger record.
// Used is mutated only by the workflow engine on terminal transitions.
type LeaveBalance struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type_year"`
	LeaveTypeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type_year"`
	Year         int             `gorm:"not null;uniqueIndex:uq_balance_user_type_year"`
	Balance      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Used         decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarryForward decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining is entitlement plus carry-forward minus usage. Pending
// requests are not part of the ledger row; callers subtract them when
// computing availability.
func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.Balance.Add(b.CarryForward).Sub(b.Used)
}
