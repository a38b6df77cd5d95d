package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentLate    = "late"
)

type Payment struct {
	ID        int             `json:"id" db:"id"`
	LeaseID   int             `json:"lease_id" db:"lease_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	DueDate   time.Time       `json:"due_date" db:"due_date"`
	PaidAt    *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
	Method    string          `json:"method" db:"method"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// OnTime reports whether the payment was settled no later than the end
// of its due day. Due dates are date-only, so a payment made any time on
// the due day still counts as on time. Pending payments are never on
// time.
func (p Payment) OnTime() bool {
	if p.PaidAt == nil {
		return false
	}
	dueEnd := time.Date(p.DueDate.Year(), p.DueDate.Month(), p.DueDate.Day(), 23, 59, 59, 0, p.DueDate.Location())
	return !p.PaidAt.After(dueEnd)
}
