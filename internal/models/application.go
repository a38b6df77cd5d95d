package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application is a rental application for a vacant apartment. Rejection
// triggers a notice through the mailer.
type Application struct {
	ID            int             `json:"id" db:"id"`
	ApartmentID   int             `json:"apartment_id" db:"apartment_id"`
	ApplicantName string          `json:"applicant_name" db:"applicant_name"`
	Email         string          `json:"email" db:"email"`
	Phone         string          `json:"phone" db:"phone"`
	Income        decimal.Decimal `json:"income" db:"income"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
