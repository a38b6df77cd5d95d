package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Lease struct {
	ID          int             `json:"id" db:"id"`
	ApartmentID int             `json:"apartment_id" db:"apartment_id"`
	TenantID    int             `json:"tenant_id" db:"tenant_id"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty" db:"end_date"`
	Rent        decimal.Decimal `json:"rent" db:"rent"`
	Deposit     decimal.Decimal `json:"deposit" db:"deposit"`
	Active      bool            `json:"active" db:"active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
