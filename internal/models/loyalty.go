package models

import (
	"github.com/shopspring/decimal"
)

const (
	TierBronze  = "Bronze"
	TierArgent  = "Argent"
	TierOr      = "Or"
	TierPlatine = "Platine"

	PointsOnTimePayment = 10
	PointsLatePayment   = 2
)

// LoyaltySummary is the tenant-facing view of the points program.
type LoyaltySummary struct {
	TenantID     int             `json:"tenant_id"`
	Balance      int             `json:"balance"`
	Tier         string          `json:"tier"`
	OnTimeCount  int             `json:"on_time_count"`
	TotalCount   int             `json:"total_count"`
	Punctuality  decimal.Decimal `json:"punctuality"`
}

// PointsForPayment returns the accrual for one settled rent payment.
func PointsForPayment(onTime bool) int {
	if onTime {
		return PointsOnTimePayment
	}
	return PointsLatePayment
}

// TierForBalance maps a point balance to its tier.
func TierForBalance(balance int) string {
	switch {
	case balance >= 600:
		return TierPlatine
	case balance >= 300:
		return TierOr
	case balance >= 100:
		return TierArgent
	default:
		return TierBronze
	}
}

// PunctualityScore is onTime/total rounded to two decimals, zero when the
// tenant has no settled payments yet.
func PunctualityScore(onTime, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(onTime)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}
