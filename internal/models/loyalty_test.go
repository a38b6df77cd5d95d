package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPointsForPayment(t *testing.T) {
	if got := PointsForPayment(true); got != 10 {
		t.Errorf("PointsForPayment(on time) = %d, want 10", got)
	}
	if got := PointsForPayment(false); got != 2 {
		t.Errorf("PointsForPayment(late) = %d, want 2", got)
	}
}

func TestTierForBalance(t *testing.T) {
	tests := []struct {
		balance int
		want    string
	}{
		{0, TierBronze},
		{99, TierBronze},
		{100, TierArgent},
		{299, TierArgent},
		{300, TierOr},
		{599, TierOr},
		{600, TierPlatine},
		{1500, TierPlatine},
	}

	for _, tt := range tests {
		if got := TierForBalance(tt.balance); got != tt.want {
			t.Errorf("TierForBalance(%d) = %q, want %q", tt.balance, got, tt.want)
		}
	}
}

func TestPunctualityScore(t *testing.T) {
	tests := []struct {
		name   string
		onTime int
		total  int
		want   string
	}{
		{"no payments yet", 0, 0, "0"},
		{"all on time", 5, 5, "1"},
		{"none on time", 0, 4, "0"},
		{"two thirds rounded", 2, 3, "0.67"},
		{"three quarters", 3, 4, "0.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			if err != nil {
				t.Fatalf("bad want %q: %v", tt.want, err)
			}
			if got := PunctualityScore(tt.onTime, tt.total); !got.Equal(want) {
				t.Errorf("PunctualityScore(%d, %d) = %s, want %s", tt.onTime, tt.total, got, want)
			}
		})
	}
}

func TestPaymentOnTime(t *testing.T) {
	// due_date is a DATE column, so the due date scans as midnight.
	due := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	paidBefore := due.Add(-48 * time.Hour)
	paidDueDayMorning := due.Add(10 * time.Hour)
	paidDueDayEnd := due.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	paidNextDay := due.Add(24 * time.Hour)

	tests := []struct {
		name   string
		paidAt *time.Time
		want   bool
	}{
		{"paid early", &paidBefore, true},
		{"paid on the morning of the due day", &paidDueDayMorning, true},
		{"paid at the end of the due day", &paidDueDayEnd, true},
		{"paid the next day", &paidNextDay, false},
		{"never paid", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payment{DueDate: due, PaidAt: tt.paidAt}
			if got := p.OnTime(); got != tt.want {
				t.Errorf("OnTime() = %v, want %v", got, tt.want)
			}
		})
	}
}
