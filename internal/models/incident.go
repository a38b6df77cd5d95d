package models

import "time"

const (
	IncidentOpen       = "open"
	IncidentInProgress = "in_progress"
	IncidentResolved   = "resolved"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Incident struct {
	ID          int        `json:"id" db:"id"`
	ApartmentID int        `json:"apartment_id" db:"apartment_id"`
	ReporterID  int        `json:"reporter_id" db:"reporter_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Priority    string     `json:"priority" db:"priority"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
}

func ValidIncidentPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidIncidentStatus(s string) bool {
	return s == IncidentOpen || s == IncidentInProgress || s == IncidentResolved
}
