package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ApartmentVacant   = "vacant"
	ApartmentOccupied = "occupied"
)

type Building struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Address    string    `json:"address" db:"address"`
	City       string    `json:"city" db:"city"`
	PostalCode string    `json:"postal_code" db:"postal_code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type Apartment struct {
	ID         int             `json:"id" db:"id"`
	BuildingID int             `json:"building_id" db:"building_id"`
	Unit       string          `json:"unit" db:"unit"`
	Floor      int             `json:"floor" db:"floor"`
	Surface    float64         `json:"surface" db:"surface"`
	Rooms      int             `json:"rooms" db:"rooms"`
	Rent       decimal.Decimal `json:"rent" db:"rent"`
	Status     string          `json:"status" db:"status"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
