package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale: immutable record of units sold from a lot. Creating one increments
// the lot's UnitsSold in the same transaction.
type Sale struct {
	ID        uint `gorm:"primaryKey"`
	LotID     uint `gorm:"index;not null"`
	Lot       ProductionLot
	Client    string          `gorm:"size:100;not null"`
	Units     int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt time.Time
}
