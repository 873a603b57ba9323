package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementIntake     MovementKind = "intake"     // initial stock on item creation
	MovementCredit     MovementKind = "credit"     // manual stock addition
	MovementDebit      MovementKind = "debit"      // manual stock removal
	MovementProduction MovementKind = "production" // consumed by a recipe application
)

// StockMovement: audit trail of every balance change on a stock item.
// Quantity is the signed delta in canonical units, Balance the quantity
// after the movement was applied.
type StockMovement struct {
	ID          uint      `gorm:"primaryKey"`
	StockItemID uint      `gorm:"index;not null"`
	StockItem   StockItem
	Kind        MovementKind    `gorm:"size:20;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note        string          `gorm:"size:255"`
	CreatedAt   time.Time
}
