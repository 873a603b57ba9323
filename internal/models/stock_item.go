package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem: a raw material balance. Quantity and alert threshold are stored
// in the canonical unit (kg for mass, L for volume) and never go negative.
type StockItem struct {
	ID             uint            `gorm:"primaryKey"`
	Name           string          `gorm:"size:100;not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit           string          `gorm:"size:20;not null"` // canonical unit, fixed at creation
	Supplier       string          `gorm:"size:100"`
	AlertThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
