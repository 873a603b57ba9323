package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LotTypeBrewed = "brewed" // consumes its recipe's ingredients on creation
	LotTypeOther  = "other"
)

// ProductionLot: a produced batch packaged into UnitCount sellable units.
// UnitsSold only ever grows and never exceeds UnitCount.
type ProductionLot struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null"`
	ProductType string  `gorm:"size:20;not null"`
	RecipeID    *uint   `gorm:"index"`
	Recipe      *Recipe
	Volume      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // liters
	UnitSize    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // liters per unit
	UnitCount   int             `gorm:"not null"`
	UnitsSold   int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l *ProductionLot) RemainingUnits() int {
	return l.UnitCount - l.UnitsSold
}
