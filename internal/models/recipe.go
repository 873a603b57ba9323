package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe owns its ingredient rows: replacing the ingredient set deletes and
// reinserts them, deleting the recipe cascades into them.
type Recipe struct {
	ID          uint               `gorm:"primaryKey"`
	Name        string             `gorm:"size:100;not null"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeIngredient links a recipe to a stock item with the consumption rate
// per liter of produced volume, in the item's canonical unit.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey"`
	RecipeID     uint `gorm:"index;not null"`
	StockItemID  uint `gorm:"index;not null"`
	StockItem    StockItem
	RatePerLiter decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}
