package database

import (
	"brasserie-backend/internal/config"
	"brasserie-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.StockItem{},
		&models.StockMovement{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.ProductionLot{},
		&models.Sale{},
	)
}

// ForUpdate adds a pessimistic row lock to the query. SQLite (used by the
// test suite) has no SELECT ... FOR UPDATE; its single-writer transactions
// give the same serialization, so the clause is skipped there.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
