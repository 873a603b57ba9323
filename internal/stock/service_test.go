package stock

import (
	"testing"

	"brasserie-backend/internal/database"
	"brasserie-backend/internal/domain"
	"brasserie-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// One connection keeps every pooled query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateItemNormalizesUnits(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	item, err := svc.CreateItem(CreateItemInput{
		Name:           "Hops",
		Quantity:       dec("500"),
		Unit:           "g",
		Supplier:       "Hopsteiner",
		AlertThreshold: dec("100"),
	})
	require.NoError(t, err)

	assert.Equal(t, "kg", item.Unit)
	assert.Equal(t, "0.5", item.Quantity.String())
	assert.Equal(t, "0.1", item.AlertThreshold.String())
}

func TestCreateItemRejectsNegativeQuantity(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	_, err := svc.CreateItem(CreateItemInput{Name: "Malt", Quantity: dec("-1"), Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreditAndDebit(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	item, err := svc.CreateItem(CreateItemInput{Name: "Malt", Quantity: dec("10"), Unit: "kg"})
	require.NoError(t, err)

	item, err = svc.Credit(item.ID, dec("2.5"))
	require.NoError(t, err)
	assert.Equal(t, "12.5", item.Quantity.String())

	item, err = svc.Debit(item.ID, dec("4"))
	require.NoError(t, err)
	assert.Equal(t, "8.5", item.Quantity.String())
}

func TestDebitNeverGoesNegative(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	item, err := svc.CreateItem(CreateItemInput{Name: "Malt", Quantity: dec("1.5"), Unit: "kg"})
	require.NoError(t, err)

	_, err = svc.Debit(item.ID, dec("2"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The failed debit must not leave a partial change behind.
	got, err := svc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.5", got.Quantity.String())
}

func TestDebitExactBalanceSucceeds(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	item, err := svc.CreateItem(CreateItemInput{Name: "Malt", Quantity: dec("3"), Unit: "kg"})
	require.NoError(t, err)

	item, err = svc.Debit(item.ID, dec("3"))
	require.NoError(t, err)
	assert.Equal(t, "0", item.Quantity.String())
}

func TestAdjustValidation(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	item, err := svc.CreateItem(CreateItemInput{Name: "Malt", Quantity: dec("1"), Unit: "kg"})
	require.NoError(t, err)

	_, err = svc.Debit(item.ID, dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = svc.Credit(item.ID, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Debit(999, dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Credit(999, dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAlertThresholdScenario(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	item, err := svc.CreateItem(CreateItemInput{
		Name:           "Malt",
		Quantity:       dec("10"),
		Unit:           "kg",
		AlertThreshold: dec("2"),
	})
	require.NoError(t, err)
	assert.False(t, IsBelowThreshold(*item))

	item, err = svc.Debit(item.ID, dec("8.5"))
	require.NoError(t, err)
	assert.Equal(t, "1.5", item.Quantity.String())
	assert.True(t, IsBelowThreshold(*item))
}

func TestDeleteItemBlockedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	item, err := svc.CreateItem(CreateItemInput{Name: "Malt", Quantity: dec("10"), Unit: "kg"})
	require.NoError(t, err)

	rec := models.Recipe{Name: "Pale Ale"}
	require.NoError(t, db.Create(&rec).Error)
	require.NoError(t, db.Create(&models.RecipeIngredient{
		RecipeID:     rec.ID,
		StockItemID:  item.ID,
		RatePerLiter: dec("0.2"),
	}).Error)

	err = svc.DeleteItem(item.ID)
	assert.ErrorIs(t, err, domain.ErrItemInUse)

	// Drop the reference; deletion goes through.
	require.NoError(t, db.Where("recipe_id = ?", rec.ID).Delete(&models.RecipeIngredient{}).Error)
	require.NoError(t, svc.DeleteItem(item.ID))

	_, err = svc.GetItem(item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementsTrackEveryChange(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	item, err := svc.CreateItem(CreateItemInput{Name: "Malt", Quantity: dec("10"), Unit: "kg"})
	require.NoError(t, err)
	_, err = svc.Credit(item.ID, dec("5"))
	require.NoError(t, err)
	_, err = svc.Debit(item.ID, dec("3"))
	require.NoError(t, err)

	movements, err := svc.Movements(item.ID)
	require.NoError(t, err)
	require.Len(t, movements, 3)

	// Newest first.
	assert.Equal(t, models.MovementDebit, movements[0].Kind)
	assert.Equal(t, "-3", movements[0].Quantity.String())
	assert.Equal(t, "12", movements[0].Balance.String())
	assert.Equal(t, models.MovementCredit, movements[1].Kind)
	assert.Equal(t, models.MovementIntake, movements[2].Kind)
}

func TestListItemsInCreationOrder(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	for _, name := range []string{"Malt", "Hops", "Yeast"} {
		_, err := svc.CreateItem(CreateItemInput{Name: name, Quantity: dec("1"), Unit: "kg"})
		require.NoError(t, err)
	}

	items, err := svc.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Malt", items[0].Name)
	assert.Equal(t, "Hops", items[1].Name)
	assert.Equal(t, "Yeast", items[2].Name)
}
