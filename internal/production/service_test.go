package production

import (
	"testing"

	"brasserie-backend/internal/database"
	"brasserie-backend/internal/domain"
	"brasserie-backend/internal/models"
	"brasserie-backend/internal/recipe"
	"brasserie-backend/internal/stock"

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
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newServices(t *testing.T) (*gorm.DB, *stock.Service, *recipe.Service, *Service) {
	t.Helper()
	db := newTestDB(t)
	stockSvc := stock.NewService(db, nil)
	recipeSvc := recipe.NewService(db, nil, false)
	return db, stockSvc, recipeSvc, NewService(db, recipeSvc, nil)
}

func TestCreateLotUnitCount(t *testing.T) {
	_, _, _, svc := newServices(t)

	lot, err := svc.CreateLot(CreateLotInput{
		Name:        "Batch 1",
		ProductType: models.LotTypeOther,
		Volume:      dec("100"),
		UnitSize:    dec("0.33"),
	})
	require.NoError(t, err)
	assert.Equal(t, 303, lot.UnitCount)
	assert.Equal(t, 0, lot.UnitsSold)
	assert.Equal(t, 303, lot.RemainingUnits())
}

func TestCreateLotRejectsNonPositiveInputs(t *testing.T) {
	_, _, _, svc := newServices(t)

	_, err := svc.CreateLot(CreateLotInput{Name: "Batch", ProductType: models.LotTypeOther, Volume: dec("0"), UnitSize: dec("0.33")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.CreateLot(CreateLotInput{Name: "Batch", ProductType: models.LotTypeOther, Volume: dec("10"), UnitSize: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateBrewedLotConsumesRecipe(t *testing.T) {
	db, stockSvc, recipeSvc, svc := newServices(t)

	malt, err := stockSvc.CreateItem(stock.CreateItemInput{Name: "Malt", Quantity: dec("10"), Unit: "kg"})
	require.NoError(t, err)
	rec, err := recipeSvc.Create("Pale Ale", []recipe.IngredientSpec{
		{StockItemID: malt.ID, RatePerLiter: dec("0.2")},
	})
	require.NoError(t, err)

	lot, err := svc.CreateLot(CreateLotInput{
		Name:        "Batch 1",
		ProductType: models.LotTypeBrewed,
		RecipeID:    &rec.ID,
		Volume:      dec("10"),
		UnitSize:    dec("0.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, lot.UnitCount)

	got, err := stockSvc.GetItem(malt.ID)
	require.NoError(t, err)
	assert.Equal(t, "8", got.Quantity.String())

	// The lot name ends up in the movement note.
	movements, err := stockSvc.Movements(malt.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, models.MovementProduction, movements[0].Kind)
	assert.Contains(t, movements[0].Note, "Batch 1")

	var count int64
	require.NoError(t, db.Model(&models.ProductionLot{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateBrewedLotFailsAtomically(t *testing.T) {
	db, stockSvc, recipeSvc, svc := newServices(t)

	malt, err := stockSvc.CreateItem(stock.CreateItemInput{Name: "Malt", Quantity: dec("1.5"), Unit: "kg"})
	require.NoError(t, err)
	rec, err := recipeSvc.Create("Pale Ale", []recipe.IngredientSpec{
		{StockItemID: malt.ID, RatePerLiter: dec("0.2")},
	})
	require.NoError(t, err)

	_, err = svc.CreateLot(CreateLotInput{
		Name:        "Batch 1",
		ProductType: models.LotTypeBrewed,
		RecipeID:    &rec.ID,
		Volume:      dec("10"),
		UnitSize:    dec("0.5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Neither the lot nor any stock change survives.
	var count int64
	require.NoError(t, db.Model(&models.ProductionLot{}).Count(&count).Error)
	assert.Zero(t, count)

	got, err := stockSvc.GetItem(malt.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.5", got.Quantity.String())
}

func TestCreateOtherLotDoesNotConsumeStock(t *testing.T) {
	_, stockSvc, recipeSvc, svc := newServices(t)

	malt, err := stockSvc.CreateItem(stock.CreateItemInput{Name: "Malt", Quantity: dec("10"), Unit: "kg"})
	require.NoError(t, err)
	rec, err := recipeSvc.Create("Pale Ale", []recipe.IngredientSpec{
		{StockItemID: malt.ID, RatePerLiter: dec("0.2")},
	})
	require.NoError(t, err)

	_, err = svc.CreateLot(CreateLotInput{
		Name:        "Cider batch",
		ProductType: models.LotTypeOther,
		RecipeID:    &rec.ID,
		Volume:      dec("10"),
		UnitSize:    dec("0.5"),
	})
	require.NoError(t, err)

	got, err := stockSvc.GetItem(malt.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", got.Quantity.String())
}

func TestCreateLotUnknownRecipe(t *testing.T) {
	_, _, _, svc := newServices(t)

	unknown := uint(42)
	_, err := svc.CreateLot(CreateLotInput{
		Name:        "Batch",
		ProductType: models.LotTypeBrewed,
		RecipeID:    &unknown,
		Volume:      dec("10"),
		UnitSize:    dec("0.5"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteLotBlockedOnceSold(t *testing.T) {
	db, _, _, svc := newServices(t)

	lot, err := svc.CreateLot(CreateLotInput{
		Name:        "Batch 1",
		ProductType: models.LotTypeOther,
		Volume:      dec("10"),
		UnitSize:    dec("0.5"),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.ProductionLot{}).Where("id = ?", lot.ID).Update("units_sold", 1).Error)

	err = svc.Delete(lot.ID)
	assert.ErrorIs(t, err, domain.ErrLotHasSales)

	require.NoError(t, db.Model(&models.ProductionLot{}).Where("id = ?", lot.ID).Update("units_sold", 0).Error)
	require.NoError(t, svc.Delete(lot.ID))

	err = svc.Delete(lot.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
