package recipe

import (
	"errors"
	"fmt"
	"sort"

	"brasserie-backend/internal/database"
	"brasserie-backend/internal/domain"
	"brasserie-backend/internal/models"
	"brasserie-backend/internal/stock"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns recipes and their ingredient lists, and converts a recipe
// into stock consumption when it is applied.
type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	strict bool
}

// NewService builds the catalog. With strict enabled, malformed ingredient
// specs fail the whole operation instead of being dropped.
func NewService(db *gorm.DB, log *zap.Logger, strict bool) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log, strict: strict}
}

// IngredientSpec is one user-entered ingredient row: which stock item and
// how much of it one liter of produced volume consumes.
type IngredientSpec struct {
	StockItemID  uint
	RatePerLiter decimal.Decimal
}

// Consumption is one line of the plan returned by Apply.
type Consumption struct {
	StockItemID uint
	Name        string
	Unit        string
	Required    decimal.Decimal
}

// Create persists the recipe and its ingredient rows in one transaction.
func (s *Service) Create(name string, specs []IngredientSpec) (*models.Recipe, error) {
	rec := models.Recipe{Name: name}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := s.buildIngredients(tx, specs)
		if err != nil {
			return err
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].RecipeID = rec.ID
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		rec.Ingredients = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("recipe created",
		zap.Uint("recipe_id", rec.ID),
		zap.String("name", rec.Name),
		zap.Int("ingredients", len(rec.Ingredients)))
	return &rec, nil
}

// Update renames the recipe and replaces its whole ingredient set:
// delete-all-then-reinsert, atomically.
func (s *Service) Update(recipeID uint, name string, specs []IngredientSpec) (*models.Recipe, error) {
	var rec models.Recipe

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: recipe %d", domain.ErrNotFound, recipeID)
			}
			return err
		}

		rows, err := s.buildIngredients(tx, specs)
		if err != nil {
			return err
		}

		rec.Name = name
		if err := tx.Model(&rec).Update("name", name).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].RecipeID = recipeID
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		rec.Ingredients = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the recipe and cascades into its ingredient rows. Recipes
// still referenced by a production lot cannot be deleted.
func (s *Service) Delete(recipeID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var rec models.Recipe
		if err := tx.First(&rec, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: recipe %d", domain.ErrNotFound, recipeID)
			}
			return err
		}

		var lots int64
		if err := tx.Model(&models.ProductionLot{}).Where("recipe_id = ?", recipeID).Count(&lots).Error; err != nil {
			return err
		}
		if lots > 0 {
			return fmt.Errorf("%w: %s", domain.ErrRecipeInUse, rec.Name)
		}

		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&rec).Error
	})
}

// List returns all recipes with their ingredients, in creation order.
func (s *Service) List() ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.
		Preload("Ingredients.StockItem").
		Order("id asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Apply consumes the recipe's ingredients for the given produced volume.
// All-or-nothing: if any single ingredient is under-stocked, nothing is
// debited.
func (s *Service) Apply(recipeID uint, volume decimal.Decimal) ([]Consumption, error) {
	var plan []Consumption
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		plan, err = s.ApplyTx(tx, recipeID, volume, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ApplyTx runs the two-phase consumption inside a caller-owned transaction
// so lot creation can combine it with the lot insert. All affected stock
// rows are locked up front, in id order to keep concurrent applications
// deadlock-free; the validation pass then runs against the locked balances
// before anything is debited.
func (s *Service) ApplyTx(tx *gorm.DB, recipeID uint, volume decimal.Decimal, note string) ([]Consumption, error) {
	if !volume.IsPositive() {
		return nil, fmt.Errorf("%w: volume", domain.ErrInvalidQuantity)
	}

	var rec models.Recipe
	if err := tx.Preload("Ingredients").First(&rec, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", domain.ErrNotFound, recipeID)
		}
		return nil, err
	}

	itemIDs := make([]uint, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		itemIDs = append(itemIDs, ing.StockItemID)
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	var items []models.StockItem
	if len(itemIDs) > 0 {
		if err := database.ForUpdate(tx).Where("id IN ?", itemIDs).Order("id").Find(&items).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[uint]*models.StockItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	// Validation pass: every ingredient must be fully covered before any
	// balance is touched.
	plan := make([]Consumption, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		item, ok := byID[ing.StockItemID]
		if !ok {
			return nil, fmt.Errorf("%w: stock item %d", domain.ErrNotFound, ing.StockItemID)
		}
		required := ing.RatePerLiter.Mul(volume)
		if item.Quantity.LessThan(required) {
			return nil, fmt.Errorf("%w: %s has %s %s, %s required",
				domain.ErrInsufficientStock, item.Name, item.Quantity, item.Unit, required)
		}
		plan = append(plan, Consumption{
			StockItemID: item.ID,
			Name:        item.Name,
			Unit:        item.Unit,
			Required:    required,
		})
	}

	if note == "" {
		note = fmt.Sprintf("recipe %q applied for %s L", rec.Name, volume)
	}

	// Commit pass.
	for _, line := range plan {
		if err := stock.DebitLocked(tx, byID[line.StockItemID], line.Required, models.MovementProduction, note); err != nil {
			return nil, err
		}
	}

	s.log.Info("recipe applied",
		zap.Uint("recipe_id", rec.ID),
		zap.String("name", rec.Name),
		zap.String("volume", volume.String()))
	return plan, nil
}

// buildIngredients turns user-entered specs into ingredient rows. Rows with
// a missing stock item id or a non-positive rate are dropped in lenient
// mode and rejected in strict mode; an id that points to no stock item is
// always an error.
func (s *Service) buildIngredients(tx *gorm.DB, specs []IngredientSpec) ([]models.RecipeIngredient, error) {
	rows := make([]models.RecipeIngredient, 0, len(specs))
	for _, spec := range specs {
		if spec.StockItemID == 0 || !spec.RatePerLiter.IsPositive() {
			if s.strict {
				return nil, fmt.Errorf("%w: ingredient needs a stock item and a positive rate", domain.ErrInvalidQuantity)
			}
			s.log.Debug("skipping malformed ingredient spec",
				zap.Uint("stock_item_id", spec.StockItemID),
				zap.String("rate", spec.RatePerLiter.String()))
			continue
		}

		var item models.StockItem
		if err := tx.First(&item, "id = ?", spec.StockItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: stock item %d", domain.ErrNotFound, spec.StockItemID)
			}
			return nil, err
		}

		rows = append(rows, models.RecipeIngredient{
			StockItemID:  spec.StockItemID,
			RatePerLiter: spec.RatePerLiter,
		})
	}
	return rows, nil
}
