package production

import (
	"errors"
	"fmt"

	"brasserie-backend/internal/database"
	"brasserie-backend/internal/domain"
	"brasserie-backend/internal/models"
	"brasserie-backend/internal/recipe"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service creates and deletes production lots. Brewed lots consume their
// recipe's ingredients in the same transaction that records the lot.
type Service struct {
	db      *gorm.DB
	recipes *recipe.Service
	log     *zap.Logger
}

func NewService(db *gorm.DB, recipes *recipe.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, recipes: recipes, log: log}
}

type CreateLotInput struct {
	Name        string
	ProductType string
	RecipeID    *uint
	Volume      decimal.Decimal // liters
	UnitSize    decimal.Decimal // liters per packaged unit
}

// CreateLot records a produced batch. The unit count is the whole number of
// packaged units the volume yields. When the lot is brewed from a recipe,
// the stock debit and the lot insert either both happen or neither does.
func (s *Service) CreateLot(in CreateLotInput) (*models.ProductionLot, error) {
	if !in.Volume.IsPositive() || !in.UnitSize.IsPositive() {
		return nil, fmt.Errorf("%w: volume and unit size", domain.ErrInvalidQuantity)
	}

	lot := models.ProductionLot{
		Name:        in.Name,
		ProductType: in.ProductType,
		RecipeID:    in.RecipeID,
		Volume:      in.Volume,
		UnitSize:    in.UnitSize,
		UnitCount:   int(in.Volume.Div(in.UnitSize).Floor().IntPart()),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.RecipeID != nil {
			if in.ProductType == models.LotTypeBrewed {
				note := fmt.Sprintf("production lot %q", in.Name)
				if _, err := s.recipes.ApplyTx(tx, *in.RecipeID, in.Volume, note); err != nil {
					return err
				}
			} else if err := tx.First(&models.Recipe{}, "id = ?", *in.RecipeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: recipe %d", domain.ErrNotFound, *in.RecipeID)
				}
				return err
			}
		}
		return tx.Create(&lot).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("production lot created",
		zap.Uint("lot_id", lot.ID),
		zap.String("name", lot.Name),
		zap.String("type", lot.ProductType),
		zap.Int("unit_count", lot.UnitCount))
	return &lot, nil
}

// Delete removes a lot. Lots with recorded sales stay forever.
func (s *Service) Delete(lotID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var lot models.ProductionLot
		if err := database.ForUpdate(tx).First(&lot, "id = ?", lotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: lot %d", domain.ErrNotFound, lotID)
			}
			return err
		}
		if lot.UnitsSold > 0 {
			return fmt.Errorf("%w: %s", domain.ErrLotHasSales, lot.Name)
		}
		return tx.Delete(&lot).Error
	})
}

// List returns all lots, newest first.
func (s *Service) List() ([]models.ProductionLot, error) {
	var lots []models.ProductionLot
	if err := s.db.
		Preload("Recipe").
		Order("created_at desc, id desc").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}
