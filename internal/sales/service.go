package sales

import (
	"errors"
	"fmt"

	"brasserie-backend/internal/database"
	"brasserie-backend/internal/domain"
	"brasserie-backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service records sales against production lots and keeps the sold-unit
// counter in step with the sale records.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

// RecordSale creates the sale and advances the lot's sold counter in one
// transaction. The lot row is locked for the remaining-units check, so two
// concurrent sales cannot jointly oversell it.
func (s *Service) RecordSale(lotID uint, client string, unitCount int, unitPrice decimal.Decimal) (*models.Sale, error) {
	if unitCount <= 0 {
		return nil, fmt.Errorf("%w: units", domain.ErrInvalidQuantity)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", domain.ErrInvalidQuantity)
	}

	var sale models.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lot models.ProductionLot
		if err := database.ForUpdate(tx).First(&lot, "id = ?", lotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: lot %d", domain.ErrNotFound, lotID)
			}
			return err
		}

		if unitCount > lot.RemainingUnits() {
			return fmt.Errorf("%w: lot %s has %d units left, %d requested",
				domain.ErrInsufficientUnits, lot.Name, lot.RemainingUnits(), unitCount)
		}

		lot.UnitsSold += unitCount
		if err := tx.Model(&lot).Update("units_sold", lot.UnitsSold).Error; err != nil {
			return err
		}

		sale = models.Sale{
			LotID:     lot.ID,
			Client:    client,
			Units:     unitCount,
			UnitPrice: unitPrice,
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale recorded",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("lot_id", sale.LotID),
		zap.String("client", sale.Client),
		zap.Int("units", sale.Units))
	return &sale, nil
}

func (s *Service) GetSale(saleID uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Preload("Lot").First(&sale, "id = ?", saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sale %d", domain.ErrNotFound, saleID)
		}
		return nil, err
	}
	return &sale, nil
}

// ListSales returns all sales, newest first.
func (s *Service) ListSales() ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.
		Preload("Lot").
		Order("created_at desc, id desc").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// ListOpenLots returns lots that still have units to sell, newest first.
func (s *Service) ListOpenLots() ([]models.ProductionLot, error) {
	var lots []models.ProductionLot
	if err := s.db.
		Where("unit_count > units_sold").
		Order("created_at desc, id desc").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}
