package stock

import (
	"errors"
	"fmt"

	"brasserie-backend/internal/database"
	"brasserie-backend/internal/domain"
	"brasserie-backend/internal/models"
	"brasserie-backend/internal/units"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns stock item balances. Every balance change happens inside a
// transaction and leaves a StockMovement row behind.
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

type CreateItemInput struct {
	Name           string
	Quantity       decimal.Decimal
	Unit           string
	Supplier       string
	AlertThreshold decimal.Decimal
}

// CreateItem normalizes the quantity and the alert threshold with the same
// input unit and stores both in the canonical unit.
func (s *Service) CreateItem(in CreateItemInput) (*models.StockItem, error) {
	qty, canonical := units.ToCanonical(in.Quantity, in.Unit)
	threshold, _ := units.ToCanonical(in.AlertThreshold, in.Unit)

	if qty.IsNegative() || threshold.IsNegative() {
		return nil, fmt.Errorf("%w: quantity and alert threshold cannot be negative", domain.ErrInvalidQuantity)
	}

	item := models.StockItem{
		Name:           in.Name,
		Quantity:       qty,
		Unit:           canonical,
		Supplier:       in.Supplier,
		AlertThreshold: threshold,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return recordMovement(tx, &item, models.MovementIntake, qty, "initial stock")
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stock item created",
		zap.Uint("item_id", item.ID),
		zap.String("name", item.Name),
		zap.String("quantity", item.Quantity.String()),
		zap.String("unit", item.Unit))
	return &item, nil
}

// Credit adds stock. Amount is expected in the item's canonical unit.
func (s *Service) Credit(itemID uint, amount decimal.Decimal) (*models.StockItem, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: credit amount", domain.ErrInvalidQuantity)
	}

	var item models.StockItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := LockItem(tx, itemID, &item); err != nil {
			return err
		}
		item.Quantity = item.Quantity.Add(amount)
		if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
			return err
		}
		return recordMovement(tx, &item, models.MovementCredit, amount, "")
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Debit removes stock. It fails without touching the balance when the
// result would go negative; the check and the update share one transaction
// and a row lock, so two concurrent debits cannot both pass the check.
func (s *Service) Debit(itemID uint, amount decimal.Decimal) (*models.StockItem, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: debit amount", domain.ErrInvalidQuantity)
	}

	var item models.StockItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := LockItem(tx, itemID, &item); err != nil {
			return err
		}
		return DebitLocked(tx, &item, amount, models.MovementDebit, "")
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DebitLocked debits an already-locked item as part of a caller-owned
// transaction. Used by recipe application to debit several items atomically.
func DebitLocked(tx *gorm.DB, item *models.StockItem, amount decimal.Decimal, kind models.MovementKind, note string) error {
	next := item.Quantity.Sub(amount)
	if next.IsNegative() {
		return fmt.Errorf("%w: %s has %s %s, %s required",
			domain.ErrInsufficientStock, item.Name, item.Quantity, item.Unit, amount)
	}
	item.Quantity = next
	if err := tx.Model(item).Update("quantity", next).Error; err != nil {
		return err
	}
	return recordMovement(tx, item, kind, amount.Neg(), note)
}

// DeleteItem removes a stock item and its movement history. Items still
// referenced by a recipe ingredient cannot be deleted.
func (s *Service) DeleteItem(itemID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.StockItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: stock item %d", domain.ErrNotFound, itemID)
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.RecipeIngredient{}).Where("stock_item_id = ?", itemID).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: %s", domain.ErrItemInUse, item.Name)
		}

		if err := tx.Where("stock_item_id = ?", itemID).Delete(&models.StockMovement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// ListItems returns all stock items in creation order.
func (s *Service) ListItems() ([]models.StockItem, error) {
	var items []models.StockItem
	if err := s.db.Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) GetItem(itemID uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: stock item %d", domain.ErrNotFound, itemID)
		}
		return nil, err
	}
	return &item, nil
}

// Movements returns an item's balance history, newest first.
func (s *Service) Movements(itemID uint) ([]models.StockMovement, error) {
	if _, err := s.GetItem(itemID); err != nil {
		return nil, err
	}
	var movements []models.StockMovement
	if err := s.db.
		Where("stock_item_id = ?", itemID).
		Order("created_at desc, id desc").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// IsBelowThreshold reports whether the item should raise a low-stock alert.
func IsBelowThreshold(item models.StockItem) bool {
	return item.Quantity.LessThanOrEqual(item.AlertThreshold)
}

// LockItem loads an item under a row lock for a caller-owned transaction.
func LockItem(tx *gorm.DB, itemID uint, item *models.StockItem) error {
	if err := database.ForUpdate(tx).First(item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: stock item %d", domain.ErrNotFound, itemID)
		}
		return err
	}
	return nil
}

func recordMovement(tx *gorm.DB, item *models.StockItem, kind models.MovementKind, delta decimal.Decimal, note string) error {
	return tx.Create(&models.StockMovement{
		StockItemID: item.ID,
		Kind:        kind,
		Quantity:    delta,
		Balance:     item.Quantity,
		Note:        note,
	}).Error
}
