package alerts

import (
	"brasserie-backend/internal/models"
	"brasserie-backend/internal/stock"
)

// Evaluator is a derived view over the stock ledger: which items sit at or
// below their alert threshold.
type Evaluator struct {
	stock *stock.Service
}

func NewEvaluator(s *stock.Service) *Evaluator {
	return &Evaluator{stock: s}
}

// BelowThreshold returns the low-stock items in the ledger's listing order.
func (e *Evaluator) BelowThreshold() ([]models.StockItem, error) {
	items, err := e.stock.ListItems()
	if err != nil {
		return nil, err
	}
	return Filter(items), nil
}

// Filter keeps the items at or below their alert threshold, preserving the
// input order.
func Filter(items []models.StockItem) []models.StockItem {
	low := make([]models.StockItem, 0)
	for _, item := range items {
		if stock.IsBelowThreshold(item) {
			low = append(low, item)
		}
	}
	return low
}
