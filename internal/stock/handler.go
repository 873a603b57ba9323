package stock

import (
	"strconv"

	"brasserie-backend/internal/httperr"
	"brasserie-backend/internal/models"
	"brasserie-backend/internal/units"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Supplier       string  `json:"supplier"`
	AlertThreshold float64 `json:"alert_threshold"`
}

type AdjustRequest struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"` // optional; empty means canonical unit
}

type ItemResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	DisplayQuantity float64 `json:"display_quantity"`
	DisplayUnit     string  `json:"display_unit"`
	Supplier        string  `json:"supplier"`
	AlertThreshold  float64 `json:"alert_threshold"`
	LowStock        bool    `json:"low_stock"`
	CreatedAt       string  `json:"created_at"`
}

type MovementResponse struct {
	ID        uint    `json:"id"`
	Kind      string  `json:"kind"`
	Quantity  float64 `json:"quantity"`
	Balance   float64 `json:"balance"`
	Note      string  `json:"note"`
	CreatedAt string  `json:"created_at"`
}

func ToItemResponse(item models.StockItem) ItemResponse {
	displayQty, displayUnit := units.ToDisplay(item.Quantity, item.Unit)
	return ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Quantity:        item.Quantity.InexactFloat64(),
		Unit:            item.Unit,
		DisplayQuantity: displayQty.InexactFloat64(),
		DisplayUnit:     displayUnit,
		Supplier:        item.Supplier,
		AlertThreshold:  item.AlertThreshold.InexactFloat64(),
		LowStock:        IsBelowThreshold(item),
		CreatedAt:       item.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/stock-items
func ListItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListItems()
		if err != nil {
			return httperr.From(err)
		}
		resp := make([]ItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, ToItemResponse(item))
		}
		return c.JSON(resp)
	}
}

// POST /api/stock-items
func CreateItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" || body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and unit are required")
		}

		item, err := svc.CreateItem(CreateItemInput{
			Name:           body.Name,
			Quantity:       decimal.NewFromFloat(body.Quantity),
			Unit:           body.Unit,
			Supplier:       body.Supplier,
			AlertThreshold: decimal.NewFromFloat(body.AlertThreshold),
		})
		if err != nil {
			return httperr.From(err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToItemResponse(*item))
	}
}

// DELETE /api/stock-items/:id
func DeleteItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteItem(id); err != nil {
			return httperr.From(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/stock-items/:id/credit
func CreditHandler(svc *Service) fiber.Handler {
	return adjustHandler(svc, svc.Credit)
}

// POST /api/stock-items/:id/debit
func DebitHandler(svc *Service) fiber.Handler {
	return adjustHandler(svc, svc.Debit)
}

func adjustHandler(svc *Service, apply func(uint, decimal.Decimal) (*models.StockItem, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body AdjustRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		amount := decimal.NewFromFloat(body.Quantity)
		if body.Unit != "" {
			// Accept the same input units as item creation.
			amount, _ = units.ToCanonical(amount, body.Unit)
		}

		item, err := apply(id, amount)
		if err != nil {
			return httperr.From(err)
		}
		return c.JSON(ToItemResponse(*item))
	}
}

// GET /api/stock-items/:id/movements
func ListMovementsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		movements, err := svc.Movements(id)
		if err != nil {
			return httperr.From(err)
		}
		resp := make([]MovementResponse, 0, len(movements))
		for _, m := range movements {
			resp = append(resp, MovementResponse{
				ID:        m.ID,
				Kind:      string(m.Kind),
				Quantity:  m.Quantity.InexactFloat64(),
				Balance:   m.Balance.InexactFloat64(),
				Note:      m.Note,
				CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(resp)
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
