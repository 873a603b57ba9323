package sales

import (
	"brasserie-backend/internal/httperr"
	"brasserie-backend/internal/models"
	"brasserie-backend/internal/production"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RecordSaleRequest struct {
	LotID     uint    `json:"lot_id"`
	Client    string  `json:"client"`
	Units     int     `json:"units"`
	UnitPrice float64 `json:"unit_price"`
}

type SaleResponse struct {
	ID        uint    `json:"id"`
	LotID     uint    `json:"lot_id"`
	LotName   string  `json:"lot_name"`
	Client    string  `json:"client"`
	Units     int     `json:"units"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}

func toSaleResponse(sale models.Sale) SaleResponse {
	return SaleResponse{
		ID:        sale.ID,
		LotID:     sale.LotID,
		LotName:   sale.Lot.Name,
		Client:    sale.Client,
		Units:     sale.Units,
		UnitPrice: sale.UnitPrice.InexactFloat64(),
		Total:     sale.UnitPrice.Mul(decimal.NewFromInt(int64(sale.Units))).InexactFloat64(),
		CreatedAt: sale.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/sales
func ListSalesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sales, err := svc.ListSales()
		if err != nil {
			return httperr.From(err)
		}
		resp := make([]SaleResponse, 0, len(sales))
		for _, sale := range sales {
			resp = append(resp, toSaleResponse(sale))
		}
		return c.JSON(resp)
	}
}

// POST /api/sales
func RecordSaleHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecordSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.LotID == 0 || body.Client == "" {
			return fiber.NewError(fiber.StatusBadRequest, "lot_id and client are required")
		}

		sale, err := svc.RecordSale(body.LotID, body.Client, body.Units, decimal.NewFromFloat(body.UnitPrice))
		if err != nil {
			return httperr.From(err)
		}

		// Reload with the lot for the response.
		if loaded, err := svc.GetSale(sale.ID); err == nil {
			sale = loaded
		}
		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(*sale))
	}
}

// GET /api/lots/open
func ListOpenLotsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lots, err := svc.ListOpenLots()
		if err != nil {
			return httperr.From(err)
		}
		resp := make([]production.LotResponse, 0, len(lots))
		for _, lot := range lots {
			resp = append(resp, production.ToLotResponse(lot))
		}
		return c.JSON(resp)
	}
}
