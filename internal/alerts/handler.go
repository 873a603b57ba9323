package alerts

import (
	"brasserie-backend/internal/httperr"
	"brasserie-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

// GET /api/stock-items/alerts
func ListAlertsHandler(ev *Evaluator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := ev.BelowThreshold()
		if err != nil {
			return httperr.From(err)
		}
		resp := make([]stock.ItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, stock.ToItemResponse(item))
		}
		return c.JSON(resp)
	}
}
