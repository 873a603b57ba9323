package production

import (
	"strconv"

	"brasserie-backend/internal/httperr"
	"brasserie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateLotRequest struct {
	Name        string  `json:"name"`
	ProductType string  `json:"product_type"` // "brewed" or "other"
	RecipeID    *uint   `json:"recipe_id"`
	Volume      float64 `json:"volume"`
	UnitSize    float64 `json:"unit_size"`
}

type LotResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	ProductType    string  `json:"product_type"`
	RecipeID       *uint   `json:"recipe_id"`
	RecipeName     string  `json:"recipe_name,omitempty"`
	Volume         float64 `json:"volume"`
	UnitSize       float64 `json:"unit_size"`
	UnitCount      int     `json:"unit_count"`
	UnitsSold      int     `json:"units_sold"`
	RemainingUnits int     `json:"remaining_units"`
	CreatedAt      string  `json:"created_at"`
}

func ToLotResponse(lot models.ProductionLot) LotResponse {
	resp := LotResponse{
		ID:             lot.ID,
		Name:           lot.Name,
		ProductType:    lot.ProductType,
		RecipeID:       lot.RecipeID,
		Volume:         lot.Volume.InexactFloat64(),
		UnitSize:       lot.UnitSize.InexactFloat64(),
		UnitCount:      lot.UnitCount,
		UnitsSold:      lot.UnitsSold,
		RemainingUnits: lot.RemainingUnits(),
		CreatedAt:      lot.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if lot.Recipe != nil {
		resp.RecipeName = lot.Recipe.Name
	}
	return resp
}

// GET /api/lots
func ListLotsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lots, err := svc.List()
		if err != nil {
			return httperr.From(err)
		}
		resp := make([]LotResponse, 0, len(lots))
		for _, lot := range lots {
			resp = append(resp, ToLotResponse(lot))
		}
		return c.JSON(resp)
	}
}

// POST /api/lots
func CreateLotHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLotRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if body.ProductType != models.LotTypeBrewed && body.ProductType != models.LotTypeOther {
			return fiber.NewError(fiber.StatusBadRequest, "product_type must be \"brewed\" or \"other\"")
		}

		lot, err := svc.CreateLot(CreateLotInput{
			Name:        body.Name,
			ProductType: body.ProductType,
			RecipeID:    body.RecipeID,
			Volume:      decimal.NewFromFloat(body.Volume),
			UnitSize:    decimal.NewFromFloat(body.UnitSize),
		})
		if err != nil {
			return httperr.From(err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToLotResponse(*lot))
	}
}

// DELETE /api/lots/:id
func DeleteLotHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		if err := svc.Delete(uint(id)); err != nil {
			return httperr.From(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
