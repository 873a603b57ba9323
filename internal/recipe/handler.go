package recipe

import (
	"strconv"

	"brasserie-backend/internal/httperr"
	"brasserie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type IngredientSpecRequest struct {
	StockItemID  uint    `json:"stock_item_id"`
	RatePerLiter float64 `json:"rate_per_liter"`
}

type SaveRecipeRequest struct {
	Name        string                  `json:"name"`
	Ingredients []IngredientSpecRequest `json:"ingredients"`
}

type ApplyRequest struct {
	Volume float64 `json:"volume"`
}

type IngredientResponse struct {
	ID            uint    `json:"id"`
	StockItemID   uint    `json:"stock_item_id"`
	StockItemName string  `json:"stock_item_name"`
	Unit          string  `json:"unit"`
	RatePerLiter  float64 `json:"rate_per_liter"`
}

type RecipeResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Ingredients []IngredientResponse `json:"ingredients"`
	CreatedAt   string               `json:"created_at"`
}

type ConsumptionResponse struct {
	StockItemID uint    `json:"stock_item_id"`
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	Required    float64 `json:"required"`
}

func toRecipeResponse(rec models.Recipe) RecipeResponse {
	ingredients := make([]IngredientResponse, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		ingredients = append(ingredients, IngredientResponse{
			ID:            ing.ID,
			StockItemID:   ing.StockItemID,
			StockItemName: ing.StockItem.Name,
			Unit:          ing.StockItem.Unit,
			RatePerLiter:  ing.RatePerLiter.InexactFloat64(),
		})
	}
	return RecipeResponse{
		ID:          rec.ID,
		Name:        rec.Name,
		Ingredients: ingredients,
		CreatedAt:   rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toSpecs(reqs []IngredientSpecRequest) []IngredientSpec {
	specs := make([]IngredientSpec, 0, len(reqs))
	for _, r := range reqs {
		specs = append(specs, IngredientSpec{
			StockItemID:  r.StockItemID,
			RatePerLiter: decimal.NewFromFloat(r.RatePerLiter),
		})
	}
	return specs
}

// GET /api/recipes
func ListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipes, err := svc.List()
		if err != nil {
			return httperr.From(err)
		}
		resp := make([]RecipeResponse, 0, len(recipes))
		for _, rec := range recipes {
			resp = append(resp, toRecipeResponse(rec))
		}
		return c.JSON(resp)
	}
}

// POST /api/recipes
func CreateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveRecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		rec, err := svc.Create(body.Name, toSpecs(body.Ingredients))
		if err != nil {
			return httperr.From(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toRecipeResponse(*rec))
	}
}

// PUT /api/recipes/:id
func UpdateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body SaveRecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		rec, err := svc.Update(id, body.Name, toSpecs(body.Ingredients))
		if err != nil {
			return httperr.From(err)
		}
		return c.JSON(toRecipeResponse(*rec))
	}
}

// DELETE /api/recipes/:id
func DeleteHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(id); err != nil {
			return httperr.From(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/recipes/:id/apply
func ApplyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body ApplyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		plan, err := svc.Apply(id, decimal.NewFromFloat(body.Volume))
		if err != nil {
			return httperr.From(err)
		}
		resp := make([]ConsumptionResponse, 0, len(plan))
		for _, line := range plan {
			resp = append(resp, ConsumptionResponse{
				StockItemID: line.StockItemID,
				Name:        line.Name,
				Unit:        line.Unit,
				Required:    line.Required.InexactFloat64(),
			})
		}
		return c.JSON(fiber.Map{"consumed": resp})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
