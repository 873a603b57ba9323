package main

import (
	"strings"

	"brasserie-backend/internal/alerts"
	"brasserie-backend/internal/config"
	"brasserie-backend/internal/database"
	"brasserie-backend/internal/production"
	"brasserie-backend/internal/recipe"
	"brasserie-backend/internal/sales"
	"brasserie-backend/internal/stock"
	"brasserie-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	stockSvc := stock.NewService(db, logger.Named(log, "stock"))
	recipeSvc := recipe.NewService(db, logger.Named(log, "recipe"), cfg.StrictIngredients)
	productionSvc := production.NewService(db, recipeSvc, logger.Named(log, "production"))
	salesSvc := sales.NewService(db, logger.Named(log, "sales"))
	alertEval := alerts.NewEvaluator(stockSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Stock
	api.Get("/stock-items", stock.ListItemsHandler(stockSvc))
	api.Post("/stock-items", stock.CreateItemHandler(stockSvc))
	api.Get("/stock-items/alerts", alerts.ListAlertsHandler(alertEval))
	api.Delete("/stock-items/:id", stock.DeleteItemHandler(stockSvc))
	api.Post("/stock-items/:id/credit", stock.CreditHandler(stockSvc))
	api.Post("/stock-items/:id/debit", stock.DebitHandler(stockSvc))
	api.Get("/stock-items/:id/movements", stock.ListMovementsHandler(stockSvc))

	// Recipes
	api.Get("/recipes", recipe.ListHandler(recipeSvc))
	api.Post("/recipes", recipe.CreateHandler(recipeSvc))
	api.Put("/recipes/:id", recipe.UpdateHandler(recipeSvc))
	api.Delete("/recipes/:id", recipe.DeleteHandler(recipeSvc))
	api.Post("/recipes/:id/apply", recipe.ApplyHandler(recipeSvc))

	// Production lots
	api.Get("/lots", production.ListLotsHandler(productionSvc))
	api.Get("/lots/open", sales.ListOpenLotsHandler(salesSvc))
	api.Post("/lots", production.CreateLotHandler(productionSvc))
	api.Delete("/lots/:id", production.DeleteLotHandler(productionSvc))

	// Sales
	api.Get("/sales", sales.ListSalesHandler(salesSvc))
	api.Post("/sales", sales.RecordSaleHandler(salesSvc))

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
