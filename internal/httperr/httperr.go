package httperr

import (
	"errors"

	"brasserie-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// From maps core service failures to HTTP errors. Anything unrecognized is
// passed through for the app-level error handler to log as a 500.
func From(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInsufficientUnits),
		errors.Is(err, domain.ErrItemInUse),
		errors.Is(err, domain.ErrRecipeInUse),
		errors.Is(err, domain.ErrLotHasSales):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}
