package domain

import "errors"

// Sentinel failures returned by the core services. Callers branch with
// errors.Is; services wrap them with fmt.Errorf("...: %w", ...) to attach
// the offending entity.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInsufficientUnits = errors.New("not enough units remaining")
	ErrItemInUse         = errors.New("stock item is used by a recipe")
	ErrRecipeInUse       = errors.New("recipe is referenced by a production lot")
	ErrLotHasSales       = errors.New("lot already has recorded sales")
)
