package services

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// EmptyRecipeError means no category rules or flavor links exist for the
// requested size. The POS treats it as "not sellable at this size".
type EmptyRecipeError struct {
	Size string
}

func (e *EmptyRecipeError) Error() string {
	return fmt.Sprintf("no ingredients/flavors configured for this product size (%s)", e.Size)
}

type OutOfStockError struct {
	Ingredient string
}

func (e *OutOfStockError) Error() string {
	return "ingredient out of stock: " + e.Ingredient
}

type InsufficientStockError struct {
	Ingredient string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for ingredient: " + e.Ingredient
}
