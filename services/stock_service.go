package services

import (
	"math"

	"gorm.io/gorm"

	"github.com/kussopos/pos-app/models"
	"github.com/kussopos/pos-app/utils"
)

// AdjustMode selects how a stock mutation treats the zero floor.
type AdjustMode int

const (
	// AdjustClamped floors every resulting quantity at zero and pre-checks
	// sufficiency before deducting. Used while an order is being edited.
	AdjustClamped AdjustMode = iota
	// AdjustRestore applies the raw delta with no floor and no pre-check.
	// Used when reversing a previously applied deduction.
	AdjustRestore
)

// Sugar levels the POS front end sends with drink items.
const (
	SugarLevelNone   = "no-sugar"
	SugarLevelLess   = "less-sugar"
	SugarLevelNormal = "normal-sugar"
	SugarLevelMore   = "more-sugar"
)

// SweetenerMultiplier maps a sugar level onto the scalar applied to the
// sweetener requirement. Unrecognized levels fall back to 1.
func SweetenerMultiplier(sugarLevel string) float64 {
	switch sugarLevel {
	case SugarLevelNone:
		return 0
	case SugarLevelLess:
		return 0.5
	case SugarLevelNormal:
		return 1
	case SugarLevelMore:
		return 1.5
	default:
		return 1
	}
}

// StockIssue describes one ingredient that blocks or limits a sale.
type StockIssue struct {
	Name     string  `json:"name"`
	Required float64 `json:"required"`
	Stock    float64 `json:"stock"`
	Unit     string  `json:"unit"`
}

// LowStockItem flags an ingredient that supports fewer than ten sales.
type LowStockItem struct {
	Name     string  `json:"name"`
	Required float64 `json:"required"`
	Stock    float64 `json:"stock"`
	Unit     string  `json:"unit"`
	CanMake  int     `json:"can_make"`
}

// SizeFallback reports that a product blocked at 22oz could still be sold
// at 16oz with current stock.
type SizeFallback struct {
	Name         string  `json:"name"`
	Required22oz float64 `json:"required_22oz"`
	Required16oz float64 `json:"required_16oz"`
	Stock        float64 `json:"stock"`
	Unit         string  `json:"unit"`
}

// StockReport is the result of a standalone sufficiency check.
type StockReport struct {
	OK                  bool           `json:"-"`
	Ingredients         []RecipeItem   `json:"ingredients"`
	OutOfStock          []StockIssue   `json:"outOfStock,omitempty"`
	Insufficient        []StockIssue   `json:"insufficient,omitempty"`
	AvailableIn16ozOnly []SizeFallback `json:"availableIn16ozOnly,omitempty"`
	LowStockWarning     []LowStockItem `json:"lowStockWarning"`
}

// Fewer than lowStockThreshold sellable units left triggers a warning.
const lowStockThreshold = 10

type StockService struct {
	DB      *gorm.DB
	recipes *RecipeService
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{
		DB:      db,
		recipes: NewRecipeService(db),
	}
}

// Adjust applies qtyDelta units of the recipe to ingredient stock inside a
// single transaction: either every row changes or none does. Negative deltas
// deduct (a sale), positive deltas add back (an item removed from the order).
func (s *StockService) Adjust(recipe *Recipe, qtyDelta int, sugarLevel string, mode AdjustMode) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if mode == AdjustClamped && qtyDelta < 0 {
			if err := checkSufficiency(tx, recipe.Others, qtyDelta); err != nil {
				return err
			}
		}

		for _, ing := range recipe.Others {
			change := float64(qtyDelta) * ing.QuantityRequired
			if err := applyChange(tx, ing.IngredientID, change, mode); err != nil {
				return err
			}
		}

		if sugarLevel != "" && recipe.Sweetener != nil {
			multiplier := SweetenerMultiplier(sugarLevel)
			if multiplier == 0 {
				// no-sugar: the sweetener row is not touched at all
				return nil
			}
			change := recipe.Sweetener.QuantityRequired * multiplier * float64(qtyDelta)
			if err := applyChange(tx, recipe.Sweetener.IngredientID, change, mode); err != nil {
				return err
			}
		}

		return nil
	})
}

// CheckStock classifies every non-sweetener requirement of a product as out
// of stock, insufficient, or low. When a 22oz check finds an insufficient
// ingredient it also reports whether the 16oz requirement would still be
// satisfiable.
func (s *StockService) CheckStock(productID uint, size string) (*StockReport, error) {
	product, err := s.recipes.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	items, err := s.recipes.ResolveForCheck(product, size)
	if err != nil {
		return nil, err
	}

	report := &StockReport{Ingredients: items, LowStockWarning: []LowStockItem{}}
	for _, item := range items {
		if models.IsSweetenerName(item.Name) {
			continue
		}

		issue := StockIssue{
			Name:     item.Name,
			Required: item.QuantityRequired,
			Stock:    item.Stock,
			Unit:     item.Unit,
		}

		switch {
		case item.Stock <= 0:
			report.OutOfStock = append(report.OutOfStock, issue)
			report.LowStockWarning = append(report.LowStockWarning, LowStockItem{
				Name:     item.Name,
				Required: item.QuantityRequired,
				Stock:    item.Stock,
				Unit:     item.Unit,
				CanMake:  0,
			})
		case item.Stock < item.QuantityRequired:
			report.Insufficient = append(report.Insufficient, issue)
			if size == models.Size22oz {
				if fallback := s.check16ozFallback(product.CategoryID, item); fallback != nil {
					report.AvailableIn16ozOnly = append(report.AvailableIn16ozOnly, *fallback)
				}
			}
		case item.Stock < item.QuantityRequired*lowStockThreshold:
			report.LowStockWarning = append(report.LowStockWarning, LowStockItem{
				Name:     item.Name,
				Required: item.QuantityRequired,
				Stock:    item.Stock,
				Unit:     item.Unit,
				CanMake:  int(math.Floor(item.Stock / item.QuantityRequired)),
			})
		}
	}

	report.OK = len(report.OutOfStock) == 0 && len(report.Insufficient) == 0 &&
		len(report.AvailableIn16ozOnly) == 0
	return report, nil
}

func (s *StockService) check16ozFallback(categoryID uint, item RecipeItem) *SizeFallback {
	var rule models.CategoryIngredient
	err := s.DB.Where("category_id = ? AND ingredient_id = ? AND size = ?",
		categoryID, item.IngredientID, models.Size16oz).First(&rule).Error
	if err != nil {
		return nil
	}
	if item.Stock < rule.QuantityRequirement {
		return nil
	}
	return &SizeFallback{
		Name:         item.Name,
		Required22oz: item.QuantityRequired,
		Required16oz: rule.QuantityRequirement,
		Stock:        item.Stock,
		Unit:         item.Unit,
	}
}

// checkSufficiency rejects a deduction before any row is touched. Stock
// already at or below zero beats the insufficiency report.
func checkSufficiency(tx *gorm.DB, items []RecipeItem, qtyDelta int) error {
	for _, ing := range items {
		var row models.Ingredient
		if err := tx.First(&row, ing.IngredientID).Error; err != nil {
			return &OutOfStockError{Ingredient: ing.Name}
		}
		if row.Quantity <= 0 {
			return &OutOfStockError{Ingredient: ing.Name}
		}
		required := math.Abs(float64(qtyDelta)) * ing.QuantityRequired
		if row.Quantity < required {
			return &InsufficientStockError{Ingredient: ing.Name}
		}
	}
	return nil
}

// applyChange mutates one ingredient row. Clamped mode floors the result at
// zero; restore mode applies the raw delta.
func applyChange(tx *gorm.DB, ingredientID uint, change float64, mode AdjustMode) error {
	var ing models.Ingredient
	if err := tx.First(&ing, ingredientID).Error; err != nil {
		return err
	}

	next := ing.Quantity + change
	if mode == AdjustClamped && next < 0 {
		utils.InfoLogger.Printf("Clamping ingredient %d stock at 0 (was %.2f, delta %.2f)",
			ingredientID, ing.Quantity, change)
		next = 0
	}

	return tx.Model(&models.Ingredient{}).Where("id = ?", ingredientID).
		Update("quantity", next).Error
}
