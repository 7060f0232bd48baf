package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kussopos/pos-app/models"
	"github.com/kussopos/pos-app/utils"
)

// RecipeItem is one resolved ingredient requirement for a product at a size.
type RecipeItem struct {
	IngredientID     uint    `gorm:"column:ingredient_id" json:"ingredient_id"`
	Name             string  `gorm:"column:name" json:"name"`
	QuantityRequired float64 `gorm:"column:quantity_required" json:"quantity_required"`
	Unit             string  `gorm:"column:unit" json:"unit"`
	Stock            float64 `gorm:"column:stock" json:"stock"`
}

// Recipe is the resolved requirement list, partitioned into at most one
// sweetener entry and everything else. When several ingredient names match
// the sweetener convention only the first one is designated; the rest stay
// in Others.
type Recipe struct {
	Sweetener *RecipeItem
	Others    []RecipeItem
}

type RecipeService struct {
	DB *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{DB: db}
}

// Resolve returns the recipe for one unit of a product at the given size:
// category-level rules plus product-level flavor links, both size-scoped.
func (s *RecipeService) Resolve(productID uint, size string) (*Recipe, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	var items []RecipeItem
	err = s.DB.Table("category_ingredients ci").
		Select("ci.ingredient_id, ci.quantity_requirement AS quantity_required, ci.unit, i.name, i.quantity AS stock").
		Joins("JOIN ingredients i ON i.id = ci.ingredient_id").
		Where("ci.category_id = ? AND ci.size = ?", product.CategoryID, size).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	var flavors []RecipeItem
	err = s.DB.Table("product_flavors pf").
		Select("pf.flavor_id AS ingredient_id, pf.quantity_required, pf.unit, i.name, i.quantity AS stock").
		Joins("JOIN ingredients i ON i.id = pf.flavor_id").
		Where("pf.product_id = ? AND pf.size = ?", productID, size).
		Scan(&flavors).Error
	if err != nil {
		return nil, err
	}
	items = append(items, flavors...)

	if len(items) == 0 {
		return nil, &EmptyRecipeError{Size: size}
	}

	return partitionSweetener(items), nil
}

// ResolveForCheck returns the broader list used by stock-sufficiency checks:
// direct product links merged with category rules, deduplicated by
// ingredient id with product-scoped entries taking precedence. An empty size
// matches category rules for every size.
func (s *RecipeService) ResolveForCheck(product *models.Product, size string) ([]RecipeItem, error) {
	var direct []RecipeItem
	err := s.DB.Table("product_ingredients pi").
		Select("pi.ingredient_id, pi.quantity_required, i.name, i.quantity AS stock, i.unit").
		Joins("JOIN ingredients i ON i.id = pi.ingredient_id").
		Where("pi.product_id = ?", product.ID).
		Scan(&direct).Error
	if err != nil {
		return nil, err
	}

	catQuery := s.DB.Table("category_ingredients ci").
		Select("ci.ingredient_id, ci.quantity_requirement AS quantity_required, i.name, i.quantity AS stock, i.unit").
		Joins("JOIN ingredients i ON i.id = ci.ingredient_id").
		Where("ci.category_id = ?", product.CategoryID)
	if size != "" {
		catQuery = catQuery.Where("ci.size = ?", size)
	}

	var fromCategory []RecipeItem
	if err := catQuery.Scan(&fromCategory).Error; err != nil {
		return nil, err
	}

	return mergeRecipes(direct, fromCategory), nil
}

// GetProduct loads a product or reports ErrProductNotFound.
func (s *RecipeService) GetProduct(productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InfoLogger.Printf("Recipe lookup for unknown product %d", productID)
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// mergeRecipes keeps product-scoped entries over category-scoped ones when
// both reference the same ingredient.
func mergeRecipes(productScoped, categoryScoped []RecipeItem) []RecipeItem {
	seen := make(map[uint]bool, len(productScoped))
	merged := make([]RecipeItem, 0, len(productScoped)+len(categoryScoped))

	for _, item := range productScoped {
		if seen[item.IngredientID] {
			continue
		}
		seen[item.IngredientID] = true
		merged = append(merged, item)
	}
	for _, item := range categoryScoped {
		if seen[item.IngredientID] {
			continue
		}
		seen[item.IngredientID] = true
		merged = append(merged, item)
	}
	return merged
}

func partitionSweetener(items []RecipeItem) *Recipe {
	recipe := &Recipe{}
	for i := range items {
		if recipe.Sweetener == nil && models.IsSweetenerName(items[i].Name) {
			sweetener := items[i]
			recipe.Sweetener = &sweetener
			continue
		}
		recipe.Others = append(recipe.Others, items[i])
	}
	return recipe
}
