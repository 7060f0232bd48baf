package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/kussopos/pos-app/models"
)

func ingredientStock(t *testing.T, db *gorm.DB, id uint) float64 {
	var ing models.Ingredient
	assert.NoError(t, db.First(&ing, id).Error)
	return ing.Quantity
}

func TestSweetenerMultiplier(t *testing.T) {
	tests := []struct {
		level string
		want  float64
	}{
		{SugarLevelNone, 0},
		{SugarLevelLess, 0.5},
		{SugarLevelNormal, 1},
		{SugarLevelMore, 1.5},
		{"caramel-sugar-free", 1}, // unrecognized levels fall back to 1
		{"", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SweetenerMultiplier(tt.level), "level %q", tt.level)
	}
}

func TestAdjustDeductsStock(t *testing.T) {
	db := setupRecipeDB(t, "adjust_deduct")
	recipes := NewRecipeService(db)
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 10)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)

	recipe, err := recipes.Resolve(product.ID, models.Size16oz)
	assert.NoError(t, err)

	err = stock.Adjust(recipe, -3, "", AdjustClamped)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, ingredientStock(t, db, milk.ID))
}

func TestAdjustInsufficientStockLeavesStateUnchanged(t *testing.T) {
	db := setupRecipeDB(t, "adjust_insufficient")
	recipes := NewRecipeService(db)
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 1)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)

	recipe, err := recipes.Resolve(product.ID, models.Size16oz)
	assert.NoError(t, err)

	err = stock.Adjust(recipe, -3, "", AdjustClamped)
	var insufficient *InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Milk", insufficient.Ingredient)
	assert.Equal(t, 1.0, ingredientStock(t, db, milk.ID))
}

func TestAdjustOutOfStock(t *testing.T) {
	db := setupRecipeDB(t, "adjust_oos")
	recipes := NewRecipeService(db)
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 0)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)

	recipe, err := recipes.Resolve(product.ID, models.Size16oz)
	assert.NoError(t, err)

	err = stock.Adjust(recipe, -1, "", AdjustClamped)
	var outOfStock *OutOfStockError
	assert.ErrorAs(t, err, &outOfStock)
	assert.Equal(t, "Milk", outOfStock.Ingredient)
}

func TestRestoreInvertsDeduction(t *testing.T) {
	db := setupRecipeDB(t, "adjust_restore")
	recipes := NewRecipeService(db)
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 10)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)

	recipe, err := recipes.Resolve(product.ID, models.Size16oz)
	assert.NoError(t, err)

	assert.NoError(t, stock.Adjust(recipe, -3, "", AdjustClamped))
	assert.Equal(t, 4.0, ingredientStock(t, db, milk.ID))

	assert.NoError(t, stock.Adjust(recipe, 3, "", AdjustRestore))
	assert.Equal(t, 10.0, ingredientStock(t, db, milk.ID))
}

func TestNoSugarSkipsSweetener(t *testing.T) {
	db := setupRecipeDB(t, "adjust_nosugar")
	recipes := NewRecipeService(db)
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 10)
	sweetener := seedIngredient(t, db, "Liquid Sweetener", 8)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)
	seedCategoryRule(t, db, product.CategoryID, sweetener.ID, models.Size16oz, 1)

	recipe, err := recipes.Resolve(product.ID, models.Size16oz)
	assert.NoError(t, err)

	assert.NoError(t, stock.Adjust(recipe, -2, SugarLevelNone, AdjustClamped))
	assert.Equal(t, 6.0, ingredientStock(t, db, milk.ID))
	assert.Equal(t, 8.0, ingredientStock(t, db, sweetener.ID))
}

func TestMoreSugarClampsAtZero(t *testing.T) {
	db := setupRecipeDB(t, "adjust_moresugar")
	recipes := NewRecipeService(db)
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 10)
	sweetener := seedIngredient(t, db, "Liquid Sweetener", 2)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)
	seedCategoryRule(t, db, product.CategoryID, sweetener.ID, models.Size16oz, 1)

	recipe, err := recipes.Resolve(product.ID, models.Size16oz)
	assert.NoError(t, err)

	// sweetener change = 1 * 1.5 * -2 = -3, clamped at the zero floor
	assert.NoError(t, stock.Adjust(recipe, -2, SugarLevelMore, AdjustClamped))
	assert.Equal(t, 0.0, ingredientStock(t, db, sweetener.ID))
	assert.Equal(t, 6.0, ingredientStock(t, db, milk.ID))
}

func TestNormalSugarDeductsSweetener(t *testing.T) {
	db := setupRecipeDB(t, "adjust_normalsugar")
	recipes := NewRecipeService(db)
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 10)
	sweetener := seedIngredient(t, db, "Liquid Sweetener", 8)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)
	seedCategoryRule(t, db, product.CategoryID, sweetener.ID, models.Size16oz, 2)

	recipe, err := recipes.Resolve(product.ID, models.Size16oz)
	assert.NoError(t, err)

	assert.NoError(t, stock.Adjust(recipe, -2, SugarLevelNormal, AdjustClamped))
	assert.Equal(t, 4.0, ingredientStock(t, db, sweetener.ID))
}

func TestCheckStockLowStockWarning(t *testing.T) {
	db := setupRecipeDB(t, "check_lowstock")
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 9)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)

	report, err := stock.CheckStock(product.ID, models.Size16oz)
	assert.NoError(t, err)
	assert.True(t, report.OK)
	assert.Empty(t, report.OutOfStock)
	assert.Empty(t, report.Insufficient)
	assert.Len(t, report.LowStockWarning, 1)
	assert.Equal(t, 4, report.LowStockWarning[0].CanMake)
}

func TestCheckStockOutOfStock(t *testing.T) {
	db := setupRecipeDB(t, "check_oos")
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 0)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)

	report, err := stock.CheckStock(product.ID, models.Size16oz)
	assert.NoError(t, err)
	assert.False(t, report.OK)
	assert.Len(t, report.OutOfStock, 1)
	// Out-of-stock entries also show on the product card as zero can-make
	assert.Len(t, report.LowStockWarning, 1)
	assert.Equal(t, 0, report.LowStockWarning[0].CanMake)
}

func TestCheckStock16ozFallback(t *testing.T) {
	db := setupRecipeDB(t, "check_fallback")
	stock := NewStockService(db)

	product := seedProduct(t, db, "Latte")
	milk := seedIngredient(t, db, "Milk", 3)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size22oz, 5)
	seedCategoryRule(t, db, product.CategoryID, milk.ID, models.Size16oz, 2)

	report, err := stock.CheckStock(product.ID, models.Size22oz)
	assert.NoError(t, err)
	assert.False(t, report.OK)
	assert.Len(t, report.Insufficient, 1)
	assert.Len(t, report.AvailableIn16ozOnly, 1)
	assert.Equal(t, 5.0, report.AvailableIn16ozOnly[0].Required22oz)
	assert.Equal(t, 2.0, report.AvailableIn16ozOnly[0].Required16oz)
}

func TestCheckStockUnknownProduct(t *testing.T) {
	db := setupRecipeDB(t, "check_unknown")
	stock := NewStockService(db)

	_, err := stock.CheckStock(4242, models.Size16oz)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
