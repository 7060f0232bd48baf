package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kussopos/pos-app/models"
	"github.com/kussopos/pos-app/utils"
)

// InventoryController covers back-office inventory management: ingredient
// CRUD plus the product-ingredient and product-flavor links the resolver
// reads from.
type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// GetAllIngredients
func (ic *InventoryController) GetAllIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := ic.DB.Order("name").Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All ingredients", ingredients)
}

// CreateIngredient
func (ic *InventoryController) CreateIngredient(c *gin.Context) {
	var body struct {
		Name     string  `json:"name" binding:"required"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient := models.Ingredient{
		Name:     body.Name,
		Quantity: body.Quantity,
		Unit:     body.Unit,
	}
	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Ingredient added: %s (%g %s)", ingredient.Name, ingredient.Quantity, ingredient.Unit)
	utils.RespondJSON(c, http.StatusCreated, "Ingredient added successfully!", ingredient)
}

// UpdateIngredient
func (ic *InventoryController) UpdateIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("ingredient_id"))

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name     string   `json:"name"`
		Quantity *float64 `json:"quantity"`
		Unit     string   `json:"unit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != "" {
		ingredient.Name = body.Name
	}
	if body.Quantity != nil {
		ingredient.Quantity = *body.Quantity
	}
	if body.Unit != "" {
		ingredient.Unit = body.Unit
	}

	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient updated successfully!", ingredient)
}

// DeleteIngredient
func (ic *InventoryController) DeleteIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("ingredient_id"))

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := ic.DB.Delete(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted successfully!", nil)
}

// LinkIngredient attaches an ingredient directly to a product.
func (ic *InventoryController) LinkIngredient(c *gin.Context) {
	var body struct {
		ProductID        uint    `json:"product_id" binding:"required"`
		IngredientID     uint    `json:"ingredient_id" binding:"required"`
		QuantityRequired float64 `json:"quantity_required" binding:"required"`
		Unit             string  `json:"unit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	link := models.ProductIngredient{
		ProductID:        body.ProductID,
		IngredientID:     body.IngredientID,
		QuantityRequired: body.QuantityRequired,
		Unit:             body.Unit,
	}
	if err := ic.DB.Create(&link).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Ingredient linked to product successfully!", link)
}

// UnlinkIngredient removes a direct product-ingredient link.
func (ic *InventoryController) UnlinkIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("link_id"))

	if err := ic.DB.Delete(&models.ProductIngredient{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient unlinked from product successfully!", nil)
}

// LinkFlavor attaches a flavor to a product with a size-specific quantity.
func (ic *InventoryController) LinkFlavor(c *gin.Context) {
	var body struct {
		ProductID        uint    `json:"product_id" binding:"required"`
		FlavorID         uint    `json:"flavor_id" binding:"required"`
		Size             string  `json:"size"`
		QuantityRequired float64 `json:"quantity_required" binding:"required"`
		Unit             string  `json:"unit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Size == "" {
		body.Size = models.Size16oz
	}

	link := models.ProductFlavor{
		ProductID:        body.ProductID,
		FlavorID:         body.FlavorID,
		Size:             body.Size,
		QuantityRequired: body.QuantityRequired,
		Unit:             body.Unit,
	}
	if err := ic.DB.Create(&link).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Flavor linked to product successfully!", link)
}

// UnlinkFlavor removes a product-flavor link.
func (ic *InventoryController) UnlinkFlavor(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("link_id"))

	if err := ic.DB.Delete(&models.ProductFlavor{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Flavor unlinked from product successfully!", nil)
}
