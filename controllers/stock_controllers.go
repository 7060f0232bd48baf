package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kussopos/pos-app/models"
	"github.com/kussopos/pos-app/services"
	"github.com/kussopos/pos-app/utils"
)

var ErrMissingParameters = errors.New("missing parameters")

// StockController serves the POS inventory endpoints. Every handler resolves
// the recipe for (product, size) and hands it to the stock service; the
// handlers themselves never touch ingredient rows.
type StockController struct {
	DB      *gorm.DB
	recipes *services.RecipeService
	stock   *services.StockService
}

func NewStockController(db *gorm.DB) *StockController {
	return &StockController{
		DB:      db,
		recipes: services.NewRecipeService(db),
		stock:   services.NewStockService(db),
	}
}

// AdjustStock -> POST product_id, qty (signed), size, sugar_level.
// Clamped adjustment with a sufficiency pre-check on deduction.
func (sc *StockController) AdjustStock(c *gin.Context) {
	req, ok := bindStockParams(c)
	if !ok {
		return
	}

	recipe, err := sc.recipes.Resolve(req.ProductID, req.Size)
	if err != nil {
		respondStockError(c, err)
		return
	}

	if err := sc.stock.Adjust(recipe, req.Qty, req.SugarLevel, services.AdjustClamped); err != nil {
		respondStockError(c, err)
		return
	}

	utils.InfoLogger.Printf("Stock adjusted: product=%d qty=%d size=%s", req.ProductID, req.Qty, req.Size)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateOrderItem -> POST product_id, qty (amount to change), size,
// sugar_level, item_id (opaque, echoed back for the cart UI).
func (sc *StockController) UpdateOrderItem(c *gin.Context) {
	req, ok := bindStockParams(c)
	if !ok {
		return
	}
	itemID := c.PostForm("item_id")

	recipe, err := sc.recipes.Resolve(req.ProductID, req.Size)
	if err != nil {
		respondStockError(c, err)
		return
	}

	if err := sc.stock.Adjust(recipe, req.Qty, req.SugarLevel, services.AdjustClamped); err != nil {
		respondStockError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Item quantity updated successfully",
		"item_id":    itemID,
		"product_id": req.ProductID,
		"qty_change": req.Qty,
	})
}

// DeleteOrderItem -> POST product_id, qty (units to restore), size,
// sugar_level. Restores inventory without clamping: the original deduction
// was valid, this simply undoes it.
func (sc *StockController) DeleteOrderItem(c *gin.Context) {
	req, ok := bindStockParams(c)
	if !ok {
		return
	}

	recipe, err := sc.recipes.Resolve(req.ProductID, req.Size)
	if err != nil {
		respondStockError(c, err)
		return
	}

	if err := sc.stock.Adjust(recipe, req.Qty, req.SugarLevel, services.AdjustRestore); err != nil {
		respondStockError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Item removed and inventory restored",
		"product_id":   req.ProductID,
		"qty_restored": req.Qty,
	})
}

// CheckProductStock -> GET product_id, optional size. Reports which
// ingredients block a sale and which are running low.
func (sc *StockController) CheckProductStock(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Query("product_id"), 10, 32)
	if err != nil || productID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no product ID provided"))
		return
	}
	size := c.Query("size")

	report, err := sc.stock.CheckStock(uint(productID), size)
	if err != nil {
		respondStockError(c, err)
		return
	}

	resp := gin.H{
		"success":         report.OK,
		"ingredients":     report.Ingredients,
		"lowStockWarning": report.LowStockWarning,
	}
	if len(report.OutOfStock) > 0 {
		resp["outOfStock"] = report.OutOfStock
	}
	if len(report.AvailableIn16ozOnly) > 0 {
		resp["availableIn16ozOnly"] = report.AvailableIn16ozOnly
	}
	if len(report.Insufficient) > 0 {
		resp["insufficient"] = report.Insufficient
	}
	c.JSON(http.StatusOK, resp)
}

type stockParams struct {
	ProductID  uint
	Qty        int
	Size       string
	SugarLevel string
}

func bindStockParams(c *gin.Context) (stockParams, bool) {
	productStr := c.PostForm("product_id")
	qtyStr := c.PostForm("qty")
	if productStr == "" || qtyStr == "" {
		utils.RespondError(c, http.StatusBadRequest, ErrMissingParameters)
		return stockParams{}, false
	}

	productID, err := strconv.ParseUint(productStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, ErrMissingParameters)
		return stockParams{}, false
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, ErrMissingParameters)
		return stockParams{}, false
	}

	size := c.DefaultPostForm("size", models.Size16oz)
	return stockParams{
		ProductID:  uint(productID),
		Qty:        qty,
		Size:       size,
		SugarLevel: c.PostForm("sugar_level"),
	}, true
}

func respondStockError(c *gin.Context, err error) {
	var emptyRecipe *services.EmptyRecipeError
	var outOfStock *services.OutOfStockError
	var insufficient *services.InsufficientStockError

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &emptyRecipe):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.As(err, &outOfStock), errors.As(err, &insufficient):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("Stock operation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
