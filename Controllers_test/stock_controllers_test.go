package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kussopos/pos-app/controllers"
	"github.com/kussopos/pos-app/models"
	"github.com/kussopos/pos-app/utils"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.ProductCategory{},
		&models.Product{},
		&models.Ingredient{},
		&models.CategoryIngredient{},
		&models.ProductIngredient{},
		&models.ProductFlavor{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupStockRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	stockCtrl := controllers.NewStockController(db)
	router.POST("/pos/stock/adjust", stockCtrl.AdjustStock)
	router.POST("/pos/order-items/update", stockCtrl.UpdateOrderItem)
	router.POST("/pos/order-items/delete", stockCtrl.DeleteOrderItem)
	router.GET("/pos/stock/check", stockCtrl.CheckProductStock)
	return router
}

func seedLatte(t *testing.T, db *gorm.DB, milkStock float64) (*models.Product, *models.Ingredient) {
	category := models.ProductCategory{Name: "Iced Coffee"}
	assert.NoError(t, db.Create(&category).Error)
	product := models.Product{CategoryID: category.ID, ProductName: "Iced Latte", Price: 120}
	assert.NoError(t, db.Create(&product).Error)
	milk := models.Ingredient{Name: "Milk", Quantity: milkStock, Unit: "ml"}
	assert.NoError(t, db.Create(&milk).Error)
	rule := models.CategoryIngredient{
		CategoryID:          category.ID,
		IngredientID:        milk.ID,
		Size:                models.Size16oz,
		QuantityRequirement: 2,
		Unit:                "ml",
	}
	assert.NoError(t, db.Create(&rule).Error)
	return &product, &milk
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdjustStockDeducts(t *testing.T) {
	db := setupTestDB(t, "ctrl_adjust")
	router := setupStockRouter(db)
	product, milk := seedLatte(t, db, 10)

	w := postForm(router, "/pos/stock/adjust", url.Values{
		"product_id": {idStr(product.ID)},
		"qty":        {"-3"},
		"size":       {"16oz"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	var after models.Ingredient
	assert.NoError(t, db.First(&after, milk.ID).Error)
	assert.Equal(t, 4.0, after.Quantity)
}

func TestAdjustStockMissingParameters(t *testing.T) {
	db := setupTestDB(t, "ctrl_missing")
	router := setupStockRouter(db)

	w := postForm(router, "/pos/stock/adjust", url.Values{"qty": {"-1"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "missing parameters", resp["error"])
}

func TestAdjustStockInsufficient(t *testing.T) {
	db := setupTestDB(t, "ctrl_insufficient")
	router := setupStockRouter(db)
	product, milk := seedLatte(t, db, 1)

	w := postForm(router, "/pos/stock/adjust", url.Values{
		"product_id": {idStr(product.ID)},
		"qty":        {"-3"},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "insufficient stock")

	var after models.Ingredient
	assert.NoError(t, db.First(&after, milk.ID).Error)
	assert.Equal(t, 1.0, after.Quantity)
}

func TestAdjustStockUnknownSize(t *testing.T) {
	db := setupTestDB(t, "ctrl_unknown_size")
	router := setupStockRouter(db)
	product, _ := seedLatte(t, db, 10)

	w := postForm(router, "/pos/stock/adjust", url.Values{
		"product_id": {idStr(product.ID)},
		"qty":        {"-1"},
		"size":       {"22oz"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "22oz")
}

func TestUpdateOrderItemEchoesTracking(t *testing.T) {
	db := setupTestDB(t, "ctrl_update_item")
	router := setupStockRouter(db)
	product, _ := seedLatte(t, db, 10)

	w := postForm(router, "/pos/order-items/update", url.Values{
		"product_id": {idStr(product.ID)},
		"qty":        {"-2"},
		"item_id":    {"cart-item-7"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "cart-item-7", resp["item_id"])
	assert.Equal(t, float64(-2), resp["qty_change"])
}

func TestDeleteOrderItemRestores(t *testing.T) {
	db := setupTestDB(t, "ctrl_delete_item")
	router := setupStockRouter(db)
	product, milk := seedLatte(t, db, 4)

	w := postForm(router, "/pos/order-items/delete", url.Values{
		"product_id": {idStr(product.ID)},
		"qty":        {"3"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(3), resp["qty_restored"])

	var after models.Ingredient
	assert.NoError(t, db.First(&after, milk.ID).Error)
	assert.Equal(t, 10.0, after.Quantity)
}

func TestCheckProductStockFallback(t *testing.T) {
	db := setupTestDB(t, "ctrl_check")
	router := setupStockRouter(db)
	product, milk := seedLatte(t, db, 3)

	rule22 := models.CategoryIngredient{
		CategoryID:          product.CategoryID,
		IngredientID:        milk.ID,
		Size:                models.Size22oz,
		QuantityRequirement: 5,
		Unit:                "ml",
	}
	assert.NoError(t, db.Create(&rule22).Error)

	req, _ := http.NewRequest("GET", "/pos/stock/check?product_id="+idStr(product.ID)+"&size=22oz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])

	fallback := resp["availableIn16ozOnly"].([]interface{})
	assert.Len(t, fallback, 1)
	entry := fallback[0].(map[string]interface{})
	assert.Equal(t, "Milk", entry["name"])
	assert.Equal(t, 5.0, entry["required_22oz"])
	assert.Equal(t, 2.0, entry["required_16oz"])
}
