package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kussopos/pos-app/controllers"
	"github.com/kussopos/pos-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())

	userCtrl := controllers.NewUserController(db)
	stockCtrl := controllers.NewStockController(db)
	orderCtrl := controllers.NewOrderController(db)
	inventoryCtrl := controllers.NewInventoryController(db)

	api := r.Group("/api")

	// Auth
	auth := api.Group("/users")
	auth.Use(middlewares.NewStrictRateLimiter())
	auth.POST("/register", userCtrl.Register)
	auth.POST("/login", userCtrl.Login)

	// POS terminal endpoints. The terminal runs unauthenticated on the
	// store LAN, same trust model as the original front end.
	pos := api.Group("/pos")
	pos.POST("/stock/adjust", stockCtrl.AdjustStock)
	pos.POST("/order-items/update", stockCtrl.UpdateOrderItem)
	pos.POST("/order-items/delete", stockCtrl.DeleteOrderItem)
	pos.GET("/stock/check", stockCtrl.CheckProductStock)
	pos.POST("/orders", orderCtrl.SaveOrder)
	pos.GET("/orders/:order_id", orderCtrl.FetchOrder)

	// Back-office endpoints require a logged-in admin or staff user.
	admin := api.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	admin.Use(middlewares.RequireRole("staff"))
	admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	admin.GET("/ingredients", inventoryCtrl.GetAllIngredients)
	admin.POST("/ingredients", inventoryCtrl.CreateIngredient)
	admin.PATCH("/ingredients/:ingredient_id", inventoryCtrl.UpdateIngredient)
	admin.DELETE("/ingredients/:ingredient_id", inventoryCtrl.DeleteIngredient)
	admin.POST("/product-ingredients", inventoryCtrl.LinkIngredient)
	admin.DELETE("/product-ingredients/:link_id", inventoryCtrl.UnlinkIngredient)
	admin.POST("/product-flavors", inventoryCtrl.LinkFlavor)
	admin.DELETE("/product-flavors/:link_id", inventoryCtrl.UnlinkFlavor)

	return r
}
