package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kussopos/pos-app/models"
	"github.com/kussopos/pos-app/services"
	"github.com/kussopos/pos-app/utils"
)

type OrderController struct {
	DB       *gorm.DB
	invoices *services.InvoiceService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:       db,
		invoices: services.NewInvoiceService(db),
	}
}

type saveOrderItem struct {
	ID      uint    `json:"id"`
	Qty     int     `json:"qty"`
	Price   float64 `json:"price"`
	Amount  float64 `json:"amount"`
	Options *string `json:"options"`
	Note    *string `json:"note"`
}

type saveOrderRequest struct {
	OrderID         uint            `json:"order_id"`
	OrderType       string          `json:"order_type"`
	PaymentType     string          `json:"payment_type"`
	PaymentStatus   string          `json:"payment_status"`
	TotalAmount     float64         `json:"total_amount"`
	AmountTendered  float64         `json:"amount_tendered"`
	OrderNotes      *string         `json:"order_notes"`
	DeviceTimestamp string          `json:"device_timestamp"`
	Items           []saveOrderItem `json:"items"`
}

// SaveOrder creates a new order or updates an existing one. Inventory is not
// touched here: deduction already happened item by item while the cart was
// being edited.
func (oc *OrderController) SaveOrder(c *gin.Context) {
	var req saveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid data"))
		return
	}

	if req.OrderID != 0 {
		oc.updateOrder(c, &req)
		return
	}
	oc.createOrder(c, &req)
}

func (oc *OrderController) createOrder(c *gin.Context, req *saveOrderRequest) {
	createdAt := parseDeviceTimestamp(req.DeviceTimestamp)

	orderNumber, err := oc.invoices.NextOrderNumber(createdAt)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order := models.Order{
		OrderNumber:    orderNumber,
		OrderType:      req.OrderType,
		PaymentType:    req.PaymentType,
		TotalAmount:    req.TotalAmount,
		AmountTendered: req.AmountTendered,
		PaymentStatus:  derivePaymentStatus(req.PaymentType, req.PaymentStatus, models.PaymentStatusUnpaid),
		Note:           req.OrderNotes,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ID,
				Qty:       item.Qty,
				Price:     item.Price,
				Amount:    item.Amount,
				Options:   item.Options,
				Note:      item.Note,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.ErrorLogger.Printf("Failed to create order: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New order created: %s (%d items)", orderNumber, len(req.Items))
	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "New order created.",
		"order_number": orderNumber,
	})
}

func (oc *OrderController) updateOrder(c *gin.Context, req *saveOrderRequest) {
	var existing models.Order
	if err := oc.DB.First(&existing, req.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	paymentStatus := derivePaymentStatus(req.PaymentType, req.PaymentStatus, existing.PaymentStatus)

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"payment_type":    req.PaymentType,
			"total_amount":    req.TotalAmount,
			"amount_tendered": req.AmountTendered,
			"payment_status":  paymentStatus,
			"note":            req.OrderNotes,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		for _, item := range req.Items {
			err := tx.Model(&models.OrderItem{}).
				Where("order_id = ? AND product_id = ?", req.OrderID, item.ID).
				Updates(map[string]interface{}{
					"qty":     item.Qty,
					"price":   item.Price,
					"amount":  item.Amount,
					"options": item.Options,
					"note":    item.Note,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.ErrorLogger.Printf("Failed to update order %d: %v", req.OrderID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order updated to paid status.",
	})
}

// orderItemRow carries an order item joined with its product name for the
// receipt view.
type orderItemRow struct {
	ID          uint    `gorm:"column:id" json:"id"`
	OrderID     uint    `gorm:"column:order_id" json:"order_id"`
	ProductID   uint    `gorm:"column:product_id" json:"product_id"`
	Qty         int     `gorm:"column:qty" json:"qty"`
	Price       float64 `gorm:"column:price" json:"price"`
	Amount      float64 `gorm:"column:amount" json:"amount"`
	Options     *string `gorm:"column:options" json:"options"`
	Note        *string `gorm:"column:note" json:"note"`
	ProductName string  `gorm:"column:product_name" json:"product_name"`
}

// FetchOrder -> order header plus items with product names.
func (oc *OrderController) FetchOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order ID not provided"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	var items []orderItemRow
	err = oc.DB.Table("order_items oi").
		Select("oi.id, oi.order_id, oi.product_id, oi.qty, oi.price, oi.amount, oi.options, oi.note, p.product_name").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id = ?", id).
		Scan(&items).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"order":       order,
		"order_items": items,
	})
}

// DeleteOrder removes an order and all of its items.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order ID"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("Failed to delete order %d: %v", id, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order deleted: %s", order.OrderNumber)
	utils.RespondJSON(c, http.StatusOK, "Order deleted successfully.", nil)
}

// derivePaymentStatus applies the POS payment rules: cash and processed
// gateway payments are paid immediately, "pay later" stays unpaid, and an
// explicit paid status from the client is honored.
func derivePaymentStatus(paymentType, explicitStatus, fallback string) string {
	switch strings.ToLower(paymentType) {
	case "cash", "paymongo", "other":
		return models.PaymentStatusPaid
	case "pay later":
		return models.PaymentStatusUnpaid
	}
	if explicitStatus == models.PaymentStatusPaid {
		return models.PaymentStatusPaid
	}
	return fallback
}

func parseDeviceTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", raw, time.Local)
	if err != nil {
		return time.Now()
	}
	return ts
}
