package models

import "time"

const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	OrderNumber    string      `gorm:"type:varchar(50);unique;not null" json:"order_number"`
	OrderType      string      `gorm:"type:varchar(50)" json:"order_type"`
	PaymentType    string      `gorm:"type:varchar(50)" json:"payment_type"`
	TotalAmount    float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	AmountTendered float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"amount_tendered"`
	PaymentStatus  string      `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	Note           *string     `gorm:"type:text" json:"note"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems     []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}
