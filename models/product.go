package models

import "time"

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Category    ProductCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Price       float64         `gorm:"type:decimal(10,2);not null" json:"price"`
	Options     string          `gorm:"type:text" json:"options"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
