package models

import "time"

// ProductIngredient is a direct product-to-ingredient link, independent of
// size. Product-scoped links take precedence over category rules when the
// stock checker merges the two.
type ProductIngredient struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ProductID        uint       `gorm:"not null;index" json:"product_id"`
	Product          Product    `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	IngredientID     uint       `gorm:"not null" json:"ingredient_id"`
	Ingredient       Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	QuantityRequired float64    `gorm:"type:decimal(10,2);not null" json:"quantity_required"`
	Unit             string     `gorm:"type:varchar(50)" json:"unit"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}
