package models

import "time"

// ProductFlavor links a flavor (an ingredient row) to a product with a
// size-specific required quantity, additive to the category recipe.
type ProductFlavor struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ProductID        uint       `gorm:"not null;uniqueIndex:uniq_product_flavor_size" json:"product_id"`
	Product          Product    `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FlavorID         uint       `gorm:"not null;uniqueIndex:uniq_product_flavor_size" json:"flavor_id"`
	Flavor           Ingredient `gorm:"foreignKey:FlavorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Size             string     `gorm:"type:varchar(20);not null;default:'16oz';uniqueIndex:uniq_product_flavor_size" json:"size"`
	QuantityRequired float64    `gorm:"type:decimal(10,2);not null" json:"quantity_required"`
	Unit             string     `gorm:"type:varchar(50);not null" json:"unit"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}
