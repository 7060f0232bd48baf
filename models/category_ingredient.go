package models

import "time"

// Drink sizes recognized by the POS front end.
const (
	Size16oz = "16oz"
	Size22oz = "22oz"
)

// CategoryIngredient is a per-size recipe requirement shared by every
// product in a category.
type CategoryIngredient struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	CategoryID          uint            `gorm:"not null;index;uniqueIndex:uniq_cat_ing_size" json:"category_id"`
	Category            ProductCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	IngredientID        uint            `gorm:"not null;uniqueIndex:uniq_cat_ing_size" json:"ingredient_id"`
	Ingredient          Ingredient      `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Size                string          `gorm:"type:varchar(20);not null;default:'16oz';uniqueIndex:uniq_cat_ing_size" json:"size"`
	QuantityRequirement float64         `gorm:"type:decimal(10,2);not null" json:"quantity_requirement"`
	Unit                string          `gorm:"type:varchar(50);not null" json:"unit"`
	CreatedAt           time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"not null" json:"updated_at"`
}
