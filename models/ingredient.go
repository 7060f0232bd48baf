package models

import (
	"strings"
	"time"
)

type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity  float64   `gorm:"type:decimal(10,2);not null;default:0" json:"quantity"`
	Unit      string    `gorm:"type:varchar(50);not null" json:"unit"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsSweetener reports whether this ingredient plays the sweetener role.
// Detection is by naming convention ("sweetener" or "sugar" anywhere in the
// name); the schema has no explicit role column yet.
func (i *Ingredient) IsSweetener() bool {
	return IsSweetenerName(i.Name)
}

func IsSweetenerName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "sweetener") || strings.Contains(lower, "sugar")
}
