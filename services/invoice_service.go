package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kussopos/pos-app/models"
)

type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

// NextOrderNumber generates an invoice number with a counter that resets
// daily, e.g. INV-20260901-0007. The timestamp comes from the POS device so
// the daily reset follows the store clock, not the server clock.
func (s *InvoiceService) NextOrderNumber(at time.Time) (string, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := s.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("INV-%s-%04d", at.Format("20060102"), count+1), nil
}
