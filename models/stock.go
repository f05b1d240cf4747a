package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel is the available quantity and unit price of one product at one
// vendor. It is the contended row during order confirmation: the decrement
// must never drive Quantity below zero.
type StockLevel struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"uniqueIndex:idx_product_vendor;not null" json:"product_id"`
	VendorID  uint            `gorm:"uniqueIndex:idx_product_vendor;not null" json:"vendor_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
}
