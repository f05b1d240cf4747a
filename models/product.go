package models

import "time"

type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Vendor is a partner shop. Stock is partitioned per vendor: the same product
// can be offered by several vendors at different prices and quantities.
type Vendor struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Accepting bool      `gorm:"default:true" json:"accepting"` // accepting new orders
	CreatedAt time.Time `json:"created_at"`
}
