package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // the cart: mutable, not yet confirmed
	OrderStatusConfirmed OrderStatus = "confirmed" // stock committed, awaiting fulfilment
	OrderStatusFulfilled OrderStatus = "fulfilled" // delivered to the customer
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled after confirmation
)

// Order is one row per (user, lifecycle state). While Status is "pending" it
// acts as the user's cart; the partial unique index keeps at most one pending
// order per user.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderRef    string          `gorm:"uniqueIndex" json:"order_ref"`
	UserID      string          `gorm:"not null;index:idx_user_pending,unique,where:status = 'pending'" json:"user_id"`
	Status      OrderStatus     `gorm:"type:VARCHAR(20);default:'pending';index:idx_user_pending,unique,where:status = 'pending'" json:"status"`
	ContactID   *uint           `json:"contact_id,omitempty"`
	Contact     *Contact        `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items       []LineItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2)" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LineItem is a quantity of one product from one vendor attached to an order.
// At most one row per (order, product, vendor): repeated additions increment
// Quantity instead of duplicating rows.
type LineItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"uniqueIndex:idx_order_product_vendor;index" json:"order_id"`
	ProductID uint `gorm:"uniqueIndex:idx_order_product_vendor;not null" json:"product_id"`
	VendorID  uint `gorm:"uniqueIndex:idx_order_product_vendor;not null" json:"vendor_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}
