package models

import "time"

type ContactType string

const (
	ContactTypeAddress ContactType = "address" // delivery address
	ContactTypePhone   ContactType = "phone"   // phone-only contact
)

// Contact is a delivery destination owned by a user. Orders reference it at
// confirmation time and never mutate it.
type Contact struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"index;not null" json:"user_id"`
	Type      ContactType `gorm:"type:VARCHAR(20);default:'address'" json:"type"`
	City      string      `json:"city"`
	Street    string      `json:"street"`
	House     string      `json:"house"`
	Apartment string      `json:"apartment"`
	Phone     string      `json:"phone"`
	CreatedAt time.Time   `json:"created_at"`
}

// MissingAddressFields lists the address fields that must be populated before
// the contact can be used for delivery. Empty for non-address contacts.
func (c *Contact) MissingAddressFields() []string {
	if c.Type != ContactTypeAddress {
		return nil
	}
	var missing []string
	if c.City == "" {
		missing = append(missing, "city")
	}
	if c.Street == "" {
		missing = append(missing, "street")
	}
	if c.House == "" {
		missing = append(missing, "house")
	}
	return missing
}
