package contactControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Race454/netology-kurs/models"
)

type ContactInput struct {
	Type      models.ContactType `json:"type" binding:"required,oneof=address phone"`
	City      string             `json:"city"`
	Street    string             `json:"street"`
	House     string             `json:"house"`
	Apartment string             `json:"apartment"`
	Phone     string             `json:"phone"`
}

// POST /user/contacts
func CreateContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		contact := models.Contact{
			UserID:    userID,
			Type:      input.Type,
			City:      input.City,
			Street:    input.Street,
			House:     input.House,
			Apartment: input.Apartment,
			Phone:     input.Phone,
		}
		if err := db.Create(&contact).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
			return
		}

		c.JSON(http.StatusCreated, contact)
	}
}

// GET /user/contacts
func ListContacts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var contacts []models.Contact
		if err := db.Where("user_id = ?", userIDVal).Order("created_at").Find(&contacts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
			return
		}
		c.JSON(http.StatusOK, contacts)
	}
}

// GET /user/contacts/:id
func GetContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var contact models.Contact
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userIDVal).First(&contact).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact"})
			return
		}
		c.JSON(http.StatusOK, contact)
	}
}

// PUT /user/contacts/:id
func UpdateContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var contact models.Contact
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userIDVal).First(&contact).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact"})
			return
		}

		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		contact.Type = input.Type
		contact.City = input.City
		contact.Street = input.Street
		contact.House = input.House
		contact.Apartment = input.Apartment
		contact.Phone = input.Phone
		if err := db.Save(&contact).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
			return
		}

		c.JSON(http.StatusOK, contact)
	}
}

// DELETE /user/contacts/:id
func DeleteContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", c.Param("id"), userIDVal).Delete(&models.Contact{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Contact deleted"})
	}
}
