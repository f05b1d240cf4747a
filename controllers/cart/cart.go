package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Race454/netology-kurs/models"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	VendorID  uint `json:"vendor_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// -------- Core Logic --------

// pendingOrder returns the caller's cart, creating it on first use. The
// partial unique index on (user_id, status='pending') backs this up at the
// storage layer.
func pendingOrder(db *gorm.DB, userID string) (*models.Order, error) {
	var order models.Order
	// Struct conditions so the matched fields carry over into the created row.
	err := db.Where(models.Order{UserID: userID, Status: models.OrderStatusPending}).
		Attrs(models.Order{OrderRef: generateOrderRef()}).
		FirstOrCreate(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Generate unique order reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// AddToCart adds quantity of (product, vendor) to the caller's pending order.
// An existing line item for the same pair is incremented, never duplicated.
// The add is rejected when stock for the pair is absent or below the
// RESULTING quantity, so a cart can never hold more than the vendor has.
func AddToCart(db *gorm.DB, userID string, input AddItemInput) (*models.LineItem, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "product", ID: itoa(input.ProductID)}
		}
		return nil, err
	}
	var vendor models.Vendor
	if err := db.First(&vendor, "id = ?", input.VendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "vendor", ID: itoa(input.VendorID)}
		}
		return nil, err
	}
	if !vendor.Accepting {
		return nil, &models.VendorClosedError{VendorID: vendor.ID}
	}

	order, err := pendingOrder(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.LineItem
	err = db.Where("order_id = ? AND product_id = ? AND vendor_id = ?",
		order.ID, input.ProductID, input.VendorID).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.LineItem{
			OrderID:   order.ID,
			ProductID: input.ProductID,
			VendorID:  input.VendorID,
			Quantity:  0,
		}
	case err != nil:
		return nil, err
	}

	resulting := item.Quantity + input.Quantity

	var stock models.StockLevel
	err = db.Where("product_id = ? AND vendor_id = ?", input.ProductID, input.VendorID).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.InsufficientStockError{Items: []models.StockShortage{{
			ProductID: input.ProductID,
			VendorID:  input.VendorID,
			Requested: resulting,
			Available: 0,
		}}}
	}
	if err != nil {
		return nil, err
	}
	if stock.Quantity < resulting {
		return nil, &models.InsufficientStockError{Items: []models.StockShortage{{
			ProductID: input.ProductID,
			VendorID:  input.VendorID,
			Requested: resulting,
			Available: stock.Quantity,
		}}}
	}

	item.Quantity = resulting
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart deletes a line item from the caller's pending order. A
// missing item is a not-found error, not a silent no-op.
func RemoveFromCart(db *gorm.DB, userID string, itemID uint) error {
	order, err := currentPendingOrder(db, userID)
	if err != nil {
		return err
	}

	result := db.Where("id = ? AND order_id = ?", itemID, order.ID).Delete(&models.LineItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Resource: "cart item", ID: itoa(itemID)}
	}
	return nil
}

// currentPendingOrder looks the cart up without creating one.
func currentPendingOrder(db *gorm.DB, userID string) (*models.Order, error) {
	var order models.Order
	err := db.Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Resource: "cart", ID: userID}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CartTotal prices the pending order against current stock rows.
func CartTotal(db *gorm.DB, items []models.LineItem) (decimal.Decimal, error) {
	total := decimal.Zero
	if len(items) == 0 {
		return total, nil
	}

	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	var stocks []models.StockLevel
	if err := db.Where("product_id IN ?", productIDs).Find(&stocks).Error; err != nil {
		return total, err
	}

	type key struct{ p, v uint }
	prices := make(map[key]decimal.Decimal, len(stocks))
	for _, s := range stocks {
		prices[key{s.ProductID, s.VendorID}] = s.Price
	}
	for _, item := range items {
		if price, ok := prices[key{item.ProductID, item.VendorID}]; ok {
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	return total, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// -------- Handlers --------

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var order models.Order
		err := db.Preload("Items").
			Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": "Cart is empty", "items": []models.LineItem{}, "total": decimal.Zero})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		total, err := CartTotal(db, order.Items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order_id": order.ID, "items": order.Items, "total": total})
	}
}

// POST /user/cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddToCart(db, userID, input)
		if err != nil {
			var notFound *models.NotFoundError
			var closed *models.VendorClosedError
			var insufficient *models.InsufficientStockError
			switch {
			case errors.As(err, &notFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "resource": notFound.Resource})
			case errors.As(err, &closed):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.As(err, &insufficient):
				c.JSON(http.StatusBadRequest, gin.H{
					"error":             "Insufficient stock",
					"unavailable_items": insufficient.Items,
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			}
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /user/cart/:item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item_id"})
			return
		}

		if err := RemoveFromCart(db, userID, uint(itemID)); err != nil {
			var notFound *models.NotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		order, err := currentPendingOrder(db, userID)
		if err != nil {
			var notFound *models.NotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Cart is already empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("order_id = ?", order.ID).Delete(&models.LineItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
