package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Race454/netology-kurs/models"
	"github.com/Race454/netology-kurs/notify"
)

type ConfirmOrderRequest struct {
	OrderID   uint `json:"order_id" binding:"required"`
	ContactID uint `json:"contact_id" binding:"required"`
}

type ConfirmedItem struct {
	ProductID    uint            `json:"product_id"`
	VendorID     uint            `json:"vendor_id"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	ItemTotal    decimal.Decimal `json:"item_total"`
}

type ConfirmOrderResult struct {
	Order   models.Order    `json:"order"`
	Items   []ConfirmedItem `json:"items"`
	Total   decimal.Decimal `json:"total_price"`
	Warning string          `json:"warning,omitempty"` // notification failure, never fatal
}

// ConfirmOrder turns the caller's pending cart into a confirmed order.
//
// Preconditions run in a fixed sequence and each one is a hard failure:
// pending order owned by the caller, at least one line item, a contact owned
// by the caller, a complete address when the contact is an address, and
// sufficient stock for every line item. None of them mutate anything.
//
// The commit runs in a single transaction and every write is guarded: the
// status flip only touches a still-pending row, and each stock decrement only
// a row with enough quantity left. A guarded write that touches zero rows
// means a concurrent confirmation won the race after our check; the whole
// transaction rolls back and nothing is deducted.
func ConfirmOrder(db *gorm.DB, notifier notify.Notifier, userID string, req ConfirmOrderRequest) (*ConfirmOrderResult, error) {
	// Preconditions, all plain reads.
	var order models.Order
	if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "order", ID: itoa(req.OrderID)}
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, &models.NotFoundError{Resource: "order", ID: itoa(req.OrderID)}
	}
	if order.Status != models.OrderStatusPending {
		return nil, &models.InvalidStateError{OrderID: order.ID, Status: order.Status}
	}

	var items []models.LineItem
	if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}

	var contact models.Contact
	if err := db.Where("id = ? AND user_id = ?", req.ContactID, userID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "contact", ID: itoa(req.ContactID)}
		}
		return nil, err
	}
	if missing := contact.MissingAddressFields(); len(missing) > 0 {
		return nil, &models.IncompleteAddressError{Missing: missing}
	}

	result := &ConfirmOrderResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Batch-fetch every stock row the order touches in one query, then
		// check all items so the shortage report is complete rather than
		// stopping at the first violation.
		stocks, err := fetchStockLevels(tx, items)
		if err != nil {
			return err
		}

		var shortages []models.StockShortage
		for _, item := range items {
			stock, ok := stocks[stockKey{item.ProductID, item.VendorID}]
			if !ok {
				shortages = append(shortages, models.StockShortage{
					ProductID: item.ProductID,
					VendorID:  item.VendorID,
					Requested: item.Quantity,
					Available: 0,
				})
				continue
			}
			if stock.Quantity < item.Quantity {
				shortages = append(shortages, models.StockShortage{
					ProductID: item.ProductID,
					VendorID:  item.VendorID,
					Requested: item.Quantity,
					Available: stock.Quantity,
				})
			}
		}
		if len(shortages) > 0 {
			return &models.InsufficientStockError{Items: shortages}
		}

		// Price the order from the rows just read; the guarded writes below
		// run in the same transaction.
		total := decimal.Zero
		for _, item := range items {
			price := stocks[stockKey{item.ProductID, item.VendorID}].Price
			itemTotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(itemTotal)

			result.Items = append(result.Items, ConfirmedItem{
				ProductID:    item.ProductID,
				VendorID:     item.VendorID,
				Quantity:     item.Quantity,
				PricePerUnit: price,
				ItemTotal:    itemTotal,
			})
		}

		// Commit phase. The status flip is itself guarded on pending: if a
		// concurrent confirmation of the same order slipped in after our
		// precondition read, zero rows are touched and we abort before any
		// stock is decremented, so stock can never come off twice for one
		// order.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":       models.OrderStatusConfirmed,
				"contact_id":   contact.ID,
				"total_amount": total,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &models.InvalidStateError{OrderID: order.ID, Status: models.OrderStatusConfirmed}
		}

		// The WHERE quantity >= ? guard makes each decrement conditional: a
		// concurrent writer that got in after our read leaves RowsAffected at
		// zero and rolls everything back.
		for _, item := range items {
			res := tx.Model(&models.StockLevel{}).
				Where("product_id = ? AND vendor_id = ? AND quantity >= ?",
					item.ProductID, item.VendorID, item.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &models.ConflictError{ProductID: item.ProductID, VendorID: item.VendorID}
			}
		}

		order.Status = models.OrderStatusConfirmed
		order.ContactID = &contact.ID
		order.TotalAmount = total

		result.Order = order
		result.Total = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: a notifier failure is a warning in the response, the
	// order stays confirmed either way.
	if notifier != nil {
		recipient := lookupEmail(db, userID)
		if sendErr := notifier.Send(recipient, notify.Confirmation{
			OrderID:  order.ID,
			OrderRef: order.OrderRef,
			UserID:   userID,
			Total:    result.Total.String(),
		}); sendErr != nil {
			log.Printf("❌ Failed to dispatch confirmation for order %d: %v", order.ID, sendErr)
			result.Warning = "order confirmed, but the confirmation notification could not be dispatched"
		}
	}

	return result, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type stockKey struct {
	ProductID uint
	VendorID  uint
}

// fetchStockLevels loads the stock rows for every (product, vendor) pair in
// the order with a single query, keyed for lookup during the check and
// pricing passes.
func fetchStockLevels(tx *gorm.DB, items []models.LineItem) (map[stockKey]models.StockLevel, error) {
	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	var rows []models.StockLevel
	if err := tx.Where("product_id IN ?", productIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	stocks := make(map[stockKey]models.StockLevel, len(rows))
	for _, row := range rows {
		stocks[stockKey{row.ProductID, row.VendorID}] = row
	}
	return stocks, nil
}

func lookupEmail(db *gorm.DB, userID string) string {
	var user models.User
	if err := db.Select("email").First(&user, "id = ?", userID).Error; err != nil {
		return userID
	}
	return user.Email
}

// -------- Handler --------

// POST /orders/confirm
func ConfirmOrderHandler(db *gorm.DB, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req ConfirmOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := ConfirmOrder(db, notifier, userID, req)
		if err != nil {
			respondConfirmError(c, err)
			return
		}

		resp := gin.H{
			"message":     "Order confirmed",
			"order":       result.Order,
			"items":       result.Items,
			"total_price": result.Total,
		}
		if result.Warning != "" {
			resp["warning"] = result.Warning
		}
		c.JSON(http.StatusOK, resp)
	}
}

func respondConfirmError(c *gin.Context, err error) {
	var (
		notFound     *models.NotFoundError
		invalidState *models.InvalidStateError
		incomplete   *models.IncompleteAddressError
		insufficient *models.InsufficientStockError
		conflict     *models.ConflictError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "resource": notFound.Resource})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "status": invalidState.Status})
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty, add items before confirming"})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "missing": incomplete.Missing})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "Insufficient stock",
			"unavailable_items": insufficient.Items,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retry": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm order"})
	}
}
