package cartControllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Race454/netology-kurs/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.Product{},
		&models.Vendor{},
		&models.StockLevel{},
		&models.Order{},
		&models.LineItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.NewString(), Email: uuid.NewString() + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedOffer(t *testing.T, db *gorm.DB, quantity int, price string) (*models.Product, *models.Vendor) {
	t.Helper()
	product := &models.Product{Name: "Widget"}
	require.NoError(t, db.Create(product).Error)
	vendor := &models.Vendor{Name: "Acme", Accepting: true}
	require.NoError(t, db.Create(vendor).Error)
	require.NoError(t, db.Create(&models.StockLevel{
		ProductID: product.ID,
		VendorID:  vendor.ID,
		Quantity:  quantity,
		Price:     decimal.RequireFromString(price),
	}).Error)
	return product, vendor
}

func TestAddToCart_RepeatedAddIncrementsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product, vendor := seedOffer(t, db, 10, "5")

	first, err := AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 1})
	require.NoError(t, err)
	second, err := AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same (product, vendor) must reuse the line item")
	assert.Equal(t, 3, second.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.LineItem{}).Where("order_id = ?", first.OrderID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddToCart_ReusesPendingOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	productA, vendor := seedOffer(t, db, 10, "5")
	productB := &models.Product{Name: "Gadget"}
	require.NoError(t, db.Create(productB).Error)
	require.NoError(t, db.Create(&models.StockLevel{
		ProductID: productB.ID, VendorID: vendor.ID, Quantity: 4, Price: decimal.NewFromInt(7),
	}).Error)

	itemA, err := AddToCart(db, user.ID, AddItemInput{ProductID: productA.ID, VendorID: vendor.ID, Quantity: 1})
	require.NoError(t, err)
	itemB, err := AddToCart(db, user.ID, AddItemInput{ProductID: productB.ID, VendorID: vendor.ID, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, itemA.OrderID, itemB.OrderID, "one pending order per user")

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", user.ID, models.OrderStatusPending).
		Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}

func TestAddToCart_RejectsWhenResultingQuantityExceedsStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product, vendor := seedOffer(t, db, 3, "5")

	_, err := AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 2})
	require.NoError(t, err)

	// 2 already in the cart; adding 2 more would exceed the 3 available.
	_, err = AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 2})
	var insufficient *models.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Items, 1)
	assert.Equal(t, 4, insufficient.Items[0].Requested)
	assert.Equal(t, 3, insufficient.Items[0].Available)

	// The cart keeps its previous quantity.
	var item models.LineItem
	require.NoError(t, db.Where("product_id = ? AND vendor_id = ?", product.ID, vendor.ID).First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddToCart_RejectsMissingStockRow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product := &models.Product{Name: "Widget"}
	require.NoError(t, db.Create(product).Error)
	vendor := &models.Vendor{Name: "Acme"}
	require.NoError(t, db.Create(vendor).Error)
	// no StockLevel row for this pair

	_, err := AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 1})
	var insufficient *models.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Items, 1)
	assert.Equal(t, 0, insufficient.Items[0].Available)
}

func TestAddToCart_UnknownProductOrVendor(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product, vendor := seedOffer(t, db, 3, "5")

	var notFound *models.NotFoundError

	_, err := AddToCart(db, user.ID, AddItemInput{ProductID: 999, VendorID: vendor.ID, Quantity: 1})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "product", notFound.Resource)

	_, err = AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: 999, Quantity: 1})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "vendor", notFound.Resource)
}

func TestAddToCart_ClosedVendor(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product, vendor := seedOffer(t, db, 5, "5")
	require.NoError(t, db.Model(vendor).Update("accepting", false).Error)

	_, err := AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 1})
	var closed *models.VendorClosedError
	require.ErrorAs(t, err, &closed)
	assert.Equal(t, vendor.ID, closed.VendorID)

	// Nothing was added.
	var count int64
	require.NoError(t, db.Model(&models.LineItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRemoveFromCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product, vendor := seedOffer(t, db, 5, "5")

	item, err := AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, RemoveFromCart(db, user.ID, item.ID))

	// Removing it again is a not-found error, not a silent no-op.
	err = RemoveFromCart(db, user.ID, item.ID)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRemoveFromCart_OtherUsersItem(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db)
	intruder := seedUser(t, db)
	product, vendor := seedOffer(t, db, 5, "5")

	item, err := AddToCart(db, owner.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 1})
	require.NoError(t, err)

	err = RemoveFromCart(db, intruder.ID, item.ID)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)

	// Still in the owner's cart.
	var count int64
	require.NoError(t, db.Model(&models.LineItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCartTotal(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product, vendor := seedOffer(t, db, 10, "12.50")

	item, err := AddToCart(db, user.ID, AddItemInput{ProductID: product.ID, VendorID: vendor.ID, Quantity: 4})
	require.NoError(t, err)

	total, err := CartTotal(db, []models.LineItem{*item})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("50")), "got %s", total)
}
