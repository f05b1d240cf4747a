package orderControllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func orderRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/orders/:orderID", GetOrderByIDHandler(db))
	return r
}

func getOrder(r *gin.Engine, id string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+id, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetOrderByID(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "buyer@example.com")
	order := seedCart(t, db, user.ID)

	r := orderRouter(db, user.ID)

	// By primary key.
	w := getOrder(r, fmt.Sprintf("%d", order.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), order.OrderRef)

	// By reference string. The ref is not numeric, so this must not be
	// bound against the integer id column.
	w = getOrder(r, order.OrderRef)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), order.OrderRef)

	w = getOrder(r, "nonexistent-ref")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderByID_OtherUsersOrder(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	order := seedCart(t, db, owner.ID)

	other := seedUser(t, db, "other@example.com")
	r := orderRouter(db, other.ID)

	w := getOrder(r, fmt.Sprintf("%d", order.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = getOrder(r, order.OrderRef)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
