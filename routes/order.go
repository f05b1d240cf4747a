package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Race454/netology-kurs/controllers/order"
	"github.com/Race454/netology-kurs/middleware"
	"github.com/Race454/netology-kurs/notify"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, hub *notify.Hub) {
	// websocket endpoint for real-time confirmation broadcasts
	r.GET("/orders/ws", hub.Handler)

	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Confirm the pending cart into an order
		orders.POST("/confirm", orderControllers.ConfirmOrderHandler(db, hub))

		// Fetch the caller's order history
		orders.GET("/", orderControllers.GetUserOrdersHandler(db))

		// Fetch a single order by ID or order_ref
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
	}
}
