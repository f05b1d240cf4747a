package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Race454/netology-kurs/notify"
)

// SetupRoutes is the single entry‐point that wires up Auth, User, Order, and
// Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *notify.Hub) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// 2️⃣ User routes (JWT‐protected)
	SetupUserRoutes(r, db)

	// 3️⃣ Order routes (JWT‐protected, plus the websocket feed)
	SetupOrderRoutes(r, db, hub)

	// 4️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, db)
}
