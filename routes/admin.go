package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Race454/netology-kurs/controllers/order"
	productControllers "github.com/Race454/netology-kurs/controllers/product"
	vendorControllers "github.com/Race454/netology-kurs/controllers/vendor"
	"github.com/Race454/netology-kurs/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Catalog Management ───────────
		adminGroup.POST("/products", productControllers.CreateProduct(db))
		adminGroup.POST("/vendors", vendorControllers.CreateVendor(db))
		adminGroup.PUT("/vendors/:id/state", vendorControllers.UpdateVendorState(db))

		// ─────────── Stock Management ───────────
		stockAdmin := adminGroup.Group("/stock")
		{
			stockAdmin.PUT("", vendorControllers.UpsertStock(db))
			stockAdmin.GET("", vendorControllers.GetStockLevels(db))
			stockAdmin.GET("/export", vendorControllers.ExportStockToExcel(db))
		}

		// ─────────── Order Overview ───────────
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		adminGroup.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
	}
}
