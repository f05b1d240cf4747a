package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Race454/netology-kurs/controllers/cart"
	contactControllers "github.com/Race454/netology-kurs/controllers/contact"
	productControllers "github.com/Race454/netology-kurs/controllers/product"
	userControllers "github.com/Race454/netology-kurs/controllers/user"
	vendorControllers "github.com/Race454/netology-kurs/controllers/vendor"
	"github.com/Race454/netology-kurs/middleware"
)

// SetupUserRoutes registers all “/user/*” endpoints plus the public catalog.
// Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Public Catalog ────────────────
	r.GET("/products", productControllers.GetProducts(db))        // GET /products
	r.GET("/products/:id", productControllers.GetProductByID(db)) // GET /products/:id
	r.GET("/vendors", vendorControllers.GetVendors(db))           // GET /vendors

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))               // GET /user/cart
			cartGroup.POST("/", cartControllers.AddCartItem(db))              // POST /user/cart
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(db)) // DELETE /user/cart/:item_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))          // DELETE /user/cart
		}

		// ──────────────── Delivery Contacts ────────────────
		contactGroup := userGroup.Group("/contacts")
		{
			contactGroup.GET("/", contactControllers.ListContacts(db))         // GET /user/contacts
			contactGroup.POST("/", contactControllers.CreateContact(db))       // POST /user/contacts
			contactGroup.GET("/:id", contactControllers.GetContact(db))        // GET /user/contacts/:id
			contactGroup.PUT("/:id", contactControllers.UpdateContact(db))     // PUT /user/contacts/:id
			contactGroup.DELETE("/:id", contactControllers.DeleteContact(db))  // DELETE /user/contacts/:id
		}
	}
}
