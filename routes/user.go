package routes

import (
	cartControllers "github.com/DarshanLevi/shop-it-back/controllers/cart"
	"github.com/DarshanLevi/shop-it-back/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers the cart endpoints. Requires a session token.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	user := r.Group("/")
	user.Use(middleware.RequireUser(d.Tokens))
	{
		user.POST("/addToCart", cartControllers.AddToCart(d.Carts))
		user.POST("/removefromcart", cartControllers.RemoveFromCart(d.Carts))
		user.POST("/getcart", cartControllers.GetCart(d.Carts))
	}
}
