package cartControllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/DarshanLevi/shop-it-back/middleware"
	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/services/cart"
	"github.com/gin-gonic/gin"
)

type CartItemInput struct {
	ItemID models.FlexID `json:"itemId"`
}

// POST /addToCart
func AddToCart(carts *cart.Manager) gin.HandlerFunc {
	return updateCart(carts.Add, "Added to cart")
}

// POST /removefromcart
func RemoveFromCart(carts *cart.Manager) gin.HandlerFunc {
	return updateCart(carts.Remove, "Removed from cart")
}

type cartUpdate func(ctx context.Context, userID, itemID string) (int, error)

func updateCart(apply cartUpdate, confirmation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if _, err := apply(c.Request.Context(), identity.ID, input.ItemID.String()); err != nil {
			writeCartError(c, err)
			return
		}

		c.String(http.StatusOK, confirmation)
	}
}

// POST /getcart
func GetCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cartData, err := carts.Get(c.Request.Context(), identity.ID)
		if err != nil {
			writeCartError(c, err)
			return
		}

		c.JSON(http.StatusOK, cartData)
	}
}

func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid itemId"})
	case errors.Is(err, cart.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		log.Printf("❌ Cart update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}
