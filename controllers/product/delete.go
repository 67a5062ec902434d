package productcontroller

import (
	"log"
	"net/http"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/services/catalog"
	"github.com/gin-gonic/gin"
)

type RemoveProductInput struct {
	ID models.FlexID `json:"id"`
}

// POST /removeproduct
func RemoveProduct(products *catalog.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RemoveProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}
		id, err := input.ID.Int()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid product ID"})
			return
		}

		removed, err := products.Remove(c.Request.Context(), id)
		if err != nil {
			log.Printf("❌ %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete product"})
			return
		}
		if removed {
			log.Printf("🗑️ Removed product %d", id)
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
