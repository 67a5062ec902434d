package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/DarshanLevi/shop-it-back/services/catalog"
	"github.com/gin-gonic/gin"
)

// POST /addproduct
func AddProduct(products *catalog.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input catalog.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		product, err := products.Add(c.Request.Context(), input)
		if err != nil {
			if errors.Is(err, catalog.ErrInvalidProduct) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
				return
			}
			log.Printf("❌ Failed to add product %q: %v", input.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create product"})
			return
		}

		log.Printf("✅ Product %d saved: %s", product.ID, product.Name)
		c.JSON(http.StatusOK, gin.H{"success": true, "name": product.Name})
	}
}
