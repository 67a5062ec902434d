package productcontroller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/services/catalog"
	"github.com/gin-gonic/gin"
)

// GET /getallproducts
func GetAllProducts(products *catalog.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			log.Printf("❌ %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, nonNil(list))
	}
}

// GET /newCollections
func NewCollections(products *catalog.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := catalog.RecentLimit
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			limit = n
		}

		list, err := products.ListRecent(c.Request.Context(), limit)
		if err != nil {
			log.Printf("❌ %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, nonNil(list))
	}
}

// nonNil keeps empty listings serialized as [] rather than null.
func nonNil(list []models.Product) []models.Product {
	if list == nil {
		return []models.Product{}
	}
	return list
}
