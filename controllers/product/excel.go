package productcontroller

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/DarshanLevi/shop-it-back/services/catalog"
	"github.com/gin-gonic/gin"
)

// GET /exportproducts
func ExportProductsToExcel(products *catalog.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Buffer first so a failure can still be reported as JSON.
		var buf bytes.Buffer
		if err := products.Export(c.Request.Context(), &buf); err != nil {
			log.Printf("❌ Export failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build Excel file"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}

// POST /importproducts
func ImportProductsFromExcel(products *catalog.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel file is required"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		result, err := products.Import(c.Request.Context(), file, header.Size)
		if err != nil {
			if errors.Is(err, catalog.ErrInvalidProduct) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
				return
			}
			log.Printf("❌ Import failed after %d products: %v", result.Created, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Import failed", "result": result})
			return
		}

		log.Printf("✅ Imported %d products (%d skipped)", result.Created, result.Skipped)
		c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
	}
}
