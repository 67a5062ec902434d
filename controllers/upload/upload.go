package uploadController

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FieldName is the multipart field carrying the image.
const FieldName = "products"

var unsafeExt = regexp.MustCompile(`[^\w\.]`)

// UploadImage stores a single product image under uploadDir and returns the
// URL it is served from.
func UploadImage(uploadDir, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile(FieldName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file uploaded"})
			return
		}

		ext := strings.ToLower(unsafeExt.ReplaceAllString(filepath.Ext(file.Filename), ""))
		// The suffix keeps uploads landing in the same millisecond apart.
		filename := fmt.Sprintf("%s_%d_%s%s", FieldName, time.Now().UnixMilli(), uuid.NewString()[:8], ext)

		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to create upload folder: %v", err),
			})
			return
		}

		savePath := filepath.Join(uploadDir, filename)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to save file: %v", err),
			})
			return
		}

		imageURL := fmt.Sprintf("%s/images/%s", publicBaseURL, filename)
		log.Printf("📁 Image uploaded: %s -> %s", file.Filename, imageURL)

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"image_url": imageURL,
		})
	}
}
