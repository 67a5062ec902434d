package routes

import (
	productcontroller "github.com/DarshanLevi/shop-it-back/controllers/product"
	"github.com/DarshanLevi/shop-it-back/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers catalog administration. These stay open unless
// ADMIN_API_KEY is configured.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	admin := r.Group("/")
	admin.Use(middleware.RequireAPIKey(d.Config.AdminAPIKey))
	{
		admin.POST("/addproduct", productcontroller.AddProduct(d.Catalog))
		admin.POST("/removeproduct", productcontroller.RemoveProduct(d.Catalog))
		admin.GET("/exportproducts", productcontroller.ExportProductsToExcel(d.Catalog))
		admin.POST("/importproducts", productcontroller.ImportProductsFromExcel(d.Catalog))
	}
}
