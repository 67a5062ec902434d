package routes

import (
	"net/http"

	"github.com/DarshanLevi/shop-it-back/auth"
	"github.com/DarshanLevi/shop-it-back/config"
	productcontroller "github.com/DarshanLevi/shop-it-back/controllers/product"
	uploadController "github.com/DarshanLevi/shop-it-back/controllers/upload"
	"github.com/DarshanLevi/shop-it-back/services/account"
	"github.com/DarshanLevi/shop-it-back/services/cart"
	"github.com/DarshanLevi/shop-it-back/services/catalog"
	"github.com/DarshanLevi/shop-it-back/store"
	"github.com/gin-gonic/gin"
)

// Deps are the constructed components the handlers close over.
type Deps struct {
	Config   *config.Config
	Tokens   *auth.TokenService
	Accounts *account.Manager
	Catalog  *catalog.Manager
	Carts    *cart.Manager
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupMiddleware(r)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "App is running...")
	})

	// Uploaded product images
	r.Static("/images", d.Config.UploadDir)
	r.POST("/upload", uploadController.UploadImage(d.Config.UploadDir, d.Config.PublicBaseURL))

	// Public catalog
	r.GET("/getallproducts", productcontroller.GetAllProducts(d.Catalog))
	r.GET("/newCollections", productcontroller.NewCollections(d.Catalog))
	r.GET("/ws/catalog", productcontroller.CatalogFeed(d.Catalog.Events()))

	SetupAuthRoutes(r, d)
	SetupUserRoutes(r, d)
	SetupAdminRoutes(r, d)
}

// NewDeps builds the managers over a single store.
func NewDeps(cfg *config.Config, st store.Store) Deps {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	return Deps{
		Config:   cfg,
		Tokens:   tokens,
		Accounts: account.NewManager(st, tokens),
		Catalog:  catalog.NewManager(st),
		Carts:    cart.NewManager(st),
	}
}
