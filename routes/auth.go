package routes

import (
	userControllers "github.com/DarshanLevi/shop-it-back/controllers/user"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers signup and login.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	r.POST("/signup", userControllers.Signup(d.Accounts))
	r.POST("/login", userControllers.Login(d.Accounts))
}
