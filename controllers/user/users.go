package userControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/DarshanLevi/shop-it-back/services/account"
	"github.com/gin-gonic/gin"
)

type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /signup
func Signup(accounts *account.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		token, err := accounts.Signup(c.Request.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrDuplicateAccount):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "User already exists"})
			case errors.Is(err, account.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			default:
				log.Printf("❌ Signup failed for %s: %v", input.Email, err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create user"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	}
}

// POST /login
func Login(accounts *account.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		token, err := accounts.Login(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid Credentials"})
				return
			}
			log.Printf("❌ Login failed for %s: %v", input.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	}
}
