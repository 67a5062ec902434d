package middleware

import (
	"net/http"

	"github.com/DarshanLevi/shop-it-back/auth"
	"github.com/gin-gonic/gin"
)

const (
	TokenHeader = "auth-token"
	IdentityKey = "user"
)

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// RequireUser rejects requests without a valid session token and stores the
// resolved identity in the context for the handlers behind it.
func RequireUser(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(TokenHeader)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access Denied"})
			return
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Token"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// CurrentUser returns the identity set by RequireUser.
func CurrentUser(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
