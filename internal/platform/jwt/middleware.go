package jwtmw

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// principalKey is the gin context key holding the Principal.
const principalKey = "principal"

// Principal is the result of a successful authentication: the caller is
// the account AccountID until ExpiresAt.
type Principal struct {
	AccountID string
	ExpiresAt time.Time
}

// TokenParser verifies a token string.
type TokenParser interface {
	ParseToken(tokenStr string) (*Claims, error)
}

// AuthRequired returns a middleware that only lets authenticated requests
// through. The token is read from the cookie named cookieName, or from an
// "Authorization: Bearer" header when the cookie is absent.
func AuthRequired(parser TokenParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c, cookieName)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated", "success": false})
			return
		}

		claims, err := parser.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token", "success": false})
			return
		}

		p := Principal{AccountID: claims.UserID}
		if claims.ExpiresAt != nil {
			p.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// PrincipalFrom returns the Principal stored by AuthRequired.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
