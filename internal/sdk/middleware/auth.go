// Package middleware provides Gin middleware for the LangSync API.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riya-sharma-12/LangSync/internal/sdk/models"
	"github.com/riya-sharma-12/LangSync/internal/sdk/mongodb"
	"github.com/riya-sharma-12/LangSync/internal/services/jwt"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "jwt"

const userKey = "auth_user"

var ErrNoUser = errors.New("no authenticated user in context")

// Authenticate resolves the session cookie to a user record and attaches it
// to the request context, or rejects:
//
//	missing cookie          -> 401 (no credential)
//	bad signature / expiry  -> 401 (invalid credential)
//	user no longer exists   -> 401 (a deleted user can hold a valid token)
//	store failure           -> 500, so clients can distinguish a retryable
//	                           outage from a dead session
func Authenticate(tokens *jwt.TokenService, db mongodb.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - No token provided"})
			return
		}

		claims, err := tokens.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - Invalid token"})
			return
		}

		user, err := db.GetUserByID(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, mongodb.ErrDBNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - User not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// GetUser extracts the authenticated user set by Authenticate.
func GetUser(c *gin.Context) (models.User, error) {
	val, exists := c.Get(userKey)
	if !exists {
		return models.User{}, ErrNoUser
	}

	user, ok := val.(models.User)
	if !ok {
		return models.User{}, ErrNoUser
	}
	return user, nil
}

// SetUser attaches a user to the context (for testing purposes).
func SetUser(c *gin.Context, user models.User) {
	c.Set(userKey, user)
}
