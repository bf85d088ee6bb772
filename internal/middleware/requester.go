package middleware

import (
	"net/http"                         // HTTP status codes
	"community_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RequesterKey is the context key the loaded requester is stored under.
const RequesterKey = "requester"

// RequesterMiddleware loads the authenticated user, with its role and group,
// from the database on each request and stores it in the context. Inactive
// accounts are rejected here.
func RequesterMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database with role and group
		if err := db.Preload("Role").Preload("Group.Wallet").First(&user, userID).Error; err != nil {
			// If user not found or any error, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Deactivated accounts cannot act
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}
		c.Set(RequesterKey, user) // Store the loaded requester in context
		c.Next()                  // Proceed to the next handler
	}
}

// Requester pulls the loaded requester out of the context.
func Requester(c *gin.Context) (domain.User, bool) {
	v, exists := c.Get(RequesterKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}

// RequireRole aborts unless the requester's role is one of names. It must run
// after RequesterMiddleware.
func RequireRole(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Requester(c) // Get loaded requester from context
		if !ok {
			// If missing, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check if user role is among the allowed names
		for _, name := range names {
			if user.Role.Name == name {
				c.Next() // Allowed, proceed to the next handler
				return
			}
		}
		// If not allowed, abort with forbidden status
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
