package api

import (
	"net/http" // HTTP status codes

	"community_system/internal/middleware" // Requester extraction
	"community_system/internal/service"    // Core services
	"community_system/internal/utils"      // Utility functions
	"community_system/internal/view"       // Outward projections

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginRequest is the credential payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// AuthResponse carries the issued token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *service.UserService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Verify credentials against the stored hash
		user, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// MeHandler returns the authenticated user's own sanitized record
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Self view always includes the own group's wallet
		c.JSON(http.StatusOK, view.NewUser(requester, true))
	}
}

// UpdateProfileRequest carries profile updates; omitted fields stay unchanged
type UpdateProfileRequest struct {
	Email    string `json:"email" binding:"omitempty,email"` // New email
	FullName string `json:"fullName"`                        // New display name
	Phone    string `json:"phone"`                           // New contact phone
	Address  string `json:"address"`                         // New contact address
}

// UpdateProfileHandler applies profile updates to the caller's own record
func UpdateProfileHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		updated, err := users.UpdateProfile(c.Request.Context(), requester.ID, service.UpdateProfileInput{
			Email:    req.Email,    // New email, uniqueness re-checked
			FullName: req.FullName, // New display name
			Phone:    req.Phone,    // New contact phone
			Address:  req.Address,  // New contact address
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated) // Return the sanitized updated record
	}
}

// ChangePasswordRequest carries the current and the new secret
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`   // Current secret
	NewPassword     string `json:"newPassword" binding:"required,min=8"` // New secret
}

// ChangePasswordHandler verifies the current secret and stores the new hash
func ChangePasswordHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ChangePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := users.ChangePassword(c.Request.Context(), requester.ID, req.CurrentPassword, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}
