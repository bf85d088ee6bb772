package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"community_system/internal/middleware" // Requester extraction
	"community_system/internal/service"    // Core services

	"github.com/gin-gonic/gin" // Gin web framework
)

// parseUintParam reads a positive integer path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// parseGroupQuery reads the optional groupId query parameter.
func parseGroupQuery(c *gin.Context) (*uint, bool) {
	raw := c.Query("groupId")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid groupId"})
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// CreateUserRequest is the provisioning payload for a new user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"` // Login email
	FullName string `json:"fullName" binding:"required"`    // Display name
	Phone    string `json:"phone"`                          // Contact phone
	Address  string `json:"address"`                        // Contact address
	Password string `json:"password"`                       // Optional, defaulted when empty
	RoleName string `json:"roleName" binding:"required"`    // Role from the closed enumeration
	GroupID  *uint  `json:"groupId"`                        // Target group, required for LEADER
}

// CreateUserHandler provisions a new user scoped to the requester's role
func CreateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		created, err := users.Create(c.Request.Context(), requester, service.CreateUserInput{
			Email:    req.Email,    // Login email
			FullName: req.FullName, // Display name
			Phone:    req.Phone,    // Contact phone
			Address:  req.Address,  // Contact address
			Password: req.Password, // Optional secret
			RoleName: req.RoleName, // Role name
			GroupID:  req.GroupID,  // Target group, subject to scope
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created) // Return the sanitized created record
	}
}

// ListUsersHandler returns the users visible to the requester, filtered,
// redacted and paginated
func ListUsersHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		groupID, ok := parseGroupQuery(c) // Optional explicit group filter
		if !ok {
			return
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))    // Page number, defaulted downstream
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10")) // Page size, defaulted downstream
		result, err := users.List(c.Request.Context(), requester, service.ListUsersInput{
			Search:   c.Query("search"), // Free-text search
			RoleName: c.Query("role"),   // Role name filter
			GroupID:  groupID,           // Explicit group filter, subject to scope
			Page:     page,              // Page number
			Limit:    limit,             // Page size
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result) // Return data plus pagination meta
	}
}

// GetUserHandler returns one user by id, redacted for the requester
func GetUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := parseUintParam(c, "id") // Target user id
		if !ok {
			return
		}
		user, err := users.Get(c.Request.Context(), requester, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user) // Return the sanitized record
	}
}

// DeactivateUserHandler soft-deactivates a user within the requester's scope
func DeactivateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := parseUintParam(c, "id") // Target user id
		if !ok {
			return
		}
		if err := users.Deactivate(c.Request.Context(), requester, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
	}
}
