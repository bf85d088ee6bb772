package api

import (
	"net/http" // HTTP status codes

	"community_system/internal/middleware" // Requester extraction
	"community_system/internal/service"    // Core services
	"community_system/internal/utils"      // Cache helpers
	"community_system/internal/view"       // Outward projections

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// CreateGroupRequest is the creation payload for a new group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"` // Display name
	Type string `json:"type" binding:"required"` // Group type from the closed enumeration
}

// CreateGroupHandler creates a group together with its zero-balance wallet
func CreateGroupHandler(groups *service.GroupService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGroupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		created, err := groups.Create(c.Request.Context(), service.CreateGroupInput{
			Name: req.Name, // Display name
			Type: req.Type, // Group type
		})
		if err != nil {
			respondError(c, err)
			return
		}
		utils.InvalidateGroupLists(c.Request.Context(), rdb) // Invalidate group listing cache
		c.JSON(http.StatusCreated, created)                  // Return the created group with its wallet
	}
}

// ListGroupsHandler returns all groups, optionally filtered by type
func ListGroupsHandler(groups *service.GroupService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupType := c.Query("type")              // Optional type filter
		cacheKey := utils.GroupListKey(groupType) // Cache key for this listing
		ctx := c.Request.Context()                // Context for Redis operations
		var cached []view.Group                   // Cached listing
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"groups": cached, "cached": true})
			return
		}
		// If not in cache, fetch from the store
		result, err := groups.List(ctx, groupType)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, result, utils.CacheTTL) // Cache the listing
		c.JSON(http.StatusOK, gin.H{"groups": result, "cached": false})
	}
}

// GetGroupHandler returns one group; the wallet appears only for entitled viewers
func GetGroupHandler(groups *service.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := parseUintParam(c, "id") // Target group id
		if !ok {
			return
		}
		group, err := groups.Get(c.Request.Context(), requester, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, group) // Return the group, wallet redacted per viewer
	}
}

// UpdateGroupRequest carries group updates; omitted fields stay unchanged
type UpdateGroupRequest struct {
	Name string `json:"name"` // New display name
	Type string `json:"type"` // New group type
}

// UpdateGroupHandler renames or retypes a group
func UpdateGroupHandler(groups *service.GroupService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id") // Target group id
		if !ok {
			return
		}
		var req UpdateGroupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		updated, err := groups.Update(c.Request.Context(), id, service.UpdateGroupInput{
			Name: req.Name, // New display name
			Type: req.Type, // New group type
		})
		if err != nil {
			respondError(c, err)
			return
		}
		utils.InvalidateGroupLists(c.Request.Context(), rdb) // Invalidate group listing cache
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteGroupHandler removes an empty group and its wallet
func DeleteGroupHandler(groups *service.GroupService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id") // Target group id
		if !ok {
			return
		}
		if err := groups.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		utils.InvalidateGroupLists(c.Request.Context(), rdb) // Invalidate group listing cache
		c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
	}
}

// AssignMemberHandler moves a user into a group, subject to the requester's scope
func AssignMemberHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.Requester(c) // Get loaded requester from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		groupID, ok := parseUintParam(c, "id") // Target group id
		if !ok {
			return
		}
		userID, ok := parseUintParam(c, "userID") // Target user id
		if !ok {
			return
		}
		updated, err := users.AssignToGroup(c.Request.Context(), requester, groupID, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated) // Return the reassigned user's sanitized record
	}
}
