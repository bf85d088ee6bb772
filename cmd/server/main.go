package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"community_system/internal/api"        // Custom package for API handlers
	"community_system/internal/config"     // Custom package for configuration
	"community_system/internal/domain"     // Role name constants
	"community_system/internal/middleware" // Custom package for middleware
	"community_system/internal/service"    // Core services

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Core services
	users := service.NewUserService(db)   // Identity provisioning and scoped listing
	groups := service.NewGroupService(db) // Group lifecycle and atomic wallet create

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Login endpoint (unauthenticated)
	r.POST("/auth/login", api.LoginHandler(users, cfg.JWTSecret))

	// Authenticated routes: token check, then requester load
	authGroup := r.Group("/")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RequesterMiddleware(db))

	// Self-service routes
	authGroup.GET("/auth/me", api.MeHandler())                        // Own sanitized record
	authGroup.PUT("/auth/profile", api.UpdateProfileHandler(users))   // Profile update
	authGroup.PUT("/auth/password", api.ChangePasswordHandler(users)) // Password change

	// User routes
	privileged := middleware.RequireRole(domain.RoleAdmin, domain.RoleLeader)
	authGroup.POST("/users", privileged, api.CreateUserHandler(users))            // Provision endpoint
	authGroup.GET("/users", privileged, api.ListUsersHandler(users))              // Scoped listing endpoint
	authGroup.GET("/users/:id", api.GetUserHandler(users))                        // Single record endpoint
	authGroup.DELETE("/users/:id", privileged, api.DeactivateUserHandler(users))  // Soft deactivation endpoint

	// Group routes
	leaderOnly := middleware.RequireRole(domain.RoleLeader)
	authGroup.POST("/groups", leaderOnly, api.CreateGroupHandler(groups, redisClient))       // Atomic group+wallet create
	authGroup.GET("/groups", api.ListGroupsHandler(groups, redisClient))                     // Cached listing endpoint
	authGroup.GET("/groups/:id", api.GetGroupHandler(groups))                                // Single group endpoint
	authGroup.PUT("/groups/:id", leaderOnly, api.UpdateGroupHandler(groups, redisClient))    // Update endpoint
	authGroup.DELETE("/groups/:id", leaderOnly, api.DeleteGroupHandler(groups, redisClient)) // Delete endpoint
	authGroup.POST("/groups/:id/members/:userID", privileged, api.AssignMemberHandler(users)) // Member assignment endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
