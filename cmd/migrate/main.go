package main

import (
	"community_system/internal/config"  // Custom import path (Config)
	"community_system/internal/db"      // Custom import path (Database)
	"community_system/internal/service" // Default password constant

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration and seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Database Source Name (DSN) for MySQL connection
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	conn := db.Migrate(dsn) // Migrate schema and seed roles

	// Bootstrap a leader account on an empty database
	if cfg.LeaderEmail != "" {
		password := cfg.LeaderPassword
		if password == "" {
			password = service.DefaultPassword // Fall back to the fixed default
		}
		if err := db.SeedLeader(conn, cfg.LeaderEmail, password); err != nil {
			logrus.Fatalf("leader bootstrap failed: %v", err)
		}
	}
}
