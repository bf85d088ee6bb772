package service

import (
	"sync"
	"testing"

	seed "community_system/internal/db"
	"community_system/internal/domain"
	"community_system/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "Secret123!"

var (
	hashOnce sync.Once
	testHash string
)

// passwordHash returns a bcrypt hash of testPassword, computed once because
// hashing is deliberately slow.
func passwordHash() string {
	hashOnce.Do(func() {
		h, err := utils.HashPassword(testPassword)
		if err != nil {
			panic(err)
		}
		testHash = h
	})
	return testHash
}

// setupDB opens an isolated in-memory store with the schema migrated and the
// role enumeration seeded.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// The in-memory database lives on a single connection
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(&domain.Role{}, &domain.Group{}, &domain.Wallet{}, &domain.User{}))
	require.NoError(t, seed.SeedRoles(conn))
	return conn
}

// mustGroup creates a group with its wallet.
func mustGroup(t *testing.T, conn *gorm.DB, name, groupType string) domain.Group {
	t.Helper()
	group := domain.Group{Name: name, Type: groupType}
	require.NoError(t, conn.Create(&group).Error)
	wallet := domain.Wallet{GroupID: group.ID}
	require.NoError(t, conn.Create(&wallet).Error)
	group.Wallet = wallet
	return group
}

// mustUser creates an active user with the shared test password.
func mustUser(t *testing.T, conn *gorm.DB, email, fullName, roleName string, groupID uint) domain.User {
	t.Helper()
	var role domain.Role
	require.NoError(t, conn.Where("name = ?", roleName).First(&role).Error)
	user := domain.User{
		Email:    email,
		Password: passwordHash(),
		FullName: fullName,
		IsActive: true,
		RoleID:   role.ID,
		GroupID:  groupID,
	}
	require.NoError(t, conn.Create(&user).Error)
	user.Role = role
	require.NoError(t, conn.Preload("Wallet").First(&user.Group, groupID).Error)
	return user
}

func uintPtr(v uint) *uint {
	return &v
}
