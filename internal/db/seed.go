package db

import (
	"community_system/internal/domain" // Importing domain models
	"community_system/internal/utils"  // Credential hashing

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// SeedRoles ensures every name of the closed role enumeration exists. Roles
// are reference data: request handling looks them up but never creates them.
func SeedRoles(db *gorm.DB) error {
	for _, name := range domain.RoleNames {
		role := domain.Role{Name: name}
		// Insert only when the name is missing
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedLeader bootstraps a district group and a LEADER account when the user
// table is empty, so a fresh deployment is reachable. The group and its
// wallet are created atomically, then the leader is provisioned into it.
func SeedLeader(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	// An existing user means bootstrap already ran
	if count > 0 {
		return nil
	}
	var role domain.Role
	if err := db.Where("name = ?", domain.RoleLeader).First(&role).Error; err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		group := domain.Group{Name: "District Office", Type: domain.GroupTypeDistrict}
		if err := tx.Create(&group).Error; err != nil {
			return err // Return error to rollback
		}
		wallet := domain.Wallet{GroupID: group.ID, Balance: 0}
		if err := tx.Create(&wallet).Error; err != nil {
			return err // Return error to rollback
		}
		leader := domain.User{
			Email:    email,
			Password: hash,
			FullName: "Bootstrap Leader",
			IsActive: true,
			RoleID:   role.ID,
			GroupID:  group.ID,
		}
		if err := tx.Create(&leader).Error; err != nil {
			return err // Return error to rollback
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  leader.ID,
			"group_id": group.ID,
		}).Info("Bootstrap leader created")
		return nil // Commit transaction
	})
}
