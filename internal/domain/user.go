package domain

// User Model
type User struct {
	ID          uint   `gorm:"primaryKey"`            // Primary key
	Email       string `gorm:"unique;not null"`       // Unique email, used for login
	Password    string `gorm:"not null"`              // Hashed password, never serialized outward
	FullName    string `gorm:"not null"`              // Display name
	Phone       string // Contact phone number
	Address     string // Contact address
	IsActive    bool   `gorm:"not null;default:true"` // Soft-deactivation flag
	RoleID      uint   `gorm:"not null"`              // Foreign key to Role
	Role        Role   // System role (LEADER, ADMIN, ...)
	GroupID     uint   `gorm:"not null;index"`        // Foreign key to Group
	Group       Group  // Community group the user belongs to
	CreatedByID *uint  // Identity that provisioned this user (nil for bootstrap)
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`  // Timestamp of creation in milliseconds
}
