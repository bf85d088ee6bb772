package domain

// System role names form a closed enumeration. Rows are reference data,
// seeded by migration and never created by request handling.
const (
	RoleLeader    = "LEADER"    // Hierarchy-wide, cross-group visibility
	RoleAdmin     = "ADMIN"     // Confined to exactly one group
	RoleTreasurer = "TREASURER" // Group finance role, no list scope of its own
	RoleMember    = "MEMBER"    // Plain member
)

// RoleNames lists every valid role name, in seed order.
var RoleNames = []string{RoleLeader, RoleAdmin, RoleTreasurer, RoleMember}

// Role Model
type Role struct {
	ID   uint   `gorm:"primaryKey"`      // Primary key
	Name string `gorm:"unique;not null"` // Role name from the closed enumeration
}
