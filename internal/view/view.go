// Package view builds the outward-facing projections of domain records.
// Projections are constructed fresh per request, never by mutating a loaded
// record, so a shared or cached domain object can never lose a field by
// accident. The User projection has no password field at all: the hash is
// structurally absent from every representation that leaves this package.
package view

import (
	"community_system/internal/domain" // Domain models
)

// Role is the outward projection of a role reference.
type Role struct {
	ID   uint   `json:"id"`   // Role id
	Name string `json:"name"` // Role name
}

// Wallet is the outward projection of a group's wallet.
type Wallet struct {
	ID      uint    `json:"id"`      // Wallet id
	Balance float64 `json:"balance"` // Current balance
}

// Group is the outward projection of a group. Wallet is nil when the viewer
// is not entitled to see it; the rest of the group stays visible.
type Group struct {
	ID     uint    `json:"id"`               // Group id
	Name   string  `json:"name"`             // Display name
	Type   string  `json:"type"`             // Group type
	Wallet *Wallet `json:"wallet,omitempty"` // Owned wallet, redacted per viewer
}

// User is the outward projection of an identity.
type User struct {
	ID        uint   `json:"id"`        // User id
	Email     string `json:"email"`     // Email
	FullName  string `json:"fullName"`  // Display name
	Phone     string `json:"phone"`     // Contact phone
	Address   string `json:"address"`   // Contact address
	Role      Role   `json:"role"`      // Role reference
	Group     Group  `json:"group"`     // Group, with wallet per redaction rule
	IsActive  bool   `json:"isActive"`  // Soft-deactivation flag
	CreatedAt int64  `json:"createdAt"` // Creation timestamp (ms)
}

// Meta is the pagination envelope of a list response.
type Meta struct {
	Total    int64 `json:"total"`    // Total matching records
	Page     int   `json:"page"`     // Current page
	Limit    int   `json:"limit"`    // Records per page
	LastPage int   `json:"lastPage"` // ceil(total/limit)
}

// UserList is the paginated list response shape.
type UserList struct {
	Data []User `json:"data"` // Sanitized user projections
	Meta Meta   `json:"meta"` // Pagination metadata
}

// CanSeeWallet decides whether the requester may see the target's group
// wallet: either the requester is a LEADER, or requester and target share a
// group. Pure per-record decision.
func CanSeeWallet(requesterRole string, requesterGroupID uint, target domain.User) bool {
	if requesterRole == domain.RoleLeader {
		return true
	}
	return requesterGroupID == target.GroupID
}

// NewWallet projects a wallet.
func NewWallet(w domain.Wallet) *Wallet {
	return &Wallet{ID: w.ID, Balance: w.Balance}
}

// NewGroup projects a group, including the wallet only when asked to.
func NewGroup(g domain.Group, includeWallet bool) Group {
	gv := Group{ID: g.ID, Name: g.Name, Type: g.Type}
	if includeWallet {
		gv.Wallet = NewWallet(g.Wallet)
	}
	return gv
}

// NewUser projects a user. The wallet of the user's group is included only
// when includeWallet is true; the password hash is never carried over.
func NewUser(u domain.User, includeWallet bool) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      Role{ID: u.Role.ID, Name: u.Role.Name},
		Group:     NewGroup(u.Group, includeWallet),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserFor projects a user as seen by a specific requester, applying the
// wallet redaction rule.
func NewUserFor(requester domain.User, target domain.User) User {
	return NewUser(target, CanSeeWallet(requester.Role.Name, requester.GroupID, target))
}
