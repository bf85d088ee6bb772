package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error matching
	"strings" // Email normalization

	"community_system/internal/domain" // Domain models
	"community_system/internal/scope"  // Scope strategy and filter builder
	"community_system/internal/utils"  // Credential hashing
	"community_system/internal/view"   // Outward projections

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// DefaultPassword is hashed for new users when the creator supplies none.
const DefaultPassword = "Resident123!"

// UserService carries the identity provisioning and scoped listing logic.
type UserService struct {
	db *gorm.DB // Record store handle
}

// NewUserService returns a UserService backed by db.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUserInput is the provisioning request for a new identity.
type CreateUserInput struct {
	Email    string // Login email, must be unused
	FullName string // Display name
	Phone    string // Contact phone
	Address  string // Contact address
	Password string // Plaintext secret; DefaultPassword when empty
	RoleName string // Role from the closed enumeration
	GroupID  *uint  // Target group; ignored for self-scoped requesters
}

// Create provisions a new identity. The target group comes from the
// requester's scope strategy (a self-scoped requester can only provision into
// its own group), the role is resolved against the seeded enumeration, and
// the row is written in a single insert carrying role, group and creator
// references together with the hashed secret.
func (s *UserService) Create(ctx context.Context, requester domain.User, in CreateUserInput) (view.User, error) {
	db := s.db.WithContext(ctx)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// Reject duplicate email, active or inactive
	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return view.User{}, err
	}
	if count > 0 {
		return view.User{}, ErrEmailTaken
	}

	// Resolve the target group through the requester's scope strategy
	groupID, err := scope.ForRole(requester.Role.Name).TargetGroup(requester.GroupID, in.GroupID)
	if err != nil {
		return view.User{}, ErrGroupRequired
	}
	var group domain.Group
	if err := db.Preload("Wallet").First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.User{}, ErrGroupNotFound
		}
		return view.User{}, err
	}

	// Resolve the role reference by name
	var role domain.Role
	if err := db.Where("name = ?", in.RoleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.User{}, ErrUnknownRole
		}
		return view.User{}, err
	}

	// Hash the secret, falling back to the fixed default
	password := in.Password
	if password == "" {
		password = DefaultPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return view.User{}, err
	}

	// Single insert carrying all relational links
	user := domain.User{
		Email:       email,
		Password:    hash,
		FullName:    in.FullName,
		Phone:       in.Phone,
		Address:     in.Address,
		IsActive:    true,
		RoleID:      role.ID,
		GroupID:     group.ID,
		CreatedByID: &requester.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		return view.User{}, err
	}
	user.Role = role
	user.Group = group

	// Log the provisioning
	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"email":      user.Email,
		"role":       role.Name,
		"group_id":   group.ID,
		"created_by": requester.ID,
	}).Info("User provisioned")

	return view.NewUserFor(requester, user), nil
}

// ListUsersInput carries the caller-supplied listing filters.
type ListUsersInput struct {
	Search   string // Free-text match on full name or email
	RoleName string // Role name filter
	GroupID  *uint  // Explicit group filter, subject to scope
	Page     int    // 1-based page
	Limit    int    // Records per page
}

// List returns active users visible to the requester, filtered, redacted and
// paginated. The requester's scope strategy derives the effective group
// constraint with the explicit filter already factored in, so a self-scoped
// requester's own group always wins over any caller-supplied group id.
func (s *UserService) List(ctx context.Context, requester domain.User, in ListUsersInput) (view.UserList, error) {
	page := scope.NormalizePage(in.Page, in.Limit)
	constraint := scope.ForRole(requester.Role.Name).ListConstraint(requester.GroupID, in.GroupID)
	filter := scope.NewFilter().
		ActiveOnly().
		Search(in.Search).
		RoleName(in.RoleName).
		Group(constraint)

	// Count first so pagination metadata stays consistent with the page read
	var total int64
	if err := filter.Apply(s.db.WithContext(ctx).Model(&domain.User{})).Count(&total).Error; err != nil {
		return view.UserList{}, err
	}

	var users []domain.User
	err := filter.Apply(s.db.WithContext(ctx).Model(&domain.User{})).
		Preload("Role").
		Preload("Group.Wallet").
		Order("created_at desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&users).Error
	if err != nil {
		return view.UserList{}, err
	}

	// Per-record redaction after the store read, before serialization
	data := make([]view.User, len(users))
	for i, u := range users {
		data[i] = view.NewUserFor(requester, u)
	}
	return view.UserList{
		Data: data,
		Meta: view.Meta{
			Total:    total,
			Page:     page.Page,
			Limit:    page.Limit,
			LastPage: page.LastPage(total),
		},
	}, nil
}

// Get returns one user by id as seen by the requester. Direct id lookup does
// not require the target to be active.
func (s *UserService) Get(ctx context.Context, requester domain.User, id uint) (view.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Preload("Role").Preload("Group.Wallet").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.User{}, ErrUserNotFound
		}
		return view.User{}, err
	}
	return view.NewUserFor(requester, user), nil
}

// Authenticate checks an email/password pair against the stored hash and
// returns the matching active user. Every failure mode collapses into the
// same ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Preload("Role").
		Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if !utils.CheckPassword(password, user.Password) {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfileInput carries profile field updates; empty fields are unchanged.
type UpdateProfileInput struct {
	Email    string // New email, re-checked for uniqueness
	FullName string // New display name
	Phone    string // New contact phone
	Address  string // New contact address
}

// UpdateProfile applies field updates to the caller's own record. An email
// change re-runs the uniqueness check against all other users first; no other
// field triggers cross-entity validation.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (view.User, error) {
	db := s.db.WithContext(ctx)
	var user domain.User
	if err := db.Preload("Role").Preload("Group.Wallet").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.User{}, ErrUserNotFound
		}
		return view.User{}, err
	}

	updates := map[string]any{}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" && email != user.Email {
		// Uniqueness check excluding self
		var count int64
		if err := db.Model(&domain.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error; err != nil {
			return view.User{}, err
		}
		if count > 0 {
			return view.User{}, ErrEmailTaken
		}
		updates["email"] = email
		user.Email = email
	}
	if in.FullName != "" {
		updates["full_name"] = in.FullName
		user.FullName = in.FullName
	}
	if in.Phone != "" {
		updates["phone"] = in.Phone
		user.Phone = in.Phone
	}
	if in.Address != "" {
		updates["address"] = in.Address
		user.Address = in.Address
	}
	if len(updates) > 0 {
		if err := db.Model(&domain.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return view.User{}, err
		}
	}

	// Self view: the requester always sees its own group's wallet
	return view.NewUser(user, true), nil
}

// ChangePassword verifies the current secret and stores a hash of the new
// one. A mismatch is a validation error and leaves the stored hash untouched.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	db := s.db.WithContext(ctx)
	var user domain.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !utils.CheckPassword(current, user.Password) {
		return ErrWrongPassword
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := db.Model(&domain.User{}).Where("id = ?", userID).Update("password", hash).Error; err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID}).Info("Password changed")
	return nil
}

// Deactivate flips a user to inactive. The record stays in the store; active
// listings stop returning it. The target is resolved through the requester's
// scope strategy, so a self-scoped requester can only deactivate members of
// its own group.
func (s *UserService) Deactivate(ctx context.Context, requester domain.User, id uint) error {
	db := s.db.WithContext(ctx)
	var target domain.User
	if err := db.First(&target, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	allowed, err := scope.ForRole(requester.Role.Name).TargetGroup(requester.GroupID, &target.GroupID)
	if err != nil {
		return ErrGroupRequired
	}
	if allowed != target.GroupID {
		return ErrForeignGroup
	}
	if err := db.Model(&domain.User{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": id, "by": requester.ID}).Info("User deactivated")
	return nil
}

// AssignToGroup moves a user into a group. The requester's scope strategy
// resolves the allowed target; when the named group is not the one the
// strategy allows, the assignment is rejected rather than redirected.
func (s *UserService) AssignToGroup(ctx context.Context, requester domain.User, groupID, userID uint) (view.User, error) {
	db := s.db.WithContext(ctx)
	allowed, err := scope.ForRole(requester.Role.Name).TargetGroup(requester.GroupID, &groupID)
	if err != nil {
		return view.User{}, ErrGroupRequired
	}
	if allowed != groupID {
		return view.User{}, ErrForeignGroup
	}
	var group domain.Group
	if err := db.Preload("Wallet").First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.User{}, ErrGroupNotFound
		}
		return view.User{}, err
	}
	var user domain.User
	if err := db.Preload("Role").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.User{}, ErrUserNotFound
		}
		return view.User{}, err
	}
	if err := db.Model(&domain.User{}).Where("id = ?", userID).Update("group_id", groupID).Error; err != nil {
		return view.User{}, err
	}
	user.GroupID = groupID
	user.Group = group
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"group_id": groupID,
		"by":       requester.ID,
	}).Info("User assigned to group")
	return view.NewUserFor(requester, user), nil
}
