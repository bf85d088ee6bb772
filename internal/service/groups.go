package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error matching

	"community_system/internal/domain" // Domain models
	"community_system/internal/view"   // Outward projections

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// GroupService carries group lifecycle and the atomic group+wallet create.
type GroupService struct {
	db *gorm.DB // Record store handle
}

// NewGroupService returns a GroupService backed by db.
func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// CreateGroupInput is the creation request for a new group.
type CreateGroupInput struct {
	Name string // Display name
	Type string // Group type from the closed enumeration
}

// Create writes a group and its zero-balance wallet as one transaction. If
// the wallet write fails for any reason the group write rolls back with it;
// no retries, the failure surfaces immediately.
func (s *GroupService) Create(ctx context.Context, in CreateGroupInput) (view.Group, error) {
	if !domain.ValidGroupType(in.Type) {
		return view.Group{}, ErrInvalidGroupType
	}
	// Reject a taken name before the write so the uniqueness constraint
	// surfaces as a conflict rather than a raw driver error
	var taken int64
	if err := s.db.WithContext(ctx).Model(&domain.Group{}).Where("name = ?", in.Name).Count(&taken).Error; err != nil {
		return view.Group{}, err
	}
	if taken > 0 {
		return view.Group{}, ErrGroupNameTaken
	}
	group := domain.Group{Name: in.Name, Type: in.Type}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err // Return error to rollback
		}
		wallet := domain.Wallet{GroupID: group.ID, Balance: 0}
		if err := tx.Create(&wallet).Error; err != nil {
			return err // Return error to rollback
		}
		group.Wallet = wallet
		return nil // Commit transaction
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"name":  in.Name,
			"type":  in.Type,
			"error": err.Error(),
		}).Error("Group creation failed")
		return view.Group{}, err
	}
	logrus.WithFields(logrus.Fields{
		"group_id": group.ID,
		"name":     group.Name,
		"type":     group.Type,
	}).Info("Group created")
	return view.NewGroup(group, true), nil
}

// List returns all groups ordered by name, optionally filtered by type.
// Wallets are not part of the list shape; they are exposed through Get only.
func (s *GroupService) List(ctx context.Context, groupType string) ([]view.Group, error) {
	db := s.db.WithContext(ctx)
	if groupType != "" {
		db = db.Where("type = ?", groupType)
	}
	var groups []domain.Group
	if err := db.Order("name asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	out := make([]view.Group, len(groups))
	for i, g := range groups {
		out[i] = view.NewGroup(g, false)
	}
	return out, nil
}

// Get returns one group by id. The wallet is included only when the
// requester is a LEADER or belongs to the group itself.
func (s *GroupService) Get(ctx context.Context, requester domain.User, id uint) (view.Group, error) {
	var group domain.Group
	err := s.db.WithContext(ctx).Preload("Wallet").First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.Group{}, ErrGroupNotFound
		}
		return view.Group{}, err
	}
	includeWallet := requester.Role.Name == domain.RoleLeader || requester.GroupID == group.ID
	return view.NewGroup(group, includeWallet), nil
}

// UpdateGroupInput carries group field updates; empty fields are unchanged.
type UpdateGroupInput struct {
	Name string // New display name
	Type string // New group type
}

// Update renames or retypes a group.
func (s *GroupService) Update(ctx context.Context, id uint, in UpdateGroupInput) (view.Group, error) {
	db := s.db.WithContext(ctx)
	var group domain.Group
	if err := db.Preload("Wallet").First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.Group{}, ErrGroupNotFound
		}
		return view.Group{}, err
	}
	updates := map[string]any{}
	if in.Name != "" && in.Name != group.Name {
		// Uniqueness check excluding self
		var taken int64
		if err := db.Model(&domain.Group{}).Where("name = ? AND id <> ?", in.Name, id).Count(&taken).Error; err != nil {
			return view.Group{}, err
		}
		if taken > 0 {
			return view.Group{}, ErrGroupNameTaken
		}
		updates["name"] = in.Name
		group.Name = in.Name
	}
	if in.Type != "" {
		if !domain.ValidGroupType(in.Type) {
			return view.Group{}, ErrInvalidGroupType
		}
		updates["type"] = in.Type
		group.Type = in.Type
	}
	if len(updates) > 0 {
		if err := db.Model(&domain.Group{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return view.Group{}, err
		}
	}
	return view.NewGroup(group, true), nil
}

// Delete removes an empty group together with its wallet. A group that still
// has members cannot be deleted.
func (s *GroupService) Delete(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	var group domain.Group
	if err := db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	var members int64
	if err := db.Model(&domain.User{}).Where("group_id = ?", id).Count(&members).Error; err != nil {
		return err
	}
	if members > 0 {
		return ErrGroupHasMembers
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&domain.Wallet{}).Error; err != nil {
			return err // Return error to rollback
		}
		if err := tx.Delete(&domain.Group{}, id).Error; err != nil {
			return err // Return error to rollback
		}
		return nil // Commit transaction
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"group_id": id}).Info("Group deleted")
	return nil
}
