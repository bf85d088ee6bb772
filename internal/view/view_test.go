package view

import (
	"encoding/json"
	"testing"

	"community_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser() domain.User {
	return domain.User{
		ID:       2,
		Email:    "maria@example.com",
		Password: "$2a$10$secrethashsecrethashsecrethash",
		FullName: "Maria Santos",
		Phone:    "555-0102",
		Address:  "12 Unit Street",
		IsActive: true,
		RoleID:   4,
		Role:     domain.Role{ID: 4, Name: domain.RoleMember},
		GroupID:  9,
		Group: domain.Group{
			ID:     9,
			Name:   "Unit 09",
			Type:   domain.GroupTypeUnit,
			Wallet: domain.Wallet{ID: 3, GroupID: 9, Balance: 150},
		},
	}
}

func TestCanSeeWallet(t *testing.T) {
	target := sampleUser() // lives in group 9

	// A leader sees every wallet
	assert.True(t, CanSeeWallet(domain.RoleLeader, 1, target))
	// Same group sees the wallet regardless of role
	assert.True(t, CanSeeWallet(domain.RoleAdmin, 9, target))
	assert.True(t, CanSeeWallet(domain.RoleMember, 9, target))
	// Different group and not a leader does not
	assert.False(t, CanSeeWallet(domain.RoleAdmin, 1, target))
	assert.False(t, CanSeeWallet(domain.RoleTreasurer, 1, target))
}

func TestWalletRedactedForOutsideViewer(t *testing.T) {
	outsider := domain.User{ID: 1, GroupID: 1, Role: domain.Role{Name: domain.RoleAdmin}}
	leader := domain.User{ID: 3, GroupID: 1, Role: domain.Role{Name: domain.RoleLeader}}
	target := sampleUser()

	redacted := NewUserFor(outsider, target)
	assert.Nil(t, redacted.Group.Wallet, "outside viewer must not see the wallet")
	// The rest of the group stays visible
	assert.Equal(t, uint(9), redacted.Group.ID)
	assert.Equal(t, "Unit 09", redacted.Group.Name)
	assert.Equal(t, domain.GroupTypeUnit, redacted.Group.Type)

	full := NewUserFor(leader, target)
	require.NotNil(t, full.Group.Wallet)
	assert.Equal(t, 150.0, full.Group.Wallet.Balance)
}

func TestRedactionIsIdempotent(t *testing.T) {
	outsider := domain.User{ID: 1, GroupID: 1, Role: domain.Role{Name: domain.RoleMember}}
	target := sampleUser()

	once := NewUserFor(outsider, target)
	twice := NewUserFor(outsider, target)
	assert.Equal(t, once, twice)
	// The source record is untouched by projection
	assert.Equal(t, uint(3), target.Group.Wallet.ID)
}

func TestSerializedUserNeverCarriesPassword(t *testing.T) {
	leader := domain.User{ID: 3, GroupID: 1, Role: domain.Role{Name: domain.RoleLeader}}
	outsider := domain.User{ID: 1, GroupID: 1, Role: domain.Role{Name: domain.RoleMember}}

	for _, v := range []User{NewUserFor(leader, sampleUser()), NewUserFor(outsider, sampleUser())} {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		_, present := fields["password"]
		assert.False(t, present, "password must never be serialized")
		assert.NotContains(t, string(raw), "secrethash")
	}
}

func TestRedactedWalletAbsentFromJSON(t *testing.T) {
	outsider := domain.User{ID: 1, GroupID: 1, Role: domain.Role{Name: domain.RoleMember}}
	raw, err := json.Marshal(NewUserFor(outsider, sampleUser()))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	group, ok := fields["group"].(map[string]any)
	require.True(t, ok)
	_, present := group["wallet"]
	assert.False(t, present, "redacted wallet must be absent, not null")
}
