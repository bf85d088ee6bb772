package scope

import (
	"errors" // Sentinel error for missing target group

	"community_system/internal/domain" // Role name constants
)

// ErrGroupRequired is returned when a cross-group requester must name a target
// group explicitly and did not.
var ErrGroupRequired = errors.New("group id is required")

// Strategy is the group-visibility policy a requester's role imposes on
// queries and on provisioning. Implementations are pure and stateless.
type Strategy interface {
	// ListConstraint derives the effective group constraint for a listing.
	// requested is the caller-supplied group filter, nil when absent.
	// A nil result means unconstrained (all groups visible).
	ListConstraint(requesterGroupID uint, requested *uint) *uint

	// TargetGroup resolves the group a new or reassigned member lands in.
	TargetGroup(requesterGroupID uint, requested *uint) (uint, error)
}

// selfScoped confines the requester to its own group. The requester cannot
// widen or redirect its scope: any caller-supplied group id is ignored.
type selfScoped struct{}

// ListConstraint always returns the requester's own group.
func (selfScoped) ListConstraint(requesterGroupID uint, _ *uint) *uint {
	return &requesterGroupID
}

// TargetGroup always returns the requester's own group.
func (selfScoped) TargetGroup(requesterGroupID uint, _ *uint) (uint, error) {
	return requesterGroupID, nil
}

// crossGroup gives hierarchy-wide visibility. Listings are unconstrained
// unless the caller narrows to one group; provisioning has no implicit
// default group, so the caller must name one.
type crossGroup struct{}

// ListConstraint passes the caller-supplied filter through, nil meaning all groups.
func (crossGroup) ListConstraint(_ uint, requested *uint) *uint {
	return requested
}

// TargetGroup requires an explicit group id.
func (crossGroup) TargetGroup(_ uint, requested *uint) (uint, error) {
	if requested == nil {
		return 0, ErrGroupRequired
	}
	return *requested, nil
}

// ForRole selects the strategy for a role name. Only LEADER gets cross-group
// visibility; every other role, known or not, falls back to self-scope so an
// unexpected role can never widen what it sees.
func ForRole(roleName string) Strategy {
	if roleName == domain.RoleLeader {
		return crossGroup{}
	}
	return selfScoped{}
}
