package domain

// Role is a user's position in the club, ordered from least to most
// privileged. Authorization compares ranks, never names.
type Role string

const (
	RoleMember    Role = "MEMBER"
	RolePlayer    Role = "PLAYER"
	RoleCommittee Role = "COMMITTEE"
	RoleAdmin     Role = "ADMIN"
)

// AccessLevel gates read access to uploaded documents and media. It is a
// second hierarchy with the same total order as Role.
type AccessLevel string

const (
	AccessAllMembers     AccessLevel = "ALL_MEMBERS"
	AccessPlayingMembers AccessLevel = "PLAYING_MEMBERS"
	AccessCommittee      AccessLevel = "COMMITTEE"
	AccessAdmin          AccessLevel = "ADMIN"
)

var roleRanks = map[Role]int{
	RoleMember:    0,
	RolePlayer:    1,
	RoleCommittee: 2,
	RoleAdmin:     3,
}

var accessRanks = map[AccessLevel]int{
	AccessAllMembers:     0,
	AccessPlayingMembers: 1,
	AccessCommittee:      2,
	AccessAdmin:          3,
}

// Rank returns the role's position in the fixed hierarchy. Unknown roles
// rank below MEMBER so a corrupt value never grants access.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast reports whether r ranks at or above required.
func (r Role) AtLeast(required Role) bool {
	return r.Rank() >= required.Rank()
}

// Rank returns the access level's position in the hierarchy. Unknown
// levels rank above ADMIN so a corrupt value never becomes readable.
func (a AccessLevel) Rank() int {
	if rank, ok := accessRanks[a]; ok {
		return rank
	}
	return len(accessRanks)
}

// Valid reports whether a is one of the closed set of access levels.
func (a AccessLevel) Valid() bool {
	_, ok := accessRanks[a]
	return ok
}

// CanAccess reports whether a viewer with role r may read a resource
// declared at level a. Both hierarchies share the same rank scale.
func (r Role) CanAccess(a AccessLevel) bool {
	return r.Rank() >= a.Rank()
}

// MembershipStatus tracks where a user sits in the paid-membership
// lifecycle.
type MembershipStatus string

const (
	MembershipPending   MembershipStatus = "PENDING"
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipExpired   MembershipStatus = "EXPIRED"
	MembershipSuspended MembershipStatus = "SUSPENDED"
)

// MembershipTier is the paid category a member registers under.
type MembershipTier string

const (
	TierSeniorPlaying MembershipTier = "PLAYING_SENIOR"
	TierJuniorPlaying MembershipTier = "PLAYING_JUNIOR"
	TierSocial        MembershipTier = "SOCIAL"
	TierFamily        MembershipTier = "FAMILY"
	TierLife          MembershipTier = "LIFE"
)

// Valid reports whether t is one of the closed set of tiers.
func (t MembershipTier) Valid() bool {
	switch t {
	case TierSeniorPlaying, TierJuniorPlaying, TierSocial, TierFamily, TierLife:
		return true
	}
	return false
}

// PaymentStatus tracks a single membership purchase.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)
