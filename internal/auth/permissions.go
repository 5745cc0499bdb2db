package auth

import (
	"slices"
	"sort"

	"pilana/internal/models"
)

type Role string

const (
	RoleAdmin Role = models.RoleAdmin
	RoleUser  Role = models.RoleUser
)

func ParseRole(s string) Role {
	if s == models.RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Permission is the key of one business module.
type Permission string

const (
	PermOffers       Permission = "ponude"
	PermWorkOrders   Permission = "radni-nalozi"
	PermSawmill      Permission = "pilana"
	PermRefinish     Permission = "dorada"
	PermLogIntake    Permission = "prijem-trupaca"
	PermCashRegister Permission = "blagajna"
)

var knownPermissions = []Permission{
	PermOffers, PermWorkOrders, PermSawmill, PermRefinish, PermLogIntake, PermCashRegister,
}

func KnownPermissions() []Permission {
	return append([]Permission(nil), knownPermissions...)
}

// ValidPermissions reports whether every stored key names a known module
// or is the all-permissions grant.
func ValidPermissions(raw []string) bool {
	for _, r := range raw {
		if r == storedWildcard {
			continue
		}
		if !slices.Contains(knownPermissions, Permission(r)) {
			return false
		}
	}
	return true
}

// storedWildcard is how a grant of every permission is persisted.
const storedWildcard = "all"

// PermissionSet is either every permission or an explicit set of keys.
type PermissionSet struct {
	all  bool
	keys map[Permission]struct{}
}

func AllPermissions() PermissionSet {
	return PermissionSet{all: true}
}

func NewPermissionSet(perms ...Permission) PermissionSet {
	s := PermissionSet{keys: make(map[Permission]struct{}, len(perms))}
	for _, p := range perms {
		s.keys[p] = struct{}{}
	}
	return s
}

// ParsePermissions converts the stored form, where "all" grants everything.
func ParsePermissions(raw []string) PermissionSet {
	perms := make([]Permission, 0, len(raw))
	for _, r := range raw {
		if r == storedWildcard {
			return AllPermissions()
		}
		perms = append(perms, Permission(r))
	}
	return NewPermissionSet(perms...)
}

func (s PermissionSet) All() bool { return s.all }

func (s PermissionSet) Has(p Permission) bool {
	if s.all {
		return true
	}
	_, ok := s.keys[p]
	return ok
}

// Strings returns the stored form of the set.
func (s PermissionSet) Strings() []string {
	if s.all {
		return []string{storedWildcard}
	}
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// Principal is the authenticated caller. The zero value is the
// unauthenticated state.
type Principal struct {
	UserID      string
	Username    string
	Email       string
	Role        Role
	Permissions PermissionSet
	SessionID   string
}

func PrincipalFromUser(u models.User, sessionID string) Principal {
	return Principal{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        ParseRole(u.Role),
		Permissions: ParsePermissions(u.Permissions),
		SessionID:   sessionID,
	}
}

func (p Principal) Authenticated() bool { return p.UserID != "" }

func (p Principal) IsAdmin() bool { return p.Authenticated() && p.Role == RoleAdmin }

// Allows passes admins unconditionally; everyone else needs the key or the
// all-permissions grant.
func (p Principal) Allows(perm Permission) bool {
	if !p.Authenticated() {
		return false
	}
	if p.Role == RoleAdmin {
		return true
	}
	return p.Permissions.Has(perm)
}
