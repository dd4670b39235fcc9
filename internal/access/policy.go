// Package access implements the ownership policy for catalog mutations.
// The admin and full-access allow-lists are injected at construction so
// the policy is a pure function of its inputs.
package access

import (
	"strings"

	"github.com/vitortoniolo/webapp-showme/internal/models"
)

type Policy struct {
	admins     map[string]struct{}
	fullAccess map[string]struct{}
}

func NewPolicy(adminEmails, fullAccessEmails []string) *Policy {
	p := &Policy{
		admins:     make(map[string]struct{}, len(adminEmails)),
		fullAccess: make(map[string]struct{}, len(fullAccessEmails)),
	}
	for _, email := range adminEmails {
		p.admins[NormalizeEmail(email)] = struct{}{}
	}
	for _, email := range fullAccessEmails {
		p.fullAccess[NormalizeEmail(email)] = struct{}{}
	}
	return p
}

// NormalizeEmail is the canonical form used for uniqueness and for
// allow-list membership.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Policy) IsAdmin(user models.User) bool {
	_, ok := p.admins[NormalizeEmail(user.Email)]
	return ok
}

// HasGlobalAccess reports whether the user may edit any resource and see
// unscoped "my" listings.
func (p *Policy) HasGlobalAccess(user models.User) bool {
	if p.IsAdmin(user) {
		return true
	}
	_, ok := p.fullAccess[NormalizeEmail(user.Email)]
	return ok
}

// CanMutate decides whether user may update or delete a resource owned
// by ownerID. A nil owner means the resource is unclaimed and any
// authenticated user may take it.
func (p *Policy) CanMutate(ownerID *int64, user models.User) bool {
	if ownerID == nil {
		return true
	}
	if *ownerID == user.ID {
		return true
	}
	return p.HasGlobalAccess(user)
}
