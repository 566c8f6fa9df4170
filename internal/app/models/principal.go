package models

import "slices"

// Principal is the authenticated caller as extracted from the bearer token.
type Principal struct {
	Subject string
	Roles   []string
}

func (p *Principal) HasAnyRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if slices.Contains(p.Roles, role) {
			return true
		}
	}
	return false
}
