package middlewares

import (
	"net/http"
	"strings"

	"clinical-service/internal/app/models"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/exceptions"
	"clinical-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// AccessRule grants method on every path under PathPrefix to any of Roles.
// An empty Roles list admits every authenticated caller.
type AccessRule struct {
	Method     string
	PathPrefix string
	Roles      []string
}

type AccessPolicy struct {
	Rules []AccessRule
}

func NewAccessPolicy(endpointPrefix string) *AccessPolicy {
	base := strings.TrimSuffix(endpointPrefix, "/")
	doctorOrStaff := []string{constvars.RoleDoctor, constvars.RoleStaff}
	doctor := []string{constvars.RoleDoctor}

	var rules []AccessRule
	for _, resource := range []string{constvars.ResourceObservations, constvars.ResourceConditions, constvars.ResourceEncounters} {
		prefix := base + "/" + resource
		update := doctor
		if resource == constvars.ResourceEncounters {
			update = doctorOrStaff
		}
		rules = append(rules,
			AccessRule{Method: constvars.MethodGet, PathPrefix: prefix},
			AccessRule{Method: constvars.MethodPost, PathPrefix: prefix, Roles: doctorOrStaff},
			AccessRule{Method: constvars.MethodPut, PathPrefix: prefix, Roles: update},
			AccessRule{Method: constvars.MethodDelete, PathPrefix: prefix, Roles: doctor},
		)
	}
	return &AccessPolicy{Rules: rules}
}

// Allows reports whether principal may call method on path. Paths no rule
// covers only need an authenticated caller.
func (p *AccessPolicy) Allows(principal *models.Principal, method, path string) bool {
	if principal == nil {
		return false
	}
	for _, rule := range p.Rules {
		if rule.Method != method || !matchesPrefix(path, rule.PathPrefix) {
			continue
		}
		return len(rule.Roles) == 0 || principal.HasAnyRole(rule.Roles...)
	}
	return true
}

func matchesPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Verifier.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		requestID := utils.GetRequestID(r.Context())
		principal, _ := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(*models.Principal)
		if principal == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		if !m.Policy.Allows(principal, r.Method, r.URL.Path) {
			m.Log.Warn("Middlewares.Authorize role not allowed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSubjectKey, principal.Subject),
				zap.Strings(constvars.LoggingRolesKey, principal.Roles),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(r.Method, r.URL.Path))
			return
		}

		next.ServeHTTP(w, r)
	})
}
