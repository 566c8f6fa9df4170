package middlewares

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clinical-service/internal/app/config"
	"clinical-service/internal/app/models"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/exceptions"
	"clinical-service/internal/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// TokenVerifier checks bearer tokens issued by the identity provider. A shared
// secret selects HS256; otherwise RS256 tokens are checked against the PEM
// public key or, failing that, the provider's JWKS endpoint.
type TokenVerifier struct {
	enabled   bool
	secret    []byte
	publicKey *rsa.PublicKey
	jwks      *jwksCache
}

func NewTokenVerifier(cfg config.JWT) (*TokenVerifier, error) {
	verifier := &TokenVerifier{enabled: cfg.Enabled}
	if !cfg.Enabled {
		return verifier, nil
	}

	switch {
	case cfg.Secret != "":
		verifier.secret = []byte(cfg.Secret)
	case cfg.PublicKey != "":
		publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("parsing JWT public key: %w", err)
		}
		verifier.publicKey = publicKey
	case cfg.JWKSUrl != "":
		verifier.jwks = newJWKSCache(cfg.JWKSUrl, time.Duration(cfg.JWKSCacheTTLInSeconds)*time.Second)
	default:
		return nil, errors.New("authentication is enabled but none of JWT_SECRET, JWT_PUBLIC_KEY or JWT_JWKS_URL is set")
	}
	return verifier, nil
}

func (v *TokenVerifier) Enabled() bool {
	return v.enabled
}

func (v *TokenVerifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.secret != nil {
			return v.secret, nil
		}
	case *jwt.SigningMethodRSA:
		if v.publicKey != nil {
			return v.publicKey, nil
		}
		if v.jwks != nil {
			kid, _ := token.Header["kid"].(string)
			if kid == "" {
				return nil, errors.New("token has no kid header")
			}
			return v.jwks.key(kid)
		}
	}
	return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
}

// Verify validates the token and returns the caller it was issued to.
func (v *TokenVerifier) Verify(raw string) (*models.Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	subject, _ := claims["sub"].(string)
	return &models.Principal{
		Subject: subject,
		Roles:   realmRoles(claims),
	}, nil
}

// realmRoles reads realm_access.roles and upper-cases each role name.
func realmRoles(claims jwt.MapClaims) []string {
	realmAccess, ok := claims[constvars.JWTClaimRealmAccess].(map[string]interface{})
	if !ok {
		return nil
	}
	rawRoles, ok := realmAccess[constvars.JWTClaimRoles].([]interface{})
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(rawRoles))
	for _, rawRole := range rawRoles {
		if role, ok := rawRole.(string); ok && role != "" {
			roles = append(roles, strings.ToUpper(role))
		}
	}
	return roles
}

func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		if !m.Verifier.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, constvars.BearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		principal, err := m.Verifier.Verify(strings.TrimPrefix(authHeader, constvars.BearerPrefix))
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate invalid token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		m.Log.Debug("Middlewares.Authenticate succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubjectKey, principal.Subject),
			zap.Strings(constvars.LoggingRolesKey, principal.Roles),
		)

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PRINCIPAL_KEY, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
