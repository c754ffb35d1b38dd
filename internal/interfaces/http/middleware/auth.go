package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/morabaat/backend/internal/application/identity"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/i18n"
	"github.com/morabaat/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "auth_user_id"
	RoleKey   = "auth_role"

	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// RequireAuth validates the bearer token and stores the caller's identity
// in the request context. Requests without a valid token are rejected.
func RequireAuth(auth *identityapp.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "UNAUTHORIZED", i18n.T(GetLang(c), "error.unauthorized"))
			return
		}
		if !authenticate(c, auth, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a bearer token is
// present but lets anonymous requests through. An invalid token is still
// rejected so a client never silently loses its session.
func OptionalAuth(auth *identityapp.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		if !authenticate(c, auth, token) {
			return
		}
		c.Next()
	}
}

// RequireRole allows only callers whose role is in the given set. It must
// run after RequireAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeForbidden, i18n.T(GetLang(c), "error.forbidden"), GetRequestID(c)))
	}
}

// RequireAdmin shortcuts the common admin-or-super-admin gate
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin, identity.RoleSuperAdmin)
}

func authenticate(c *gin.Context, auth *identityapp.AuthService, token string) bool {
	claims, err := auth.ValidateAccess(c.Request.Context(), token)
	if err != nil {
		code := "TOKEN_INVALID"
		var derr *shared.DomainError
		if errors.As(err, &derr) {
			code = derr.Code
		}
		abortUnauthorized(c, code, i18n.T(GetLang(c), "error.unauthorized"))
		return false
	}
	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, claims.UserID)
	c.Set(RoleKey, claims.Role)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(authHeader)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// CurrentUserID returns the authenticated caller's id, or uuid.Nil for
// anonymous requests.
func CurrentUserID(c *gin.Context) uuid.UUID {
	raw := c.GetString(UserIDKey)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// CurrentRole returns the authenticated caller's role, or the zero role
// for anonymous requests.
func CurrentRole(c *gin.Context) identity.Role {
	return identity.Role(c.GetString(RoleKey))
}

// IsAuthenticated reports whether the request carries a validated identity
func IsAuthenticated(c *gin.Context) bool {
	return c.GetString(UserIDKey) != ""
}
