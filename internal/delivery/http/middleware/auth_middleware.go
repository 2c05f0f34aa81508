package middleware

import (
	"slices"
	"strings"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// AccessTokenCookie is the cookie the session token travels in.
	AccessTokenCookie = "access_token"

	principalKey = "principal"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Roles    []string
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role entity.RoleName) bool {
	return slices.Contains(p.Roles, string(role))
}

// AuthMiddleware provides session-token authentication and role gating.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Identify extracts and verifies the session token, attaching the principal
// to the request. It never blocks: a missing, expired or invalid token just
// leaves the request anonymous. Gating happens in RequireAuthenticated and
// RequireRole.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return next(c)
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return next(c)
		}

		c.Set(principalKey, &Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Roles:    claims.Roles,
		})

		return next(c)
	}
}

// RequireAuthenticated rejects anonymous requests with 401.
// It must be used after Identify.
func (m *AuthMiddleware) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetPrincipal(c) == nil {
			return domainerrors.ErrUnauthenticated
		}

		return next(c)
	}
}

// RequireRole rejects requests whose principal lacks the role with 403.
// An anonymous request still gets 401, so the two failure modes stay distinct.
func (m *AuthMiddleware) RequireRole(role entity.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := GetPrincipal(c)
			if principal == nil {
				return domainerrors.ErrUnauthenticated
			}
			if !principal.HasRole(role) {
				return domainerrors.ErrPermissionDenied
			}

			return next(c)
		}
	}
}

// GetPrincipal returns the authenticated principal, or nil for anonymous
// requests.
func GetPrincipal(c echo.Context) *Principal {
	principal, _ := c.Get(principalKey).(*Principal)

	return principal
}

// extractToken prefers the session cookie; a Bearer header is accepted for
// non-browser clients.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}

	return ""
}
