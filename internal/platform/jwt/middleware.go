package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/auth/domain/entity"
)

const (
	// ContextUserID holds the authenticated user's ID (uint).
	ContextUserID = "userID"
	// ContextClaims holds the verified *Claims.
	ContextClaims = "claims"

	bearerPrefix = "Bearer "
)

// TokenVerifier is the subset of Verifier the middleware needs.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// RevocationChecker reports whether a token ID was revoked before expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthRequired returns a Gin middleware that admits only requests carrying a valid
// "Authorization: Bearer <token>" header. Every failure answers the same 401 body.
// revoked may be nil, in which case no revocation lookup is made.
func AuthRequired(verifier TokenVerifier, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			abortUnauthenticated(c)
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			slog.Debug("token rejected", "error", err, "remote_addr", c.ClientIP())
			abortUnauthenticated(c)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail closed: an unknown revocation state is not a valid identity.
				slog.Error("revocation lookup failed", "error", err, "user_id", userID)
				abortUnauthenticated(c)
				return
			}
			if isRevoked {
				abortUnauthenticated(c)
				return
			}
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole must run after AuthRequired. It answers 403 when the caller's role differs.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			abortUnauthenticated(c)
			return
		}
		if !strings.EqualFold(claims.Role, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// RequireAdmin is RequireRole for the Admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entity.RoleAdmin)
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// UserIDFromContext returns the user ID parsed from the subject by AuthRequired.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticated.Error()})
}
