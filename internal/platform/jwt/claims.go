package jwtmw

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAuthorizationClaim is the role claim name understood by the admin dashboard.
// It always carries the same value as the plain "role" claim.
const RoleAuthorizationClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// Claims is the profile snapshot carried by an access token.
// Role is the single canonical role field exposed to handlers.
type Claims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Image   string `json:"image"`
	Address string `json:"address"`
	Status  string `json:"status"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim as a user ID.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

// wireClaims is the on-the-wire claim set: Claims plus the duplicated role claim.
type wireClaims struct {
	Claims
	RoleAuthorization string `json:"http://schemas.microsoft.com/ws/2008/06/identity/claims/role"`
}
