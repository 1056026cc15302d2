package entity

import "time"

// RevokedToken records an access token that was invalidated before its natural expiry.
// Entries only matter until ExpiresAt; after that the token is rejected anyway.
type RevokedToken struct {
	ID        string    // jti claim of the revoked token
	UserID    uint      // subject of the revoked token
	RevokedAt time.Time // time of logout
	ExpiresAt time.Time // exp claim of the revoked token
}

// IsExpired returns true once the underlying token would have expired on its own.
func (t *RevokedToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
