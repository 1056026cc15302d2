package jwtmw

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"shop_backend/internal/feature/auth/domain/entity"
)

// TokenTTL is the fixed lifetime of every issued token.
const TokenTTL = 2 * time.Hour

// Issuer builds HS256-signed tokens from user profile snapshots.
type Issuer struct {
	secret []byte
	issuer string
	now    func() time.Time
	newID  func() string
}

// NewIssuer creates an Issuer. It fails when the configuration has no usable secret.
func NewIssuer(cfg Config) (*Issuer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Issuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		now:    time.Now,
		newID:  uuid.NewString,
	}, nil
}

// GenerateToken signs a token whose claims are a snapshot of u.
// The snapshot goes stale on later profile edits until a new token is issued.
func (i *Issuer) GenerateToken(u *entity.User) (string, error) {
	if u == nil {
		return "", fmt.Errorf("failed to sign token: nil user")
	}
	now := i.now()
	claims := wireClaims{
		Claims: Claims{
			Name:    u.FullName,
			Email:   u.Email,
			Phone:   u.Phone,
			Image:   u.Image,
			Address: u.Address,
			Status:  u.Status,
			Role:    u.Role,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        i.newID(),
				Subject:   strconv.FormatUint(uint64(u.ID), 10),
				Issuer:    i.issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			},
		},
		RoleAuthorization: u.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
