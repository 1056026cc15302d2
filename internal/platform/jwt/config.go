// Package jwtmw issues and verifies the signed access tokens used by the API
// and provides the Gin middleware guarding authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// EnvKeyJWTSecret is the environment variable holding the HMAC signing key.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTIssuer is the environment variable holding the iss claim value.
	EnvKeyJWTIssuer = "JWT_ISSUER"

	// DefaultIssuer is used when JWT_ISSUER is not set.
	DefaultIssuer = "shop_backend"

	// minSecretLength matches the HS256 output size.
	minSecretLength = 32
)

var (
	// ErrMissingSecret is returned when no signing key is configured.
	ErrMissingSecret = errors.New("jwt signing secret is not set")
	// ErrWeakSecret is returned when the signing key is too short for HS256.
	ErrWeakSecret = fmt.Errorf("jwt signing secret must be at least %d bytes", minSecretLength)
)

// Config holds the signing configuration shared by Issuer and Verifier.
type Config struct {
	Secret string
	Issuer string
}

// LoadConfig reads the signing configuration from the environment.
// A missing or short secret is a configuration error the caller should treat as fatal.
func LoadConfig() (Config, error) {
	cfg := Config{
		Secret: strings.TrimSpace(os.Getenv(EnvKeyJWTSecret)),
		Issuer: strings.TrimSpace(os.Getenv(EnvKeyJWTIssuer)),
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return ErrMissingSecret
	}
	if len(c.Secret) < minSecretLength {
		return ErrWeakSecret
	}
	return nil
}
