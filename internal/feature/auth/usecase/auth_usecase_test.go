package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shop_backend/internal/feature/auth/domain/entity"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/password"
)

const testJWTSecret = "usecase-test-secret-0123456789abcdef"

func newTokenPair(t *testing.T) (*jwtmw.Issuer, *jwtmw.Verifier) {
	t.Helper()
	cfg := jwtmw.Config{Secret: testJWTSecret, Issuer: "test"}
	iss, err := jwtmw.NewIssuer(cfg)
	require.NoError(t, err)
	ver, err := jwtmw.NewVerifier(cfg)
	require.NoError(t, err)
	return iss, ver
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(_ context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}
		hasher := password.NewBcryptHasher(bcrypt.MinCost)
		uc := NewAuthUsecase(repo, hasher, &mockTokenGenerator{}, nil)

		user, err := uc.Signup(context.Background(), SignupInput{
			FullName: "  Alice ",
			Email:    "alice@example.com",
			Password: "secret123",
			Phone:    "555-0000",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Same(t, created, user)
		assert.Equal(t, "Alice", user.FullName)
		assert.Equal(t, entity.RoleCustomer, user.Role)
		assert.Equal(t, entity.StatusActive, user.Status)
		assert.Equal(t, "Alice", user.CreatedBy)
		assert.NotEqual(t, "secret123", user.PasswordHash, "password is not hashed")
		assert.True(t, hasher.Verify("secret123", user.PasswordHash))
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name string
			in   SignupInput
		}{
			{"blank name", SignupInput{FullName: " ", Email: "a@example.com", Password: "secret123"}},
			{"bad email", SignupInput{FullName: "A", Email: "not-an-email", Password: "secret123"}},
			{"short password", SignupInput{FullName: "A", Email: "a@example.com", Password: "123"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &mockUserRepository{
					CreateFunc: func(context.Context, *entity.User) error {
						t.Error("Create must not be called")
						return nil
					},
				}
				uc := NewAuthUsecase(repo, &mockPasswordHasher{}, &mockTokenGenerator{}, nil)

				_, err := uc.Signup(context.Background(), tt.in)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *entity.User) error { return ErrEmailAlreadyExists },
		}
		uc := NewAuthUsecase(repo, &mockPasswordHasher{}, &mockTokenGenerator{}, nil)

		_, err := uc.Signup(context.Background(), SignupInput{FullName: "A", Email: "a@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("full name already taken", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByFullNameFunc: func(_ context.Context, name string) ([]*entity.User, error) {
				if name == "Root" {
					return []*entity.User{{ID: 1, FullName: "Root", Role: entity.RoleAdmin}}, nil
				}
				return nil, nil
			},
			CreateFunc: func(context.Context, *entity.User) error {
				t.Error("Create must not be called")
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockPasswordHasher{}, &mockTokenGenerator{}, nil)

		_, err := uc.Signup(context.Background(), SignupInput{FullName: " Root ", Email: "other@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, ErrFullNameAlreadyExists)
	})

	t.Run("full name lookup failure", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByFullNameFunc: func(context.Context, string) ([]*entity.User, error) {
				return nil, errors.New("connection reset")
			},
		}
		uc := NewAuthUsecase(repo, &mockPasswordHasher{}, &mockTokenGenerator{}, nil)

		_, err := uc.Signup(context.Background(), SignupInput{FullName: "A", Email: "a@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("repository create failure", func(t *testing.T) {
		dbErr := errors.New("database error")
		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *entity.User) error { return dbErr },
		}
		uc := NewAuthUsecase(repo, &mockPasswordHasher{}, &mockTokenGenerator{}, nil)

		_, err := uc.Signup(context.Background(), SignupInput{FullName: "A", Email: "a@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Contains(t, err.Error(), "database error")
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	hashed, err := hasher.Hash("password123")
	require.NoError(t, err)
	testUser := &entity.User{
		ID:           1,
		FullName:     "Test User",
		Email:        "test@example.com",
		PasswordHash: hashed,
		Role:         entity.RoleCustomer,
		Status:       entity.StatusActive,
	}

	t.Run("successful login", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByFullNameFunc: func(_ context.Context, name string) ([]*entity.User, error) {
				if name == testUser.FullName {
					return []*entity.User{testUser}, nil
				}
				return nil, nil
			},
		}
		tokens := &mockTokenGenerator{
			GenerateTokenFunc: func(user *entity.User) (string, error) {
				assert.Equal(t, testUser.ID, user.ID)
				return "mock-jwt-token", nil
			},
		}
		uc := NewAuthUsecase(repo, hasher, tokens, nil)

		token, err := uc.Login(context.Background(), "Test User", "password123")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
	})

	t.Run("unknown name and wrong password are indistinguishable", func(t *testing.T) {
		var verifiedHashes []string
		countingHasher := &mockPasswordHasher{
			VerifyFunc: func(plain, hash string) bool {
				verifiedHashes = append(verifiedHashes, hash)
				return hasher.Verify(plain, hash)
			},
		}
		repo := &mockUserRepository{
			FindByFullNameFunc: func(_ context.Context, name string) ([]*entity.User, error) {
				if name == testUser.FullName {
					return []*entity.User{testUser}, nil
				}
				return nil, nil
			},
		}
		uc := NewAuthUsecase(repo, countingHasher, &mockTokenGenerator{}, nil)

		_, errUnknown := uc.Login(context.Background(), "Nobody", "password123")
		_, errWrong := uc.Login(context.Background(), "Test User", "wrong-password")

		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
		// a hash comparison runs in both cases
		assert.Equal(t, []string{uc.dummyHash, hashed}, verifiedHashes)
	})

	t.Run("dummy hash uses the configured cost", func(t *testing.T) {
		for _, cost := range []int{bcrypt.MinCost, bcrypt.MinCost + 1} {
			uc := NewAuthUsecase(&mockUserRepository{}, password.NewBcryptHasher(cost), &mockTokenGenerator{}, nil)

			got, err := bcrypt.Cost([]byte(uc.dummyHash))
			require.NoError(t, err)
			assert.Equal(t, cost, got)
		}
	})

	t.Run("dummy hash falls back when hashing fails", func(t *testing.T) {
		failing := &mockPasswordHasher{
			HashFunc: func(string) (string, error) { return "", errors.New("rng unavailable") },
		}
		uc := NewAuthUsecase(&mockUserRepository{}, failing, &mockTokenGenerator{}, nil)

		assert.Equal(t, fallbackDummyHash, uc.dummyHash)
	})

	t.Run("ambiguous full name", func(t *testing.T) {
		twin := *testUser
		twin.ID = 2
		repo := &mockUserRepository{
			FindByFullNameFunc: func(context.Context, string) ([]*entity.User, error) {
				return []*entity.User{testUser, &twin}, nil
			},
		}
		tokens := &mockTokenGenerator{
			GenerateTokenFunc: func(*entity.User) (string, error) {
				t.Error("token must not be issued")
				return "", nil
			},
		}
		uc := NewAuthUsecase(repo, hasher, tokens, nil)

		_, err := uc.Login(context.Background(), "Test User", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		inactive := *testUser
		inactive.Status = entity.StatusInactive
		repo := &mockUserRepository{
			FindByFullNameFunc: func(context.Context, string) ([]*entity.User, error) {
				return []*entity.User{&inactive}, nil
			},
		}
		uc := NewAuthUsecase(repo, hasher, &mockTokenGenerator{}, nil)

		_, err := uc.Login(context.Background(), "Test User", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByFullNameFunc: func(context.Context, string) ([]*entity.User, error) {
				return nil, errors.New("connection reset")
			},
		}
		uc := NewAuthUsecase(repo, hasher, &mockTokenGenerator{}, nil)

		_, err := uc.Login(context.Background(), "Test User", "password123")
		assert.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByFullNameFunc: func(context.Context, string) ([]*entity.User, error) {
				return []*entity.User{testUser}, nil
			},
		}
		tokens := &mockTokenGenerator{
			GenerateTokenFunc: func(*entity.User) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}
		uc := NewAuthUsecase(repo, hasher, tokens, nil)

		_, err := uc.Login(context.Background(), "Test User", "password123")
		require.Error(t, err)
		assert.Equal(t, "failed to generate token: failed to sign token", err.Error())
	})
}

func TestAuthUsecase_RegisterThenLogin(t *testing.T) {
	repo := newMemoryUserRepository()
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	iss, ver := newTokenPair(t)
	uc := NewAuthUsecase(repo, hasher, iss, nil)
	ctx := context.Background()

	_, err := uc.Signup(ctx, SignupInput{FullName: "Alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	token, err := uc.Login(ctx, "Alice", "secret123")
	require.NoError(t, err)

	claims, err := ver.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, entity.RoleCustomer, claims.Role)

	_, err = uc.Login(ctx, "Alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(ctx, "alice", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "identifiers are case-sensitive")
}

func TestAuthUsecase_Logout(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("records the token until its expiry", func(t *testing.T) {
		var revoked *entity.RevokedToken
		revocations := &mockRevocationRepository{
			RevokeFunc: func(_ context.Context, token *entity.RevokedToken) error {
				revoked = token
				return nil
			},
		}
		uc := NewAuthUsecase(&mockUserRepository{}, &mockPasswordHasher{}, &mockTokenGenerator{}, revocations)
		uc.now = func() time.Time { return now }

		err := uc.Logout(context.Background(), 3, "jti-1", now.Add(time.Hour))

		require.NoError(t, err)
		require.NotNil(t, revoked)
		assert.Equal(t, "jti-1", revoked.ID)
		assert.Equal(t, uint(3), revoked.UserID)
		assert.Equal(t, now, revoked.RevokedAt)
		assert.Equal(t, now.Add(time.Hour), revoked.ExpiresAt)
	})

	t.Run("already expired token is a no-op", func(t *testing.T) {
		revocations := &mockRevocationRepository{
			RevokeFunc: func(context.Context, *entity.RevokedToken) error {
				t.Error("Revoke must not be called")
				return nil
			},
		}
		uc := NewAuthUsecase(&mockUserRepository{}, &mockPasswordHasher{}, &mockTokenGenerator{}, revocations)
		uc.now = func() time.Time { return now }

		assert.NoError(t, uc.Logout(context.Background(), 3, "jti-1", now.Add(-time.Second)))
	})

	t.Run("missing token id", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockPasswordHasher{}, &mockTokenGenerator{}, &mockRevocationRepository{})

		err := uc.Logout(context.Background(), 3, "", time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("store failure", func(t *testing.T) {
		revocations := &mockRevocationRepository{
			RevokeFunc: func(context.Context, *entity.RevokedToken) error { return errors.New("redis down") },
		}
		uc := NewAuthUsecase(&mockUserRepository{}, &mockPasswordHasher{}, &mockTokenGenerator{}, revocations)

		err := uc.Logout(context.Background(), 3, "jti-1", time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("no registry configured", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockPasswordHasher{}, &mockTokenGenerator{}, nil)

		assert.NoError(t, uc.Logout(context.Background(), 3, "jti-1", time.Now().Add(time.Hour)))
	})
}

func TestAuthUsecase_EnsureAdmin(t *testing.T) {
	in := SignupInput{FullName: "Root", Email: "root@example.com", Password: "rootpass1"}

	t.Run("creates admin when absent", func(t *testing.T) {
		repo := newMemoryUserRepository()
		uc := NewAuthUsecase(repo, &mockPasswordHasher{}, &mockTokenGenerator{}, nil)

		created, err := uc.EnsureAdmin(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, created)

		users, _ := repo.FindByFullName(context.Background(), "Root")
		require.Len(t, users, 1)
		assert.Equal(t, entity.RoleAdmin, users[0].Role)
		assert.Equal(t, "system", users[0].CreatedBy)
	})

	t.Run("skips when a user with the name exists", func(t *testing.T) {
		repo := newMemoryUserRepository()
		uc := NewAuthUsecase(repo, &mockPasswordHasher{}, &mockTokenGenerator{}, nil)
		_, err := uc.EnsureAdmin(context.Background(), in)
		require.NoError(t, err)

		created, err := uc.EnsureAdmin(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, created)

		users, _ := repo.List(context.Background())
		assert.Len(t, users, 1)
	})
}
