package usecase

import (
	"context"
	"sort"
	"sync"

	"shop_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a func-field mock of UserRepository.
type mockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByIDFunc       func(ctx context.Context, id uint) (*entity.User, error)
	FindByFullNameFunc func(ctx context.Context, fullName string) ([]*entity.User, error)
	ListFunc           func(ctx context.Context) ([]*entity.User, error)
	UpdateFunc         func(ctx context.Context, user *entity.User) error
	DeleteFunc         func(ctx context.Context, id uint) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByFullName(ctx context.Context, fullName string) ([]*entity.User, error) {
	if m.FindByFullNameFunc != nil {
		return m.FindByFullNameFunc(ctx, fullName)
	}
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockTokenGenerator is a func-field mock of TokenGenerator.
type mockTokenGenerator struct {
	GenerateTokenFunc func(user *entity.User) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(user *entity.User) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(user)
	}
	return "mock-jwt-token", nil
}

// mockPasswordHasher is a func-field mock of PasswordHasher.
type mockPasswordHasher struct {
	HashFunc   func(plain string) (string, error)
	VerifyFunc func(plain, hash string) bool
}

func (m *mockPasswordHasher) Hash(plain string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(plain)
	}
	return "hashed:" + plain, nil
}

func (m *mockPasswordHasher) Verify(plain, hash string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(plain, hash)
	}
	return hash == "hashed:"+plain
}

// mockRevocationRepository is a func-field mock of RevocationRepository.
type mockRevocationRepository struct {
	RevokeFunc        func(ctx context.Context, token *entity.RevokedToken) error
	IsRevokedFunc     func(ctx context.Context, tokenID string) (bool, error)
	DeleteExpiredFunc func(ctx context.Context) (int64, error)
}

func (m *mockRevocationRepository) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, token)
	}
	return nil
}

func (m *mockRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, tokenID)
	}
	return false, nil
}

func (m *mockRevocationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

// memoryUserRepository is an in-memory UserRepository for scenario tests.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[uint]entity.User{}}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
		if u.FullName == user.FullName {
			return ErrFullNameAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uint) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByFullName(_ context.Context, fullName string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.FullName == fullName {
			u := u
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
