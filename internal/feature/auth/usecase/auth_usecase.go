package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shop_backend/internal/feature/auth/domain/entity"
)

const dummyPassword = "dummy-password-for-timing"

// fallbackDummyHash は起動時にハッシャーがダイジェストを生成できない場合にのみ使用します。
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// SignupInput はセルフ登録リクエストの入力です。
type SignupInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Address  string
	Image    string
}

// authUsecase は登録・ログイン・ログアウトのビジネスロジックを実装します。
type authUsecase struct {
	users       UserRepository
	hasher      PasswordHasher
	tokens      TokenGenerator
	revocations RevocationRepository
	now         clock
	// dummyHash はユーザーが見つからない場合の比較対象です。設定されたコストで生成されます。
	dummyHash string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// revocations がnilの場合、ログアウト時のトークン失効は行いません。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenGenerator, revocations RevocationRepository) *authUsecase {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		slog.Warn("failed to derive dummy password hash", "error", err)
		dummy = fallbackDummyHash
	}
	return &authUsecase{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		now:         time.Now,
		dummyHash:   dummy,
	}
}

// Signup はハッシュ化されたパスワードで有効なCustomerを新規登録します。
// 既に使われているフルネームの場合、ErrFullNameAlreadyExistsを返します。
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	user, err := buildUser(u.hasher, u.now(), in, entity.RoleCustomer, entity.StatusActive)
	if err != nil {
		return nil, err
	}
	user.CreatedBy = user.FullName
	if err := ensureFullNameAvailable(ctx, u.users, user.FullName, 0); err != nil {
		return nil, err
	}

	if err := u.users.Create(ctx, user); err != nil {
		return nil, classify("create user", err)
	}
	return user, nil
}

// Login はフルネームとパスワードを検証し、署名済みトークンを返します。
// 未登録・重複・無効化されたアカウントとパスワード不一致は、すべてErrInvalidCredentialsを返します。
func (u *authUsecase) Login(ctx context.Context, fullName, password string) (string, error) {
	matches, err := u.users.FindByFullName(ctx, strings.TrimSpace(fullName))
	if err != nil {
		return "", classify("find user", err)
	}

	var user *entity.User
	passwordHash := u.dummyHash
	if len(matches) == 1 {
		user = matches[0]
		passwordHash = user.PasswordHash
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	ok := u.hasher.Verify(password, passwordHash)

	if len(matches) > 1 {
		slog.Warn("login identifier is ambiguous", "matches", len(matches))
		return "", ErrInvalidCredentials
	}
	if user == nil || !ok || !user.IsActive() {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout は提示されたトークンを有効期限まで失効させます。
func (u *authUsecase) Logout(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error {
	if u.revocations == nil {
		return nil
	}
	if tokenID == "" {
		return fmt.Errorf("%w: token has no id", ErrValidation)
	}
	if !expiresAt.After(u.now()) {
		return nil
	}

	err := u.revocations.Revoke(ctx, &entity.RevokedToken{
		ID:        tokenID,
		UserID:    userID,
		RevokedAt: u.now(),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return classify("revoke token", err)
	}
	return nil
}

// EnsureAdmin は同じフルネームのユーザーが存在しない場合にAdminアカウントを作成します。
// アカウントを作成したかどうかを返します。
func (u *authUsecase) EnsureAdmin(ctx context.Context, in SignupInput) (bool, error) {
	existing, err := u.users.FindByFullName(ctx, strings.TrimSpace(in.FullName))
	if err != nil {
		return false, classify("find user", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	user, err := buildUser(u.hasher, u.now(), in, entity.RoleAdmin, entity.StatusActive)
	if err != nil {
		return false, err
	}
	user.CreatedBy = "system"

	if err := u.users.Create(ctx, user); err != nil {
		return false, classify("create admin", err)
	}
	return true, nil
}

// ensureFullNameAvailable はselfID以外のユーザーが使用中のフルネームを拒否します。
func ensureFullNameAvailable(ctx context.Context, users UserRepository, fullName string, selfID uint) error {
	matches, err := users.FindByFullName(ctx, fullName)
	if err != nil {
		return classify("find user", err)
	}
	for _, m := range matches {
		if m.ID != selfID {
			return ErrFullNameAlreadyExists
		}
	}
	return nil
}

// buildUser は入力を検証し、ハッシュ化されたパスワードを持つエンティティを生成します。
func buildUser(hasher PasswordHasher, now time.Time, in SignupInput, role, status string) (*entity.User, error) {
	if err := validateFullName(in.FullName); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &entity.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: hashed,
		Phone:        in.Phone,
		Address:      in.Address,
		Image:        in.Image,
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
