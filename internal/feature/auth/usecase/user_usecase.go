package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shop_backend/internal/feature/auth/domain/entity"
)

// CreateUserInput は管理者によるユーザー作成の入力です。空のRole/Statusはデフォルト値になります。
type CreateUserInput struct {
	SignupInput
	Role   string
	Status string
}

// UpdateUserInput はプロフィールの部分更新の入力です。
// nilのフィールドと空のRole/Statusは変更しません。
// 空のPasswordは保存済みハッシュを、空のImageは保存済み画像を維持します。
type UpdateUserInput struct {
	FullName *string
	Email    *string
	Phone    *string
	Address  *string
	Role     *string
	Status   *string
	Password string
	Image    string
}

// userUsecase はユーザー管理とプロフィール更新を実装します。
type userUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	now    clock
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, hasher PasswordHasher, tokens TokenGenerator) *userUsecase {
	return &userUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// ListUsers は全ユーザーを返します。管理者のみ実行できます。
func (u *userUsecase) ListUsers(ctx context.Context, actor Actor) ([]*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, classify("list users", err)
	}
	return users, nil
}

// GetUser はユーザーを1件返します。管理者以外は自分自身のみ参照できます。
func (u *userUsecase) GetUser(ctx context.Context, actor Actor, id uint) (*entity.User, error) {
	if !actor.canAccess(id) {
		return nil, ErrForbidden
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, classify("find user", err)
	}
	return user, nil
}

// CreateUser はロールとステータスを指定してユーザーを追加します。管理者のみ実行できます。
func (u *userUsecase) CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	role, err := roleOrDefault(in.Role)
	if err != nil {
		return nil, err
	}
	status, err := statusOrDefault(in.Status)
	if err != nil {
		return nil, err
	}

	user, err := buildUser(u.hasher, u.now(), in.SignupInput, role, status)
	if err != nil {
		return nil, err
	}
	user.CreatedBy = actor.FullName
	if err := ensureFullNameAvailable(ctx, u.users, user.FullName, 0); err != nil {
		return nil, err
	}

	if err := u.users.Create(ctx, user); err != nil {
		return nil, classify("create user", err)
	}
	return user, nil
}

// UpdateUser はプロフィールを更新し、保存後のプロフィールから再発行したトークンを返します。
// 他のユーザーが使用中のフルネームへの変更はErrFullNameAlreadyExistsを返します。
func (u *userUsecase) UpdateUser(ctx context.Context, actor Actor, id uint, in UpdateUserInput) (string, error) {
	if !actor.canAccess(id) {
		return "", ErrForbidden
	}

	existing, err := u.users.FindByID(ctx, id)
	if err != nil {
		return "", classify("find user", err)
	}

	updated := *existing
	if err := u.apply(actor, existing, &updated, in); err != nil {
		return "", err
	}
	if updated.FullName != existing.FullName {
		if err := ensureFullNameAvailable(ctx, u.users, updated.FullName, id); err != nil {
			return "", err
		}
	}
	updated.UpdatedAt = u.now()
	updated.UpdatedBy = actor.FullName

	if err := u.users.Update(ctx, &updated); err != nil {
		return "", classify("update user", err)
	}

	token, err := u.tokens.GenerateToken(&updated)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// DeleteUser はユーザーを削除します。管理者のみ実行できます。
func (u *userUsecase) DeleteUser(ctx context.Context, actor Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return classify("delete user", err)
	}
	return nil
}

// apply は入力で指定されたフィールドをupdatedに反映します。
func (u *userUsecase) apply(actor Actor, existing, updated *entity.User, in UpdateUserInput) error {
	if in.FullName != nil {
		if err := validateFullName(*in.FullName); err != nil {
			return err
		}
		updated.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if err := validateEmail(email); err != nil {
			return err
		}
		updated.Email = email
	}
	if in.Phone != nil {
		updated.Phone = *in.Phone
	}
	if in.Address != nil {
		updated.Address = *in.Address
	}
	if in.Role != nil && strings.TrimSpace(*in.Role) != "" {
		role, err := roleOrDefault(*in.Role)
		if err != nil {
			return err
		}
		if role != existing.Role && !actor.IsAdmin() {
			return ErrForbidden
		}
		updated.Role = role
	}
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		status, err := statusOrDefault(*in.Status)
		if err != nil {
			return err
		}
		if status != existing.Status && !actor.IsAdmin() {
			return ErrForbidden
		}
		updated.Status = status
	}
	if strings.TrimSpace(in.Image) != "" {
		updated.Image = in.Image
	}

	// 空のパスワードは保存済みハッシュをそのまま維持する
	if strings.TrimSpace(in.Password) != "" {
		if err := validatePassword(in.Password); err != nil {
			return err
		}
		hashed, err := u.hasher.Hash(in.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		updated.PasswordHash = hashed
	}
	return nil
}
