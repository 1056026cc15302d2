package usecase

import (
	"context"
	"time"

	"shop_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// メールアドレスまたはフルネームが重複する場合、ErrEmailAlreadyExistsまたはErrFullNameAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByFullName はフルネームが完全一致するユーザーをすべて返します。
	// 一致しない場合は空のスライスを返します。
	FindByFullName(ctx context.Context, fullName string) ([]*entity.User, error)

	// List はID順で全ユーザーを返します。
	List(ctx context.Context) ([]*entity.User, error)

	// Update は保存済みレコードを上書きします。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	Update(ctx context.Context, user *entity.User) error

	// Delete はユーザーを削除します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// PasswordHasher はパスワードの一方向ハッシュを定義します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenGenerator はユーザープロフィールから署名済みアクセストークンを生成します。
type TokenGenerator interface {
	GenerateToken(user *entity.User) (string, error)
}

// RevocationRepository は有効期限前に失効したアクセストークンを記録します。
type RevocationRepository interface {
	// Revoke はトークンIDをexpiresAtまで記録します。
	Revoke(ctx context.Context, token *entity.RevokedToken) error

	// IsRevoked はトークンIDが失効済みかどうかを返します。
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// DeleteExpired は期限切れのエントリを削除し、削除件数を返します。
	DeleteExpired(ctx context.Context) (int64, error)
}

// Actor は操作を実行する認証済みの呼び出し元です。
type Actor struct {
	ID       uint
	FullName string
	Role     string
}

// IsAdmin はActorがAdminロールを持つかどうかを返します。
func (a Actor) IsAdmin() bool {
	return entity.IsAdminRole(a.Role)
}

// canAccess は対象ユーザーの参照・編集が可能かどうかを返します。
func (a Actor) canAccess(targetID uint) bool {
	return a.IsAdmin() || a.ID == targetID
}

// clock はテストで差し替え可能な現在時刻の取得関数です。
type clock func() time.Time
