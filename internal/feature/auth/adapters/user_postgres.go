// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"shop_backend/internal/feature/auth/domain/entity"
	"shop_backend/internal/feature/auth/usecase"
)

// pgUniqueViolation は一意制約違反を表すPostgreSQLのSQLSTATEです。
const pgUniqueViolation = "23505"

var errNilUser = errors.New("user is nil")

// userPostgres はUserRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create はユーザーをデータベースに追加し、採番されたIDとタイムスタンプを書き戻します。
// 一意制約違反の場合、usecase.ErrEmailAlreadyExistsまたはusecase.ErrFullNameAlreadyExistsを返します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errNilUser
	}
	model := UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return r.duplicateError(ctx, err, u)
		}
		return err
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindByFullName はフルネームが完全一致するユーザーをすべて取得します。
func (r *userPostgres) FindByFullName(ctx context.Context, fullName string) ([]*entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).
		Where("full_name = ?", fullName).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

// List はID順で全ユーザーを取得します。
func (r *userPostgres) List(ctx context.Context) ([]*entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

// Update はゼロ値を含む更新可能な全カラムを上書きします。
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errNilUser
	}
	model := UserModelFromEntity(u)
	result := r.db.WithContext(ctx).
		Model(model).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(model)

	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return r.duplicateError(ctx, result.Error, u)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete はIDでユーザーを削除します。
func (r *userPostgres) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

func toEntities(models []UserModel) []*entity.User {
	users := make([]*entity.User, len(models))
	for i := range models {
		users[i] = models[i].ToEntity()
	}
	return users
}

// duplicateError は重複した一意カラムに対応するエラーを返します。
// PostgreSQLは制約名を返しますが、変換済みのGORMエラーには含まれないためフルネームを検索します。
func (r *userPostgres) duplicateError(ctx context.Context, err error, u *entity.User) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		if strings.Contains(pgErr.ConstraintName, "full_name") {
			return usecase.ErrFullNameAlreadyExists
		}
		return usecase.ErrEmailAlreadyExists
	}

	var taken int64
	if err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("full_name = ? AND id <> ?", u.FullName, u.ID).
		Count(&taken).Error; err == nil && taken > 0 {
		return usecase.ErrFullNameAlreadyExists
	}
	return usecase.ErrEmailAlreadyExists
}

// isDuplicateKey は変換済みGORMエラーとpgconnエラーの両方から一意制約違反を検出します。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
