package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shop_backend/internal/feature/auth/domain/entity"
	"shop_backend/internal/feature/auth/usecase"
)

// revocationGorm is a database implementation of the RevocationRepository interface.
// It is used when Redis is not configured.
type revocationGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure revocationGorm implements RevocationRepository.
var _ usecase.RevocationRepository = (*revocationGorm)(nil)

// NewRevocationGorm creates a new instance of revocationGorm.
func NewRevocationGorm(db *gorm.DB) *revocationGorm {
	return &revocationGorm{db: db}
}

// Revoke records the token. Revoking the same token twice is not an error.
func (r *revocationGorm) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	model := RevokedTokenModelFromEntity(token)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error
}

// IsRevoked reports whether an unexpired entry exists for the token ID.
func (r *revocationGorm) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RevokedTokenModel{}).
		Where("id = ? AND expires_at > ?", tokenID, time.Now()).
		Count(&count).Error
	return count > 0, err
}

// DeleteExpired removes entries whose tokens have expired on their own.
func (r *revocationGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&RevokedTokenModel{})
	return result.RowsAffected, result.Error
}
