package adapters

import (
	"time"

	"shop_backend/internal/feature/auth/domain/entity"
)

// RevokedTokenModel is the GORM model for the revoked_tokens table.
type RevokedTokenModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	RevokedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (RevokedTokenModel) TableName() string {
	return "revoked_tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *RevokedTokenModel) ToEntity() *entity.RevokedToken {
	return &entity.RevokedToken{
		ID:        m.ID,
		UserID:    m.UserID,
		RevokedAt: m.RevokedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// RevokedTokenModelFromEntity converts a domain entity to a GORM model.
func RevokedTokenModelFromEntity(t *entity.RevokedToken) *RevokedTokenModel {
	return &RevokedTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		RevokedAt: t.RevokedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
