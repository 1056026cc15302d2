package adapters

import (
	"time"

	"shop_backend/internal/feature/auth/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	FullName     string `gorm:"size:255;uniqueIndex:idx_users_full_name;not null"`
	Email        string `gorm:"size:255;uniqueIndex:idx_users_email;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Phone        string `gorm:"size:64"`
	Address      string `gorm:"size:512"`
	Image        string `gorm:"type:text"`
	Role         string `gorm:"size:32;not null;default:Customer"`
	Status       string `gorm:"size:32;not null;default:Active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string `gorm:"size:255"`
	UpdatedBy    string `gorm:"size:255"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		Address:      m.Address,
		Image:        m.Image,
		Role:         m.Role,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		CreatedBy:    m.CreatedBy,
		UpdatedBy:    m.UpdatedBy,
	}
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Address:      u.Address,
		Image:        u.Image,
		Role:         u.Role,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		CreatedBy:    u.CreatedBy,
		UpdatedBy:    u.UpdatedBy,
	}
}
