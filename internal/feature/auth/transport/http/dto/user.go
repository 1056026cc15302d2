package dto

import (
	"time"

	"shop_backend/internal/feature/auth/domain/entity"
)

// CreateUserReq is the admin create payload. Empty role and status take the defaults.
type CreateUserReq struct {
	SignupReq
	Role   string `json:"role" binding:"omitempty,oneof=Customer Admin customer admin"`
	Status string `json:"status" binding:"omitempty,oneof=Active Inactive active inactive"`
}

// UpdateUserReq is a partial profile edit. Absent fields are left unchanged.
// A blank password keeps the current one.
type UpdateUserReq struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Password string  `json:"password" binding:"omitempty,max=72"`
	Image    string  `json:"image"`
}

// UserRes is the public view of a user. The password hash is never included.
type UserRes struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Image     string    `json:"image"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy"`
	UpdatedBy string    `json:"updatedBy"`
}

// UserResFromEntity converts a domain user to its response form.
func UserResFromEntity(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Image:     u.Image,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		CreatedBy: u.CreatedBy,
		UpdatedBy: u.UpdatedBy,
	}
}

// UserResFromEntities converts a slice of users. The result is never nil.
func UserResFromEntities(users []*entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for _, u := range users {
		out = append(out, UserResFromEntity(u))
	}
	return out
}
