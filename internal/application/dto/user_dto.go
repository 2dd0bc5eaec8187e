package dto

import (
	"time"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
)

// CreateUserRequest is the admin form for creating an account.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate aggregates every failed constraint; the role must parse against the
// closed role set.
func (r CreateUserRequest) Validate() error {
	var msgs []string
	if r.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if r.Email == "" {
		msgs = append(msgs, "email is required")
	}
	if len(r.Password) < 8 {
		msgs = append(msgs, "password must be at least 8 characters")
	}
	if _, err := domain.ParseRole(r.Role); err != nil {
		msgs = append(msgs, "role must be one of USER, MANAGER, ADMIN, DEVELOPER")
	}
	if len(msgs) > 0 {
		return domain.NewValidation(msgs...)
	}
	return nil
}

// UpdateUserRequest changes name and/or role. Empty fields are left untouched.
type UpdateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ChangePasswordRequest replaces a user's password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// UserResponse is the API shape of an account; the password hash never leaves
// the domain.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ToUserResponse maps the entity to its API shape.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
