package entity

import (
	"time"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
)

// User is a system account. Role comes from the closed domain.Role set; email
// is unique across the system.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Role         domain.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity derives the session identity carried by tokens for this user.
func (u *User) Identity() *domain.Identity {
	return &domain.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
