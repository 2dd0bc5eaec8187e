package repository

import "github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"

// UserRepository is the persistence port for system accounts (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(id, passwordHash string) error
	List(limit, offset int) ([]*entity.User, error)
	Count() (int, error)
	Delete(id string) error
}
