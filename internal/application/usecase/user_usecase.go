package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/activity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// UserUseCase implements the account-administration service. Every operation
// is gated by the view-logs predicate (ADMIN and above), matching the users
// page.
type UserUseCase struct {
	repo repository.UserRepository
	rec  *activity.Recorder
	log  *logger.Logger
}

// NewUserUseCase builds the service.
func NewUserUseCase(repo repository.UserRepository, rec *activity.Recorder, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, rec: rec, log: log}
}

// List returns one page of accounts.
func (uc *UserUseCase) List(actor *domain.Identity, page dto.PageRequest) (*dto.Paginated, error) {
	if err := requireViewLogs(actor); err != nil {
		return nil, err
	}
	page.Normalize()
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.ToUserResponse(u))
	}
	return dto.NewPaginated(items, total, page.Page, page.PageSize), nil
}

// GetByID returns one account or NotFound.
func (uc *UserUseCase) GetByID(actor *domain.Identity, id string) (*dto.UserResponse, error) {
	if err := requireViewLogs(actor); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFound("User")
	}
	return dto.ToUserResponse(u), nil
}

// Create hashes the password with bcrypt and persists the account. Email must
// be unique.
func (uc *UserUseCase) Create(actor *domain.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := requireViewLogs(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, _ := domain.ParseRole(in.Role) // validated above
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(u); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionCreateUser,
		fmt.Sprintf("Membuat user %s (%s) dengan role %s", u.Name, u.Email, u.Role), dto.ToUserResponse(u))
	return dto.ToUserResponse(u), nil
}

// Update changes name and/or role. Empty request fields are left as-is.
func (uc *UserUseCase) Update(actor *domain.Identity, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := requireViewLogs(actor); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFound("User")
	}
	before := *dto.ToUserResponse(u)
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Role != "" {
		role, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, domain.NewValidation("role must be one of USER, MANAGER, ADMIN, DEVELOPER")
		}
		u.Role = role
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(u); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionUpdateUser,
		fmt.Sprintf("Mengubah user %s", u.Email),
		map[string]any{"before": before, "after": dto.ToUserResponse(u)})
	return dto.ToUserResponse(u), nil
}

// ChangePassword replaces the password hash.
func (uc *UserUseCase) ChangePassword(actor *domain.Identity, id string, in dto.ChangePasswordRequest) error {
	if err := requireViewLogs(actor); err != nil {
		return err
	}
	if len(in.Password) < 8 {
		return domain.NewValidation("password must be at least 8 characters")
	}
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFound("User")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdatePassword(id, string(hash)); err != nil {
		return err
	}
	uc.rec.Record(actor.Name, activity.ActionUpdateUser,
		fmt.Sprintf("Mengganti password user %s", u.Email), nil)
	return nil
}

// Delete removes an account. Self-deletion is refused so an admin cannot lock
// themselves out mid-session.
func (uc *UserUseCase) Delete(actor *domain.Identity, id string) error {
	if err := requireViewLogs(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return domain.NewValidation("cannot delete your own account")
	}
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFound("User")
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.rec.Record(actor.Name, activity.ActionDeleteUser,
		fmt.Sprintf("Menghapus user %s (%s)", u.Name, u.Email), dto.ToUserResponse(u))
	return nil
}
