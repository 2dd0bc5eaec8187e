package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

func newUserUC(repo *fakeUserRepo) *usecase.UserUseCase {
	rec, _ := newTestRecorder()
	return usecase.NewUserUseCase(repo, rec, logger.Nop())
}

func createUserRequest(email string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Name:     "Dewi",
		Email:    email,
		Password: "rahasia-123",
		Role:     "MANAGER",
	}
}

func TestUserCreate_AdminSucceeds(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUserUC(repo)

	out, err := uc.Create(adminActor(), createUserRequest("dewi@example.com"))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, out.Role)

	stored, err := repo.GetByEmail("dewi@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "rahasia-123", stored.PasswordHash, "password must be stored hashed")
	assert.NotEmpty(t, stored.PasswordHash)
}

// Account administration needs ADMIN; a MANAGER cannot manage users even
// though they manage records.
func TestUserCreate_ManagerRefused(t *testing.T) {
	uc := newUserUC(&fakeUserRepo{})
	_, err := uc.Create(managerActor(), createUserRequest("dewi@example.com"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUserUC(repo)
	_, err := uc.Create(adminActor(), createUserRequest("dewi@example.com"))
	require.NoError(t, err)

	_, err = uc.Create(adminActor(), createUserRequest("dewi@example.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserCreate_InvalidRoleAggregated(t *testing.T) {
	uc := newUserUC(&fakeUserRepo{})
	in := createUserRequest("dewi@example.com")
	in.Role = "SUPERADMIN"
	in.Password = "short"
	_, err := uc.Create(adminActor(), in)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Messages, "role must be one of USER, MANAGER, ADMIN, DEVELOPER")
	assert.Contains(t, ve.Messages, "password must be at least 8 characters")
}

func TestUserUpdate_ChangesRole(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUserUC(repo)
	created, err := uc.Create(adminActor(), createUserRequest("dewi@example.com"))
	require.NoError(t, err)

	out, err := uc.Update(adminActor(), created.ID, dto.UpdateUserRequest{Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, out.Role)
	assert.Equal(t, "Dewi", out.Name, "empty name leaves the old one")

	_, err = uc.Update(adminActor(), created.ID, dto.UpdateUserRequest{Role: "ROOT"})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}

func TestUserDelete_RefusesSelf(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUserUC(repo)
	actor := adminActor()
	created, err := uc.Create(actor, createUserRequest("dewi@example.com"))
	require.NoError(t, err)

	// Deleting one's own account is refused; deleting another goes through.
	err = uc.Delete(actor, actor.ID)
	_, ok := domain.AsValidation(err)
	require.True(t, ok)

	assert.NoError(t, uc.Delete(actor, created.ID))
}
