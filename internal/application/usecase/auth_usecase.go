package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/activity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/jwt"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// JWTConfig token generation settings for the auth service.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase implements login. Account creation lives in UserUseCase since
// only admins create users.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	rec      *activity.Recorder
	log      *logger.Logger
}

// NewAuthUseCase builds the auth service.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, rec *activity.Recorder, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, rec: rec, log: log}
}

// Login verifies email/password and returns a signed session token carrying
// the full identity. Wrong email and wrong password both map to Unauthorized
// so the response does not leak which one failed.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.NewValidation("email and password are required")
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Email, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.rec.Record(user.Name, activity.ActionLogin, fmt.Sprintf("User %s masuk", user.Email), nil)
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(user)}, nil
}
