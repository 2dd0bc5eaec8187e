package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// AuthHandler serves the public login endpoint.
type AuthHandler struct {
	uc  *usecase.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *usecase.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to log in")
	}
	return c.JSON(dto.OK(out))
}

// Me godoc
// @Summary      Current session identity
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.OK(GetIdentity(c)))
}
