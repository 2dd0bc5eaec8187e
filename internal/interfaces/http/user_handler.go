package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// UserHandler serves the account-administration endpoints (ADMIN and above).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler builds the handler.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// List godoc
// @Summary      List accounts
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        page      query  int  false  "Page"       default(1)
// @Param        pageSize  query  int  false  "Page size"  default(20)
// @Success      200  {object}  dto.Response
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetIdentity(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch users")
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Get one account
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch user")
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Create an account
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Account data"
// @Success      201   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Create(GetIdentity(c), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Update godoc
// @Summary      Update name and/or role
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "User ID"
// @Param        body  body  dto.UpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Update(GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update user")
	}
	return c.JSON(dto.OK(out))
}

// ChangePassword godoc
// @Summary      Replace an account password
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "User ID"
// @Param        body  body  dto.ChangePasswordRequest  true  "New password"
// @Success      200   {object}  dto.Response
// @Router       /api/users/{id}/password [patch]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := h.uc.ChangePassword(GetIdentity(c), c.Params("id"), in); err != nil {
		return respondError(c, h.log, err, "Failed to change password")
	}
	return c.JSON(dto.OKMessage(nil, "Password updated successfully"))
}

// Delete godoc
// @Summary      Delete an account (self-deletion refused)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err, "Failed to delete user")
	}
	return c.JSON(dto.OKMessage(nil, "User deleted successfully"))
}
