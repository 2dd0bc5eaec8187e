package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// respondError maps a domain error to the uniform envelope. Typed errors keep
// their message; anything else becomes the generic fallback ("Failed to ...")
// with the cause logged but not leaked.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, fallback string) error {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	var cf *domain.ConflictError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(ve.Error()))
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(nf.Error()))
	case errors.As(err, &cf):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail(cf.Error()))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail(domain.ErrEmailAlreadyExists.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(domain.ErrInvalidInput.Error()))
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg(fallback)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(fallback))
	}
}

// respondBadBody is the envelope for an unparseable request body.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
}

// pageFromQuery reads ?page= and ?pageSize= with the service defaults.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
	}
}
