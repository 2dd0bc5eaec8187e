package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// ProyekHandler serves the development-project endpoints (protected).
type ProyekHandler struct {
	uc  *usecase.ProyekUseCase
	log *logger.Logger
}

// NewProyekHandler builds the handler.
func NewProyekHandler(uc *usecase.ProyekUseCase, log *logger.Logger) *ProyekHandler {
	return &ProyekHandler{uc: uc, log: log}
}

// List godoc
// @Summary      List projects
// @Tags         proyek
// @Security     Bearer
// @Produce      json
// @Param        page      query  int  false  "Page"       default(1)
// @Param        pageSize  query  int  false  "Page size"  default(20)
// @Success      200  {object}  dto.Response
// @Router       /api/proyek [get]
func (h *ProyekHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch proyek list")
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Get one project
// @Tags         proyek
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Project ID"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/proyek/{id} [get]
func (h *ProyekHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch proyek")
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Create a project
// @Tags         proyek
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProyekRequest  true  "Project data"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/proyek [post]
func (h *ProyekHandler) Create(c *fiber.Ctx) error {
	var in dto.ProyekRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Create(GetIdentity(c), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create proyek")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Update godoc
// @Summary      Update a project
// @Tags         proyek
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Project ID"
// @Param        body  body  dto.ProyekRequest  true  "Project data"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/proyek/{id} [put]
func (h *ProyekHandler) Update(c *fiber.Ctx) error {
	var in dto.ProyekRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Update(GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update proyek")
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Delete a project (refused while it has pembelian)
// @Tags         proyek
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Project ID"
// @Success      200  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/proyek/{id} [delete]
func (h *ProyekHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err, "Failed to delete proyek")
	}
	return c.JSON(dto.OKMessage(nil, "Proyek deleted successfully"))
}

// Stats godoc
// @Summary      Project statistics
// @Tags         proyek
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/proyek/stats [get]
func (h *ProyekHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch proyek statistics")
	}
	return c.JSON(dto.OK(out))
}

// ExportCSV godoc
// @Summary      Export projects as CSV
// @Tags         proyek
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/proyek/export [get]
func (h *ProyekHandler) ExportCSV(c *fiber.Ctx) error {
	csv, err := h.uc.ExportCSV(GetIdentity(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to export proyek list")
	}
	filename := fmt.Sprintf("proyek-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(csv)
}
