package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// PembelianHandler serves the certificate-purchase endpoints (protected).
type PembelianHandler struct {
	uc  *usecase.PembelianUseCase
	log *logger.Logger
}

// NewPembelianHandler builds the handler.
func NewPembelianHandler(uc *usecase.PembelianUseCase, log *logger.Logger) *PembelianHandler {
	return &PembelianHandler{uc: uc, log: log}
}

// List godoc
// @Summary      List purchases
// @Tags         pembelian
// @Security     Bearer
// @Produce      json
// @Param        proyekId  query  string  false  "Restrict to one project"
// @Param        page      query  int     false  "Page"       default(1)
// @Param        pageSize  query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.Response
// @Router       /api/pembelian [get]
func (h *PembelianHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("proyekId"), pageFromQuery(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch pembelian list")
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Get one purchase
// @Tags         pembelian
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Purchase ID"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/pembelian/{id} [get]
func (h *PembelianHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch pembelian")
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Create a purchase (starts in NEGOTIATION)
// @Tags         pembelian
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PembelianRequest  true  "Purchase data"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/pembelian [post]
func (h *PembelianHandler) Create(c *fiber.Ctx) error {
	var in dto.PembelianRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Create(GetIdentity(c), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create pembelian")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Update godoc
// @Summary      Update purchase fields (status excluded)
// @Tags         pembelian
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Purchase ID"
// @Param        body  body  dto.PembelianRequest  true  "Purchase data"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/pembelian/{id} [put]
func (h *PembelianHandler) Update(c *fiber.Ctx) error {
	var in dto.PembelianRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Update(GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update pembelian")
	}
	return c.JSON(dto.OK(out))
}

// UpdateStatus godoc
// @Summary      Move a purchase along the status machine
// @Tags         pembelian
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Purchase ID"
// @Param        body  body  dto.PembelianStatusRequest  true  "Target status"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/pembelian/{id}/status [patch]
func (h *PembelianHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.PembelianStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.UpdateStatus(GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update pembelian status")
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Delete a purchase (refused while it has pembayaran)
// @Tags         pembelian
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Purchase ID"
// @Success      200  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/pembelian/{id} [delete]
func (h *PembelianHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err, "Failed to delete pembelian")
	}
	return c.JSON(dto.OKMessage(nil, "Pembelian deleted successfully"))
}

// Stats godoc
// @Summary      Purchase statistics
// @Tags         pembelian
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/pembelian/stats [get]
func (h *PembelianHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch pembelian statistics")
	}
	return c.JSON(dto.OK(out))
}

// ExportCSV godoc
// @Summary      Export purchases as CSV
// @Tags         pembelian
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/pembelian/export [get]
func (h *PembelianHandler) ExportCSV(c *fiber.Ctx) error {
	csv, err := h.uc.ExportCSV(GetIdentity(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to export pembelian list")
	}
	filename := fmt.Sprintf("pembelian-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(csv)
}
