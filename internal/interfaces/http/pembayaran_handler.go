package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// PembayaranHandler serves the payment-installment endpoints (protected).
type PembayaranHandler struct {
	uc  *usecase.PembayaranUseCase
	log *logger.Logger
}

// NewPembayaranHandler builds the handler.
func NewPembayaranHandler(uc *usecase.PembayaranUseCase, log *logger.Logger) *PembayaranHandler {
	return &PembayaranHandler{uc: uc, log: log}
}

// ListByPembelian godoc
// @Summary      List payments of one purchase
// @Tags         pembayaran
// @Security     Bearer
// @Produce      json
// @Param        pembelianId  path   string  true   "Purchase ID"
// @Param        page         query  int     false  "Page"       default(1)
// @Param        pageSize     query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.Response
// @Router       /api/pembelian/{pembelianId}/pembayaran [get]
func (h *PembayaranHandler) ListByPembelian(c *fiber.Ctx) error {
	out, err := h.uc.ListByPembelian(c.Params("pembelianId"), pageFromQuery(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch pembayaran list")
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Get one payment
// @Tags         pembayaran
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Payment ID"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/pembayaran/{id} [get]
func (h *PembayaranHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch pembayaran")
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Record a payment (PENDING; PELUNASAN amount is derived)
// @Tags         pembayaran
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PembayaranRequest  true  "Payment data"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/pembayaran [post]
func (h *PembayaranHandler) Create(c *fiber.Ctx) error {
	var in dto.PembayaranRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create pembayaran")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Verify godoc
// @Summary      Mark a PENDING payment as VERIFIED
// @Tags         pembayaran
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Payment ID"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /api/pembayaran/{id}/verify [patch]
func (h *PembayaranHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to verify pembayaran")
	}
	return c.JSON(dto.OK(out))
}

// Reject godoc
// @Summary      Mark a PENDING payment as REJECTED
// @Tags         pembayaran
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Payment ID"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /api/pembayaran/{id}/reject [patch]
func (h *PembayaranHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to reject pembayaran")
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Delete a payment
// @Tags         pembayaran
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Payment ID"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/pembayaran/{id} [delete]
func (h *PembayaranHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err, "Failed to delete pembayaran")
	}
	return c.JSON(dto.OKMessage(nil, "Pembayaran deleted successfully"))
}

// Stats godoc
// @Summary      Payment statistics
// @Tags         pembayaran
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/pembayaran/stats [get]
func (h *PembayaranHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch pembayaran statistics")
	}
	return c.JSON(dto.OK(out))
}
