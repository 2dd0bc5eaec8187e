package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// TanahGarapanHandler serves the land-parcel record endpoints (protected).
type TanahGarapanHandler struct {
	uc  *usecase.TanahGarapanUseCase
	log *logger.Logger
}

// NewTanahGarapanHandler builds the handler.
func NewTanahGarapanHandler(uc *usecase.TanahGarapanUseCase, log *logger.Logger) *TanahGarapanHandler {
	return &TanahGarapanHandler{uc: uc, log: log}
}

// List godoc
// @Summary      List tanah garapan entries
// @Tags         tanah-garapan
// @Security     Bearer
// @Produce      json
// @Param        page      query  int  false  "Page (1-based)"   default(1)
// @Param        pageSize  query  int  false  "Page size"        default(20)
// @Success      200  {object}  dto.Response
// @Router       /api/tanah-garapan [get]
func (h *TanahGarapanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch tanah garapan entries")
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Get one tanah garapan entry
// @Tags         tanah-garapan
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Entry ID"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/tanah-garapan/{id} [get]
func (h *TanahGarapanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch tanah garapan entry")
	}
	return c.JSON(dto.OK(out))
}

// GetByIDs godoc
// @Summary      Get several entries for the print view
// @Tags         tanah-garapan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object{ids=[]string}  true  "Entry IDs"
// @Success      200   {object}  dto.Response
// @Router       /api/tanah-garapan/print [post]
func (h *TanahGarapanHandler) GetByIDs(c *fiber.Ctx) error {
	var in struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.GetByIDs(in.IDs)
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch tanah garapan entries")
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Create a tanah garapan entry
// @Tags         tanah-garapan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TanahGarapanRequest  true  "Entry data"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/tanah-garapan [post]
func (h *TanahGarapanHandler) Create(c *fiber.Ctx) error {
	var in dto.TanahGarapanRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Create(GetIdentity(c), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create tanah garapan entry")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Update godoc
// @Summary      Update a tanah garapan entry
// @Tags         tanah-garapan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Entry ID"
// @Param        body  body  dto.TanahGarapanRequest  true  "Entry data"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/tanah-garapan/{id} [put]
func (h *TanahGarapanHandler) Update(c *fiber.Ctx) error {
	var in dto.TanahGarapanRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Update(GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update tanah garapan entry")
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Delete a tanah garapan entry
// @Tags         tanah-garapan
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Entry ID"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/tanah-garapan/{id} [delete]
func (h *TanahGarapanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err, "Failed to delete tanah garapan entry")
	}
	return c.JSON(dto.OKMessage(nil, "Entry deleted successfully"))
}

// Search godoc
// @Summary      Free-text search
// @Tags         tanah-garapan
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  false  "Search text"
// @Param        page      query  int     false  "Page"       default(1)
// @Param        pageSize  query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.Response
// @Router       /api/tanah-garapan/search [get]
func (h *TanahGarapanHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Query("q"), pageFromQuery(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to search tanah garapan entries")
	}
	return c.JSON(dto.OK(out))
}

// AdvancedSearch godoc
// @Summary      Filtered search (location, luas range, date range)
// @Tags         tanah-garapan
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/tanah-garapan/search/advanced [get]
func (h *TanahGarapanHandler) AdvancedSearch(c *fiber.Ctx) error {
	var in dto.TanahGarapanSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.AdvancedSearch(in, pageFromQuery(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to search tanah garapan entries")
	}
	return c.JSON(dto.OK(out))
}

// Stats godoc
// @Summary      Aggregate statistics
// @Tags         tanah-garapan
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/tanah-garapan/stats [get]
func (h *TanahGarapanHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch tanah garapan statistics")
	}
	return c.JSON(dto.OK(out))
}

// Locations godoc
// @Summary      Distinct letak tanah values
// @Tags         tanah-garapan
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/tanah-garapan/locations [get]
func (h *TanahGarapanHandler) Locations(c *fiber.Ctx) error {
	out, err := h.uc.Locations(c.Context())
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch locations")
	}
	return c.JSON(dto.OK(out))
}

// ExportCSV godoc
// @Summary      Export entries as CSV
// @Tags         tanah-garapan
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/tanah-garapan/export [get]
func (h *TanahGarapanHandler) ExportCSV(c *fiber.Ctx) error {
	csv, err := h.uc.ExportCSV(GetIdentity(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to export tanah garapan entries")
	}
	filename := fmt.Sprintf("tanah-garapan-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(csv)
}
