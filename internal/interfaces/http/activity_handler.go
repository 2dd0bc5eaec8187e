package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// ActivityLogHandler serves the audit-trail read endpoints (ADMIN and above).
type ActivityLogHandler struct {
	uc  *usecase.ActivityLogUseCase
	log *logger.Logger
}

// NewActivityLogHandler builds the handler.
func NewActivityLogHandler(uc *usecase.ActivityLogUseCase, log *logger.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{uc: uc, log: log}
}

// List godoc
// @Summary      List audit entries
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        user      query  string  false  "Filter by actor name"
// @Param        action    query  string  false  "Filter by action tag"
// @Param        page      query  int     false  "Page"       default(1)
// @Param        pageSize  query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.Response
// @Router       /api/activity [get]
func (h *ActivityLogHandler) List(c *fiber.Ctx) error {
	f := repository.ActivityLogFilter{
		User:   c.Query("user"),
		Action: c.Query("action"),
	}
	out, err := h.uc.List(GetIdentity(c), f, pageFromQuery(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch activity logs")
	}
	return c.JSON(dto.OK(out))
}

// ListRecent godoc
// @Summary      Newest audit entries for the dashboard
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Max entries"  default(10)
// @Success      200  {object}  dto.Response
// @Router       /api/activity/recent [get]
func (h *ActivityLogHandler) ListRecent(c *fiber.Ctx) error {
	out, err := h.uc.ListRecent(GetIdentity(c), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch recent activity")
	}
	return c.JSON(dto.OK(out))
}
