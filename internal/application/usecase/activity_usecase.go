package usecase

import (
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

// ActivityLogUseCase is the read side of the audit trail. Every operation is
// gated by the view-logs predicate.
type ActivityLogUseCase struct {
	repo repository.ActivityLogRepository
}

// NewActivityLogUseCase builds the service.
func NewActivityLogUseCase(repo repository.ActivityLogRepository) *ActivityLogUseCase {
	return &ActivityLogUseCase{repo: repo}
}

// List returns one page of entries, newest first, optionally filtered by
// actor name and/or action tag.
func (uc *ActivityLogUseCase) List(actor *domain.Identity, f repository.ActivityLogFilter, page dto.PageRequest) (*dto.Paginated, error) {
	if err := requireViewLogs(actor); err != nil {
		return nil, err
	}
	page.Normalize()
	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(f, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(toActivityLogResponses(list), total, page.Page, page.PageSize), nil
}

// ListRecent returns the newest entries for the dashboard widget. Each call
// runs a fresh query.
func (uc *ActivityLogUseCase) ListRecent(actor *domain.Identity, limit int) ([]dto.ActivityLogResponse, error) {
	if err := requireViewLogs(actor); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	list, err := uc.repo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return toActivityLogResponses(list), nil
}

func toActivityLogResponses(list []*entity.ActivityLog) []dto.ActivityLogResponse {
	items := make([]dto.ActivityLogResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *dto.ToActivityLogResponse(e))
	}
	return items
}
