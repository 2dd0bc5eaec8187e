package repository

import "github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"

// ActivityLogFilter narrows log reads. User and Action are independent
// equality filters; empty means no filter.
type ActivityLogFilter struct {
	User   string
	Action string
}

// ActivityLogRepository is the append-only persistence port for audit records.
// There is deliberately no update or delete: entries are immutable once
// written.
type ActivityLogRepository interface {
	Create(e *entity.ActivityLog) error
	// List returns entries newest first. Each call is a fresh query.
	List(f ActivityLogFilter, limit, offset int) ([]*entity.ActivityLog, error)
	Count(f ActivityLogFilter) (int, error)
	ListRecent(limit int) ([]*entity.ActivityLog, error)
}
