package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

const activityLogColumns = `id, user_name, action, details, payload, created_at`

// ActivityLogRepo implements the append-only audit port on PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository builds the adapter. Pass a pool or a tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create appends one audit record.
func (r *ActivityLogRepo) Create(e *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_log (` + activityLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.User, e.Action, e.Details, e.Payload, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// activityFilterClause builds the WHERE clause for the log filters.
func activityFilterClause(f repository.ActivityLogFilter) (string, []any) {
	var conds []string
	var args []any
	if f.User != "" {
		args = append(args, f.User)
		conds = append(conds, fmt.Sprintf("user_name = $%d", len(args)))
	}
	if f.Action != "" {
		args = append(args, f.Action)
		conds = append(conds, fmt.Sprintf("action = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of audit records, newest first.
func (r *ActivityLogRepo) List(f repository.ActivityLogFilter, limit, offset int) ([]*entity.ActivityLog, error) {
	where, args := activityFilterClause(f)
	query := `SELECT ` + activityLogColumns + ` FROM activity_log` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity log: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var e entity.ActivityLog
		if err := rows.Scan(&e.ID, &e.User, &e.Action, &e.Details, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Count returns the number of audit records matching the filter.
func (r *ActivityLogRepo) Count(f repository.ActivityLogFilter) (int, error) {
	where, args := activityFilterClause(f)
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM activity_log`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count activity log: %w", err)
	}
	return n, nil
}

// ListRecent returns the newest records without paging, for dashboards.
func (r *ActivityLogRepo) ListRecent(limit int) ([]*entity.ActivityLog, error) {
	return r.List(repository.ActivityLogFilter{}, limit, 0)
}
