package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

var _ repository.ProyekRepository = (*ProyekRepo)(nil)

const proyekColumns = `id, nama_proyek, lokasi_proyek, deskripsi, status_proyek, tanggal_mulai, tanggal_selesai, budget_total, budget_terpakai, created_by, created_at, updated_at`

// ProyekRepo implements the project port on PostgreSQL (usable with pool or tx).
type ProyekRepo struct {
	q Querier
}

// NewProyekRepository builds the adapter. Pass a pool or a tx (Querier).
func NewProyekRepository(q Querier) *ProyekRepo {
	return &ProyekRepo{q: q}
}

// Create persists a new project.
func (r *ProyekRepo) Create(p *entity.Proyek) error {
	query := `
		INSERT INTO proyek (` + proyekColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.NamaProyek, p.LokasiProyek, p.Deskripsi, p.StatusProyek,
		p.TanggalMulai, p.TanggalSelesai, p.BudgetTotal, p.BudgetTerpakai,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proyek: %w", err)
	}
	return nil
}

// GetByID returns one project or (nil, nil).
func (r *ProyekRepo) GetByID(id string) (*entity.Proyek, error) {
	query := `SELECT ` + proyekColumns + ` FROM proyek WHERE id = $1`
	p, err := scanProyek(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proyek: %w", err)
	}
	return p, nil
}

// Update overwrites all mutable fields.
func (r *ProyekRepo) Update(p *entity.Proyek) error {
	query := `
		UPDATE proyek
		SET nama_proyek = $2, lokasi_proyek = $3, deskripsi = $4, status_proyek = $5,
		    tanggal_mulai = $6, tanggal_selesai = $7, budget_total = $8, budget_terpakai = $9,
		    updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.NamaProyek, p.LokasiProyek, p.Deskripsi, p.StatusProyek,
		p.TanggalMulai, p.TanggalSelesai, p.BudgetTotal, p.BudgetTerpakai, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proyek: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Proyek")
	}
	return nil
}

// Delete removes a project unless it still owns pembelian rows. The guard
// runs inside the DELETE so a purchase created concurrently cannot slip past
// a separate existence check.
func (r *ProyekRepo) Delete(id string) error {
	query := `
		DELETE FROM proyek
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM pembelian WHERE proyek_id = $1)`
	cmd, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewConflict("proyek", "pembelian")
		}
		return fmt.Errorf("delete proyek: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// Either the project is gone or the guard blocked it; look once more
		// to tell the caller which.
		p, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("Proyek")
		}
		return domain.NewConflict("proyek", "pembelian")
	}
	return nil
}

// List returns one page of projects, newest first.
func (r *ProyekRepo) List(limit, offset int) ([]*entity.Proyek, error) {
	query := `SELECT ` + proyekColumns + ` FROM proyek ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proyek: %w", err)
	}
	return collectProyek(rows)
}

// Count returns the total number of projects.
func (r *ProyekRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM proyek`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count proyek: %w", err)
	}
	return n, nil
}

// ListAll returns up to max projects for export, newest first.
func (r *ProyekRepo) ListAll(max int) ([]*entity.Proyek, error) {
	query := `SELECT ` + proyekColumns + ` FROM proyek ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, max)
	if err != nil {
		return nil, fmt.Errorf("list all proyek: %w", err)
	}
	return collectProyek(rows)
}

// CountByStatus counts projects per status.
func (r *ProyekRepo) CountByStatus(ctx context.Context) ([]repository.GroupCount, error) {
	rows, err := r.q.Query(ctx, `SELECT status_proyek, COUNT(*) FROM proyek GROUP BY status_proyek`)
	if err != nil {
		return nil, fmt.Errorf("group proyek by status: %w", err)
	}
	defer rows.Close()
	var groups []repository.GroupCount
	for rows.Next() {
		var g repository.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, fmt.Errorf("scan proyek status group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// SumBudgets totals budget_total and budget_terpakai across all projects.
func (r *ProyekRepo) SumBudgets(ctx context.Context) (total, terpakai decimal.Decimal, err error) {
	err = r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(budget_total), 0), COALESCE(SUM(budget_terpakai), 0) FROM proyek`).
		Scan(&total, &terpakai)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum proyek budgets: %w", err)
	}
	return total, terpakai, nil
}

func scanProyek(row pgx.Row) (*entity.Proyek, error) {
	var p entity.Proyek
	err := row.Scan(
		&p.ID, &p.NamaProyek, &p.LokasiProyek, &p.Deskripsi, &p.StatusProyek,
		&p.TanggalMulai, &p.TanggalSelesai, &p.BudgetTotal, &p.BudgetTerpakai,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProyek(rows pgx.Rows) ([]*entity.Proyek, error) {
	defer rows.Close()
	var list []*entity.Proyek
	for rows.Next() {
		p, err := scanProyek(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proyek: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
