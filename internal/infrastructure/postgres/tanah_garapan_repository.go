package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

var _ repository.TanahGarapanRepository = (*TanahGarapanRepo)(nil)

const tanahGarapanColumns = `id, letak_tanah, nama_pemegang_hak, letter_c, nomor_skg, luas, file_url, keterangan, created_at, updated_at`

// TanahGarapanRepo implements the land-parcel port on PostgreSQL (usable with
// pool or tx).
type TanahGarapanRepo struct {
	q Querier
}

// NewTanahGarapanRepository builds the adapter. Pass a pool or a tx (Querier).
func NewTanahGarapanRepository(q Querier) *TanahGarapanRepo {
	return &TanahGarapanRepo{q: q}
}

// Create persists a new record.
func (r *TanahGarapanRepo) Create(t *entity.TanahGarapan) error {
	query := `
		INSERT INTO tanah_garapan (` + tanahGarapanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.LetakTanah, t.NamaPemegangHak, t.LetterC, t.NomorSuratKeteranganGarapan,
		t.Luas, t.FileURL, t.Keterangan, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tanah garapan: %w", err)
	}
	return nil
}

// GetByID returns one record or (nil, nil).
func (r *TanahGarapanRepo) GetByID(id string) (*entity.TanahGarapan, error) {
	query := `SELECT ` + tanahGarapanColumns + ` FROM tanah_garapan WHERE id = $1`
	t, err := scanTanahGarapan(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tanah garapan: %w", err)
	}
	return t, nil
}

// GetByIDs returns the records matching the id list, newest first.
func (r *TanahGarapanRepo) GetByIDs(ids []string) ([]*entity.TanahGarapan, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + tanahGarapanColumns + ` FROM tanah_garapan WHERE id = ANY($1) ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get tanah garapan by ids: %w", err)
	}
	return collectTanahGarapan(rows)
}

// Update overwrites all mutable fields. Reports ErrNotFound when the row
// vanished between the caller's read and this write.
func (r *TanahGarapanRepo) Update(t *entity.TanahGarapan) error {
	query := `
		UPDATE tanah_garapan
		SET letak_tanah = $2, nama_pemegang_hak = $3, letter_c = $4, nomor_skg = $5,
		    luas = $6, file_url = $7, keterangan = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, t.LetakTanah, t.NamaPemegangHak, t.LetterC, t.NomorSuratKeteranganGarapan,
		t.Luas, t.FileURL, t.Keterangan, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tanah garapan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Tanah garapan")
	}
	return nil
}

// Delete removes the record.
func (r *TanahGarapanRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM tanah_garapan WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewConflict("tanah garapan", "pembelian")
		}
		return fmt.Errorf("delete tanah garapan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Tanah garapan")
	}
	return nil
}

// List returns one page, newest first.
func (r *TanahGarapanRepo) List(limit, offset int) ([]*entity.TanahGarapan, error) {
	query := `SELECT ` + tanahGarapanColumns + ` FROM tanah_garapan ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tanah garapan: %w", err)
	}
	return collectTanahGarapan(rows)
}

// Count returns the total number of records.
func (r *TanahGarapanRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM tanah_garapan`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tanah garapan: %w", err)
	}
	return n, nil
}

// searchCondition matches the query case-insensitively across the four text
// columns, OR-combined.
const searchCondition = `(letak_tanah ILIKE $1 OR nama_pemegang_hak ILIKE $1 OR letter_c ILIKE $1 OR nomor_skg ILIKE $1)`

// Search runs the free-text search, newest first.
func (r *TanahGarapanRepo) Search(query string, limit, offset int) ([]*entity.TanahGarapan, error) {
	sql := `SELECT ` + tanahGarapanColumns + ` FROM tanah_garapan WHERE ` + searchCondition + `
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), sql, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search tanah garapan: %w", err)
	}
	return collectTanahGarapan(rows)
}

// CountSearch counts the free-text matches.
func (r *TanahGarapanRepo) CountSearch(query string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM tanah_garapan WHERE `+searchCondition, "%"+query+"%").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count search tanah garapan: %w", err)
	}
	return n, nil
}

// filterClause builds the WHERE clause for the advanced filters, AND-combined.
func filterClause(f repository.TanahGarapanFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.LetakTanah != "" {
		add("letak_tanah ILIKE $%d", "%"+f.LetakTanah+"%")
	}
	if f.LuasGte != nil {
		add("luas >= $%d", *f.LuasGte)
	}
	if f.LuasLte != nil {
		add("luas <= $%d", *f.LuasLte)
	}
	if f.CreatedGte != nil {
		add("created_at >= $%d", *f.CreatedGte)
	}
	if f.CreatedLte != nil {
		add("created_at <= $%d", *f.CreatedLte)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// AdvancedSearch applies the optional filters, newest first.
func (r *TanahGarapanRepo) AdvancedSearch(f repository.TanahGarapanFilter, limit, offset int) ([]*entity.TanahGarapan, error) {
	where, args := filterClause(f)
	sql := `SELECT ` + tanahGarapanColumns + ` FROM tanah_garapan` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("advanced search tanah garapan: %w", err)
	}
	return collectTanahGarapan(rows)
}

// CountAdvanced counts the filtered matches.
func (r *TanahGarapanRepo) CountAdvanced(f repository.TanahGarapanFilter) (int, error) {
	where, args := filterClause(f)
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM tanah_garapan`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count advanced tanah garapan: %w", err)
	}
	return n, nil
}

// ListAll returns up to max rows for export, newest first.
func (r *TanahGarapanRepo) ListAll(max int) ([]*entity.TanahGarapan, error) {
	query := `SELECT ` + tanahGarapanColumns + ` FROM tanah_garapan ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, max)
	if err != nil {
		return nil, fmt.Errorf("list all tanah garapan: %w", err)
	}
	return collectTanahGarapan(rows)
}

// SumLuas totals the area across all records.
func (r *TanahGarapanRepo) SumLuas(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(luas), 0) FROM tanah_garapan`).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum luas: %w", err)
	}
	return sum, nil
}

// GroupByLocation counts records per letak tanah, largest bucket first.
func (r *TanahGarapanRepo) GroupByLocation(ctx context.Context) ([]repository.GroupCount, error) {
	rows, err := r.q.Query(ctx,
		`SELECT letak_tanah, COUNT(*) FROM tanah_garapan GROUP BY letak_tanah ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("group tanah garapan by location: %w", err)
	}
	defer rows.Close()
	var groups []repository.GroupCount
	for rows.Next() {
		var g repository.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, fmt.Errorf("scan location group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// DistinctLocations lists the distinct letak tanah values alphabetically.
func (r *TanahGarapanRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT letak_tanah FROM tanah_garapan ORDER BY letak_tanah`)
	if err != nil {
		return nil, fmt.Errorf("distinct locations: %w", err)
	}
	defer rows.Close()
	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func scanTanahGarapan(row pgx.Row) (*entity.TanahGarapan, error) {
	var t entity.TanahGarapan
	err := row.Scan(
		&t.ID, &t.LetakTanah, &t.NamaPemegangHak, &t.LetterC, &t.NomorSuratKeteranganGarapan,
		&t.Luas, &t.FileURL, &t.Keterangan, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTanahGarapan(rows pgx.Rows) ([]*entity.TanahGarapan, error) {
	defer rows.Close()
	var list []*entity.TanahGarapan
	for rows.Next() {
		t, err := scanTanahGarapan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tanah garapan: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
