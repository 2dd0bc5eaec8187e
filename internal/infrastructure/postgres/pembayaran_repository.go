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

var _ repository.PembayaranRepository = (*PembayaranRepo)(nil)

const pembayaranColumns = `id, pembelian_id, nomor_pembayaran, jumlah_pembayaran, jenis_pembayaran, metode_pembayaran, tanggal_pembayaran, status_pembayaran, keterangan, created_by, created_at, updated_at`

// PembayaranRepo implements the payment port on PostgreSQL (usable with pool
// or tx).
type PembayaranRepo struct {
	q Querier
}

// NewPembayaranRepository builds the adapter. Pass a pool or a tx (Querier).
func NewPembayaranRepository(q Querier) *PembayaranRepo {
	return &PembayaranRepo{q: q}
}

// Create persists a new payment.
func (r *PembayaranRepo) Create(p *entity.Pembayaran) error {
	query := `
		INSERT INTO pembayaran (` + pembayaranColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.PembelianID, p.NomorPembayaran, p.JumlahPembayaran,
		p.JenisPembayaran, p.MetodePembayaran, p.TanggalPembayaran,
		p.StatusPembayaran, p.Keterangan, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert pembayaran: %w", err)
	}
	return nil
}

// GetByID returns one payment or (nil, nil).
func (r *PembayaranRepo) GetByID(id string) (*entity.Pembayaran, error) {
	query := `SELECT ` + pembayaranColumns + ` FROM pembayaran WHERE id = $1`
	p, err := scanPembayaran(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pembayaran: %w", err)
	}
	return p, nil
}

// Update overwrites all mutable fields, status included.
func (r *PembayaranRepo) Update(p *entity.Pembayaran) error {
	query := `
		UPDATE pembayaran
		SET jumlah_pembayaran = $2, jenis_pembayaran = $3, metode_pembayaran = $4,
		    tanggal_pembayaran = $5, status_pembayaran = $6, keterangan = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.JumlahPembayaran, p.JenisPembayaran, p.MetodePembayaran,
		p.TanggalPembayaran, p.StatusPembayaran, p.Keterangan, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pembayaran: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Pembayaran")
	}
	return nil
}

// Delete removes a payment.
func (r *PembayaranRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM pembayaran WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pembayaran: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Pembayaran")
	}
	return nil
}

// ListByPembelian returns one page of payments for a purchase, newest first.
func (r *PembayaranRepo) ListByPembelian(pembelianID string, limit, offset int) ([]*entity.Pembayaran, error) {
	query := `SELECT ` + pembayaranColumns + ` FROM pembayaran WHERE pembelian_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, pembelianID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pembayaran: %w", err)
	}
	return collectPembayaran(rows)
}

// CountByPembelian returns the number of payments for a purchase.
func (r *PembayaranRepo) CountByPembelian(pembelianID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM pembayaran WHERE pembelian_id = $1`, pembelianID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pembayaran: %w", err)
	}
	return n, nil
}

// SumVerifiedByPembelian totals the VERIFIED payments of one purchase.
func (r *PembayaranRepo) SumVerifiedByPembelian(pembelianID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(jumlah_pembayaran), 0) FROM pembayaran WHERE pembelian_id = $1 AND status_pembayaran = $2`,
		pembelianID, entity.PembayaranVerified).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum verified pembayaran: %w", err)
	}
	return sum, nil
}

// CountByStatus counts payments per status.
func (r *PembayaranRepo) CountByStatus(ctx context.Context) ([]repository.GroupCount, error) {
	rows, err := r.q.Query(ctx, `SELECT status_pembayaran, COUNT(*) FROM pembayaran GROUP BY status_pembayaran`)
	if err != nil {
		return nil, fmt.Errorf("group pembayaran by status: %w", err)
	}
	defer rows.Close()
	var groups []repository.GroupCount
	for rows.Next() {
		var g repository.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, fmt.Errorf("scan pembayaran status group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// SumVerified totals all VERIFIED payments across purchases.
func (r *PembayaranRepo) SumVerified(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(jumlah_pembayaran), 0) FROM pembayaran WHERE status_pembayaran = $1`,
		entity.PembayaranVerified).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum verified pembayaran: %w", err)
	}
	return sum, nil
}

func scanPembayaran(row pgx.Row) (*entity.Pembayaran, error) {
	var p entity.Pembayaran
	err := row.Scan(
		&p.ID, &p.PembelianID, &p.NomorPembayaran, &p.JumlahPembayaran,
		&p.JenisPembayaran, &p.MetodePembayaran, &p.TanggalPembayaran,
		&p.StatusPembayaran, &p.Keterangan, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPembayaran(rows pgx.Rows) ([]*entity.Pembayaran, error) {
	defer rows.Close()
	var list []*entity.Pembayaran
	for rows.Next() {
		p, err := scanPembayaran(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pembayaran: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
