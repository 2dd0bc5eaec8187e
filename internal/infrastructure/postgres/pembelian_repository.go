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

var _ repository.PembelianRepository = (*PembelianRepo)(nil)

const pembelianColumns = `id, proyek_id, tanah_garapan_id, nama_warga, alamat_warga, no_ktp_warga, no_hp_warga, harga_beli, status_pembelian, nomor_sertifikat, tanggal_sertifikat, keterangan, created_by, created_at, updated_at`

// PembelianRepo implements the purchase port on PostgreSQL (usable with pool
// or tx).
type PembelianRepo struct {
	q Querier
}

// NewPembelianRepository builds the adapter. Pass a pool or a tx (Querier).
func NewPembelianRepository(q Querier) *PembelianRepo {
	return &PembelianRepo{q: q}
}

// Create persists a new purchase.
func (r *PembelianRepo) Create(p *entity.Pembelian) error {
	query := `
		INSERT INTO pembelian (` + pembelianColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ProyekID, p.TanahGarapanID, p.NamaWarga, p.AlamatWarga,
		p.NoKtpWarga, p.NoHpWarga, p.HargaBeli, p.StatusPembelian,
		p.NomorSertifikat, p.TanggalSertifikat, p.Keterangan,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert pembelian: %w", err)
	}
	return nil
}

// GetByID returns one purchase or (nil, nil).
func (r *PembelianRepo) GetByID(id string) (*entity.Pembelian, error) {
	query := `SELECT ` + pembelianColumns + ` FROM pembelian WHERE id = $1`
	p, err := scanPembelian(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pembelian: %w", err)
	}
	return p, nil
}

// Update overwrites all mutable fields, status included.
func (r *PembelianRepo) Update(p *entity.Pembelian) error {
	query := `
		UPDATE pembelian
		SET nama_warga = $2, alamat_warga = $3, no_ktp_warga = $4, no_hp_warga = $5,
		    harga_beli = $6, status_pembelian = $7, nomor_sertifikat = $8,
		    tanggal_sertifikat = $9, keterangan = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.NamaWarga, p.AlamatWarga, p.NoKtpWarga, p.NoHpWarga,
		p.HargaBeli, p.StatusPembelian, p.NomorSertifikat,
		p.TanggalSertifikat, p.Keterangan, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pembelian: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Pembelian")
	}
	return nil
}

// Delete removes a purchase unless it still owns pembayaran rows. The guard
// runs inside the DELETE so a payment created concurrently cannot slip past a
// separate existence check.
func (r *PembelianRepo) Delete(id string) error {
	query := `
		DELETE FROM pembelian
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM pembayaran WHERE pembelian_id = $1)`
	cmd, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewConflict("pembelian", "pembayaran")
		}
		return fmt.Errorf("delete pembelian: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		p, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("Pembelian")
		}
		return domain.NewConflict("pembelian", "pembayaran")
	}
	return nil
}

// List returns one page of purchases, newest first. A non-empty proyekID
// restricts the page to that project.
func (r *PembelianRepo) List(proyekID string, limit, offset int) ([]*entity.Pembelian, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if proyekID != "" {
		query := `SELECT ` + pembelianColumns + ` FROM pembelian WHERE proyek_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(context.Background(), query, proyekID, limit, offset)
	} else {
		query := `SELECT ` + pembelianColumns + ` FROM pembelian ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.q.Query(context.Background(), query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list pembelian: %w", err)
	}
	return collectPembelian(rows)
}

// Count returns the number of purchases, optionally restricted to one project.
func (r *PembelianRepo) Count(proyekID string) (int, error) {
	var n int
	var err error
	if proyekID != "" {
		err = r.q.QueryRow(context.Background(),
			`SELECT COUNT(*) FROM pembelian WHERE proyek_id = $1`, proyekID).Scan(&n)
	} else {
		err = r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM pembelian`).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count pembelian: %w", err)
	}
	return n, nil
}

// ListAll returns up to max purchases for export, newest first.
func (r *PembelianRepo) ListAll(max int) ([]*entity.Pembelian, error) {
	query := `SELECT ` + pembelianColumns + ` FROM pembelian ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, max)
	if err != nil {
		return nil, fmt.Errorf("list all pembelian: %w", err)
	}
	return collectPembelian(rows)
}

// CountByStatus counts purchases per status.
func (r *PembelianRepo) CountByStatus(ctx context.Context) ([]repository.GroupCount, error) {
	rows, err := r.q.Query(ctx, `SELECT status_pembelian, COUNT(*) FROM pembelian GROUP BY status_pembelian`)
	if err != nil {
		return nil, fmt.Errorf("group pembelian by status: %w", err)
	}
	defer rows.Close()
	var groups []repository.GroupCount
	for rows.Next() {
		var g repository.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, fmt.Errorf("scan pembelian status group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// SumHarga totals the agreed price across all purchases.
func (r *PembelianRepo) SumHarga(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(harga_beli), 0) FROM pembelian`).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum harga beli: %w", err)
	}
	return sum, nil
}

func scanPembelian(row pgx.Row) (*entity.Pembelian, error) {
	var p entity.Pembelian
	err := row.Scan(
		&p.ID, &p.ProyekID, &p.TanahGarapanID, &p.NamaWarga, &p.AlamatWarga,
		&p.NoKtpWarga, &p.NoHpWarga, &p.HargaBeli, &p.StatusPembelian,
		&p.NomorSertifikat, &p.TanggalSertifikat, &p.Keterangan,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPembelian(rows pgx.Rows) ([]*entity.Pembelian, error) {
	defer rows.Close()
	var list []*entity.Pembelian
	for rows.Next() {
		p, err := scanPembelian(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pembelian: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
