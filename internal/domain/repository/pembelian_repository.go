package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
)

// PembelianRepository is the persistence port for certificate purchases (DIP).
type PembelianRepository interface {
	Create(p *entity.Pembelian) error
	GetByID(id string) (*entity.Pembelian, error)
	Update(p *entity.Pembelian) error
	// Delete refuses while the purchase still owns pembayaran rows.
	Delete(id string) error
	// List filters by project when proyekID is non-empty.
	List(proyekID string, limit, offset int) ([]*entity.Pembelian, error)
	Count(proyekID string) (int, error)
	ListAll(max int) ([]*entity.Pembelian, error)

	CountByStatus(ctx context.Context) ([]GroupCount, error)
	SumHarga(ctx context.Context) (decimal.Decimal, error)
}
