package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
)

// PembayaranRepository is the persistence port for payment installments (DIP).
type PembayaranRepository interface {
	Create(p *entity.Pembayaran) error
	GetByID(id string) (*entity.Pembayaran, error)
	Update(p *entity.Pembayaran) error
	Delete(id string) error
	ListByPembelian(pembelianID string, limit, offset int) ([]*entity.Pembayaran, error)
	CountByPembelian(pembelianID string) (int, error)
	// SumVerifiedByPembelian totals the VERIFIED payments of one purchase,
	// the basis for the outstanding balance.
	SumVerifiedByPembelian(pembelianID string) (decimal.Decimal, error)

	CountByStatus(ctx context.Context) ([]GroupCount, error)
	SumVerified(ctx context.Context) (decimal.Decimal, error)
}
