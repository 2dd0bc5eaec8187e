package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/activity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// PembayaranTxRunner runs a callback inside a store transaction with
// transaction-bound repositories. The PELUNASAN flow reads the outstanding
// balance and inserts the payment atomically through it.
type PembayaranTxRunner interface {
	Run(ctx context.Context, fn func(
		pembelianRepo repository.PembelianRepository,
		pembayaranRepo repository.PembayaranRepository,
	) error) error
}

// PembayaranUseCase implements the payment-installment service.
type PembayaranUseCase struct {
	repo          repository.PembayaranRepository
	pembelianRepo repository.PembelianRepository
	tx            PembayaranTxRunner
	rec           *activity.Recorder
	log           *logger.Logger
}

// NewPembayaranUseCase builds the service.
func NewPembayaranUseCase(
	repo repository.PembayaranRepository,
	pembelianRepo repository.PembelianRepository,
	tx PembayaranTxRunner,
	rec *activity.Recorder,
	log *logger.Logger,
) *PembayaranUseCase {
	return &PembayaranUseCase{repo: repo, pembelianRepo: pembelianRepo, tx: tx, rec: rec, log: log}
}

// ListByPembelian returns one page of payments for a purchase, newest first.
func (uc *PembayaranUseCase) ListByPembelian(pembelianID string, page dto.PageRequest) (*dto.Paginated, error) {
	page.Normalize()
	total, err := uc.repo.CountByPembelian(pembelianID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByPembelian(pembelianID, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(toPembayaranResponses(list), total, page.Page, page.PageSize), nil
}

// GetByID returns one payment or NotFound.
func (uc *PembayaranUseCase) GetByID(id string) (*dto.PembayaranResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("Pembayaran")
	}
	return dto.ToPembayaranResponse(p), nil
}

// Create records a new payment in PENDING. For PELUNASAN the amount is
// derived server-side: agreed price minus the sum of VERIFIED payments,
// computed and inserted inside one transaction so a concurrent verification
// cannot skew the balance.
func (uc *PembayaranUseCase) Create(ctx context.Context, actor *domain.Identity, in dto.PembayaranRequest) (*dto.PembayaranResponse, error) {
	if err := requireManageData(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tanggal := time.Now()
	if in.TanggalPembayaran != nil {
		tanggal = *in.TanggalPembayaran
	}
	p := &entity.Pembayaran{
		ID:                uuid.New().String(),
		PembelianID:       in.PembelianID,
		NomorPembayaran:   newNomorPembayaran(),
		JumlahPembayaran:  in.JumlahPembayaran,
		JenisPembayaran:   in.JenisPembayaran,
		MetodePembayaran:  in.MetodePembayaran,
		TanggalPembayaran: tanggal,
		StatusPembayaran:  entity.PembayaranPending,
		Keterangan:        in.Keterangan,
		CreatedBy:         actor.Name,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	err := uc.tx.Run(ctx, func(pembelianRepo repository.PembelianRepository, pembayaranRepo repository.PembayaranRepository) error {
		pembelian, err := pembelianRepo.GetByID(in.PembelianID)
		if err != nil {
			return err
		}
		if pembelian == nil {
			return domain.NewNotFound("Pembelian")
		}
		if in.JenisPembayaran == entity.PembayaranPelunasan {
			verified, err := pembayaranRepo.SumVerifiedByPembelian(in.PembelianID)
			if err != nil {
				return err
			}
			outstanding := pembelian.HargaBeli.Sub(verified)
			if !outstanding.IsPositive() {
				return domain.NewValidation("nothing outstanding to settle for this pembelian")
			}
			p.JumlahPembayaran = outstanding
		}
		return pembayaranRepo.Create(p)
	})
	if err != nil {
		return nil, err
	}

	uc.rec.Record(actor.Name, activity.ActionCreatePembayaran,
		fmt.Sprintf("Membuat pembayaran %s (%s) sebesar %s", p.NomorPembayaran, p.JenisPembayaran, p.JumlahPembayaran.String()), p)
	return dto.ToPembayaranResponse(p), nil
}

// Verify marks a PENDING payment as VERIFIED.
func (uc *PembayaranUseCase) Verify(actor *domain.Identity, id string) (*dto.PembayaranResponse, error) {
	return uc.setStatus(actor, id, entity.PembayaranVerified)
}

// Reject marks a PENDING payment as REJECTED.
func (uc *PembayaranUseCase) Reject(actor *domain.Identity, id string) (*dto.PembayaranResponse, error) {
	return uc.setStatus(actor, id, entity.PembayaranRejected)
}

func (uc *PembayaranUseCase) setStatus(actor *domain.Identity, id, status string) (*dto.PembayaranResponse, error) {
	if err := requireManageData(actor); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("Pembayaran")
	}
	if p.StatusPembayaran != entity.PembayaranPending {
		return nil, domain.NewValidation(
			fmt.Sprintf("pembayaran %s has already been %s", p.NomorPembayaran, p.StatusPembayaran))
	}
	p.StatusPembayaran = status
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionUpdatePembayaran,
		fmt.Sprintf("Mengubah status pembayaran %s menjadi %s", p.NomorPembayaran, status), p)
	return dto.ToPembayaranResponse(p), nil
}

// Delete removes a payment.
func (uc *PembayaranUseCase) Delete(actor *domain.Identity, id string) error {
	if err := requireManageData(actor); err != nil {
		return err
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewNotFound("Pembayaran")
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.rec.Record(actor.Name, activity.ActionDeletePembayaran,
		fmt.Sprintf("Menghapus pembayaran %s", p.NomorPembayaran), p)
	return nil
}

// Stats aggregates payments per status plus the verified total. Sub-query
// failures degrade to zero values.
func (uc *PembayaranUseCase) Stats(ctx context.Context) (*dto.PembayaranStats, error) {
	type groupResult struct {
		groups []repository.GroupCount
		err    error
	}
	type sumResult struct {
		sum decimal.Decimal
		err error
	}

	groupCh := make(chan groupResult, 1)
	sumCh := make(chan sumResult, 1)

	go func() {
		groups, err := uc.repo.CountByStatus(ctx)
		groupCh <- groupResult{groups, err}
	}()
	go func() {
		sum, err := uc.repo.SumVerified(ctx)
		sumCh <- sumResult{sum, err}
	}()

	group := <-groupCh
	sum := <-sumCh

	stats := &dto.PembayaranStats{TotalVerified: decimal.Zero}
	if group.err != nil {
		uc.log.Warn().Err(group.err).Msg("pembayaran status group-by failed, using empty")
	} else {
		stats.ByStatus = group.groups
	}
	if sum.err != nil {
		uc.log.Warn().Err(sum.err).Msg("pembayaran verified sum failed, using zero")
	} else {
		stats.TotalVerified = sum.sum
	}
	return stats, nil
}

// newNomorPembayaran generates a payment reference like PAY-20260828-1a2b3c4d.
func newNomorPembayaran() string {
	return fmt.Sprintf("PAY-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}

func toPembayaranResponses(list []*entity.Pembayaran) []dto.PembayaranResponse {
	items := make([]dto.PembayaranResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToPembayaranResponse(p))
	}
	return items
}
