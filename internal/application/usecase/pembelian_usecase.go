package usecase

import (
	"context"
	"fmt"
	"strings"
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

// PembelianUseCase implements the certificate-purchase service. Status
// changes go through the transition table; free-form status writes are not
// accepted.
type PembelianUseCase struct {
	repo      repository.PembelianRepository
	proyekRepo repository.ProyekRepository
	tanahRepo repository.TanahGarapanRepository
	rec       *activity.Recorder
	log       *logger.Logger
}

// NewPembelianUseCase builds the service.
func NewPembelianUseCase(
	repo repository.PembelianRepository,
	proyekRepo repository.ProyekRepository,
	tanahRepo repository.TanahGarapanRepository,
	rec *activity.Recorder,
	log *logger.Logger,
) *PembelianUseCase {
	return &PembelianUseCase{repo: repo, proyekRepo: proyekRepo, tanahRepo: tanahRepo, rec: rec, log: log}
}

// List returns one page of purchases, optionally filtered to one project.
func (uc *PembelianUseCase) List(proyekID string, page dto.PageRequest) (*dto.Paginated, error) {
	page.Normalize()
	total, err := uc.repo.Count(proyekID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(proyekID, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(toPembelianResponses(list), total, page.Page, page.PageSize), nil
}

// GetByID returns one purchase or NotFound.
func (uc *PembelianUseCase) GetByID(id string) (*dto.PembelianResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("Pembelian")
	}
	return dto.ToPembelianResponse(p), nil
}

// Create validates the form, checks that the referenced project and land
// parcel exist, and persists the purchase in NEGOTIATION.
func (uc *PembelianUseCase) Create(actor *domain.Identity, in dto.PembelianRequest) (*dto.PembelianResponse, error) {
	if err := requireManageData(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	proyek, err := uc.proyekRepo.GetByID(in.ProyekID)
	if err != nil {
		return nil, err
	}
	if proyek == nil {
		return nil, domain.NewNotFound("Proyek")
	}
	tanah, err := uc.tanahRepo.GetByID(in.TanahGarapanID)
	if err != nil {
		return nil, err
	}
	if tanah == nil {
		return nil, domain.NewNotFound("Tanah garapan")
	}
	now := time.Now()
	p := &entity.Pembelian{
		ID:                uuid.New().String(),
		ProyekID:          in.ProyekID,
		TanahGarapanID:    in.TanahGarapanID,
		NamaWarga:         in.NamaWarga,
		AlamatWarga:       in.AlamatWarga,
		NoKtpWarga:        in.NoKtpWarga,
		NoHpWarga:         in.NoHpWarga,
		HargaBeli:         in.HargaBeli,
		StatusPembelian:   entity.PembelianNegotiation,
		NomorSertifikat:   in.NomorSertifikat,
		TanggalSertifikat: in.TanggalSertifikat,
		Keterangan:        in.Keterangan,
		CreatedBy:         actor.Name,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionCreatePembelian,
		fmt.Sprintf("Membuat pembelian sertifikat dari %s (proyek %s)", p.NamaWarga, proyek.NamaProyek), p)
	return dto.ToPembelianResponse(p), nil
}

// Update re-validates and overwrites the purchase fields. The status is not
// touched here; use UpdateStatus for that.
func (uc *PembelianUseCase) Update(actor *domain.Identity, id string, in dto.PembelianRequest) (*dto.PembelianResponse, error) {
	if err := requireManageData(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("Pembelian")
	}
	before := *p
	p.NamaWarga = in.NamaWarga
	p.AlamatWarga = in.AlamatWarga
	p.NoKtpWarga = in.NoKtpWarga
	p.NoHpWarga = in.NoHpWarga
	p.HargaBeli = in.HargaBeli
	p.NomorSertifikat = in.NomorSertifikat
	p.TanggalSertifikat = in.TanggalSertifikat
	p.Keterangan = in.Keterangan
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionUpdatePembelian,
		fmt.Sprintf("Mengubah pembelian sertifikat dari %s", p.NamaWarga),
		map[string]any{"before": before, "after": p})
	return dto.ToPembelianResponse(p), nil
}

// UpdateStatus moves the purchase along the status machine. Illegal
// transitions (e.g. COMPLETED back to NEGOTIATION) are rejected.
func (uc *PembelianUseCase) UpdateStatus(actor *domain.Identity, id string, in dto.PembelianStatusRequest) (*dto.PembelianResponse, error) {
	if err := requireManageData(actor); err != nil {
		return nil, err
	}
	if !entity.ValidPembelianStatus(in.StatusPembelian) {
		return nil, domain.NewValidation("statusPembelian must be a valid purchase status")
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("Pembelian")
	}
	if !entity.CanTransitionPembelian(p.StatusPembelian, in.StatusPembelian) {
		return nil, domain.NewValidation(
			fmt.Sprintf("cannot change status from %s to %s", p.StatusPembelian, in.StatusPembelian))
	}
	from := p.StatusPembelian
	p.StatusPembelian = in.StatusPembelian
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionUpdatePembelian,
		fmt.Sprintf("Mengubah status pembelian %s: %s -> %s", p.NamaWarga, from, p.StatusPembelian), p)
	return dto.ToPembelianResponse(p), nil
}

// Delete removes a purchase. Refused while it still owns pembayaran.
func (uc *PembelianUseCase) Delete(actor *domain.Identity, id string) error {
	if err := requireManageData(actor); err != nil {
		return err
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewNotFound("Pembelian")
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.rec.Record(actor.Name, activity.ActionDeletePembelian,
		fmt.Sprintf("Menghapus pembelian sertifikat dari %s", p.NamaWarga), p)
	return nil
}

// Stats aggregates purchases per status plus the total agreed price.
// Sub-query failures degrade to zero values.
func (uc *PembelianUseCase) Stats(ctx context.Context) (*dto.PembelianStats, error) {
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
		sum, err := uc.repo.SumHarga(ctx)
		sumCh <- sumResult{sum, err}
	}()

	group := <-groupCh
	sum := <-sumCh

	stats := &dto.PembelianStats{TotalHarga: decimal.Zero}
	if group.err != nil {
		uc.log.Warn().Err(group.err).Msg("pembelian status group-by failed, using empty")
	} else {
		stats.ByStatus = group.groups
	}
	if sum.err != nil {
		uc.log.Warn().Err(sum.err).Msg("pembelian harga sum failed, using zero")
	} else {
		stats.TotalHarga = sum.sum
	}
	return stats, nil
}

// pembelianCSVHeader is the fixed export header.
const pembelianCSVHeader = "ID,Proyek,Tanah Garapan,Nama Warga,Alamat,No KTP,No HP,Harga Beli,Status,Tanggal Dibuat"

// ExportCSV serializes all purchases (capped) into CSV text. Requires
// manage-data permission.
func (uc *PembelianUseCase) ExportCSV(actor *domain.Identity) (string, error) {
	if err := requireManageData(actor); err != nil {
		return "", err
	}
	list, err := uc.repo.ListAll(exportCap)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(pembelianCSVHeader)
	b.WriteByte('\n')
	for _, p := range list {
		b.WriteString(strings.Join([]string{
			csvQuote(p.ID),
			csvQuote(p.ProyekID),
			csvQuote(p.TanahGarapanID),
			csvQuote(p.NamaWarga),
			csvQuote(p.AlamatWarga),
			csvQuote(p.NoKtpWarga),
			csvQuote(p.NoHpWarga),
			csvRupiah(p.HargaBeli),
			csvQuote(p.StatusPembelian),
			csvDate(p.CreatedAt),
		}, ","))
		b.WriteByte('\n')
	}
	uc.rec.Record(actor.Name, activity.ActionExportPembelian,
		fmt.Sprintf("Export CSV pembelian (%d baris)", len(list)), nil)
	return b.String(), nil
}

func toPembelianResponses(list []*entity.Pembelian) []dto.PembelianResponse {
	items := make([]dto.PembelianResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToPembelianResponse(p))
	}
	return items
}
