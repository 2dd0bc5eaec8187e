package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
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

// locationsTTL bounds the staleness of the distinct-locations cache. The cache
// is best-effort only; there is no invalidation on writes.
const locationsTTL = 5 * time.Minute

// TanahGarapanUseCase implements the land-parcel record service: CRUD, search,
// aggregates and CSV export.
type TanahGarapanUseCase struct {
	repo repository.TanahGarapanRepository
	rec  *activity.Recorder
	log  *logger.Logger

	locMu      sync.Mutex
	locations  []string
	locExpires time.Time
}

// NewTanahGarapanUseCase builds the service.
func NewTanahGarapanUseCase(repo repository.TanahGarapanRepository, rec *activity.Recorder, log *logger.Logger) *TanahGarapanUseCase {
	return &TanahGarapanUseCase{repo: repo, rec: rec, log: log}
}

// List returns one page of records, newest first. Reading is open to every
// authenticated role.
func (uc *TanahGarapanUseCase) List(page dto.PageRequest) (*dto.Paginated, error) {
	page.Normalize()
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(toTanahGarapanResponses(list), total, page.Page, page.PageSize), nil
}

// GetByID returns one record or NotFound.
func (uc *TanahGarapanUseCase) GetByID(id string) (*dto.TanahGarapanResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NewNotFound("Tanah garapan")
	}
	return dto.ToTanahGarapanResponse(t), nil
}

// GetByIDs returns the records for an id list, in the stored order. Missing
// ids are skipped; the print view decides how to handle gaps.
func (uc *TanahGarapanUseCase) GetByIDs(ids []string) ([]dto.TanahGarapanResponse, error) {
	list, err := uc.repo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	return toTanahGarapanResponses(list), nil
}

// Create validates and persists a new record. Requires manage-data permission.
func (uc *TanahGarapanUseCase) Create(actor *domain.Identity, in dto.TanahGarapanRequest) (*dto.TanahGarapanResponse, error) {
	if err := requireManageData(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.TanahGarapan{
		ID:                          uuid.New().String(),
		LetakTanah:                  in.LetakTanah,
		NamaPemegangHak:             in.NamaPemegangHak,
		LetterC:                     in.LetterC,
		NomorSuratKeteranganGarapan: in.NomorSuratKeteranganGarapan,
		Luas:                        in.Luas,
		FileURL:                     in.FileURL,
		Keterangan:                  in.Keterangan,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
	if err := uc.repo.Create(t); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionCreateTanahGarapan,
		fmt.Sprintf("Membuat entry tanah garapan %s (%s)", t.NomorSuratKeteranganGarapan, t.LetakTanah), t)
	return dto.ToTanahGarapanResponse(t), nil
}

// Update re-validates the full form and overwrites the record. The activity
// payload carries the before/after snapshots.
func (uc *TanahGarapanUseCase) Update(actor *domain.Identity, id string, in dto.TanahGarapanRequest) (*dto.TanahGarapanResponse, error) {
	if err := requireManageData(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NewNotFound("Tanah garapan")
	}
	before := *t
	t.LetakTanah = in.LetakTanah
	t.NamaPemegangHak = in.NamaPemegangHak
	t.LetterC = in.LetterC
	t.NomorSuratKeteranganGarapan = in.NomorSuratKeteranganGarapan
	t.Luas = in.Luas
	t.FileURL = in.FileURL
	t.Keterangan = in.Keterangan
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionUpdateTanahGarapan,
		fmt.Sprintf("Mengubah entry tanah garapan %s (%s)", t.NomorSuratKeteranganGarapan, t.LetakTanah),
		map[string]any{"before": before, "after": t})
	return dto.ToTanahGarapanResponse(t), nil
}

// Delete removes the record. The snapshot is taken before the delete so the
// audit payload still has the data.
func (uc *TanahGarapanUseCase) Delete(actor *domain.Identity, id string) error {
	if err := requireManageData(actor); err != nil {
		return err
	}
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.NewNotFound("Tanah garapan")
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.rec.Record(actor.Name, activity.ActionDeleteTanahGarapan,
		fmt.Sprintf("Menghapus entry tanah garapan %s (%s)", t.NomorSuratKeteranganGarapan, t.LetakTanah), t)
	return nil
}

// Search runs the free-text search: case-insensitive substring, OR-combined
// across the four text columns.
func (uc *TanahGarapanUseCase) Search(query string, page dto.PageRequest) (*dto.Paginated, error) {
	page.Normalize()
	query = strings.TrimSpace(query)
	if query == "" {
		return uc.List(page)
	}
	total, err := uc.repo.CountSearch(query)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.Search(query, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(toTanahGarapanResponses(list), total, page.Page, page.PageSize), nil
}

// AdvancedSearch applies the optional filters (location substring, luas range,
// created-date range), AND-combined.
func (uc *TanahGarapanUseCase) AdvancedSearch(in dto.TanahGarapanSearchRequest, page dto.PageRequest) (*dto.Paginated, error) {
	page.Normalize()
	f, err := in.ToFilter()
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountAdvanced(f)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.AdvancedSearch(f, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(toTanahGarapanResponses(list), total, page.Page, page.PageSize), nil
}

// Stats aggregates the dashboard widgets. The three queries run in parallel
// and a failing sub-query degrades to its zero value instead of failing the
// page.
func (uc *TanahGarapanUseCase) Stats(ctx context.Context) (*dto.TanahGarapanStats, error) {
	type countResult struct {
		n   int
		err error
	}
	type sumResult struct {
		sum decimal.Decimal
		err error
	}
	type groupResult struct {
		groups []repository.GroupCount
		err    error
	}

	countCh := make(chan countResult, 1)
	sumCh := make(chan sumResult, 1)
	groupCh := make(chan groupResult, 1)

	go func() {
		n, err := uc.repo.Count()
		countCh <- countResult{n, err}
	}()
	go func() {
		sum, err := uc.repo.SumLuas(ctx)
		sumCh <- sumResult{sum, err}
	}()
	go func() {
		groups, err := uc.repo.GroupByLocation(ctx)
		groupCh <- groupResult{groups, err}
	}()

	count := <-countCh
	sum := <-sumCh
	group := <-groupCh

	stats := &dto.TanahGarapanStats{TotalLuas: decimal.Zero}
	if count.err != nil {
		uc.log.Warn().Err(count.err).Msg("tanah garapan count failed, using zero")
	} else {
		stats.Total = count.n
	}
	if sum.err != nil {
		uc.log.Warn().Err(sum.err).Msg("tanah garapan luas sum failed, using zero")
	} else {
		stats.TotalLuas = sum.sum
	}
	if group.err != nil {
		uc.log.Warn().Err(group.err).Msg("tanah garapan location group-by failed, using empty")
	} else {
		stats.ByLocation = group.groups
	}
	return stats, nil
}

// Locations returns the distinct letak tanah values for the filter dropdown,
// cached best-effort for a few minutes.
func (uc *TanahGarapanUseCase) Locations(ctx context.Context) ([]string, error) {
	uc.locMu.Lock()
	if time.Now().Before(uc.locExpires) && uc.locations != nil {
		cached := uc.locations
		uc.locMu.Unlock()
		return cached, nil
	}
	uc.locMu.Unlock()

	locations, err := uc.repo.DistinctLocations(ctx)
	if err != nil {
		return nil, err
	}

	uc.locMu.Lock()
	uc.locations = locations
	uc.locExpires = time.Now().Add(locationsTTL)
	uc.locMu.Unlock()
	return locations, nil
}

// tanahGarapanCSVHeader is the fixed export header.
const tanahGarapanCSVHeader = "ID,Letak Tanah,Nama Pemegang Hak,Letter C,Nomor Surat Keterangan Garapan,Luas (m2),Keterangan,Tanggal Dibuat"

// ExportCSV serializes the full record set (newest first, capped) into CSV
// text. Text columns are quoted, luas stays numeric, dates use the ISO form.
// Requires manage-data permission.
func (uc *TanahGarapanUseCase) ExportCSV(actor *domain.Identity) (string, error) {
	if err := requireManageData(actor); err != nil {
		return "", err
	}
	list, err := uc.repo.ListAll(exportCap)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(tanahGarapanCSVHeader)
	b.WriteByte('\n')
	for _, t := range list {
		b.WriteString(strings.Join([]string{
			csvQuote(t.ID),
			csvQuote(t.LetakTanah),
			csvQuote(t.NamaPemegangHak),
			csvQuote(t.LetterC),
			csvQuote(t.NomorSuratKeteranganGarapan),
			t.Luas.String(),
			csvQuote(t.Keterangan),
			csvDate(t.CreatedAt),
		}, ","))
		b.WriteByte('\n')
	}
	uc.rec.Record(actor.Name, activity.ActionExportTanahGarapan,
		fmt.Sprintf("Export CSV tanah garapan (%d baris)", len(list)), nil)
	return b.String(), nil
}

func toTanahGarapanResponses(list []*entity.TanahGarapan) []dto.TanahGarapanResponse {
	items := make([]dto.TanahGarapanResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *dto.ToTanahGarapanResponse(t))
	}
	return items
}
