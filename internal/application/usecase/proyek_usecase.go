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

// ProyekUseCase implements the development-project service.
type ProyekUseCase struct {
	repo repository.ProyekRepository
	rec  *activity.Recorder
	log  *logger.Logger
}

// NewProyekUseCase builds the service.
func NewProyekUseCase(repo repository.ProyekRepository, rec *activity.Recorder, log *logger.Logger) *ProyekUseCase {
	return &ProyekUseCase{repo: repo, rec: rec, log: log}
}

// List returns one page of projects, newest first.
func (uc *ProyekUseCase) List(page dto.PageRequest) (*dto.Paginated, error) {
	page.Normalize()
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(toProyekResponses(list), total, page.Page, page.PageSize), nil
}

// GetByID returns one project or NotFound.
func (uc *ProyekUseCase) GetByID(id string) (*dto.ProyekResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("Proyek")
	}
	return dto.ToProyekResponse(p), nil
}

// Create validates and persists a new project. Status defaults to PLANNING.
func (uc *ProyekUseCase) Create(actor *domain.Identity, in dto.ProyekRequest) (*dto.ProyekResponse, error) {
	if err := requireManageData(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	status := in.StatusProyek
	if status == "" {
		status = entity.ProyekPlanning
	}
	now := time.Now()
	p := &entity.Proyek{
		ID:             uuid.New().String(),
		NamaProyek:     in.NamaProyek,
		LokasiProyek:   in.LokasiProyek,
		Deskripsi:      in.Deskripsi,
		StatusProyek:   status,
		TanggalMulai:   in.TanggalMulai,
		TanggalSelesai: in.TanggalSelesai,
		BudgetTotal:    in.BudgetTotal,
		BudgetTerpakai: in.BudgetTerpakai,
		CreatedBy:      actor.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionCreateProyek,
		fmt.Sprintf("Membuat proyek %s (%s)", p.NamaProyek, p.LokasiProyek), p)
	return dto.ToProyekResponse(p), nil
}

// Update re-validates and overwrites the project.
func (uc *ProyekUseCase) Update(actor *domain.Identity, id string, in dto.ProyekRequest) (*dto.ProyekResponse, error) {
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
		return nil, domain.NewNotFound("Proyek")
	}
	before := *p
	p.NamaProyek = in.NamaProyek
	p.LokasiProyek = in.LokasiProyek
	p.Deskripsi = in.Deskripsi
	if in.StatusProyek != "" {
		p.StatusProyek = in.StatusProyek
	}
	p.TanggalMulai = in.TanggalMulai
	p.TanggalSelesai = in.TanggalSelesai
	p.BudgetTotal = in.BudgetTotal
	p.BudgetTerpakai = in.BudgetTerpakai
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	uc.rec.Record(actor.Name, activity.ActionUpdateProyek,
		fmt.Sprintf("Mengubah proyek %s", p.NamaProyek),
		map[string]any{"before": before, "after": p})
	return dto.ToProyekResponse(p), nil
}

// Delete removes a project. Refused while the project still owns pembelian;
// the repository enforces the guard inside the DELETE itself.
func (uc *ProyekUseCase) Delete(actor *domain.Identity, id string) error {
	if err := requireManageData(actor); err != nil {
		return err
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewNotFound("Proyek")
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.rec.Record(actor.Name, activity.ActionDeleteProyek,
		fmt.Sprintf("Menghapus proyek %s", p.NamaProyek), p)
	return nil
}

// Stats aggregates the project dashboard: counts per status plus the budget
// totals. Sub-query failures degrade to zero values.
func (uc *ProyekUseCase) Stats(ctx context.Context) (*dto.ProyekStats, error) {
	type groupResult struct {
		groups []repository.GroupCount
		err    error
	}
	type budgetResult struct {
		total, terpakai decimal.Decimal
		err             error
	}

	groupCh := make(chan groupResult, 1)
	budgetCh := make(chan budgetResult, 1)

	go func() {
		groups, err := uc.repo.CountByStatus(ctx)
		groupCh <- groupResult{groups, err}
	}()
	go func() {
		total, terpakai, err := uc.repo.SumBudgets(ctx)
		budgetCh <- budgetResult{total, terpakai, err}
	}()

	group := <-groupCh
	budget := <-budgetCh

	stats := &dto.ProyekStats{BudgetTotal: decimal.Zero, BudgetTerpakai: decimal.Zero}
	if group.err != nil {
		uc.log.Warn().Err(group.err).Msg("proyek status group-by failed, using empty")
	} else {
		stats.ByStatus = group.groups
	}
	if budget.err != nil {
		uc.log.Warn().Err(budget.err).Msg("proyek budget sum failed, using zero")
	} else {
		stats.BudgetTotal = budget.total
		stats.BudgetTerpakai = budget.terpakai
	}
	return stats, nil
}

// proyekCSVHeader is the fixed export header.
const proyekCSVHeader = "ID,Nama Proyek,Lokasi,Status,Budget Total,Budget Terpakai,Dibuat Oleh,Tanggal Dibuat"

// ExportCSV serializes all projects (capped) into CSV text. Requires
// manage-data permission.
func (uc *ProyekUseCase) ExportCSV(actor *domain.Identity) (string, error) {
	if err := requireManageData(actor); err != nil {
		return "", err
	}
	list, err := uc.repo.ListAll(exportCap)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(proyekCSVHeader)
	b.WriteByte('\n')
	for _, p := range list {
		b.WriteString(strings.Join([]string{
			csvQuote(p.ID),
			csvQuote(p.NamaProyek),
			csvQuote(p.LokasiProyek),
			csvQuote(p.StatusProyek),
			csvRupiah(p.BudgetTotal),
			csvRupiah(p.BudgetTerpakai),
			csvQuote(p.CreatedBy),
			csvDate(p.CreatedAt),
		}, ","))
		b.WriteByte('\n')
	}
	uc.rec.Record(actor.Name, activity.ActionExportProyek,
		fmt.Sprintf("Export CSV proyek (%d baris)", len(list)), nil)
	return b.String(), nil
}

func toProyekResponses(list []*entity.Proyek) []dto.ProyekResponse {
	items := make([]dto.ProyekResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProyekResponse(p))
	}
	return items
}
