package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

// ProyekRequest is the create/update form for a development project.
type ProyekRequest struct {
	NamaProyek     string           `json:"namaProyek"`
	LokasiProyek   string           `json:"lokasiProyek"`
	Deskripsi      string           `json:"deskripsi"`
	StatusProyek   string           `json:"statusProyek"`
	TanggalMulai   *time.Time       `json:"tanggalMulai"`
	TanggalSelesai *time.Time       `json:"tanggalSelesai"`
	BudgetTotal    decimal.Decimal  `json:"budgetTotal"`
	BudgetTerpakai decimal.Decimal  `json:"budgetTerpakai"`
}

// Validate aggregates every failed constraint.
func (r ProyekRequest) Validate() error {
	var msgs []string
	if r.NamaProyek == "" {
		msgs = append(msgs, "namaProyek is required")
	}
	if r.LokasiProyek == "" {
		msgs = append(msgs, "lokasiProyek is required")
	}
	if r.StatusProyek != "" && !entity.ValidProyekStatus(r.StatusProyek) {
		msgs = append(msgs, "statusProyek must be one of PLANNING, ONGOING, COMPLETED, CANCELLED")
	}
	if r.BudgetTotal.IsNegative() {
		msgs = append(msgs, "budgetTotal must not be negative")
	}
	if r.BudgetTerpakai.IsNegative() {
		msgs = append(msgs, "budgetTerpakai must not be negative")
	}
	if len(msgs) > 0 {
		return domain.NewValidation(msgs...)
	}
	return nil
}

// ProyekResponse is the API shape of a project.
type ProyekResponse struct {
	ID             string          `json:"id"`
	NamaProyek     string          `json:"namaProyek"`
	LokasiProyek   string          `json:"lokasiProyek"`
	Deskripsi      string          `json:"deskripsi,omitempty"`
	StatusProyek   string          `json:"statusProyek"`
	TanggalMulai   *time.Time      `json:"tanggalMulai,omitempty"`
	TanggalSelesai *time.Time      `json:"tanggalSelesai,omitempty"`
	BudgetTotal    decimal.Decimal `json:"budgetTotal"`
	BudgetTerpakai decimal.Decimal `json:"budgetTerpakai"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ProyekStats counts projects per status plus the budget totals.
type ProyekStats struct {
	ByStatus       []repository.GroupCount `json:"byStatus"`
	BudgetTotal    decimal.Decimal         `json:"budgetTotal"`
	BudgetTerpakai decimal.Decimal         `json:"budgetTerpakai"`
}

// ToProyekResponse maps the entity to its API shape.
func ToProyekResponse(p *entity.Proyek) *ProyekResponse {
	if p == nil {
		return nil
	}
	return &ProyekResponse{
		ID:             p.ID,
		NamaProyek:     p.NamaProyek,
		LokasiProyek:   p.LokasiProyek,
		Deskripsi:      p.Deskripsi,
		StatusProyek:   p.StatusProyek,
		TanggalMulai:   p.TanggalMulai,
		TanggalSelesai: p.TanggalSelesai,
		BudgetTotal:    p.BudgetTotal,
		BudgetTerpakai: p.BudgetTerpakai,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
