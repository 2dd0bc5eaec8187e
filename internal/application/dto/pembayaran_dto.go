package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

// PembayaranRequest is the create form for a payment installment. For a
// PELUNASAN payment the amount is ignored and auto-set to the outstanding
// balance server-side.
type PembayaranRequest struct {
	PembelianID       string          `json:"pembelianId"`
	JumlahPembayaran  decimal.Decimal `json:"jumlahPembayaran"`
	JenisPembayaran   string          `json:"jenisPembayaran"`
	MetodePembayaran  string          `json:"metodePembayaran"`
	TanggalPembayaran *time.Time      `json:"tanggalPembayaran"`
	Keterangan        string          `json:"keterangan"`
}

// Validate aggregates every failed constraint. The positive-amount rule is
// skipped for PELUNASAN since the amount is derived.
func (r PembayaranRequest) Validate() error {
	var msgs []string
	if r.PembelianID == "" {
		msgs = append(msgs, "pembelianId is required")
	}
	if !entity.ValidPembayaranJenis(r.JenisPembayaran) {
		msgs = append(msgs, "jenisPembayaran must be one of DP, CICILAN, PELUNASAN, BONUS")
	}
	if r.JenisPembayaran != entity.PembayaranPelunasan && !r.JumlahPembayaran.IsPositive() {
		msgs = append(msgs, "jumlahPembayaran must be a positive number")
	}
	if r.MetodePembayaran == "" {
		msgs = append(msgs, "metodePembayaran is required")
	}
	if len(msgs) > 0 {
		return domain.NewValidation(msgs...)
	}
	return nil
}

// PembayaranResponse is the API shape of a payment.
type PembayaranResponse struct {
	ID                string          `json:"id"`
	PembelianID       string          `json:"pembelianId"`
	NomorPembayaran   string          `json:"nomorPembayaran"`
	JumlahPembayaran  decimal.Decimal `json:"jumlahPembayaran"`
	JenisPembayaran   string          `json:"jenisPembayaran"`
	MetodePembayaran  string          `json:"metodePembayaran"`
	TanggalPembayaran time.Time       `json:"tanggalPembayaran"`
	StatusPembayaran  string          `json:"statusPembayaran"`
	Keterangan        string          `json:"keterangan,omitempty"`
	CreatedBy         string          `json:"createdBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// PembayaranStats counts payments per status plus the verified total.
type PembayaranStats struct {
	ByStatus      []repository.GroupCount `json:"byStatus"`
	TotalVerified decimal.Decimal         `json:"totalVerified"`
}

// ToPembayaranResponse maps the entity to its API shape.
func ToPembayaranResponse(p *entity.Pembayaran) *PembayaranResponse {
	if p == nil {
		return nil
	}
	return &PembayaranResponse{
		ID:                p.ID,
		PembelianID:       p.PembelianID,
		NomorPembayaran:   p.NomorPembayaran,
		JumlahPembayaran:  p.JumlahPembayaran,
		JenisPembayaran:   p.JenisPembayaran,
		MetodePembayaran:  p.MetodePembayaran,
		TanggalPembayaran: p.TanggalPembayaran,
		StatusPembayaran:  p.StatusPembayaran,
		Keterangan:        p.Keterangan,
		CreatedBy:         p.CreatedBy,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
