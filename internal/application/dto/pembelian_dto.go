package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

// PembelianRequest is the create/update form for a certificate purchase.
type PembelianRequest struct {
	ProyekID          string          `json:"proyekId"`
	TanahGarapanID    string          `json:"tanahGarapanId"`
	NamaWarga         string          `json:"namaWarga"`
	AlamatWarga       string          `json:"alamatWarga"`
	NoKtpWarga        string          `json:"noKtpWarga"`
	NoHpWarga         string          `json:"noHpWarga"`
	HargaBeli         decimal.Decimal `json:"hargaBeli"`
	NomorSertifikat   string          `json:"nomorSertifikat"`
	TanggalSertifikat *time.Time      `json:"tanggalSertifikat"`
	Keterangan        string          `json:"keterangan"`
}

// Validate aggregates every failed constraint.
func (r PembelianRequest) Validate() error {
	var msgs []string
	if r.ProyekID == "" {
		msgs = append(msgs, "proyekId is required")
	}
	if r.TanahGarapanID == "" {
		msgs = append(msgs, "tanahGarapanId is required")
	}
	if r.NamaWarga == "" {
		msgs = append(msgs, "namaWarga is required")
	}
	if r.AlamatWarga == "" {
		msgs = append(msgs, "alamatWarga is required")
	}
	if r.NoKtpWarga == "" {
		msgs = append(msgs, "noKtpWarga is required")
	}
	if r.NoHpWarga == "" {
		msgs = append(msgs, "noHpWarga is required")
	}
	if !r.HargaBeli.IsPositive() {
		msgs = append(msgs, "hargaBeli must be a positive number")
	}
	if len(msgs) > 0 {
		return domain.NewValidation(msgs...)
	}
	return nil
}

// PembelianStatusRequest changes the purchase status; legality is checked
// against the transition table.
type PembelianStatusRequest struct {
	StatusPembelian string `json:"statusPembelian"`
}

// PembelianResponse is the API shape of a purchase.
type PembelianResponse struct {
	ID                string          `json:"id"`
	ProyekID          string          `json:"proyekId"`
	TanahGarapanID    string          `json:"tanahGarapanId"`
	NamaWarga         string          `json:"namaWarga"`
	AlamatWarga       string          `json:"alamatWarga"`
	NoKtpWarga        string          `json:"noKtpWarga"`
	NoHpWarga         string          `json:"noHpWarga"`
	HargaBeli         decimal.Decimal `json:"hargaBeli"`
	StatusPembelian   string          `json:"statusPembelian"`
	NomorSertifikat   string          `json:"nomorSertifikat,omitempty"`
	TanggalSertifikat *time.Time      `json:"tanggalSertifikat,omitempty"`
	Keterangan        string          `json:"keterangan,omitempty"`
	CreatedBy         string          `json:"createdBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// PembelianStats counts purchases per status plus the total agreed price.
type PembelianStats struct {
	ByStatus   []repository.GroupCount `json:"byStatus"`
	TotalHarga decimal.Decimal         `json:"totalHarga"`
}

// ToPembelianResponse maps the entity to its API shape.
func ToPembelianResponse(p *entity.Pembelian) *PembelianResponse {
	if p == nil {
		return nil
	}
	return &PembelianResponse{
		ID:                p.ID,
		ProyekID:          p.ProyekID,
		TanahGarapanID:    p.TanahGarapanID,
		NamaWarga:         p.NamaWarga,
		AlamatWarga:       p.AlamatWarga,
		NoKtpWarga:        p.NoKtpWarga,
		NoHpWarga:         p.NoHpWarga,
		HargaBeli:         p.HargaBeli,
		StatusPembelian:   p.StatusPembelian,
		NomorSertifikat:   p.NomorSertifikat,
		TanggalSertifikat: p.TanggalSertifikat,
		Keterangan:        p.Keterangan,
		CreatedBy:         p.CreatedBy,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
