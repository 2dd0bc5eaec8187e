package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

// TanahGarapanRequest is the create/update form for a land-parcel record. The
// form always submits every field, so create and update share the shape.
type TanahGarapanRequest struct {
	LetakTanah                  string          `json:"letakTanah"`
	NamaPemegangHak             string          `json:"namaPemegangHak"`
	LetterC                     string          `json:"letterC"`
	NomorSuratKeteranganGarapan string          `json:"nomorSuratKeteranganGarapan"`
	Luas                        decimal.Decimal `json:"luas"`
	FileURL                     string          `json:"file_url"`
	Keterangan                  string          `json:"keterangan"`
}

// Validate checks every constraint and aggregates all failures so the form can
// surface them at once.
func (r TanahGarapanRequest) Validate() error {
	var msgs []string
	if r.LetakTanah == "" {
		msgs = append(msgs, "letakTanah is required")
	}
	if r.NamaPemegangHak == "" {
		msgs = append(msgs, "namaPemegangHak is required")
	}
	if r.LetterC == "" {
		msgs = append(msgs, "letterC is required")
	}
	if r.NomorSuratKeteranganGarapan == "" {
		msgs = append(msgs, "nomorSuratKeteranganGarapan is required")
	}
	if !r.Luas.IsPositive() {
		msgs = append(msgs, "luas must be a positive number")
	}
	if len(msgs) > 0 {
		return domain.NewValidation(msgs...)
	}
	return nil
}

// TanahGarapanSearchRequest is the advanced-search form. All filters are
// optional and AND-combined; dates use the 2006-01-02 layout.
type TanahGarapanSearchRequest struct {
	Query      string           `query:"q"`
	LetakTanah string           `query:"letakTanah"`
	LuasGte    *decimal.Decimal `query:"luasGte"`
	LuasLte    *decimal.Decimal `query:"luasLte"`
	CreatedGte string           `query:"createdGte"`
	CreatedLte string           `query:"createdLte"`
}

// ToFilter converts the request to a repository filter, widening the created
// range to whole days (gte start-of-day, lte end-of-day inclusive).
func (r TanahGarapanSearchRequest) ToFilter() (repository.TanahGarapanFilter, error) {
	f := repository.TanahGarapanFilter{
		LetakTanah: r.LetakTanah,
		LuasGte:    r.LuasGte,
		LuasLte:    r.LuasLte,
	}
	if r.CreatedGte != "" {
		t, err := time.ParseInLocation("2006-01-02", r.CreatedGte, time.Local)
		if err != nil {
			return f, domain.NewValidation("createdGte must be a date in YYYY-MM-DD format")
		}
		f.CreatedGte = &t
	}
	if r.CreatedLte != "" {
		t, err := time.ParseInLocation("2006-01-02", r.CreatedLte, time.Local)
		if err != nil {
			return f, domain.NewValidation("createdLte must be a date in YYYY-MM-DD format")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.CreatedLte = &end
	}
	return f, nil
}

// TanahGarapanResponse is the API shape of a land-parcel record.
type TanahGarapanResponse struct {
	ID                          string          `json:"id"`
	LetakTanah                  string          `json:"letakTanah"`
	NamaPemegangHak             string          `json:"namaPemegangHak"`
	LetterC                     string          `json:"letterC"`
	NomorSuratKeteranganGarapan string          `json:"nomorSuratKeteranganGarapan"`
	Luas                        decimal.Decimal `json:"luas"`
	FileURL                     string          `json:"file_url,omitempty"`
	Keterangan                  string          `json:"keterangan,omitempty"`
	CreatedAt                   time.Time       `json:"createdAt"`
	UpdatedAt                   time.Time       `json:"updatedAt"`
}

// TanahGarapanStats is the aggregate widget payload. Callers fall back to the
// zero value when an aggregate sub-query fails.
type TanahGarapanStats struct {
	Total      int                     `json:"total"`
	TotalLuas  decimal.Decimal         `json:"totalLuas"`
	ByLocation []repository.GroupCount `json:"byLocation"`
}

// ToTanahGarapanResponse maps the entity to its API shape.
func ToTanahGarapanResponse(t *entity.TanahGarapan) *TanahGarapanResponse {
	if t == nil {
		return nil
	}
	return &TanahGarapanResponse{
		ID:                          t.ID,
		LetakTanah:                  t.LetakTanah,
		NamaPemegangHak:             t.NamaPemegangHak,
		LetterC:                     t.LetterC,
		NomorSuratKeteranganGarapan: t.NomorSuratKeteranganGarapan,
		Luas:                        t.Luas,
		FileURL:                     t.FileURL,
		Keterangan:                  t.Keterangan,
		CreatedAt:                   t.CreatedAt,
		UpdatedAt:                   t.UpdatedAt,
	}
}
