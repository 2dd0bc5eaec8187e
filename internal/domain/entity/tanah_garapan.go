package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TanahGarapan is a cultivated land-parcel record, the base land entity.
// Letter C is the legacy village-level deed reference; the SKG number is the
// cultivation-permit document number.
type TanahGarapan struct {
	ID                          string
	LetakTanah                  string // location text
	NamaPemegangHak             string // rights-holder name
	LetterC                     string
	NomorSuratKeteranganGarapan string
	Luas                        decimal.Decimal // area in m2, must be > 0
	FileURL                     string          // optional uploaded document URL
	Keterangan                  string          // optional note
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}
