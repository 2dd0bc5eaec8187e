package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// jenisPembayaran values.
const (
	PembayaranDP        = "DP"        // down payment
	PembayaranCicilan   = "CICILAN"   // installment
	PembayaranPelunasan = "PELUNASAN" // final settlement, amount auto-set to outstanding balance
	PembayaranBonus     = "BONUS"
)

// statusPembayaran values.
const (
	PembayaranPending  = "PENDING"
	PembayaranVerified = "VERIFIED"
	PembayaranRejected = "REJECTED"
)

// PembayaranJenis lists the payment kinds.
var PembayaranJenis = []string{PembayaranDP, PembayaranCicilan, PembayaranPelunasan, PembayaranBonus}

// ValidPembayaranJenis reports whether s is a known payment kind.
func ValidPembayaranJenis(s string) bool {
	for _, v := range PembayaranJenis {
		if v == s {
			return true
		}
	}
	return false
}

// Pembayaran is a single payment installment against a Pembelian. Only
// VERIFIED payments count toward the outstanding balance.
type Pembayaran struct {
	ID               string
	PembelianID      string
	NomorPembayaran  string // generated reference, e.g. PAY-20260828-1a2b3c4d
	JumlahPembayaran decimal.Decimal // must be > 0
	JenisPembayaran  string
	MetodePembayaran string // transfer, cash, ...
	TanggalPembayaran time.Time
	StatusPembayaran string
	Keterangan       string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
