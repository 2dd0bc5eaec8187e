package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// statusPembelian values. The happy path is linear; CANCELLED is reachable
// from any non-terminal state.
const (
	PembelianNegotiation       = "NEGOTIATION"
	PembelianAgreed            = "AGREED"
	PembelianContractSigned    = "CONTRACT_SIGNED"
	PembelianPaid              = "PAID"
	PembelianCertificateIssued = "CERTIFICATE_ISSUED"
	PembelianCompleted         = "COMPLETED"
	PembelianCancelled         = "CANCELLED"
)

// PembelianStatuses in progression order.
var PembelianStatuses = []string{
	PembelianNegotiation,
	PembelianAgreed,
	PembelianContractSigned,
	PembelianPaid,
	PembelianCertificateIssued,
	PembelianCompleted,
	PembelianCancelled,
}

// ValidPembelianStatus reports whether s is a known purchase status.
func ValidPembelianStatus(s string) bool {
	for _, v := range PembelianStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// pembelianTransitions is the allowed-transition table. Keys are current
// states; values the states reachable from them. COMPLETED and CANCELLED are
// terminal.
var pembelianTransitions = map[string][]string{
	PembelianNegotiation:       {PembelianAgreed, PembelianCancelled},
	PembelianAgreed:            {PembelianContractSigned, PembelianCancelled},
	PembelianContractSigned:    {PembelianPaid, PembelianCancelled},
	PembelianPaid:              {PembelianCertificateIssued, PembelianCancelled},
	PembelianCertificateIssued: {PembelianCompleted, PembelianCancelled},
	PembelianCompleted:         {},
	PembelianCancelled:         {},
}

// CanTransitionPembelian reports whether moving from one purchase status to
// another is legal. Setting the same status again is a no-op and allowed.
func CanTransitionPembelian(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range pembelianTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Pembelian is a certificate-purchase transaction linking one Proyek to one
// TanahGarapan, with the selling resident (warga) on record. It owns zero or
// more Pembayaran and cannot be deleted while any exist.
type Pembelian struct {
	ID              string
	ProyekID        string
	TanahGarapanID  string
	NamaWarga       string
	AlamatWarga     string
	NoKtpWarga      string
	NoHpWarga       string
	HargaBeli       decimal.Decimal // agreed price, must be > 0
	StatusPembelian string
	NomorSertifikat string // filled once the certificate is issued
	TanggalSertifikat *time.Time
	Keterangan      string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
