package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valid statusProyek values.
const (
	ProyekPlanning  = "PLANNING"
	ProyekOngoing   = "ONGOING"
	ProyekCompleted = "COMPLETED"
	ProyekCancelled = "CANCELLED"
)

// ProyekStatuses in display order.
var ProyekStatuses = []string{ProyekPlanning, ProyekOngoing, ProyekCompleted, ProyekCancelled}

// ValidProyekStatus reports whether s is a known project status.
func ValidProyekStatus(s string) bool {
	for _, v := range ProyekStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Proyek is a development project that acquires land parcels. It owns zero or
// more Pembelian and cannot be deleted while any exist.
type Proyek struct {
	ID            string
	NamaProyek    string
	LokasiProyek  string
	Deskripsi     string // optional
	StatusProyek  string
	TanggalMulai  *time.Time
	TanggalSelesai *time.Time
	BudgetTotal   decimal.Decimal
	BudgetTerpakai decimal.Decimal
	CreatedBy     string // display name of the creating user
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
