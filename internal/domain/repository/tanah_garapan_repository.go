package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
)

// GroupCount is one bucket of a group-by aggregate.
type GroupCount struct {
	Key   string
	Count int
}

// TanahGarapanFilter holds the optional advanced-search filters. Nil/empty
// fields are skipped; present fields are AND-combined.
type TanahGarapanFilter struct {
	LetakTanah string           // case-insensitive substring
	LuasGte    *decimal.Decimal
	LuasLte    *decimal.Decimal
	CreatedGte *time.Time // caller normalizes to start of day
	CreatedLte *time.Time // caller normalizes to end of day
}

// TanahGarapanRepository is the persistence port for land-parcel records (DIP).
// Get methods return (nil, nil) when the record is absent.
type TanahGarapanRepository interface {
	Create(t *entity.TanahGarapan) error
	GetByID(id string) (*entity.TanahGarapan, error)
	GetByIDs(ids []string) ([]*entity.TanahGarapan, error)
	// Update writes all mutable fields; reports domain.ErrNotFound when the
	// row vanished between read and write.
	Update(t *entity.TanahGarapan) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.TanahGarapan, error)
	Count() (int, error)
	// Search matches the query as a case-insensitive substring OR-combined
	// across letak_tanah, nama_pemegang_hak, letter_c and nomor SKG.
	Search(query string, limit, offset int) ([]*entity.TanahGarapan, error)
	CountSearch(query string) (int, error)
	AdvancedSearch(f TanahGarapanFilter, limit, offset int) ([]*entity.TanahGarapan, error)
	CountAdvanced(f TanahGarapanFilter) (int, error)
	// ListAll returns up to max rows, newest first, for CSV export.
	ListAll(max int) ([]*entity.TanahGarapan, error)

	// Read-only aggregates for the stats widgets (issued in parallel).
	SumLuas(ctx context.Context) (decimal.Decimal, error)
	GroupByLocation(ctx context.Context) ([]GroupCount, error)
	DistinctLocations(ctx context.Context) ([]string, error)
}
