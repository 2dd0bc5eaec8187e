package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
)

// ProyekRepository is the persistence port for development projects (DIP).
type ProyekRepository interface {
	Create(p *entity.Proyek) error
	GetByID(id string) (*entity.Proyek, error)
	Update(p *entity.Proyek) error
	// Delete refuses while the project still owns pembelian rows; the guard
	// runs inside the DELETE statement itself.
	Delete(id string) error
	List(limit, offset int) ([]*entity.Proyek, error)
	Count() (int, error)
	ListAll(max int) ([]*entity.Proyek, error)

	CountByStatus(ctx context.Context) ([]GroupCount, error)
	// SumBudgets returns total and spent budget across all projects.
	SumBudgets(ctx context.Context) (total, terpakai decimal.Decimal, err error)
}
