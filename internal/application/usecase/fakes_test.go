package usecase_test

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/activity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// In-memory repository fakes. They keep insertion order and implement just
// enough semantics (search, guards, aggregates) for the service tests.

func managerActor() *domain.Identity {
	return &domain.Identity{ID: "mgr-1", Name: "Siti Manager", Email: "siti@example.com", Role: domain.RoleManager}
}

func adminActor() *domain.Identity {
	return &domain.Identity{ID: "adm-1", Name: "Andi Admin", Email: "andi@example.com", Role: domain.RoleAdmin}
}

func userActor() *domain.Identity {
	return &domain.Identity{ID: "usr-1", Name: "Budi User", Email: "budi@example.com", Role: domain.RoleUser}
}

// newTestRecorder returns a recorder backed by an in-memory log store. Call
// rec.Close() before asserting on store contents.
func newTestRecorder() (*activity.Recorder, *fakeActivityStore) {
	store := &fakeActivityStore{}
	return activity.NewRecorder(store, logger.Nop(), 64), store
}

func listAllFilter() repository.ActivityLogFilter { return repository.ActivityLogFilter{} }

type fakeActivityStore struct {
	mu      sync.Mutex
	entries []*entity.ActivityLog
}

func (f *fakeActivityStore) Create(e *entity.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeActivityStore) List(_ repository.ActivityLogFilter, _, _ int) ([]*entity.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entity.ActivityLog(nil), f.entries...), nil
}

func (f *fakeActivityStore) Count(repository.ActivityLogFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries), nil
}

func (f *fakeActivityStore) ListRecent(limit int) ([]*entity.ActivityLog, error) {
	return f.List(repository.ActivityLogFilter{}, limit, 0)
}

// ---- tanah garapan ----

type fakeTanahRepo struct {
	records []*entity.TanahGarapan
}

func (f *fakeTanahRepo) Create(t *entity.TanahGarapan) error {
	f.records = append(f.records, t)
	return nil
}

func (f *fakeTanahRepo) GetByID(id string) (*entity.TanahGarapan, error) {
	for _, t := range f.records {
		if t.ID == id {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeTanahRepo) GetByIDs(ids []string) ([]*entity.TanahGarapan, error) {
	var out []*entity.TanahGarapan
	for _, t := range f.records {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (f *fakeTanahRepo) Update(t *entity.TanahGarapan) error {
	for i, old := range f.records {
		if old.ID == t.ID {
			f.records[i] = t
			return nil
		}
	}
	return domain.NewNotFound("Tanah garapan")
}

func (f *fakeTanahRepo) Delete(id string) error {
	for i, t := range f.records {
		if t.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("Tanah garapan")
}

func (f *fakeTanahRepo) List(limit, offset int) ([]*entity.TanahGarapan, error) {
	return pageOf(f.records, limit, offset), nil
}

func (f *fakeTanahRepo) Count() (int, error) { return len(f.records), nil }

func (f *fakeTanahRepo) matches(t *entity.TanahGarapan, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{t.LetakTanah, t.NamaPemegangHak, t.LetterC, t.NomorSuratKeteranganGarapan} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (f *fakeTanahRepo) Search(q string, limit, offset int) ([]*entity.TanahGarapan, error) {
	var hits []*entity.TanahGarapan
	for _, t := range f.records {
		if f.matches(t, q) {
			hits = append(hits, t)
		}
	}
	return pageOf(hits, limit, offset), nil
}

func (f *fakeTanahRepo) CountSearch(q string) (int, error) {
	n := 0
	for _, t := range f.records {
		if f.matches(t, q) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTanahRepo) filtered(fl repository.TanahGarapanFilter) []*entity.TanahGarapan {
	var hits []*entity.TanahGarapan
	for _, t := range f.records {
		if fl.LetakTanah != "" && !strings.Contains(strings.ToLower(t.LetakTanah), strings.ToLower(fl.LetakTanah)) {
			continue
		}
		if fl.LuasGte != nil && t.Luas.LessThan(*fl.LuasGte) {
			continue
		}
		if fl.LuasLte != nil && t.Luas.GreaterThan(*fl.LuasLte) {
			continue
		}
		if fl.CreatedGte != nil && t.CreatedAt.Before(*fl.CreatedGte) {
			continue
		}
		if fl.CreatedLte != nil && t.CreatedAt.After(*fl.CreatedLte) {
			continue
		}
		hits = append(hits, t)
	}
	return hits
}

func (f *fakeTanahRepo) AdvancedSearch(fl repository.TanahGarapanFilter, limit, offset int) ([]*entity.TanahGarapan, error) {
	return pageOf(f.filtered(fl), limit, offset), nil
}

func (f *fakeTanahRepo) CountAdvanced(fl repository.TanahGarapanFilter) (int, error) {
	return len(f.filtered(fl)), nil
}

func (f *fakeTanahRepo) ListAll(max int) ([]*entity.TanahGarapan, error) {
	return pageOf(f.records, max, 0), nil
}

func (f *fakeTanahRepo) SumLuas(context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range f.records {
		sum = sum.Add(t.Luas)
	}
	return sum, nil
}

func (f *fakeTanahRepo) GroupByLocation(context.Context) ([]repository.GroupCount, error) {
	counts := map[string]int{}
	var order []string
	for _, t := range f.records {
		if counts[t.LetakTanah] == 0 {
			order = append(order, t.LetakTanah)
		}
		counts[t.LetakTanah]++
	}
	var out []repository.GroupCount
	for _, k := range order {
		out = append(out, repository.GroupCount{Key: k, Count: counts[k]})
	}
	return out, nil
}

func (f *fakeTanahRepo) DistinctLocations(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, t := range f.records {
		if !seen[t.LetakTanah] {
			seen[t.LetakTanah] = true
			out = append(out, t.LetakTanah)
		}
	}
	return out, nil
}

// ---- proyek ----

type fakeProyekRepo struct {
	records   []*entity.Proyek
	pembelian *fakePembelianRepo // when set, Delete enforces the child guard
}

func (f *fakeProyekRepo) Create(p *entity.Proyek) error {
	f.records = append(f.records, p)
	return nil
}

func (f *fakeProyekRepo) GetByID(id string) (*entity.Proyek, error) {
	for _, p := range f.records {
		if p.ID == id {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeProyekRepo) Update(p *entity.Proyek) error {
	for i, old := range f.records {
		if old.ID == p.ID {
			f.records[i] = p
			return nil
		}
	}
	return domain.NewNotFound("Proyek")
}

func (f *fakeProyekRepo) Delete(id string) error {
	if f.pembelian != nil {
		for _, p := range f.pembelian.records {
			if p.ProyekID == id {
				return domain.NewConflict("proyek", "pembelian")
			}
		}
	}
	for i, p := range f.records {
		if p.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("Proyek")
}

func (f *fakeProyekRepo) List(limit, offset int) ([]*entity.Proyek, error) {
	return pageOf(f.records, limit, offset), nil
}

func (f *fakeProyekRepo) Count() (int, error) { return len(f.records), nil }

func (f *fakeProyekRepo) ListAll(max int) ([]*entity.Proyek, error) {
	return pageOf(f.records, max, 0), nil
}

func (f *fakeProyekRepo) CountByStatus(context.Context) ([]repository.GroupCount, error) {
	counts := map[string]int{}
	for _, p := range f.records {
		counts[p.StatusProyek]++
	}
	var out []repository.GroupCount
	for k, n := range counts {
		out = append(out, repository.GroupCount{Key: k, Count: n})
	}
	return out, nil
}

func (f *fakeProyekRepo) SumBudgets(context.Context) (total, terpakai decimal.Decimal, err error) {
	total, terpakai = decimal.Zero, decimal.Zero
	for _, p := range f.records {
		total = total.Add(p.BudgetTotal)
		terpakai = terpakai.Add(p.BudgetTerpakai)
	}
	return total, terpakai, nil
}

// ---- pembelian ----

type fakePembelianRepo struct {
	records    []*entity.Pembelian
	pembayaran *fakePembayaranRepo // when set, Delete enforces the child guard
}

func (f *fakePembelianRepo) Create(p *entity.Pembelian) error {
	f.records = append(f.records, p)
	return nil
}

func (f *fakePembelianRepo) GetByID(id string) (*entity.Pembelian, error) {
	for _, p := range f.records {
		if p.ID == id {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakePembelianRepo) Update(p *entity.Pembelian) error {
	for i, old := range f.records {
		if old.ID == p.ID {
			f.records[i] = p
			return nil
		}
	}
	return domain.NewNotFound("Pembelian")
}

func (f *fakePembelianRepo) Delete(id string) error {
	if f.pembayaran != nil {
		for _, p := range f.pembayaran.records {
			if p.PembelianID == id {
				return domain.NewConflict("pembelian", "pembayaran")
			}
		}
	}
	for i, p := range f.records {
		if p.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("Pembelian")
}

func (f *fakePembelianRepo) List(proyekID string, limit, offset int) ([]*entity.Pembelian, error) {
	var hits []*entity.Pembelian
	for _, p := range f.records {
		if proyekID == "" || p.ProyekID == proyekID {
			hits = append(hits, p)
		}
	}
	return pageOf(hits, limit, offset), nil
}

func (f *fakePembelianRepo) Count(proyekID string) (int, error) {
	n := 0
	for _, p := range f.records {
		if proyekID == "" || p.ProyekID == proyekID {
			n++
		}
	}
	return n, nil
}

func (f *fakePembelianRepo) ListAll(max int) ([]*entity.Pembelian, error) {
	return pageOf(f.records, max, 0), nil
}

func (f *fakePembelianRepo) CountByStatus(context.Context) ([]repository.GroupCount, error) {
	counts := map[string]int{}
	for _, p := range f.records {
		counts[p.StatusPembelian]++
	}
	var out []repository.GroupCount
	for k, n := range counts {
		out = append(out, repository.GroupCount{Key: k, Count: n})
	}
	return out, nil
}

func (f *fakePembelianRepo) SumHarga(context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.records {
		sum = sum.Add(p.HargaBeli)
	}
	return sum, nil
}

// ---- pembayaran ----

type fakePembayaranRepo struct {
	records []*entity.Pembayaran
}

func (f *fakePembayaranRepo) Create(p *entity.Pembayaran) error {
	f.records = append(f.records, p)
	return nil
}

func (f *fakePembayaranRepo) GetByID(id string) (*entity.Pembayaran, error) {
	for _, p := range f.records {
		if p.ID == id {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakePembayaranRepo) Update(p *entity.Pembayaran) error {
	for i, old := range f.records {
		if old.ID == p.ID {
			f.records[i] = p
			return nil
		}
	}
	return domain.NewNotFound("Pembayaran")
}

func (f *fakePembayaranRepo) Delete(id string) error {
	for i, p := range f.records {
		if p.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("Pembayaran")
}

func (f *fakePembayaranRepo) ListByPembelian(pembelianID string, limit, offset int) ([]*entity.Pembayaran, error) {
	var hits []*entity.Pembayaran
	for _, p := range f.records {
		if p.PembelianID == pembelianID {
			hits = append(hits, p)
		}
	}
	return pageOf(hits, limit, offset), nil
}

func (f *fakePembayaranRepo) CountByPembelian(pembelianID string) (int, error) {
	n := 0
	for _, p := range f.records {
		if p.PembelianID == pembelianID {
			n++
		}
	}
	return n, nil
}

func (f *fakePembayaranRepo) SumVerifiedByPembelian(pembelianID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.records {
		if p.PembelianID == pembelianID && p.StatusPembayaran == entity.PembayaranVerified {
			sum = sum.Add(p.JumlahPembayaran)
		}
	}
	return sum, nil
}

func (f *fakePembayaranRepo) CountByStatus(context.Context) ([]repository.GroupCount, error) {
	counts := map[string]int{}
	for _, p := range f.records {
		counts[p.StatusPembayaran]++
	}
	var out []repository.GroupCount
	for k, n := range counts {
		out = append(out, repository.GroupCount{Key: k, Count: n})
	}
	return out, nil
}

func (f *fakePembayaranRepo) SumVerified(context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.records {
		if p.StatusPembayaran == entity.PembayaranVerified {
			sum = sum.Add(p.JumlahPembayaran)
		}
	}
	return sum, nil
}

// fakeTxRunner hands the two fakes straight to the callback; the in-memory
// stores have no transactions to speak of.
type fakeTxRunner struct {
	pembelian  *fakePembelianRepo
	pembayaran *fakePembayaranRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.PembelianRepository, repository.PembayaranRepository) error) error {
	return fn(f.pembelian, f.pembayaran)
}

// ---- users ----

type fakeUserRepo struct {
	records []*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	for _, old := range f.records {
		if old.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	f.records = append(f.records, u)
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.records {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.records {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	for i, old := range f.records {
		if old.ID == u.ID {
			f.records[i] = u
			return nil
		}
	}
	return domain.NewNotFound("User")
}

func (f *fakeUserRepo) UpdatePassword(id, hash string) error {
	for _, u := range f.records {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.NewNotFound("User")
}

func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	return pageOf(f.records, limit, offset), nil
}

func (f *fakeUserRepo) Count() (int, error) { return len(f.records), nil }

func (f *fakeUserRepo) Delete(id string) error {
	for i, u := range f.records {
		if u.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("User")
}

// pageOf applies limit/offset to a slice.
func pageOf[T any](s []T, limit, offset int) []T {
	if offset >= len(s) {
		return nil
	}
	end := offset + limit
	if end > len(s) {
		end = len(s)
	}
	return s[offset:end]
}
