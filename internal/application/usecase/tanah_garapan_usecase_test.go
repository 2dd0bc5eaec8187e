package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/activity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

func newTanahUC(repo *fakeTanahRepo) (*usecase.TanahGarapanUseCase, *activity.Recorder, *fakeActivityStore) {
	rec, store := newTestRecorder()
	return usecase.NewTanahGarapanUseCase(repo, rec, logger.Nop()), rec, store
}

func tanahRequest(skg string) dto.TanahGarapanRequest {
	return dto.TanahGarapanRequest{
		LetakTanah:                  "Desa Sukamaju",
		NamaPemegangHak:             "Budi Santoso",
		LetterC:                     "C-1234",
		NomorSuratKeteranganGarapan: skg,
		Luas:                        decimal.NewFromInt(1500),
	}
}

func TestTanahGarapanCreate_ThenGetRoundtrip(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, rec, store := newTanahUC(repo)

	created, err := uc.Create(managerActor(), tanahRequest("SKG-001"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "SKG-001", created.NomorSuratKeteranganGarapan)

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.Luas.Equal(decimal.NewFromInt(1500)))

	// The create must have emitted one audit event naming the actor.
	rec.Close()
	entries, _ := store.List(listAllFilter(), 100, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, "Siti Manager", entries[0].User)
	assert.Equal(t, activity.ActionCreateTanahGarapan, entries[0].Action)
	assert.Contains(t, entries[0].Details, "SKG-001")
}

// A USER session cannot write, and a refused write leaves no trace in the
// store.
func TestTanahGarapanCreate_UserForbiddenWithoutMutation(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, rec, store := newTanahUC(repo)

	_, err := uc.Create(userActor(), tanahRequest("SKG-002"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	n, _ := repo.Count()
	assert.Zero(t, n, "refused create must not persist anything")

	rec.Close()
	entries, _ := store.List(listAllFilter(), 100, 0)
	assert.Empty(t, entries, "refused create must not be audited")
}

func TestTanahGarapanCreate_NilActorUnauthorized(t *testing.T) {
	uc, _, _ := newTanahUC(&fakeTanahRepo{})
	_, err := uc.Create(nil, tanahRequest("SKG-003"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTanahGarapanCreate_ValidationBeforePersist(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, _, _ := newTanahUC(repo)

	_, err := uc.Create(managerActor(), dto.TanahGarapanRequest{})
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Messages, "letakTanah is required")

	n, _ := repo.Count()
	assert.Zero(t, n)
}

func TestTanahGarapanUpdate_NotFound(t *testing.T) {
	uc, _, _ := newTanahUC(&fakeTanahRepo{})
	_, err := uc.Update(managerActor(), "missing-id", tanahRequest("SKG-004"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Tanah garapan not found")
}

func TestTanahGarapanDelete_NotFound(t *testing.T) {
	uc, _, _ := newTanahUC(&fakeTanahRepo{})
	err := uc.Delete(managerActor(), "missing-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTanahGarapanList_PaginationMath(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, _, _ := newTanahUC(repo)
	for i := 0; i < 45; i++ {
		_, err := uc.Create(managerActor(), tanahRequest(fmt.Sprintf("SKG-%03d", i)))
		require.NoError(t, err)
	}

	out, err := uc.List(dto.PageRequest{Page: 3, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 45, out.Total)
	assert.Equal(t, 3, out.TotalPages)
	assert.Equal(t, 3, out.CurrentPage)
	items := out.Items.([]dto.TanahGarapanResponse)
	assert.Len(t, items, 5, "last page holds the remainder")
}

func TestTanahGarapanSearch_CaseInsensitive(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, _, _ := newTanahUC(repo)
	in := tanahRequest("SKG-100")
	in.NamaPemegangHak = "Hartono Wijaya"
	_, err := uc.Create(managerActor(), in)
	require.NoError(t, err)
	_, err = uc.Create(managerActor(), tanahRequest("SKG-101"))
	require.NoError(t, err)

	out, err := uc.Search("hartono", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)

	out, err = uc.Search("WIJAYA", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
}

// A blank or whitespace query is the plain listing, not an empty result.
func TestTanahGarapanSearch_BlankQueryListsAll(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, _, _ := newTanahUC(repo)
	_, err := uc.Create(managerActor(), tanahRequest("SKG-200"))
	require.NoError(t, err)

	out, err := uc.Search("   ", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
}

func TestTanahGarapanStats_Aggregates(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, _, _ := newTanahUC(repo)
	a := tanahRequest("SKG-300")
	a.LetakTanah = "Desa A"
	b := tanahRequest("SKG-301")
	b.LetakTanah = "Desa A"
	c := tanahRequest("SKG-302")
	c.LetakTanah = "Desa B"
	for _, in := range []dto.TanahGarapanRequest{a, b, c} {
		_, err := uc.Create(managerActor(), in)
		require.NoError(t, err)
	}

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.True(t, stats.TotalLuas.Equal(decimal.NewFromInt(4500)))
	require.Len(t, stats.ByLocation, 2)
}

func TestTanahGarapanExportCSV_Format(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, _, _ := newTanahUC(repo)
	in := tanahRequest("SKG-400")
	in.Keterangan = `tanah "warisan"`
	_, err := uc.Create(managerActor(), in)
	require.NoError(t, err)

	csv, err := uc.ExportCSV(managerActor())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Letak Tanah,Nama Pemegang Hak,Letter C,Nomor Surat Keterangan Garapan,Luas (m2),Keterangan,Tanggal Dibuat", lines[0])
	assert.Contains(t, lines[1], `"Desa Sukamaju"`, "text fields are quoted")
	assert.Contains(t, lines[1], ",1500,", "luas stays numeric and unquoted")
	assert.Contains(t, lines[1], `"tanah ""warisan"""`, "embedded quotes are doubled")
}

func TestTanahGarapanExportCSV_RequiresManager(t *testing.T) {
	uc, _, _ := newTanahUC(&fakeTanahRepo{})
	_, err := uc.ExportCSV(userActor())
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestTanahGarapanLocations_Cached(t *testing.T) {
	repo := &fakeTanahRepo{}
	uc, _, _ := newTanahUC(repo)
	_, err := uc.Create(managerActor(), tanahRequest("SKG-500"))
	require.NoError(t, err)

	first, err := uc.Locations(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Desa Sukamaju"}, first)

	// A record added within the TTL is not visible yet; the cache serves the
	// old snapshot.
	other := tanahRequest("SKG-501")
	other.LetakTanah = "Desa Baru"
	_, err = uc.Create(managerActor(), other)
	require.NoError(t, err)

	second, err := uc.Locations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
