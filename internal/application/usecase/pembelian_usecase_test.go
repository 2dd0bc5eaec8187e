package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

type pembelianFixture struct {
	uc         *usecase.PembelianUseCase
	repo       *fakePembelianRepo
	proyekRepo *fakeProyekRepo
	tanahRepo  *fakeTanahRepo
	pembayaran *fakePembayaranRepo
}

func newPembelianFixture() *pembelianFixture {
	pembayaran := &fakePembayaranRepo{}
	repo := &fakePembelianRepo{pembayaran: pembayaran}
	proyekRepo := &fakeProyekRepo{pembelian: repo}
	tanahRepo := &fakeTanahRepo{}
	rec, _ := newTestRecorder()
	return &pembelianFixture{
		uc:         usecase.NewPembelianUseCase(repo, proyekRepo, tanahRepo, rec, logger.Nop()),
		repo:       repo,
		proyekRepo: proyekRepo,
		tanahRepo:  tanahRepo,
		pembayaran: pembayaran,
	}
}

func (fx *pembelianFixture) seedParents(t *testing.T) (proyekID, tanahID string) {
	t.Helper()
	now := time.Now()
	p := &entity.Proyek{ID: "proyek-1", NamaProyek: "Perumahan Hijau", LokasiProyek: "Bogor",
		StatusProyek: entity.ProyekPlanning, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, fx.proyekRepo.Create(p))
	tg := &entity.TanahGarapan{ID: "tanah-1", LetakTanah: "Desa Sukamaju", NamaPemegangHak: "Budi",
		LetterC: "C-1", NomorSuratKeteranganGarapan: "SKG-1", Luas: decimal.NewFromInt(1000),
		CreatedAt: now, UpdatedAt: now}
	require.NoError(t, fx.tanahRepo.Create(tg))
	return p.ID, tg.ID
}

func pembelianRequest(proyekID, tanahID string) dto.PembelianRequest {
	return dto.PembelianRequest{
		ProyekID:       proyekID,
		TanahGarapanID: tanahID,
		NamaWarga:      "Pak Hartono",
		AlamatWarga:    "Jl. Melati 5",
		NoKtpWarga:     "3201010101010001",
		NoHpWarga:      "081234567890",
		HargaBeli:      decimal.NewFromInt(100_000_000),
	}
}

func TestPembelianCreate_StartsInNegotiation(t *testing.T) {
	fx := newPembelianFixture()
	proyekID, tanahID := fx.seedParents(t)

	out, err := fx.uc.Create(managerActor(), pembelianRequest(proyekID, tanahID))
	require.NoError(t, err)
	assert.Equal(t, entity.PembelianNegotiation, out.StatusPembelian)
	assert.Equal(t, "Siti Manager", out.CreatedBy)
}

func TestPembelianCreate_MissingParentRefused(t *testing.T) {
	fx := newPembelianFixture()
	_, tanahID := fx.seedParents(t)

	_, err := fx.uc.Create(managerActor(), pembelianRequest("no-such-proyek", tanahID))
	require.Error(t, err)
	assert.EqualError(t, err, "Proyek not found")

	proyekID, _ := fx.seedParents(t)
	_, err = fx.uc.Create(managerActor(), pembelianRequest(proyekID, "no-such-tanah"))
	require.Error(t, err)
	assert.EqualError(t, err, "Tanah garapan not found")
}

func TestPembelianUpdateStatus_FollowsTransitionTable(t *testing.T) {
	fx := newPembelianFixture()
	proyekID, tanahID := fx.seedParents(t)
	created, err := fx.uc.Create(managerActor(), pembelianRequest(proyekID, tanahID))
	require.NoError(t, err)

	out, err := fx.uc.UpdateStatus(managerActor(), created.ID,
		dto.PembelianStatusRequest{StatusPembelian: entity.PembelianAgreed})
	require.NoError(t, err)
	assert.Equal(t, entity.PembelianAgreed, out.StatusPembelian)

	// Skipping ahead is refused with a message naming both states.
	_, err = fx.uc.UpdateStatus(managerActor(), created.ID,
		dto.PembelianStatusRequest{StatusPembelian: entity.PembelianCompleted})
	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Error(), "cannot change status from AGREED to COMPLETED")
}

func TestPembelianUpdateStatus_UnknownStatusRefused(t *testing.T) {
	fx := newPembelianFixture()
	proyekID, tanahID := fx.seedParents(t)
	created, err := fx.uc.Create(managerActor(), pembelianRequest(proyekID, tanahID))
	require.NoError(t, err)

	_, err = fx.uc.UpdateStatus(managerActor(), created.ID,
		dto.PembelianStatusRequest{StatusPembelian: "SHIPPED"})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}

func TestPembelianUpdate_DoesNotTouchStatus(t *testing.T) {
	fx := newPembelianFixture()
	proyekID, tanahID := fx.seedParents(t)
	created, err := fx.uc.Create(managerActor(), pembelianRequest(proyekID, tanahID))
	require.NoError(t, err)
	_, err = fx.uc.UpdateStatus(managerActor(), created.ID,
		dto.PembelianStatusRequest{StatusPembelian: entity.PembelianAgreed})
	require.NoError(t, err)

	in := pembelianRequest(proyekID, tanahID)
	in.NamaWarga = "Pak Hartono Baru"
	out, err := fx.uc.Update(managerActor(), created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Pak Hartono Baru", out.NamaWarga)
	assert.Equal(t, entity.PembelianAgreed, out.StatusPembelian, "field update must not reset status")
}

func TestPembelianDelete_RefusedWithPayments(t *testing.T) {
	fx := newPembelianFixture()
	proyekID, tanahID := fx.seedParents(t)
	created, err := fx.uc.Create(managerActor(), pembelianRequest(proyekID, tanahID))
	require.NoError(t, err)

	require.NoError(t, fx.pembayaran.Create(&entity.Pembayaran{
		ID: "pay-1", PembelianID: created.ID,
		JumlahPembayaran: decimal.NewFromInt(10_000_000),
		JenisPembayaran:  entity.PembayaranDP,
		StatusPembayaran: entity.PembayaranPending,
	}))

	err = fx.uc.Delete(managerActor(), created.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Cannot delete pembelian with existing pembayaran")

	// Without payments the delete goes through.
	require.NoError(t, fx.pembayaran.Delete("pay-1"))
	assert.NoError(t, fx.uc.Delete(managerActor(), created.ID))
}

func TestProyekDelete_RefusedWithPembelian(t *testing.T) {
	fx := newPembelianFixture()
	proyekID, tanahID := fx.seedParents(t)
	_, err := fx.uc.Create(managerActor(), pembelianRequest(proyekID, tanahID))
	require.NoError(t, err)

	rec, _ := newTestRecorder()
	proyekUC := usecase.NewProyekUseCase(fx.proyekRepo, rec, logger.Nop())
	err = proyekUC.Delete(managerActor(), proyekID)
	require.Error(t, err)
	assert.EqualError(t, err, "Cannot delete proyek with existing pembelian")
}
