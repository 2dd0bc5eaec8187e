package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
)

func validTanahGarapanRequest() dto.TanahGarapanRequest {
	return dto.TanahGarapanRequest{
		LetakTanah:                  "Desa Sukamaju RT 03",
		NamaPemegangHak:             "Budi Santoso",
		LetterC:                     "C-1234",
		NomorSuratKeteranganGarapan: "SKG-2026-001",
		Luas:                        decimal.NewFromInt(1500),
	}
}

func TestTanahGarapanRequest_ValidPasses(t *testing.T) {
	assert.NoError(t, validTanahGarapanRequest().Validate())
}

// An empty form reports every failed constraint in one error, not just the
// first.
func TestTanahGarapanRequest_AggregatesAllFailures(t *testing.T) {
	err := dto.TanahGarapanRequest{}.Validate()
	require.Error(t, err)

	ve, ok := domain.AsValidation(err)
	require.True(t, ok, "error must be a ValidationError")
	assert.ElementsMatch(t, []string{
		"letakTanah is required",
		"namaPemegangHak is required",
		"letterC is required",
		"nomorSuratKeteranganGarapan is required",
		"luas must be a positive number",
	}, ve.Messages)
}

func TestTanahGarapanRequest_RejectsNonPositiveLuas(t *testing.T) {
	in := validTanahGarapanRequest()
	in.Luas = decimal.Zero
	err := in.Validate()
	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"luas must be a positive number"}, ve.Messages)

	in.Luas = decimal.NewFromInt(-5)
	assert.Error(t, in.Validate())
}

func TestTanahGarapanSearchRequest_ToFilterWidensLteToEndOfDay(t *testing.T) {
	in := dto.TanahGarapanSearchRequest{CreatedGte: "2026-01-01", CreatedLte: "2026-01-31"}
	f, err := in.ToFilter()
	require.NoError(t, err)
	require.NotNil(t, f.CreatedGte)
	require.NotNil(t, f.CreatedLte)

	assert.Equal(t, 1, f.CreatedGte.Day())
	assert.Equal(t, 0, f.CreatedGte.Hour())
	// lte is inclusive: pushed to the last instant of the day.
	assert.Equal(t, 31, f.CreatedLte.Day())
	assert.Equal(t, 23, f.CreatedLte.Hour())
}

func TestTanahGarapanSearchRequest_ToFilterRejectsBadDate(t *testing.T) {
	_, err := dto.TanahGarapanSearchRequest{CreatedGte: "31/01/2026"}.ToFilter()
	assert.Error(t, err)
}
