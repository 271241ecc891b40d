package infra

import (
	"bytes"
	"testing"
	"time"

	"sorty/internal/model"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleAsset() model.Asset {
	acquired := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	return model.Asset{
		ID:              uuid.New(),
		Code:            "NB-" + gofakeit.DigitN(4),
		Name:            "Notebook Lenovo T14",
		Status:          model.AssetInUse,
		Building:        lo.ToPtr("Edificio Central"),
		Brand:           lo.ToPtr("Lenovo"),
		AcquisitionDate: &acquired,
		AcquisitionCost: decimal.NewFromInt(1200),
		UsefulLifeYears: lo.ToPtr(4),
		Category:        &model.Category{Name: "Computación"},
		AssignedTo:      &model.User{Name: "María Gómez"},
	}
}

func TestRenderAssetWorkbook(t *testing.T) {
	assets := []model.Asset{sampleAsset(), sampleAsset()}
	data, err := RenderAssetWorkbook(assets, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventario")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, assetSheetHeaders, rows[0])
	assert.Equal(t, assets[0].Code, rows[1][0])
	assert.Equal(t, "Computación", rows[1][2])
	assert.Equal(t, "IN_USE", rows[1][3])
	assert.Equal(t, "María Gómez", rows[1][4])
	assert.Equal(t, "2023-03-01", rows[1][11])
}

func TestRenderAssetWorkbook_Empty(t *testing.T) {
	data, err := RenderAssetWorkbook(nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestRenderAssignmentReceipt(t *testing.T) {
	asset := sampleAsset()
	a := &model.AssetAssignment{
		ID:         uuid.New(),
		AssetID:    asset.ID,
		Status:     model.AssignmentActive,
		AssignedAt: time.Now(),
		Location:   lo.ToPtr("Oficina 12"),
		Reason:     lo.ToPtr("Alta de personal"),
		Asset:      &asset,
		AssignedTo: &model.User{Name: "María Gómez", Email: gofakeit.Email(), Department: lo.ToPtr("Contabilidad")},
		AssignedBy: &model.User{Name: "Jorge Ruiz", Email: gofakeit.Email()},
	}

	data, err := RenderAssignmentReceipt("Universidad Nacional", a)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderAssignmentReceipt_MissingRelations(t *testing.T) {
	_, err := RenderAssignmentReceipt("Org", &model.AssetAssignment{ID: uuid.New()})
	assert.Error(t, err)
}

func TestMailerDisabledWithoutHost(t *testing.T) {
	m := &Mailer{}
	assert.ErrorIs(t, m.Send("a@b.c", "s", "b"), ErrMailerDisabled)
}
