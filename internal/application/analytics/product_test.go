package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

func TestSearchProducts_TerminoMinimo(t *testing.T) {
	ledger := &fakeLedger{products: []entity.ProductSummary{{ProductInfo: entity.ProductInfo{ID: "1", Name: "Vaso"}}}}
	uc := appanalytics.NewProductUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	_, err := uc.SearchProducts(context.Background(), "ladorada", " v ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, ledger.calls)

	got, err := uc.SearchProducts(context.Background(), "ladorada", "va")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAnalyzeProduct(t *testing.T) {
	ledger := projectionLedger()
	uc := appanalytics.NewProductUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	a, err := uc.AnalyzeProduct(context.Background(), "ladorada", "1", false)
	require.NoError(t, err)
	assert.Equal(t, "Vaso", a.Item.Name)
	assert.Equal(t, int64(62), a.Item.SuggestedReorderQty)
	assert.Equal(t, "1", ledger.scopes[0].ProductID)

	_, err = uc.AnalyzeProduct(context.Background(), "ladorada", "999", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
