package analytics_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

func saleAgg(id, name string, qty, value int64) entity.SaleRangeAggregate {
	return entity.SaleRangeAggregate{
		ProductInfo:    entity.ProductInfo{ID: id, Name: name, CostUnit: decimal.NewFromInt(100), RetailPrice: decimal.NewFromInt(200)},
		QuantitySold:   qty,
		TotalSaleValue: decimal.NewFromInt(value),
		SaleCount:      1,
		FirstSaleAt:    daysAgo(9),
		LastSaleAt:     daysAgo(0),
	}
}

func TestParseRankBy(t *testing.T) {
	for in, want := range map[string]appanalytics.RankBy{
		"cantidad": appanalytics.RankByQuantity,
		"quantity": appanalytics.RankByQuantity,
		"Valor":    appanalytics.RankByValue,
		"value":    appanalytics.RankByValue,
	} {
		got, err := appanalytics.ParseRankBy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := appanalytics.ParseRankBy("margen")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildTopSellers_PorCantidadYPorValor(t *testing.T) {
	ledger := &fakeLedger{
		salesInRange: []entity.SaleRangeAggregate{
			saleAgg("1", "Muchas baratas", 50, 5000),
			saleAgg("2", "Pocas caras", 5, 90000),
			saleAgg("3", "Sin ventas", 0, 0),
			saleAgg("4", "Intermedia", 20, 20000),
		},
		stock: map[string]int64{"1": 10, "2": 100},
	}
	uc := appanalytics.NewRankingUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	byQty, err := uc.BuildTopSellers(context.Background(), "ladorada", last30(), appanalytics.RankByQuantity)
	require.NoError(t, err)
	require.Len(t, byQty.Items, 3, "solo productos con cantidad vendida > 0")
	assert.Equal(t, "1", byQty.Items[0].ID)
	assert.Equal(t, 1, byQty.Items[0].Rank)
	assert.Equal(t, "4", byQty.Items[1].ID)
	assert.Equal(t, 3, byQty.Items[2].Rank)
	assert.Equal(t, int64(75), byQty.TotalQuantity)
	assert.True(t, byQty.TotalValue.Equal(decimal.NewFromInt(115000)))

	first := byQty.Items[0]
	assert.Equal(t, 10, first.RangeDaysSpan)
	assert.Equal(t, 2, *first.DaysOfInventoryRemaining) // 10 / (50/10)
	assert.Equal(t, entity.UrgencyCritical, first.Urgency)
	assert.Equal(t, "100", first.AverageSalePrice.String())
	assert.Equal(t, "0", first.RealMarginPct.String())
	assert.Equal(t, "50", first.ListMarginPct.String())

	byValue, err := uc.BuildTopSellers(context.Background(), "ladorada", last30(), appanalytics.RankByValue)
	require.NoError(t, err)
	assert.Equal(t, "2", byValue.Items[0].ID)
	assert.Equal(t, "4", byValue.Items[1].ID)
	assert.Equal(t, "1", byValue.Items[2].ID)
}

func TestBuildTopSellers_TopeDeCien(t *testing.T) {
	ledger := &fakeLedger{}
	for i := 1; i <= 150; i++ {
		ledger.salesInRange = append(ledger.salesInRange, saleAgg(fmt.Sprint(i), fmt.Sprintf("P%03d", i), int64(i), int64(i*10)))
	}
	uc := appanalytics.NewRankingUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	report, err := uc.BuildTopSellers(context.Background(), "ladorada", last30(), appanalytics.RankByQuantity)
	require.NoError(t, err)
	require.Len(t, report.Items, appanalytics.MaxRankedProducts)
	assert.Equal(t, "150", report.Items[0].ID)
	assert.Equal(t, 100, report.Items[99].Rank)
	assert.Equal(t, "51", report.Items[99].ID)
}

func TestBuildTopSellers_CriterioInvalido(t *testing.T) {
	uc := appanalytics.NewRankingUseCase(fakeResolver{&fakeLedger{}}, appanalytics.Options{Clock: clock})
	_, err := uc.BuildTopSellers(context.Background(), "ladorada", last30(), "margen")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildTopSellers_EmpateDeCantidadPorValor(t *testing.T) {
	ledger := &fakeLedger{salesInRange: []entity.SaleRangeAggregate{
		saleAgg("a", "Alfa", 10, 1000),
		saleAgg("b", "Beta", 10, 3000),
	}}
	uc := appanalytics.NewRankingUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	report, err := uc.BuildTopSellers(context.Background(), "ladorada", last30(), appanalytics.RankByQuantity)
	require.NoError(t, err)
	assert.Equal(t, "b", report.Items[0].ID)
}
