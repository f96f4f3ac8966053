package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

func stocked(id string, stock int64, cost int64) entity.StockedProduct {
	return entity.StockedProduct{
		ProductInfo:  entity.ProductInfo{ID: id, Name: "Producto " + id, CostUnit: decimal.NewFromInt(cost)},
		CurrentStock: stock,
	}
}

func TestBuildInactivity_MuyObsoleto(t *testing.T) {
	cutoff := daysAgo(30)
	dates := analytics.ActivityDates{
		LastSaleAt:     daysAgo(120),
		LastPurchaseAt: daysAgo(200),
	}

	rec, ok := analytics.BuildInactivity(stocked("7", 12, 2500), dates, cutoff, testNow)
	require.True(t, ok)
	assert.Equal(t, daysAgo(120), rec.LastActivityAt)
	assert.Equal(t, 120, rec.DaysInactive)
	assert.Equal(t, entity.TierVeryObsolete, rec.Tier)
	assert.Nil(t, rec.LastTransferAt)
	require.NotNil(t, rec.LastSaleAt)
	assert.ElementsMatch(t, []entity.InactivityReason{
		entity.ReasonNoSales, entity.ReasonNoTransfers, entity.ReasonNoPurchases,
	}, rec.Reasons)
	assert.True(t, rec.ObsoleteStockValue.Equal(decimal.NewFromInt(30000)))
}

func TestBuildInactivity_ActividadRecienteSeExcluye(t *testing.T) {
	dates := analytics.ActivityDates{LastSaleAt: daysAgo(100), LastTransferAt: daysAgo(5)}
	_, ok := analytics.BuildInactivity(stocked("1", 3, 10), dates, daysAgo(30), testNow)
	assert.False(t, ok, "un traslado reciente cuenta como actividad")
}

func TestBuildInactivity_LimiteInferior2024(t *testing.T) {
	old := analytics.ActivityDates{LastSaleAt: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)}
	_, ok := analytics.BuildInactivity(stocked("1", 3, 10), old, daysAgo(30), testNow)
	assert.False(t, ok, "actividad anterior a 2024 no se reporta")

	_, ok = analytics.BuildInactivity(stocked("1", 3, 10), analytics.ActivityDates{}, daysAgo(30), testNow)
	assert.False(t, ok, "sin ninguna actividad se trata como época antigua")

	edge := analytics.ActivityDates{LastSaleAt: analytics.ObsolescenceFloor}
	rec, ok := analytics.BuildInactivity(stocked("1", 3, 10), edge, daysAgo(30), testNow)
	require.True(t, ok, "el límite inferior es inclusivo")
	assert.Equal(t, analytics.ObsolescenceFloor, rec.LastActivityAt)
}

func TestBuildInactivity_CorteEsExclusivo(t *testing.T) {
	cutoff := daysAgo(30)
	_, ok := analytics.BuildInactivity(stocked("1", 3, 10), analytics.ActivityDates{LastSaleAt: cutoff}, cutoff, testNow)
	assert.False(t, ok)
}

func TestBuildInactivity_SinTrasladosNiComprasRegistradas(t *testing.T) {
	rec, ok := analytics.BuildInactivity(stocked("9", 1, 1), analytics.ActivityDates{LastSaleAt: daysAgo(45)}, daysAgo(15), testNow)
	require.True(t, ok)
	assert.Nil(t, rec.LastTransferAt)
	assert.Nil(t, rec.LastPurchaseAt)
	assert.Equal(t, entity.TierInactive, rec.Tier)
	assert.Len(t, rec.Reasons, 3)
}

func TestClassifyObsolescence(t *testing.T) {
	assert.Equal(t, entity.TierActive, analytics.ClassifyObsolescence(29))
	assert.Equal(t, entity.TierInactive, analytics.ClassifyObsolescence(30))
	assert.Equal(t, entity.TierInactive, analytics.ClassifyObsolescence(59))
	assert.Equal(t, entity.TierObsolete, analytics.ClassifyObsolescence(60))
	assert.Equal(t, entity.TierObsolete, analytics.ClassifyObsolescence(89))
	assert.Equal(t, entity.TierVeryObsolete, analytics.ClassifyObsolescence(90))
}
