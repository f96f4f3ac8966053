package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain"
	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

func last30() calc.DateRange {
	return calc.DateRange{Start: daysAgo(30), End: testNow, Mode: calc.ModePredefined, PredefinedDays: 30}
}

func projectionLedger() *fakeLedger {
	return &fakeLedger{
		purchases: []entity.ProductActivityFacts{
			purchased("1", "Vaso", 30),
			purchased("2", "Ábaco", 30),
			purchased("3", "Plato sin ventas", 20),
			purchased("4", "bandeja", 30),
		},
		sales: map[string]repository.SaleFacts{
			"1": sold("1", 60, 29),
			"2": sold("2", 15, 20),
			"4": sold("4", 3, 10),
		},
		stock: map[string]int64{"1": 10, "2": 100, "3": 7, "4": 50},
	}
}

func TestBuildProjection_EscenarioAYOrdenPorNombre(t *testing.T) {
	ledger := projectionLedger()
	uc := appanalytics.NewProjectionUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	report, err := uc.BuildProjection(context.Background(), "ladorada", last30(), false)
	require.NoError(t, err)

	names := make([]string, 0, len(report.Items))
	for _, it := range report.Items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Ábaco", "bandeja", "Vaso"}, names, "orden alfabético sin distinguir tildes ni mayúsculas")

	vaso := report.Items[2]
	assert.Equal(t, int64(10), vaso.CurrentStock)
	require.NotNil(t, vaso.DaysOfInventoryRemaining)
	assert.Equal(t, 5, *vaso.DaysOfInventoryRemaining)
	assert.Equal(t, entity.UrgencyCritical, vaso.Urgency)
	assert.Equal(t, int64(62), vaso.SuggestedReorderQty)

	assert.Equal(t, 1, report.UrgencyCounts[entity.UrgencyCritical])
	assert.Equal(t, testNow, report.GeneratedAt)
	assert.Equal(t, daysAgo(30), ledger.scopes[0].Start)
	assert.Equal(t, testNow, ledger.scopes[0].End)
}

// Ningún producto devuelto tiene vendido = 0 (Escenario C).
func TestBuildProjection_ExcluyeProductosSinVentas(t *testing.T) {
	uc := appanalytics.NewProjectionUseCase(fakeResolver{projectionLedger()}, appanalytics.Options{Clock: clock})

	report, err := uc.BuildProjection(context.Background(), "ladorada", last30(), false)
	require.NoError(t, err)

	for _, it := range report.Items {
		assert.Positive(t, it.SoldQuantitySinceFirstPurchase, "producto %s", it.Name)
		assert.NotEqual(t, "3", it.ID)
	}
}

func TestBuildProjection_IgnorarStock(t *testing.T) {
	uc := appanalytics.NewProjectionUseCase(fakeResolver{projectionLedger()}, appanalytics.Options{Clock: clock})

	report, err := uc.BuildProjection(context.Background(), "ladorada", last30(), true)
	require.NoError(t, err)
	require.Len(t, report.Items, 3)

	for _, it := range report.Items {
		assert.Zero(t, it.CurrentStock)
		assert.Nil(t, it.DaysOfInventoryRemaining)
		assert.Equal(t, entity.UrgencyHistorical, it.Urgency)
		assert.True(t, it.IgnoreStock)
	}
	assert.Equal(t, 3, report.UrgencyCounts[entity.UrgencyHistorical])
}

func TestBuildProjection_FilaSinIDSeOmite(t *testing.T) {
	ledger := projectionLedger()
	ledger.purchases = append(ledger.purchases, purchased("", "Fantasma", 10))
	ledger.sales[""] = sold("", 5, 5)
	uc := appanalytics.NewProjectionUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	report, err := uc.BuildProjection(context.Background(), "ladorada", last30(), false)
	require.NoError(t, err)
	assert.Len(t, report.Items, 3)
}

func TestBuildProjection_SedeDesconocida(t *testing.T) {
	uc := appanalytics.NewProjectionUseCase(fakeResolver{projectionLedger()}, appanalytics.Options{Clock: clock})

	_, err := uc.BuildProjection(context.Background(), "pereira", last30(), false)
	assert.ErrorIs(t, err, domain.ErrUnknownSede)
}

func TestBuildProjection_FalloDelLedgerSinResultadoParcial(t *testing.T) {
	ledger := projectionLedger()
	ledger.failOn = "CurrentStock"
	ledger.err = errors.New("conexión rechazada")
	uc := appanalytics.NewProjectionUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	report, err := uc.BuildProjection(context.Background(), "ladorada", last30(), false)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.NotErrorIs(t, err, domain.ErrTimeout)
	assert.Contains(t, err.Error(), "conexión rechazada")
}

func TestBuildProjection_TiempoAgotado(t *testing.T) {
	ledger := projectionLedger()
	ledger.delay = time.Second
	uc := appanalytics.NewProjectionUseCase(fakeResolver{ledger}, appanalytics.Options{
		Clock:        clock,
		QueryTimeout: 20 * time.Millisecond,
	})

	_, err := uc.BuildProjection(context.Background(), "ladorada", last30(), false)
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.NotErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestBuildProjection_ConsultasEnParalelo(t *testing.T) {
	ledger := projectionLedger()
	ledger.delay = 100 * time.Millisecond
	uc := appanalytics.NewProjectionUseCase(fakeResolver{ledger}, appanalytics.Options{Clock: clock})

	start := time.Now()
	_, err := uc.BuildProjection(context.Background(), "ladorada", last30(), false)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 280*time.Millisecond, "las tres consultas deben solaparse")
	assert.ElementsMatch(t, []string{"PurchaseFacts", "SalesSinceFirstPurchase", "CurrentStock"}, ledger.calls)
}
