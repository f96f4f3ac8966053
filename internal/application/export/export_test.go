package export_test

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/application/export"
	"github.com/jhoicas/analitica-sedes/internal/domain"
	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

var generado = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]export.Format{"": export.FormatXLSX, "XLSX": export.FormatXLSX, "excel": export.FormatXLSX, " pdf ": export.FormatPDF} {
		got, err := export.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := export.ParseFormat("csv")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestFileName(t *testing.T) {
	s := export.Sheet{ReportType: export.ReportTopSellers, Sede: "manizales", CreatedAt: generado}
	assert.Equal(t, "mas-vendidos_manizales_2025-06-15.pdf", export.FileName(s, export.FormatPDF))
}

func TestText(t *testing.T) {
	doi := 12
	var sinDOI *int
	fecha := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "12", export.Text(&doi))
	assert.Equal(t, "", export.Text(sinDOI))
	assert.Equal(t, "2025-01-02", export.Text(fecha))
	assert.Equal(t, "", export.Text(time.Time{}))
	assert.Equal(t, "1500.50", export.Text(decimal.RequireFromString("1500.5")))
	assert.Equal(t, "0.33", export.Text(1.0/3))
	assert.Equal(t, "-4", export.Text(int64(-4)))
}

type xlsxStub struct{}

func (xlsxStub) Format() export.Format                { return export.FormatXLSX }
func (xlsxStub) ContentType() string                  { return "application/x-test" }
func (xlsxStub) Write(io.Writer, export.Sheet) error { return nil }

func TestService_Writer(t *testing.T) {
	svc := export.NewService(xlsxStub{})

	w, err := svc.Writer(export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, w.Format())

	_, err = svc.Writer(export.FormatPDF)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func resumen(s export.Sheet) map[string]string {
	out := make(map[string]string, len(s.Summary))
	for _, r := range s.Summary {
		out[r.Label] = r.Value
	}
	return out
}

func TestProjectionSheet(t *testing.T) {
	doi := 5
	item := entity.ProductMetrics{
		ProductActivityFacts: entity.ProductActivityFacts{
			ProductInfo:  entity.ProductInfo{ID: "1", Name: "Vaso", SKU: "V-1", InternalCode: "100"},
			CurrentStock: 10,
		},
		DerivedMetrics: entity.DerivedMetrics{DaysOfInventoryRemaining: &doi, Urgency: entity.UrgencyCritical},
	}
	rng := calc.DateRange{
		Start: time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Mode: calc.ModePredefined, PredefinedDays: 30,
	}
	s := export.ProjectionSheet(&appanalytics.ProjectionReport{
		Sede: "ladorada", Range: rng, Items: []entity.ProductMetrics{item},
		UrgencyCounts: map[entity.UrgencyTier]int{entity.UrgencyCritical: 1},
		GeneratedAt:   generado,
	})

	assert.Equal(t, export.ReportProjection, s.ReportType)
	require.Len(t, s.Rows, 1)
	assert.Len(t, s.Rows[0], len(s.Headers))
	assert.Equal(t, "Vaso", s.Rows[0][2])
	assert.Equal(t, int64(10), s.Rows[0][4])
	assert.Equal(t, 5, s.Rows[0][14])
	assert.Equal(t, "CRÍTICO", s.Rows[0][len(s.Rows[0])-1])

	r := resumen(s)
	assert.Equal(t, "1", r["Registros"])
	assert.Equal(t, "30", r["Días analizados"])
	assert.Equal(t, "No", r["Ignorar stock"])
	assert.Equal(t, "1", r["Urgencia CRÍTICO"])
	assert.Equal(t, "0", r["Urgencia OK"])
}

func TestProjectionSheet_IgnorarStock(t *testing.T) {
	item := entity.ProductMetrics{
		DerivedMetrics: entity.DerivedMetrics{Urgency: entity.UrgencyHistorical},
		IgnoreStock:    true,
	}
	s := export.ProjectionSheet(&appanalytics.ProjectionReport{
		Sede: "ladorada", IgnoreStock: true, Items: []entity.ProductMetrics{item}, GeneratedAt: generado,
	})

	assert.Equal(t, "N/A", s.Rows[0][4])
	assert.Equal(t, "N/A", s.Rows[0][14])
	assert.Equal(t, "Sí", resumen(s)["Ignorar stock"])
}

func TestInactivitySheet(t *testing.T) {
	s := export.InactivitySheet(&appanalytics.InactivityReport{
		Sede: "manizales",
		Items: []entity.InactivityRecord{{
			ProductInfo:        entity.ProductInfo{ID: "2", Name: "Plato"},
			CurrentStock:       3,
			DaysInactive:       120,
			Tier:               entity.TierVeryObsolete,
			Reasons:            []entity.InactivityReason{entity.ReasonNoSales, entity.ReasonNoPurchases},
			ObsoleteStockValue: decimal.NewFromInt(30000),
		}},
		TierCounts:         map[entity.ObsolescenceTier]int{entity.TierVeryObsolete: 1},
		TotalObsoleteValue: decimal.NewFromInt(30000),
		GeneratedAt:        generado,
	})

	require.Len(t, s.Rows, 1)
	assert.Len(t, s.Rows[0], len(s.Headers))
	assert.Equal(t, "Sin ventas, Sin compras", s.Rows[0][11])
	assert.Equal(t, "MUY OBSOLETO", s.Rows[0][10])

	r := resumen(s)
	assert.Equal(t, "30000.00", r["Valor stock obsoleto"])
	assert.Equal(t, "1", r["Nivel MUY OBSOLETO"])
	assert.Equal(t, "0", r["Nivel ACTIVO"])
}

func TestTopSellersSheet(t *testing.T) {
	s := export.TopSellersSheet(&appanalytics.TopSellersReport{
		Sede:   "ladorada",
		RankBy: appanalytics.RankByValue,
		Items: []entity.RankedProduct{{
			SaleRangeAggregate: entity.SaleRangeAggregate{ProductInfo: entity.ProductInfo{Name: "Olla"}, QuantitySold: 8},
			Rank:               1,
		}},
		TotalQuantity: 8,
		TotalValue:    decimal.NewFromInt(80000),
		GeneratedAt:   generado,
	})

	require.Len(t, s.Rows, 1)
	assert.Len(t, s.Rows[0], len(s.Headers))
	assert.Equal(t, 1, s.Rows[0][0])
	assert.Equal(t, "Valor", resumen(s)["Ordenado por"])
	assert.Equal(t, "8", resumen(s)["Unidades vendidas"])
}

func TestProviderAnalysisSheet_Filtros(t *testing.T) {
	s := export.ProviderAnalysisSheet(&appanalytics.ProviderAnalysisReport{
		Sede:        "ladorada",
		Query:       appanalytics.ProviderQuery{All: true, InvoiceIDs: []string{"7", "9"}, DaysFilter: 60},
		GeneratedAt: generado,
	})

	r := resumen(s)
	assert.Equal(t, "Todos", r["Proveedor"])
	assert.Equal(t, "7, 9", r["Facturas"])
	assert.Equal(t, "60 días", r["Filtro de días"])
	assert.Equal(t, "0", r["Registros"])
	assert.Equal(t, "recompra-proveedor_ladorada_2025-06-15.xlsx", export.FileName(s, export.FormatXLSX))
}
