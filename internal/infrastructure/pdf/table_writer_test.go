package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/analitica-sedes/internal/application/export"
	"github.com/jhoicas/analitica-sedes/internal/infrastructure/pdf"
)

func TestTableWriter_GeneraPDF(t *testing.T) {
	doi := 5
	s := export.Sheet{
		ReportType: export.ReportTopSellers,
		Sede:       "manizales",
		Title:      "Productos más vendidos",
		Headers:    []string{"Posición", "Producto", "Cantidad", "Valor", "Días de inventario"},
		Rows: [][]any{
			{1, "Olla", int64(8), decimal.NewFromInt(80000), &doi},
			{2, "Sartén", int64(3), decimal.NewFromInt(45000)},
		},
		Summary: []export.SummaryRow{
			{Label: "Sede", Value: "manizales"},
			{Label: "Registros", Value: "2"},
			{Label: "Ordenado por", Value: "Cantidad"},
		},
		CreatedAt: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := pdf.NewTableWriter()
	require.NoError(t, w.Write(&buf, s))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, "application/pdf", w.ContentType())
}

func TestTableWriter_SinFilas(t *testing.T) {
	var buf bytes.Buffer
	err := pdf.NewTableWriter().Write(&buf, export.Sheet{Title: "Vacío", Headers: []string{"Producto"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
