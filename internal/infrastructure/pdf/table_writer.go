// Package pdf genera la versión PDF de los reportes con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO + Sede                        │  Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: etiqueta / valor (filtros, conteos, totales)       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por cabecera del reporte                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/analitica-sedes/internal/application/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Writer ────────────────────────────────────────────────────────────────────

// TableWriter implementa export.SheetWriter usando Maroto v2.
type TableWriter struct{}

// NewTableWriter construye el writer.
func NewTableWriter() *TableWriter { return &TableWriter{} }

func (*TableWriter) Format() export.Format { return export.FormatPDF }
func (*TableWriter) ContentType() string   { return "application/pdf" }

// Write genera el PDF y lo copia en w.
func (g *TableWriter) Write(w io.Writer, s export.Sheet) error {
	cols := max(len(s.Headers), 4)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(cols).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 6}).
		WithTitle(s.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(s, cols))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(s.Summary, cols)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(s.Headers) > 0 {
		m.AddRows(tableHeaderRow(s.Headers))
		m.AddRows(tableRows(s.Rows, len(s.Headers))...)
	}
	if len(s.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(cols).Add(
			text.New("Sin registros para los filtros seleccionados.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título + sede (izq) y fecha de generación (der).
func titleRow(s export.Sheet, cols int) core.Row {
	right := max(cols/3, 1)
	return row.New(14).Add(
		col.New(cols-right).Add(
			text.New(s.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sede: "+s.Sede, props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(right).Add(
			text.New("Generado: "+s.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRows: pares etiqueta/valor en dos bloques por fila.
func summaryRows(summary []export.SummaryRow, cols int) []core.Row {
	half := cols / 2
	labelSize := max(half/2, 1)
	valueSize := half - labelSize

	pair := func(r export.SummaryRow) []core.Col {
		return []core.Col{
			col.New(labelSize).Add(text.New(r.Label+":", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			})),
			col.New(valueSize).Add(text.New(r.Value, props.Text{Size: 7, Top: 1})),
		}
	}

	rows := make([]core.Row, 0, (len(summary)+1)/2)
	for i := 0; i < len(summary); i += 2 {
		cs := pair(summary[i])
		if i+1 < len(summary) {
			cs = append(cs, pair(summary[i+1])...)
		} else {
			cs = append(cs, col.New(cols-half))
		}
		rows = append(rows, row.New(5).Add(cs...))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla con fondo del color primario.
func tableHeaderRow(headers []string) core.Row {
	cs := make([]core.Col, len(headers))
	for i, h := range headers {
		cs[i] = col.New(1).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 6, Align: align.Center,
			Color: colorWhite, Top: 1, Left: 0.5, Right: 0.5,
		}))
	}
	return row.New(9).Add(cs...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con franjas alternas.
func tableRows(values [][]any, width int) []core.Row {
	result := make([]core.Row, 0, len(values))
	for i, v := range values {
		cs := make([]core.Col, width)
		for c := 0; c < width; c++ {
			var cell any
			if c < len(v) {
				cell = v[c]
			}
			cs[c] = col.New(1).Add(text.New(export.Text(cell), props.Text{
				Size: 6, Align: cellAlign(cell), Top: 1, Left: 0.5, Right: 0.5,
			}))
		}
		r := row.New(6).Add(cs...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// cellAlign: cifras a la derecha, texto a la izquierda.
func cellAlign(v any) align.Type {
	switch v.(type) {
	case string, nil:
		return align.Left
	}
	return align.Right
}
