// Package excel serializa hojas de reporte a XLSX con excelize.
package excel

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/analitica-sedes/internal/application/export"
)

// Nombres de las hojas del libro.
const (
	DataSheet    = "Datos"
	SummarySheet = "Resumen"
)

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Writer implementa export.SheetWriter para XLSX.
type Writer struct{}

// NewWriter construye el writer.
func NewWriter() *Writer { return &Writer{} }

func (*Writer) Format() export.Format { return export.FormatXLSX }
func (*Writer) ContentType() string   { return contentType }

// Write genera el libro con la hoja de datos (cabecera fija) y la hoja de resumen.
func (w *Writer) Write(out io.Writer, s export.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("excel: crear hoja resumen: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := writeData(f, st, s); err != nil {
		return err
	}
	if err := writeSummary(f, st, s); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("excel: escribir libro: %w", err)
	}
	return nil
}

type styles struct {
	header int
	date   int
	money  int
	label  int
}

func newStyles(f *excelize.File) (styles, error) {
	dateFmt := "yyyy-mm-dd"
	moneyFmt := "#,##0.00"

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return styles{}, fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return styles{}, fmt.Errorf("excel: estilo fecha: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return styles{}, fmt.Errorf("excel: estilo moneda: %w", err)
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles{}, fmt.Errorf("excel: estilo etiqueta: %w", err)
	}
	return styles{header: header, date: date, money: money, label: label}, nil
}

func writeData(f *excelize.File, st styles, s export.Sheet) error {
	for i, h := range s.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(DataSheet, cell, h); err != nil {
			return fmt.Errorf("excel: cabecera %s: %w", cell, err)
		}
	}
	if len(s.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(s.Headers), 1)
		if err := f.SetCellStyle(DataSheet, "A1", last, st.header); err != nil {
			return fmt.Errorf("excel: estilo cabecera: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(s.Headers))
		if err := f.SetColWidth(DataSheet, "A", lastCol, 16); err != nil {
			return fmt.Errorf("excel: ancho columnas: %w", err)
		}
		if err := f.SetPanes(DataSheet, &excelize.Panes{
			Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
		}); err != nil {
			return fmt.Errorf("excel: fijar cabecera: %w", err)
		}
	}

	for r, values := range s.Rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			value, style := cellValue(v, st)
			if err := f.SetCellValue(DataSheet, cell, value); err != nil {
				return fmt.Errorf("excel: celda %s: %w", cell, err)
			}
			if style != 0 {
				if err := f.SetCellStyle(DataSheet, cell, cell, style); err != nil {
					return fmt.Errorf("excel: estilo %s: %w", cell, err)
				}
			}
		}
	}
	return nil
}

func writeSummary(f *excelize.File, st styles, s export.Sheet) error {
	if err := f.SetCellValue(SummarySheet, "A1", s.Title); err != nil {
		return fmt.Errorf("excel: título: %w", err)
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A1", st.label); err != nil {
		return fmt.Errorf("excel: estilo título: %w", err)
	}
	for i, row := range s.Summary {
		n := i + 3
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", n), row.Label); err != nil {
			return fmt.Errorf("excel: resumen: %w", err)
		}
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", n), row.Value); err != nil {
			return fmt.Errorf("excel: resumen: %w", err)
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 28); err != nil {
		return fmt.Errorf("excel: ancho resumen: %w", err)
	}
	return f.SetColWidth(SummarySheet, "B", "B", 40)
}

// cellValue adapta el valor al tipo que excelize sabe escribir y elige su estilo.
// Fechas cero y punteros nil quedan como celda vacía.
func cellValue(v any, st styles) (any, int) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64(), st.money
	case time.Time:
		if x.IsZero() {
			return "", 0
		}
		return x, st.date
	case *time.Time:
		if x == nil {
			return "", 0
		}
		return cellValue(*x, st)
	case *int:
		if x == nil {
			return "", 0
		}
		return *x, 0
	}
	return v, 0
}
