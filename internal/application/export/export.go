// Package export convierte los reportes de analítica en hojas tabulares (una hoja de datos y
// una de resumen) que los adaptadores de infraestructura serializan a XLSX o PDF.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/analitica-sedes/internal/domain"
)

// Format formato de archivo de salida.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat valida el formato solicitado; vacío equivale a xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX, "excel":
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: formato %q no soportado (xlsx, pdf)", domain.ErrInvalidInput, s)
}

// SummaryRow par etiqueta/valor de la hoja de resumen.
type SummaryRow struct {
	Label string
	Value string
}

// Sheet reporte listo para serializar. Las celdas conservan su tipo (int64, float64,
// decimal.Decimal, time.Time, string) para que el adaptador decida el formato.
type Sheet struct {
	ReportType string // proyeccion-compras, productos-sin-movimiento, ...
	Sede       string
	Title      string
	Headers    []string
	Rows       [][]any
	Summary    []SummaryRow
	CreatedAt  time.Time
}

// SheetWriter serializa una hoja en un formato concreto.
type SheetWriter interface {
	Format() Format
	ContentType() string
	Write(w io.Writer, s Sheet) error
}

// Service selecciona el SheetWriter según el formato pedido.
type Service struct {
	writers map[Format]SheetWriter
}

// NewService registra los writers disponibles.
func NewService(writers ...SheetWriter) *Service {
	s := &Service{writers: make(map[Format]SheetWriter, len(writers))}
	for _, w := range writers {
		s.writers[w.Format()] = w
	}
	return s
}

// Writer devuelve el writer del formato o domain.ErrInvalidInput si no está registrado.
func (s *Service) Writer(f Format) (SheetWriter, error) {
	w, ok := s.writers[f]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no disponible", domain.ErrInvalidInput, f)
	}
	return w, nil
}

// FileName nombre de descarga: {reportType}_{sede}_{YYYY-MM-DD}.{ext}
func FileName(s Sheet, f Format) string {
	return fmt.Sprintf("%s_%s_%s.%s", s.ReportType, s.Sede, s.CreatedAt.Format(time.DateOnly), f)
}

// Text representación textual de una celda (PDF, resumen).
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case decimal.Decimal:
		return x.StringFixed(2)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.DateOnly)
	case *time.Time:
		if x == nil {
			return ""
		}
		return Text(*x)
	case *int:
		if x == nil {
			return ""
		}
		return strconv.Itoa(*x)
	}
	return fmt.Sprint(v)
}
