// Package analytics contiene los cálculos puros de la analítica de inventario:
// resolución del rango de análisis, métricas por producto, obsolescencia y ranking.
// Ninguna función accede a la base de datos; el reloj se recibe como parámetro.
package analytics

import (
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/analitica-sedes/internal/domain"
)

// Modos de rango aceptados (con alias en español usados por el frontend).
const (
	ModePredefined = "predefined"
	ModeCustom     = "custom"
)

// DefaultAllowedDays rangos predefinidos permitidos si la configuración no define otros.
var DefaultAllowedDays = []int{15, 30, 60, 90}

// RangeSpec configuración de rango enviada por la capa de presentación.
type RangeSpec struct {
	Mode           string
	PredefinedDays int
	Start          *time.Time
	End            *time.Time
	Allowed        []int // vacío = DefaultAllowedDays
}

// DateRange ventana de análisis [Start, End).
type DateRange struct {
	Start          time.Time
	End            time.Time
	Mode           string
	PredefinedDays int // 0 en modo custom
}

// Days número de días calendario de la ventana (mínimo 1), contados en la zona de Start.
func (r DateRange) Days() int {
	if r.PredefinedDays > 0 {
		return r.PredefinedDays
	}
	return max(1, calendarDays(r.Start, r.End))
}

// NormalizeMode traduce los alias del frontend; cadena vacía equivale a predefinido.
func NormalizeMode(mode string) string {
	switch mode {
	case "", ModePredefined, "predefinido":
		return ModePredefined
	case ModeCustom, "personalizado":
		return ModeCustom
	}
	return mode
}

// ResolveRange convierte la configuración de rango en una ventana concreta.
// En modo custom se rechaza start > end.
func ResolveRange(spec RangeSpec, now time.Time) (DateRange, error) {
	switch NormalizeMode(spec.Mode) {
	case ModeCustom:
		if spec.Start == nil {
			return DateRange{}, &domain.RangeError{Param: "fecha_inicio", Reason: "requerida para rango personalizado"}
		}
		if spec.End == nil {
			return DateRange{}, &domain.RangeError{Param: "fecha_fin", Reason: "requerida para rango personalizado"}
		}
		if spec.Start.After(*spec.End) {
			return DateRange{}, &domain.RangeError{Param: "fecha_inicio", Reason: "no puede ser posterior a fecha_fin"}
		}
		return DateRange{Start: *spec.Start, End: *spec.End, Mode: ModeCustom}, nil

	case ModePredefined:
		allowed := spec.Allowed
		if len(allowed) == 0 {
			allowed = DefaultAllowedDays
		}
		if !slices.Contains(allowed, spec.PredefinedDays) {
			return DateRange{}, &domain.RangeError{
				Param:  "rango",
				Reason: fmt.Sprintf("debe ser uno de %v días (recibido %d)", allowed, spec.PredefinedDays),
			}
		}
		return DateRange{
			Start:          now.AddDate(0, 0, -spec.PredefinedDays),
			End:            now,
			Mode:           ModePredefined,
			PredefinedDays: spec.PredefinedDays,
		}, nil
	}
	return DateRange{}, &domain.RangeError{Param: "modo", Reason: fmt.Sprintf("modo %q no soportado", spec.Mode)}
}
