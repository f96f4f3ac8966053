package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/application/dto"
	"github.com/jhoicas/analitica-sedes/internal/domain"
	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
)

const dateLayout = "2006-01-02"

// RangeParser traduce los parámetros de consulta a un rango de análisis.
type RangeParser struct {
	Location    *time.Location   // zona de fecha_inicio / fecha_fin; nil = UTC
	AllowedDays []int            // vacío = calc.DefaultAllowedDays
	DefaultDays int              // rango cuando no se envía "rango"; 0 = 30
	Now         func() time.Time // nil = time.Now
}

// Resolve valida modo, rango y fechas. fecha_fin es inclusiva: el rango termina al inicio
// del día siguiente.
func (p RangeParser) Resolve(q dto.ReportQuery) (calc.DateRange, error) {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	spec := calc.RangeSpec{Mode: strings.ToLower(strings.TrimSpace(q.Mode)), Allowed: p.AllowedDays}

	if calc.NormalizeMode(spec.Mode) == calc.ModeCustom {
		start, err := parseDate("fecha_inicio", q.Start, loc)
		if err != nil {
			return calc.DateRange{}, err
		}
		end, err := parseDate("fecha_fin", q.End, loc)
		if err != nil {
			return calc.DateRange{}, err
		}
		if start != nil && end != nil {
			if start.After(*end) {
				return calc.DateRange{}, &domain.RangeError{Param: "fecha_inicio", Reason: "no puede ser posterior a fecha_fin"}
			}
			next := end.AddDate(0, 0, 1)
			end = &next
		}
		spec.Start, spec.End = start, end
		return calc.ResolveRange(spec, now().In(loc))
	}

	spec.PredefinedDays = p.DefaultDays
	if spec.PredefinedDays == 0 {
		spec.PredefinedDays = 30
	}
	if raw := strings.TrimSpace(q.Range); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return calc.DateRange{}, &domain.RangeError{Param: "rango", Reason: fmt.Sprintf("%q no es un número de días", raw)}
		}
		spec.PredefinedDays = days
	}
	return calc.ResolveRange(spec, now().In(loc))
}

// parseDate nil si el valor viene vacío (ResolveRange informa el faltante).
func parseDate(param, raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil, &domain.RangeError{Param: param, Reason: fmt.Sprintf("%q no tiene el formato YYYY-MM-DD", raw)}
	}
	return &t, nil
}

// providerQuery arma el alcance del análisis por proveedor.
func providerQuery(q dto.ReportQuery) (appanalytics.ProviderQuery, error) {
	out := appanalytics.ProviderQuery{IgnoreStock: q.IgnoreStock}

	provider := strings.TrimSpace(q.ProviderID)
	if strings.EqualFold(provider, dto.AllProviders) {
		out.All = true
	} else {
		out.ProviderID = provider
	}

	for _, id := range strings.Split(q.InvoiceIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out.InvoiceIDs = append(out.InvoiceIDs, id)
		}
	}

	days := strings.TrimSpace(q.DaysFilter)
	if days != "" && !strings.EqualFold(days, dto.AllProviders) {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return out, fmt.Errorf("%w: filtro_dias debe ser un número de días o %q", domain.ErrInvalidInput, dto.AllProviders)
		}
		out.DaysFilter = n
	}
	return out, nil
}

// rankBy vacío equivale a cantidad.
func rankBy(raw string) (appanalytics.RankBy, error) {
	if strings.TrimSpace(raw) == "" {
		return appanalytics.RankByQuantity, nil
	}
	return appanalytics.ParseRankBy(raw)
}
