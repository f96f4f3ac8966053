package analytics

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

// InactivityReport productos con stock sin movimiento desde el corte.
type InactivityReport struct {
	Sede               string
	Range              calc.DateRange
	Cutoff             time.Time
	Items              []entity.InactivityRecord
	TierCounts         map[entity.ObsolescenceTier]int
	TotalObsoleteValue decimal.Decimal
	GeneratedAt        time.Time
}

// ObsolescenceUseCase arma el reporte de productos sin movimiento.
type ObsolescenceUseCase struct {
	base
}

// NewObsolescenceUseCase construye el caso de uso.
func NewObsolescenceUseCase(ledgers repository.LedgerResolver, opts Options) *ObsolescenceUseCase {
	return &ObsolescenceUseCase{base: newBase(ledgers, opts)}
}

// BuildInactivityReport cruza los productos con stock con sus últimas fechas de venta,
// traslado y compra. El corte es el inicio del rango: para rangos predefinidos equivale a
// hoy - días. Ordenado por stock descendente y luego por nombre.
func (uc *ObsolescenceUseCase) BuildInactivityReport(
	ctx context.Context,
	sede string,
	rng calc.DateRange,
) (*InactivityReport, error) {
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}

	var (
		products                          []entity.StockedProduct
		lastSale, lastTransfer, lastPurch map[string]time.Time
	)
	lastActivity := func(kind repository.ActivityKind, dst *map[string]time.Time) func(context.Context) error {
		return func(ctx context.Context) (err error) {
			*dst, err = ledger.LastActivity(ctx, kind)
			return err
		}
	}
	err = uc.fetch(ctx, "analytics.BuildInactivityReport",
		func(ctx context.Context) (err error) {
			products, err = ledger.StockedProducts(ctx)
			return err
		},
		lastActivity(repository.ActivitySale, &lastSale),
		lastActivity(repository.ActivityTransfer, &lastTransfer),
		lastActivity(repository.ActivityPurchase, &lastPurch),
	)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	cutoff := now.AddDate(0, 0, -rng.Days())
	report := &InactivityReport{
		Sede:               sede,
		Range:              rng,
		Cutoff:             cutoff,
		Items:              []entity.InactivityRecord{},
		TotalObsoleteValue: decimal.Zero,
		GeneratedAt:        now,
	}

	for _, p := range products {
		if p.ID == "" {
			skipRow(ctx, "productos-sin-movimiento", sede, errInvalidRow(p.Name))
			continue
		}
		dates := calc.ActivityDates{
			LastSaleAt:     lastSale[p.ID],
			LastTransferAt: lastTransfer[p.ID],
			LastPurchaseAt: lastPurch[p.ID],
		}
		rec, ok := calc.BuildInactivity(p, dates, cutoff, now)
		if !ok {
			continue
		}
		report.Items = append(report.Items, rec)
		report.TotalObsoleteValue = report.TotalObsoleteValue.Add(rec.ObsoleteStockValue)
	}

	col := nameCollator()
	slices.SortStableFunc(report.Items, func(a, b entity.InactivityRecord) int {
		if c := cmp.Compare(b.CurrentStock, a.CurrentStock); c != 0 {
			return c
		}
		return col.CompareString(a.Name, b.Name)
	})

	report.TierCounts = make(map[entity.ObsolescenceTier]int, len(entity.ObsolescenceTiers))
	for _, t := range entity.ObsolescenceTiers {
		report.TierCounts[t] = 0
	}
	for _, rec := range report.Items {
		report.TierCounts[rec.Tier]++
	}
	return report, nil
}
