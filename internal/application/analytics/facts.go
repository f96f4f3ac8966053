package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/analitica-sedes/internal/domain"
	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

// mergeFacts completa los hechos de compra con ventas y stock.
// Con ignoreStock el stock se fuerza a 0 y el mapa de stock puede ser nil.
// Sin ventas, la última venta toma la última compra y el precio promedio el precio detal.
func mergeFacts(
	purchases []entity.ProductActivityFacts,
	sales map[string]repository.SaleFacts,
	stock map[string]int64,
	ignoreStock bool,
) []entity.ProductActivityFacts {
	out := make([]entity.ProductActivityFacts, 0, len(purchases))
	for _, f := range purchases {
		if s, ok := sales[f.ID]; ok {
			f.SoldQuantitySinceFirstPurchase = s.SoldQuantity
			f.SaleCount = s.SaleCount
			f.FirstSaleSinceFirstPurchase = s.FirstSaleAt
			f.LastSaleAt = s.LastSaleAt
			f.AverageSalePrice = s.AverageSalePrice
		}
		if f.SoldQuantitySinceFirstPurchase == 0 {
			if f.LastSaleAt.IsZero() {
				f.LastSaleAt = f.LastPurchaseAt
			}
			f.AverageSalePrice = f.RetailPrice
		}
		if !ignoreStock {
			f.CurrentStock = stock[f.ID]
		}
		out = append(out, f)
	}
	return out
}

// computeAll aplica el calculador a cada producto. Las filas inválidas se registran y se omiten.
func computeAll(
	ctx context.Context,
	report, sede string,
	facts []entity.ProductActivityFacts,
	ignoreStock bool,
	now time.Time,
) []entity.ProductMetrics {
	out := make([]entity.ProductMetrics, 0, len(facts))
	for _, f := range facts {
		m, err := calc.ComputeMetrics(f, ignoreStock, now)
		if err != nil {
			skipRow(ctx, report, sede, err)
			continue
		}
		out = append(out, entity.ProductMetrics{ProductActivityFacts: f, DerivedMetrics: m, IgnoreStock: ignoreStock})
	}
	return out
}

func urgencyCounts(items []entity.ProductMetrics) map[entity.UrgencyTier]int {
	tiers := make([]entity.UrgencyTier, len(items))
	for i, it := range items {
		tiers[i] = it.Urgency
	}
	return calc.CountUrgency(tiers)
}

func errInvalidRow(name string) error {
	return fmt.Errorf("%w: producto %q", domain.ErrInvalidFacts, name)
}
