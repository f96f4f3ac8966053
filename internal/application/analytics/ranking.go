package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/analitica-sedes/internal/domain"
	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

// MaxRankedProducts tope de filas del ranking.
const MaxRankedProducts = 100

// RankBy criterio de ordenamiento del ranking.
type RankBy string

const (
	RankByQuantity RankBy = "quantity"
	RankByValue    RankBy = "value"
)

// ParseRankBy acepta los valores en inglés y los alias del frontend (cantidad, valor).
func ParseRankBy(s string) (RankBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quantity", "cantidad":
		return RankByQuantity, nil
	case "value", "valor":
		return RankByValue, nil
	}
	return "", fmt.Errorf("%w: tipo_analisis debe ser cantidad o valor (recibido %q)", domain.ErrInvalidInput, s)
}

// TopSellersReport ranking de productos más vendidos en el rango.
type TopSellersReport struct {
	Sede          string
	Range         calc.DateRange
	RankBy        RankBy
	Items         []entity.RankedProduct
	UrgencyCounts map[entity.UrgencyTier]int
	TotalQuantity int64
	TotalValue    decimal.Decimal
	GeneratedAt   time.Time
}

// RankingUseCase arma el ranking de más vendidos.
type RankingUseCase struct {
	base
}

// NewRankingUseCase construye el caso de uso.
func NewRankingUseCase(ledgers repository.LedgerResolver, opts Options) *RankingUseCase {
	return &RankingUseCase{base: newBase(ledgers, opts)}
}

// BuildTopSellers ventas del rango (filtro duro en ambos extremos) + stock actual.
// Se devuelven como máximo MaxRankedProducts filas con Rank desde 1.
func (uc *RankingUseCase) BuildTopSellers(
	ctx context.Context,
	sede string,
	rng calc.DateRange,
	rankBy RankBy,
) (*TopSellersReport, error) {
	if rankBy != RankByQuantity && rankBy != RankByValue {
		return nil, fmt.Errorf("%w: criterio de ranking %q", domain.ErrInvalidInput, rankBy)
	}
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}

	var (
		sales []entity.SaleRangeAggregate
		stock map[string]int64
	)
	err = uc.fetch(ctx, "analytics.BuildTopSellers",
		func(ctx context.Context) (err error) {
			sales, err = ledger.SalesInRange(ctx, rng.Start, rng.End)
			return err
		},
		func(ctx context.Context) (err error) {
			stock, err = ledger.CurrentStock(ctx)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	valid := make([]entity.SaleRangeAggregate, 0, len(sales))
	for _, s := range sales {
		if s.ID == "" {
			skipRow(ctx, "mas-vendidos", sede, errInvalidRow(s.Name))
			continue
		}
		if s.QuantitySold <= 0 {
			continue
		}
		valid = append(valid, s)
	}

	col := nameCollator()
	slices.SortStableFunc(valid, func(a, b entity.SaleRangeAggregate) int {
		primary, secondary := cmp.Compare(b.QuantitySold, a.QuantitySold), b.TotalSaleValue.Cmp(a.TotalSaleValue)
		if rankBy == RankByValue {
			primary, secondary = secondary, primary
		}
		if primary != 0 {
			return primary
		}
		if secondary != 0 {
			return secondary
		}
		return col.CompareString(a.Name, b.Name)
	})
	if len(valid) > MaxRankedProducts {
		valid = valid[:MaxRankedProducts]
	}

	report := &TopSellersReport{
		Sede:        sede,
		Range:       rng,
		RankBy:      rankBy,
		Items:       make([]entity.RankedProduct, 0, len(valid)),
		TotalValue:  decimal.Zero,
		GeneratedAt: uc.now(),
	}
	tiers := make([]entity.UrgencyTier, 0, len(valid))
	for i, s := range valid {
		r := calc.ComputeRanking(s, stock[s.ID])
		r.Rank = i + 1
		report.Items = append(report.Items, r)
		report.TotalQuantity += s.QuantitySold
		report.TotalValue = report.TotalValue.Add(s.TotalSaleValue)
		tiers = append(tiers, r.Urgency)
	}
	report.UrgencyCounts = calc.CountUrgency(tiers)
	return report, nil
}
