package analytics

import (
	"context"
	"slices"
	"time"

	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

// ProjectionReport proyección de compras de una sede.
type ProjectionReport struct {
	Sede          string
	Range         calc.DateRange
	IgnoreStock   bool
	Items         []entity.ProductMetrics
	UrgencyCounts map[entity.UrgencyTier]int
	GeneratedAt   time.Time
}

// ProjectionUseCase arma la proyección de compras: productos comprados en el rango que
// registran ventas desde su primera compra.
type ProjectionUseCase struct {
	base
}

// NewProjectionUseCase construye el caso de uso.
func NewProjectionUseCase(ledgers repository.LedgerResolver, opts Options) *ProjectionUseCase {
	return &ProjectionUseCase{base: newBase(ledgers, opts)}
}

// BuildProjection consulta en paralelo:
//  1. compras del rango agregadas por producto
//  2. ventas desde la primera compra del rango (sin límite superior)
//  3. stock actual
//
// Los productos sin ventas se descartan. Resultado ordenado por nombre.
func (uc *ProjectionUseCase) BuildProjection(
	ctx context.Context,
	sede string,
	rng calc.DateRange,
	ignoreStock bool,
) (*ProjectionReport, error) {
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}

	scope := repository.PurchaseScope{Start: rng.Start, End: rng.End}
	var (
		purchases []entity.ProductActivityFacts
		sales     map[string]repository.SaleFacts
		stock     map[string]int64
	)
	err = uc.fetch(ctx, "analytics.BuildProjection",
		func(ctx context.Context) (err error) {
			purchases, err = ledger.PurchaseFacts(ctx, scope)
			return err
		},
		func(ctx context.Context) (err error) {
			sales, err = ledger.SalesSinceFirstPurchase(ctx, scope)
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

	now := uc.now()
	facts := slices.DeleteFunc(mergeFacts(purchases, sales, stock, ignoreStock),
		func(f entity.ProductActivityFacts) bool { return f.SoldQuantitySinceFirstPurchase == 0 })
	items := computeAll(ctx, "proyeccion-compras", sede, facts, ignoreStock, now)

	col := nameCollator()
	slices.SortStableFunc(items, func(a, b entity.ProductMetrics) int {
		return col.CompareString(a.Name, b.Name)
	})

	return &ProjectionReport{
		Sede:          sede,
		Range:         rng,
		IgnoreStock:   ignoreStock,
		Items:         items,
		UrgencyCounts: urgencyCounts(items),
		GeneratedAt:   now,
	}, nil
}
