package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/analitica-sedes/internal/domain"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

// ProviderQuery alcance del análisis de recompra.
type ProviderQuery struct {
	ProviderID  string   // ignorado si All
	All         bool     // todos los proveedores
	InvoiceIDs  []string // vacío = todas las facturas
	IgnoreStock bool
	DaysFilter  int // 0 = todo el historial
}

// ProviderAnalysisReport análisis de recompra de un proveedor o de todos.
type ProviderAnalysisReport struct {
	Sede          string
	Query         ProviderQuery
	Since         *time.Time // inicio derivado de DaysFilter
	Items         []entity.ProductMetrics
	UrgencyCounts map[entity.UrgencyTier]int
	GeneratedAt   time.Time
}

// ProviderUseCase análisis de recompra por proveedor y listados de apoyo
// (proveedores, facturas).
type ProviderUseCase struct {
	base
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(ledgers repository.LedgerResolver, opts Options) *ProviderUseCase {
	return &ProviderUseCase{base: newBase(ledgers, opts)}
}

// BuildProviderAnalysis aplica el mismo cálculo de la proyección sobre los productos
// comprados al proveedor (o a todos), opcionalmente restringido a facturas y a los
// últimos DaysFilter días. A diferencia de la proyección no se descartan productos sin
// ventas. Orden: vendido descendente y luego nombre.
func (uc *ProviderUseCase) BuildProviderAnalysis(
	ctx context.Context,
	sede string,
	q ProviderQuery,
) (*ProviderAnalysisReport, error) {
	if !q.All && q.ProviderID == "" {
		return nil, fmt.Errorf("%w: proveedor_id requerido (o \"todos\")", domain.ErrInvalidInput)
	}
	if q.DaysFilter < 0 {
		return nil, fmt.Errorf("%w: filtro_dias no puede ser negativo", domain.ErrInvalidInput)
	}
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	scope := repository.PurchaseScope{InvoiceIDs: q.InvoiceIDs}
	if !q.All {
		scope.ProviderID = q.ProviderID
	}
	report := &ProviderAnalysisReport{Sede: sede, Query: q, GeneratedAt: now}
	if q.DaysFilter > 0 {
		since := now.AddDate(0, 0, -q.DaysFilter)
		scope.Start = since
		report.Since = &since
	}

	var (
		purchases []entity.ProductActivityFacts
		sales     map[string]repository.SaleFacts
		stock     map[string]int64
	)
	queries := []func(context.Context) error{
		func(ctx context.Context) (err error) {
			purchases, err = ledger.PurchaseFacts(ctx, scope)
			return err
		},
		func(ctx context.Context) (err error) {
			sales, err = ledger.SalesSinceFirstPurchase(ctx, scope)
			return err
		},
	}
	if !q.IgnoreStock {
		queries = append(queries, func(ctx context.Context) (err error) {
			stock, err = ledger.CurrentStock(ctx)
			return err
		})
	}
	if err := uc.fetch(ctx, "analytics.BuildProviderAnalysis", queries...); err != nil {
		return nil, err
	}

	facts := mergeFacts(purchases, sales, stock, q.IgnoreStock)
	report.Items = computeAll(ctx, "recompra-proveedor", sede, facts, q.IgnoreStock, now)

	col := nameCollator()
	slices.SortStableFunc(report.Items, func(a, b entity.ProductMetrics) int {
		if c := cmp.Compare(b.SoldQuantitySinceFirstPurchase, a.SoldQuantitySinceFirstPurchase); c != 0 {
			return c
		}
		return col.CompareString(a.Name, b.Name)
	})
	report.UrgencyCounts = urgencyCounts(report.Items)
	return report, nil
}

// ListProviders proveedores con compras en la sede.
func (uc *ProviderUseCase) ListProviders(ctx context.Context, sede string) ([]entity.Provider, error) {
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}
	var out []entity.Provider
	err = uc.fetch(ctx, "analytics.ListProviders", func(ctx context.Context) (err error) {
		out, err = ledger.Providers(ctx)
		return err
	})
	return out, err
}

// ListProviderInvoices facturas de compra de un proveedor.
func (uc *ProviderUseCase) ListProviderInvoices(ctx context.Context, sede, providerID string) ([]entity.PurchaseInvoice, error) {
	if providerID == "" {
		return nil, fmt.Errorf("%w: proveedor requerido", domain.ErrInvalidInput)
	}
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}
	var out []entity.PurchaseInvoice
	err = uc.fetch(ctx, "analytics.ListProviderInvoices", func(ctx context.Context) (err error) {
		out, err = ledger.ProviderInvoices(ctx, providerID)
		return err
	})
	return out, err
}

// ListInvoices todas las facturas de compra de la sede.
func (uc *ProviderUseCase) ListInvoices(ctx context.Context, sede string) ([]entity.PurchaseInvoice, error) {
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}
	var out []entity.PurchaseInvoice
	err = uc.fetch(ctx, "analytics.ListInvoices", func(ctx context.Context) (err error) {
		out, err = ledger.Invoices(ctx)
		return err
	})
	return out, err
}
