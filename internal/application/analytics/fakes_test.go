package analytics_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/analitica-sedes/internal/domain"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func daysAgo(n int) time.Time { return testNow.AddDate(0, 0, -n) }

// fakeLedger ledger en memoria. delay simula consultas lentas; failOn hace fallar un método.
type fakeLedger struct {
	purchases    []entity.ProductActivityFacts
	sales        map[string]repository.SaleFacts
	stock        map[string]int64
	stocked      []entity.StockedProduct
	last         map[repository.ActivityKind]map[string]time.Time
	salesInRange []entity.SaleRangeAggregate
	providers    []entity.Provider
	invoices     []entity.PurchaseInvoice
	products     []entity.ProductSummary

	delay  time.Duration
	failOn string
	err    error

	mu     sync.Mutex
	scopes []repository.PurchaseScope
	calls  []string
}

func (f *fakeLedger) call(ctx context.Context, name string) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.failOn == name {
		return f.err
	}
	return nil
}

func (f *fakeLedger) recordScope(s repository.PurchaseScope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scopes = append(f.scopes, s)
}

func (f *fakeLedger) PurchaseFacts(ctx context.Context, scope repository.PurchaseScope) ([]entity.ProductActivityFacts, error) {
	f.recordScope(scope)
	if err := f.call(ctx, "PurchaseFacts"); err != nil {
		return nil, err
	}
	var out []entity.ProductActivityFacts
	for _, p := range f.purchases {
		if scope.ProductID == "" || scope.ProductID == p.ID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeLedger) SalesSinceFirstPurchase(ctx context.Context, scope repository.PurchaseScope) (map[string]repository.SaleFacts, error) {
	f.recordScope(scope)
	if err := f.call(ctx, "SalesSinceFirstPurchase"); err != nil {
		return nil, err
	}
	return f.sales, nil
}

func (f *fakeLedger) CurrentStock(ctx context.Context) (map[string]int64, error) {
	if err := f.call(ctx, "CurrentStock"); err != nil {
		return nil, err
	}
	return f.stock, nil
}

func (f *fakeLedger) StockedProducts(ctx context.Context) ([]entity.StockedProduct, error) {
	if err := f.call(ctx, "StockedProducts"); err != nil {
		return nil, err
	}
	return f.stocked, nil
}

func (f *fakeLedger) LastActivity(ctx context.Context, kind repository.ActivityKind) (map[string]time.Time, error) {
	if err := f.call(ctx, "LastActivity:"+string(kind)); err != nil {
		return nil, err
	}
	return f.last[kind], nil
}

func (f *fakeLedger) SalesInRange(ctx context.Context, _, _ time.Time) ([]entity.SaleRangeAggregate, error) {
	if err := f.call(ctx, "SalesInRange"); err != nil {
		return nil, err
	}
	return f.salesInRange, nil
}

func (f *fakeLedger) Providers(ctx context.Context) ([]entity.Provider, error) {
	if err := f.call(ctx, "Providers"); err != nil {
		return nil, err
	}
	return f.providers, nil
}

func (f *fakeLedger) ProviderInvoices(ctx context.Context, _ string) ([]entity.PurchaseInvoice, error) {
	if err := f.call(ctx, "ProviderInvoices"); err != nil {
		return nil, err
	}
	return f.invoices, nil
}

func (f *fakeLedger) Invoices(ctx context.Context) ([]entity.PurchaseInvoice, error) {
	if err := f.call(ctx, "Invoices"); err != nil {
		return nil, err
	}
	return f.invoices, nil
}

func (f *fakeLedger) SearchProducts(ctx context.Context, _ string, _ int) ([]entity.ProductSummary, error) {
	if err := f.call(ctx, "SearchProducts"); err != nil {
		return nil, err
	}
	return f.products, nil
}

// fakeResolver resuelve solo la sede "ladorada".
type fakeResolver struct {
	ledger *fakeLedger
}

func (r fakeResolver) Ledger(sede string) (repository.LedgerRepository, error) {
	if sede != "ladorada" {
		return nil, domain.ErrUnknownSede
	}
	return r.ledger, nil
}

func (r fakeResolver) Sedes() []entity.Sede {
	return []entity.Sede{{Code: "ladorada", Name: "La Dorada", HeadquarterIDs: []int64{6, 3, 2, 5}}}
}

func purchased(id, name string, firstDaysAgo int) entity.ProductActivityFacts {
	return entity.ProductActivityFacts{
		ProductInfo: entity.ProductInfo{
			ID:          id,
			Name:        name,
			CostUnit:    decimal.NewFromInt(1200),
			RetailPrice: decimal.NewFromInt(2000),
		},
		PurchasedQuantityInRange: 50,
		PurchaseInvoiceCount:     1,
		FirstPurchaseAt:          daysAgo(firstDaysAgo),
		LastPurchaseAt:           daysAgo(firstDaysAgo),
	}
}

func sold(id string, qty int64, firstDaysAgo int) repository.SaleFacts {
	return repository.SaleFacts{
		ProductID:    id,
		SoldQuantity: qty,
		SaleCount:    qty,
		FirstSaleAt:  daysAgo(firstDaysAgo),
		LastSaleAt:   daysAgo(0),
	}
}
