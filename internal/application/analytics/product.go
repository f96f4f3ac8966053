package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/analitica-sedes/internal/domain"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

const (
	minSearchTermLen = 2
	searchLimit      = 50
)

// ProductAnalysis métricas de un producto sobre todo su historial de compras.
type ProductAnalysis struct {
	Sede        string
	Item        entity.ProductMetrics
	GeneratedAt time.Time
}

// ProductUseCase validación individual de productos.
type ProductUseCase struct {
	base
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(ledgers repository.LedgerResolver, opts Options) *ProductUseCase {
	return &ProductUseCase{base: newBase(ledgers, opts)}
}

// SearchProducts busca por nombre, SKU o código interno (mínimo 2 caracteres).
func (uc *ProductUseCase) SearchProducts(ctx context.Context, sede, term string) ([]entity.ProductSummary, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < minSearchTermLen {
		return nil, fmt.Errorf("%w: busqueda debe tener al menos %d caracteres", domain.ErrInvalidInput, minSearchTermLen)
	}
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}
	var out []entity.ProductSummary
	err = uc.fetch(ctx, "analytics.SearchProducts", func(ctx context.Context) (err error) {
		out, err = ledger.SearchProducts(ctx, term, searchLimit)
		return err
	})
	return out, err
}

// AnalyzeProduct calcula las métricas de un producto con todas sus compras en la sede.
// domain.ErrNotFound si el producto no tiene compras.
func (uc *ProductUseCase) AnalyzeProduct(ctx context.Context, sede, productID string, ignoreStock bool) (*ProductAnalysis, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	ledger, err := uc.ledger(sede)
	if err != nil {
		return nil, err
	}

	scope := repository.PurchaseScope{ProductID: productID}
	var (
		purchases []entity.ProductActivityFacts
		sales     map[string]repository.SaleFacts
		stock     map[string]int64
	)
	err = uc.fetch(ctx, "analytics.AnalyzeProduct",
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
	items := computeAll(ctx, "validacion-producto", sede, mergeFacts(purchases, sales, stock, ignoreStock), ignoreStock, now)
	for _, it := range items {
		if it.ID == productID {
			return &ProductAnalysis{Sede: sede, Item: it, GeneratedAt: now}, nil
		}
	}
	return nil, fmt.Errorf("%w: producto %s sin compras en %s", domain.ErrNotFound, productID, sede)
}
