package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

// PurchaseScope delimita el conjunto de compras a analizar.
// Campos vacíos no filtran: Start/End cero = sin límite, ProviderID "" = todos los proveedores.
type PurchaseScope struct {
	Start      time.Time // inclusivo
	End        time.Time // exclusivo
	ProviderID string
	InvoiceIDs []string
	ProductID  string
}

// SaleFacts ventas de un producto desde su primera compra dentro del PurchaseScope.
type SaleFacts struct {
	ProductID        string
	SoldQuantity     int64
	SaleCount        int64
	FirstSaleAt      time.Time
	LastSaleAt       time.Time
	AverageSalePrice decimal.Decimal
}

// ActivityKind tipo de movimiento consultado para la obsolescencia.
type ActivityKind string

const (
	ActivitySale     ActivityKind = "sale"
	ActivityTransfer ActivityKind = "transfer"
	ActivityPurchase ActivityKind = "purchase"
)

// LedgerRepository consultas de solo lectura sobre la base de una sede.
// Todas las agregaciones suman las headquarters configuradas para la sede.
type LedgerRepository interface {
	// PurchaseFacts agrega compras por producto; solo se llenan los campos de catálogo y compra.
	PurchaseFacts(ctx context.Context, scope PurchaseScope) ([]entity.ProductActivityFacts, error)

	// SalesSinceFirstPurchase ventas (sin límite superior) desde la primera compra del producto
	// dentro del scope, indexadas por ID de producto.
	SalesSinceFirstPurchase(ctx context.Context, scope PurchaseScope) (map[string]SaleFacts, error)

	// CurrentStock stock actual por producto (puede ser negativo por errores de digitación).
	CurrentStock(ctx context.Context) (map[string]int64, error)

	// StockedProducts productos con stock > 0.
	StockedProducts(ctx context.Context) ([]entity.StockedProduct, error)

	// LastActivity última fecha de cada producto para el tipo de movimiento dado.
	// Los productos sin ese movimiento no aparecen en el mapa.
	LastActivity(ctx context.Context, kind ActivityKind) (map[string]time.Time, error)

	// SalesInRange ventas por producto con fecha en [start, end).
	SalesInRange(ctx context.Context, start, end time.Time) ([]entity.SaleRangeAggregate, error)

	Providers(ctx context.Context) ([]entity.Provider, error)
	ProviderInvoices(ctx context.Context, providerID string) ([]entity.PurchaseInvoice, error)
	Invoices(ctx context.Context) ([]entity.PurchaseInvoice, error)

	// SearchProducts busca por nombre, SKU o código interno (sin distinguir mayúsculas).
	SearchProducts(ctx context.Context, term string, limit int) ([]entity.ProductSummary, error)
}

// LedgerResolver entrega el repositorio de una sede. Devuelve domain.ErrUnknownSede si el código
// no está configurado.
type LedgerResolver interface {
	Ledger(sede string) (LedgerRepository, error)
	Sedes() []entity.Sede
}
