package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo consultas de solo lectura sobre la base de una sede.
// $1 es siempre el arreglo de headquarters de la sede.
type LedgerRepo struct {
	q              Querier
	headquarterIDs []int64
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier, headquarterIDs []int64) *LedgerRepo {
	return &LedgerRepo{q: q, headquarterIDs: headquarterIDs}
}

// Columnas de catálogo en el orden que espera scanProductInfo.
const productColumns = `
	p.id::text,
	p.name,
	COALESCE(p.description, ''),
	COALESCE(p.sku, ''),
	COALESCE(p.internal_code, ''),
	COALESCE(p.cost, 0)::numeric,
	COALESCE(p.retail_price, 0)::numeric,
	COALESCE(p.wholesale_price, 0)::numeric,
	COALESCE(p.minimum_stock, 0)::bigint`

const productGroupBy = `p.id, p.name, p.description, p.sku, p.internal_code, p.cost, p.retail_price, p.wholesale_price, p.minimum_stock`

func productInfoDest(p *entity.ProductInfo) []any {
	return []any{
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.InternalCode,
		&p.CostUnit, &p.RetailPrice, &p.WholesalePrice, &p.MinimumStock,
	}
}

// queryArgs acumula parámetros posicionales para filtros opcionales.
type queryArgs struct {
	args []any
}

func (a *queryArgs) add(v any) string {
	a.args = append(a.args, v)
	return fmt.Sprintf("$%d", len(a.args))
}

// purchaseScopeFilter condiciones adicionales sobre purchase (pur) y product (p).
func purchaseScopeFilter(scope repository.PurchaseScope, a *queryArgs) string {
	var b strings.Builder
	if !scope.Start.IsZero() {
		fmt.Fprintf(&b, "\n\t  AND pur.created_at >= %s", a.add(scope.Start))
	}
	if !scope.End.IsZero() {
		fmt.Fprintf(&b, "\n\t  AND pur.created_at < %s", a.add(scope.End))
	}
	if scope.ProviderID != "" {
		fmt.Fprintf(&b, "\n\t  AND pur.\"providerId\"::text = %s", a.add(scope.ProviderID))
	}
	if len(scope.InvoiceIDs) > 0 {
		fmt.Fprintf(&b, "\n\t  AND pur.id::text = ANY(%s)", a.add(scope.InvoiceIDs))
	}
	if scope.ProductID != "" {
		fmt.Fprintf(&b, "\n\t  AND p.id::text = %s", a.add(scope.ProductID))
	}
	return b.String()
}

func (r *LedgerRepo) baseArgs() *queryArgs {
	return &queryArgs{args: []any{r.headquarterIDs}}
}

// PurchaseFacts agrega las compras del scope por producto.
func (r *LedgerRepo) PurchaseFacts(ctx context.Context, scope repository.PurchaseScope) ([]entity.ProductActivityFacts, error) {
	a := r.baseArgs()
	query := `
	SELECT` + productColumns + `,
	    MIN(pur.created_at)                       AS first_purchase,
	    MAX(pur.created_at)                       AS last_purchase,
	    COALESCE(SUM(pp.quantity), 0)::bigint     AS purchased_qty,
	    COUNT(DISTINCT pur.id)::bigint            AS invoice_count,
	    COALESCE(AVG(pp.unit_price), 0)::numeric  AS avg_purchase_price,
	    COALESCE(MIN(pr.name), '')                AS provider_name,
	    COUNT(DISTINCT pur."providerId")::bigint  AS provider_count
	FROM product p
	JOIN product_purchase pp ON p.id = pp."productId"
	JOIN purchase pur        ON pp."purchaseId" = pur.id
	LEFT JOIN provider pr    ON pur."providerId" = pr.id
	WHERE pur."headquarterId" = ANY($1)
	  AND pur.deleted_at IS NULL
	  AND p.deleted_at IS NULL` + purchaseScopeFilter(scope, a) + `
	GROUP BY ` + productGroupBy

	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("ledger.PurchaseFacts: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductActivityFacts
	for rows.Next() {
		var f entity.ProductActivityFacts
		dest := append(productInfoDest(&f.ProductInfo),
			&f.FirstPurchaseAt,
			&f.LastPurchaseAt,
			&f.PurchasedQuantityInRange,
			&f.PurchaseInvoiceCount,
			&f.AveragePurchasePrice,
			&f.ProviderName,
			&f.ProviderCount,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("ledger.PurchaseFacts scan: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// SalesSinceFirstPurchase ventas de cada producto desde su primera compra dentro del scope.
// No hay límite superior: se cuentan las ventas hasta hoy.
func (r *LedgerRepo) SalesSinceFirstPurchase(ctx context.Context, scope repository.PurchaseScope) (map[string]repository.SaleFacts, error) {
	a := r.baseArgs()
	query := `
	WITH first_purchase AS (
	    SELECT p.id AS product_id, MIN(pur.created_at) AS first_at
	    FROM product p
	    JOIN product_purchase pp ON p.id = pp."productId"
	    JOIN purchase pur        ON pp."purchaseId" = pur.id
	    WHERE pur."headquarterId" = ANY($1)
	      AND pur.deleted_at IS NULL
	      AND p.deleted_at IS NULL` + purchaseScopeFilter(scope, a) + `
	    GROUP BY p.id
	)
	SELECT
	    ps."productId"::text,
	    COALESCE(SUM(ps.quantity), 0)::bigint     AS sold_qty,
	    COUNT(DISTINCT s.id)::bigint              AS sale_count,
	    MIN(s.created_at)                         AS first_sale,
	    MAX(s.created_at)                         AS last_sale,
	    COALESCE(AVG(ps."unitPrice"), 0)::numeric AS avg_sale_price
	FROM product_sell ps
	JOIN sell s            ON ps."sellId" = s.id
	JOIN first_purchase fp ON ps."productId" = fp.product_id
	WHERE s."headquarterId" = ANY($1)
	  AND s.deleted_at IS NULL
	  AND s.created_at >= fp.first_at
	GROUP BY ps."productId"`

	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("ledger.SalesSinceFirstPurchase: %w", err)
	}
	defer rows.Close()

	out := make(map[string]repository.SaleFacts)
	for rows.Next() {
		var s repository.SaleFacts
		if err := rows.Scan(&s.ProductID, &s.SoldQuantity, &s.SaleCount, &s.FirstSaleAt, &s.LastSaleAt, &s.AverageSalePrice); err != nil {
			return nil, fmt.Errorf("ledger.SalesSinceFirstPurchase scan: %w", err)
		}
		out[s.ProductID] = s
	}
	return out, rows.Err()
}

// CurrentStock stock sumado sobre las headquarters de la sede.
func (r *LedgerRepo) CurrentStock(ctx context.Context) (map[string]int64, error) {
	const query = `
	SELECT "productId"::text, COALESCE(SUM(quantity), 0)::bigint
	FROM stock
	WHERE "headquarterId" = ANY($1)
	GROUP BY "productId"`

	rows, err := r.q.Query(ctx, query, r.headquarterIDs)
	if err != nil {
		return nil, fmt.Errorf("ledger.CurrentStock: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var id string
		var qty int64
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("ledger.CurrentStock scan: %w", err)
		}
		out[id] = qty
	}
	return out, rows.Err()
}

// StockedProducts productos activos con stock positivo.
func (r *LedgerRepo) StockedProducts(ctx context.Context) ([]entity.StockedProduct, error) {
	query := `
	SELECT` + productColumns + `,
	    SUM(st.quantity)::bigint AS current_stock
	FROM product p
	JOIN stock st ON p.id = st."productId"
	WHERE st."headquarterId" = ANY($1)
	  AND p.deleted_at IS NULL
	GROUP BY ` + productGroupBy + `
	HAVING SUM(st.quantity) > 0`

	rows, err := r.q.Query(ctx, query, r.headquarterIDs)
	if err != nil {
		return nil, fmt.Errorf("ledger.StockedProducts: %w", err)
	}
	defer rows.Close()

	var out []entity.StockedProduct
	for rows.Next() {
		var sp entity.StockedProduct
		if err := rows.Scan(append(productInfoDest(&sp.ProductInfo), &sp.CurrentStock)...); err != nil {
			return nil, fmt.Errorf("ledger.StockedProducts scan: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

var lastActivityQueries = map[repository.ActivityKind]string{
	repository.ActivitySale: `
	SELECT ps."productId"::text, MAX(s.created_at)
	FROM product_sell ps
	JOIN sell s ON ps."sellId" = s.id
	WHERE s."headquarterId" = ANY($1)
	  AND s.deleted_at IS NULL
	GROUP BY ps."productId"`,

	// Un traslado cuenta si la sede es origen o destino.
	repository.ActivityTransfer: `
	SELECT pt."productId"::text, MAX(t.created_at)
	FROM product_transfer pt
	JOIN transfer t ON pt."transferId" = t.id
	WHERE (t."originHeadquarterId" = ANY($1) OR t."destinationHeadquarterId" = ANY($1))
	  AND t.deleted_at IS NULL
	GROUP BY pt."productId"`,

	repository.ActivityPurchase: `
	SELECT pp."productId"::text, MAX(pur.created_at)
	FROM product_purchase pp
	JOIN purchase pur ON pp."purchaseId" = pur.id
	WHERE pur."headquarterId" = ANY($1)
	  AND pur.deleted_at IS NULL
	GROUP BY pp."productId"`,
}

// LastActivity última fecha por producto para el tipo de movimiento.
func (r *LedgerRepo) LastActivity(ctx context.Context, kind repository.ActivityKind) (map[string]time.Time, error) {
	query, ok := lastActivityQueries[kind]
	if !ok {
		return nil, fmt.Errorf("ledger.LastActivity: tipo de movimiento %q no soportado", kind)
	}

	rows, err := r.q.Query(ctx, query, r.headquarterIDs)
	if err != nil {
		return nil, fmt.Errorf("ledger.LastActivity(%s): %w", kind, err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("ledger.LastActivity(%s) scan: %w", kind, err)
		}
		out[id] = at
	}
	return out, rows.Err()
}

// SalesInRange ventas por producto con fecha en [start, end).
func (r *LedgerRepo) SalesInRange(ctx context.Context, start, end time.Time) ([]entity.SaleRangeAggregate, error) {
	query := `
	SELECT` + productColumns + `,
	    COALESCE(SUM(ps.quantity), 0)::bigint                     AS qty_sold,
	    COALESCE(SUM(ps.quantity * ps."unitPrice"), 0)::numeric  AS total_value,
	    COUNT(DISTINCT s.id)::bigint                              AS sale_count,
	    MIN(s.created_at)                                         AS first_sale,
	    MAX(s.created_at)                                         AS last_sale
	FROM product_sell ps
	JOIN sell s    ON ps."sellId" = s.id
	JOIN product p ON ps."productId" = p.id
	WHERE s."headquarterId" = ANY($1)
	  AND s.deleted_at IS NULL
	  AND p.deleted_at IS NULL
	  AND s.created_at >= $2
	  AND s.created_at < $3
	GROUP BY ` + productGroupBy

	rows, err := r.q.Query(ctx, query, r.headquarterIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("ledger.SalesInRange: %w", err)
	}
	defer rows.Close()

	var out []entity.SaleRangeAggregate
	for rows.Next() {
		var s entity.SaleRangeAggregate
		dest := append(productInfoDest(&s.ProductInfo),
			&s.QuantitySold, &s.TotalSaleValue, &s.SaleCount, &s.FirstSaleAt, &s.LastSaleAt,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("ledger.SalesInRange scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Providers proveedores con al menos una compra en la sede, por nombre.
func (r *LedgerRepo) Providers(ctx context.Context) ([]entity.Provider, error) {
	const query = `
	SELECT
	    pr.id::text,
	    pr.name,
	    COUNT(DISTINCT pur.id)::bigint          AS invoice_count,
	    MIN(pur.created_at)                     AS first_purchase,
	    MAX(pur.created_at)                     AS last_purchase,
	    COALESCE(SUM(pp.quantity), 0)::bigint   AS units_purchased
	FROM provider pr
	JOIN purchase pur ON pr.id = pur."providerId"
	LEFT JOIN product_purchase pp ON pur.id = pp."purchaseId"
	WHERE pur."headquarterId" = ANY($1)
	  AND pur.deleted_at IS NULL
	  AND pr.deleted_at IS NULL
	GROUP BY pr.id, pr.name
	ORDER BY pr.name`

	rows, err := r.q.Query(ctx, query, r.headquarterIDs)
	if err != nil {
		return nil, fmt.Errorf("ledger.Providers: %w", err)
	}
	defer rows.Close()

	var out []entity.Provider
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.InvoiceCount, &p.FirstPurchaseAt, &p.LastPurchaseAt, &p.TotalUnitsPurchased); err != nil {
			return nil, fmt.Errorf("ledger.Providers scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const invoiceSelect = `
	SELECT
	    pur.id::text,
	    COALESCE(pur.invoice_number, ''),
	    COALESCE(pr.name, ''),
	    COALESCE(pur.total_value, 0)::numeric,
	    pur.created_at,
	    COALESCE(pur.observation, ''),
	    COUNT(DISTINCT pp."productId")::bigint  AS product_count,
	    COALESCE(SUM(pp.quantity), 0)::bigint   AS total_quantity
	FROM purchase pur
	LEFT JOIN provider pr ON pur."providerId" = pr.id
	LEFT JOIN product_purchase pp ON pur.id = pp."purchaseId"
	WHERE pur."headquarterId" = ANY($1)
	  AND pur.deleted_at IS NULL`

const invoiceGroupOrder = `
	GROUP BY pur.id, pur.invoice_number, pr.name, pur.total_value, pur.created_at, pur.observation
	ORDER BY pur.created_at DESC`

// ProviderInvoices facturas de compra de un proveedor, más recientes primero.
func (r *LedgerRepo) ProviderInvoices(ctx context.Context, providerID string) ([]entity.PurchaseInvoice, error) {
	query := invoiceSelect + `
	  AND pur."providerId"::text = $2` + invoiceGroupOrder
	return r.invoices(ctx, "ledger.ProviderInvoices", query, r.headquarterIDs, providerID)
}

// Invoices todas las facturas de compra de la sede, más recientes primero.
func (r *LedgerRepo) Invoices(ctx context.Context) ([]entity.PurchaseInvoice, error) {
	return r.invoices(ctx, "ledger.Invoices", invoiceSelect+invoiceGroupOrder, r.headquarterIDs)
}

func (r *LedgerRepo) invoices(ctx context.Context, op, query string, args ...any) ([]entity.PurchaseInvoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []entity.PurchaseInvoice
	for rows.Next() {
		var inv entity.PurchaseInvoice
		if err := rows.Scan(
			&inv.ID,
			&inv.InvoiceNumber,
			&inv.ProviderName,
			&inv.TotalValue,
			&inv.CreatedAt,
			&inv.Observation,
			&inv.ProductCount,
			&inv.TotalQuantity,
		); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// SearchProducts busca productos activos por nombre, SKU o código interno.
func (r *LedgerRepo) SearchProducts(ctx context.Context, term string, limit int) ([]entity.ProductSummary, error) {
	query := `
	SELECT` + productColumns + `,
	    COALESCE(SUM(st.quantity), 0)::bigint AS current_stock
	FROM product p
	LEFT JOIN stock st ON p.id = st."productId" AND st."headquarterId" = ANY($1)
	WHERE p.deleted_at IS NULL
	  AND (p.name ILIKE $2 OR p.sku ILIKE $2 OR p.internal_code ILIKE $2)
	GROUP BY ` + productGroupBy + `
	ORDER BY p.name
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, r.headquarterIDs, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("ledger.SearchProducts: %w", err)
	}
	defer rows.Close()

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ProductSummary, error) {
		var ps entity.ProductSummary
		err := row.Scan(append(productInfoDest(&ps.ProductInfo), &ps.CurrentStock)...)
		return ps, err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.SearchProducts scan: %w", err)
	}
	return products, nil
}

// escapeLike escapa comodines de LIKE en el término del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
