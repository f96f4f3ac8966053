// Package analytics contiene los casos de uso de los reportes de inventario por sede:
// proyección de compras, productos sin movimiento, más vendidos y recompra por proveedor.
//
// Cada caso de uso consulta el ledger de la sede en paralelo (errgroup) bajo un tiempo
// límite, y solo cuando todas las consultas terminan aplica los cálculos puros de
// internal/domain/analytics. No se devuelven resultados parciales.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/analitica-sedes/internal/domain"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

// DefaultQueryTimeout límite por defecto para las consultas de un reporte.
const DefaultQueryTimeout = 30 * time.Second

// Options parámetros comunes de los casos de uso.
type Options struct {
	QueryTimeout time.Duration    // 0 = DefaultQueryTimeout
	Clock        func() time.Time // nil = time.Now
}

// base dependencias compartidas por todos los casos de uso.
type base struct {
	ledgers repository.LedgerResolver
	timeout time.Duration
	now     func() time.Time
}

func newBase(ledgers repository.LedgerResolver, opts Options) base {
	b := base{ledgers: ledgers, timeout: opts.QueryTimeout, now: opts.Clock}
	if b.timeout <= 0 {
		b.timeout = DefaultQueryTimeout
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// fetch ejecuta las consultas en paralelo y espera a todas.
// Un vencimiento del plazo se reporta como domain.ErrTimeout y cualquier otro fallo
// como domain.ErrDataUnavailable.
func (b base) fetch(ctx context.Context, op string, queries ...func(ctx context.Context) error) error {
	tctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(tctx)
	for _, q := range queries {
		q := q
		g.Go(func() error { return q(gctx) })
	}
	err := g.Wait()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(tctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%s: %w (%s): %v", op, domain.ErrTimeout, b.timeout, err)
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrDataUnavailable, err)
	}
}

// ledger resuelve el repositorio de la sede (domain.ErrUnknownSede si no existe).
func (b base) ledger(sede string) (repository.LedgerRepository, error) {
	return b.ledgers.Ledger(sede)
}

// skipRow registra una fila descartada por datos inválidos.
func skipRow(ctx context.Context, report, sede string, err error) {
	zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("report", report).
		Str("sede", sede).
		Msg("fila omitida por datos inválidos")
}
