package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/analitica-sedes/internal/domain"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
	"github.com/jhoicas/analitica-sedes/pkg/config"
)

var _ repository.LedgerResolver = (*Registry)(nil)

// Registry mantiene un pool y un LedgerRepo por sede configurada.
type Registry struct {
	sedes   []entity.Sede
	ledgers map[string]repository.LedgerRepository
	pools   []*pgxpool.Pool
}

// NewRegistry abre un pool por sede. Si alguna falla se cierran los ya abiertos.
func NewRegistry(ctx context.Context, sedes []config.SedeConfig) (*Registry, error) {
	r := &Registry{ledgers: make(map[string]repository.LedgerRepository, len(sedes))}
	for _, s := range sedes {
		pool, err := NewPool(ctx, s.DB)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("sede %s: %w", s.Code, err)
		}
		r.pools = append(r.pools, pool)
		r.register(entity.Sede{Code: s.Code, Name: s.Name, HeadquarterIDs: s.HeadquarterIDs},
			NewLedgerRepository(pool, s.HeadquarterIDs))
	}
	return r, nil
}

// NewStaticRegistry registro sin pools propios (tests y herramientas).
// ledgers se indexa por código de sede; las sedes sin ledger se ignoran.
func NewStaticRegistry(sedes []entity.Sede, ledgers map[string]repository.LedgerRepository) *Registry {
	r := &Registry{ledgers: make(map[string]repository.LedgerRepository, len(ledgers))}
	for _, sede := range sedes {
		if ledger, ok := ledgers[sede.Code]; ok {
			r.register(sede, ledger)
		}
	}
	return r
}

func (r *Registry) register(sede entity.Sede, ledger repository.LedgerRepository) {
	r.sedes = append(r.sedes, sede)
	r.ledgers[strings.ToLower(sede.Code)] = ledger
}

// Ledger devuelve el repositorio de la sede (código sin distinguir mayúsculas).
func (r *Registry) Ledger(sede string) (repository.LedgerRepository, error) {
	ledger, ok := r.ledgers[strings.ToLower(strings.TrimSpace(sede))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSede, sede)
	}
	return ledger, nil
}

// Sedes sedes configuradas en orden de registro.
func (r *Registry) Sedes() []entity.Sede {
	return r.sedes
}

// Close cierra todos los pools.
func (r *Registry) Close() {
	for _, p := range r.pools {
		p.Close()
	}
	r.pools = nil
}
