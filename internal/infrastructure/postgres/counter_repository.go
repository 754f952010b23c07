package postgres

import (
	"context"

	"github.com/stockadoodle/inventory-core/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo implementación de CounterRepository sobre PostgreSQL.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador de contadores. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// NextSequence incrementa el contador y devuelve el nuevo valor en UN solo
// statement atómico: el upsert crea el contador con initial+1 si no existe y
// si existe lo incrementa; RETURNING entrega el valor ya durable. Bajo
// callers concurrentes el servidor serializa los incrementos por fila: cada
// caller recibe un valor distinto, sin huecos entre llamadas exitosas.
func (r *CounterRepo) NextSequence(ctx context.Context, name string, initial int64) (int64, error) {
	query := `
		INSERT INTO counters (name, seq) VALUES ($1, $2 + 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(ctx, query, name, initial).Scan(&seq); err != nil {
		return 0, wrapStoreErr("next sequence", err)
	}
	return seq, nil
}
