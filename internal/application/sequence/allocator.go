// Package sequence implementa el asignador de IDs enteros únicos y
// monotónicos. El store subyacente no tiene claves auto-incrementales nativas,
// así que cada colección lleva su propio contador persistido.
package sequence

import (
	"context"
	"fmt"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

// Allocator entrega el siguiente ID entero de una colección nombrada.
// Garantía: bajo N callers concurrentes sobre la misma colección, cada uno
// recibe un valor distinto y la secuencia de valores entregados no tiene
// huecos respecto de las llamadas que retornaron con éxito. La atomicidad la
// aporta el repositorio (un solo upsert-incremento contra el store).
type Allocator struct {
	counters repository.CounterRepository
	log      *logger.Logger
}

// NewAllocator construye el asignador.
func NewAllocator(counters repository.CounterRepository, log *logger.Logger) *Allocator {
	return &Allocator{counters: counters, log: log}
}

// NextID devuelve el siguiente ID para la colección. Si el contador no existe
// nace con su valor inicial (user_id en 1000, el resto en 0) y el primer ID
// entregado es initial+1. El nuevo seq queda persistido antes de retornar: un
// crash después del return no puede re-entregar el mismo valor.
//
// Si el incremento atómico no puede ejecutarse el error envuelve
// domain.ErrStorageUnavailable; el caller NUNCA debe construir ni persistir la
// entidad sin un ID válido.
func (a *Allocator) NextID(ctx context.Context, collection string) (int64, error) {
	initial := entity.CounterInitialValue(collection)
	id, err := a.counters.NextSequence(ctx, collection, initial)
	if err != nil {
		return 0, fmt.Errorf("next id para %q: %w", collection, err)
	}
	a.log.Debug().Str("collection", collection).Int64("id", id).Msg("id asignado")
	return id, nil
}
