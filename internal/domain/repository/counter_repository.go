package repository

import "context"

// CounterRepository define el puerto de persistencia para contadores
// monotónicos (DIP). NextSequence debe ser UNA operación atómica contra el
// store: crear el contador con su valor inicial si no existe, incrementar y
// devolver el nuevo valor, todo en un solo round trip. Nunca
// leer-calcular-escribir en viajes separados: eso colisiona bajo concurrencia.
type CounterRepository interface {
	// NextSequence incrementa el contador `name` y devuelve el nuevo valor,
	// persistido de forma durable antes de retornar. initial es el valor con
	// el que nace el contador si no existe (el primer valor devuelto es
	// initial+1).
	NextSequence(ctx context.Context, name string, initial int64) (int64, error)
}
