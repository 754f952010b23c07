package ledger

import (
	"context"
	"time"

	"github.com/stockadoodle/inventory-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa transacción. Garantiza que el cambio del lote, el
// ajuste de stock_level y la entrada del log se apliquen como unidad atómica
// (todo o nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		batchRepo repository.StockBatchRepository,
		logRepo repository.ProductLogRepository,
	) error) error
}

// IDAllocator entrega IDs únicos y monotónicos por colección. Lo implementa
// sequence.Allocator; el puerto existe para poder falsificarlo en tests.
type IDAllocator interface {
	NextID(ctx context.Context, collection string) (int64, error)
}

// Clock entrega la hora actual. Inyectada para que los tests fijen "hoy".
type Clock func() time.Time
