package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stockadoodle/inventory-core/internal/domain"
	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación del puerto StockBatchRepository sobre
// PostgreSQL (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const batchColumns = `id, product_id, quantity, expiration_date, created_at, reason`

// Create persiste un lote nuevo (ID ya asignado por el SequenceAllocator).
func (r *StockBatchRepo) Create(ctx context.Context, b *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, product_id, quantity, expiration_date, created_at, reason)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, b.ID, b.ProductID, b.Quantity, b.ExpirationDate, b.CreatedAt, b.Reason)
	if err != nil {
		return wrapStoreErr("insert stock batch", err)
	}
	return nil
}

// GetByID obtiene un lote. Devuelve nil sin error si no existe.
func (r *StockBatchRepo) GetByID(ctx context.Context, id int64) (*entity.StockBatch, error) {
	return r.get(ctx, `SELECT `+batchColumns+` FROM stock_batches WHERE id = $1`, id)
}

// GetForUpdate obtiene el lote bloqueando su fila dentro de la transacción.
func (r *StockBatchRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockBatch, error) {
	return r.get(ctx, `SELECT `+batchColumns+` FROM stock_batches WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockBatchRepo) get(ctx context.Context, query string, id int64) (*entity.StockBatch, error) {
	var b entity.StockBatch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ProductID, &b.Quantity, &b.ExpirationDate, &b.CreatedAt, &b.Reason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get stock batch", err)
	}
	return &b, nil
}

// ListByProduct devuelve los lotes del producto, los que expiran primero al
// principio (los sin fecha al final).
func (r *StockBatchRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches
		WHERE product_id = $1
		ORDER BY expiration_date ASC NULLS LAST, id ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, wrapStoreErr("list stock batches", err)
	}
	defer rows.Close()

	var out []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.Quantity, &b.ExpirationDate, &b.CreatedAt, &b.Reason); err != nil {
			return nil, wrapStoreErr("scan stock batch", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// DecrementQuantity descuenta qty en un UPDATE condicional: solo aplica si el
// lote tiene al menos qty unidades. Cero filas afectadas = cantidad
// insuficiente (o lote inexistente) y nada se modifica: nunca se persiste una
// cantidad negativa.
func (r *StockBatchRepo) DecrementQuantity(ctx context.Context, id int64, qty int) error {
	query := `
		UPDATE stock_batches SET quantity = quantity - $2
		WHERE id = $1 AND quantity >= $2`
	cmd, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return wrapStoreErr("decrement batch quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientQuantity
	}
	return nil
}

// UpdateMeta reemplaza expiración y motivo; quantity queda fuera del SET.
func (r *StockBatchRepo) UpdateMeta(ctx context.Context, id int64, expiration *time.Time, reason string) error {
	query := `UPDATE stock_batches SET expiration_date = $2, reason = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, expiration, reason)
	if err != nil {
		return wrapStoreErr("update batch meta", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

// SumQuantityByProduct devuelve la suma de quantity de los lotes del producto
// (0 si no tiene lotes).
func (r *StockBatchRepo) SumQuantityByProduct(ctx context.Context, productID int64) (int, error) {
	var sum int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_batches WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return 0, wrapStoreErr("sum batch quantities", err)
	}
	return sum, nil
}

// Delete elimina un lote. El guard quantity == 0 lo aplica el ledger.
func (r *StockBatchRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_batches WHERE id = $1`, id); err != nil {
		return wrapStoreErr("delete stock batch", err)
	}
	return nil
}

// DeleteByProduct elimina todos los lotes del producto (cascade de DeleteProduct).
func (r *StockBatchRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_batches WHERE product_id = $1`, productID); err != nil {
		return wrapStoreErr("delete batches by product", err)
	}
	return nil
}
