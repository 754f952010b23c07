package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/stockadoodle/inventory-core/internal/domain"
	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category_id, price, min_stock_level, stock_level, created_at, updated_at`

// Create persiste un producto nuevo. El ID viene ya asignado por el
// SequenceAllocator; StockLevel nace en 0.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category_id, price, min_stock_level, stock_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.CategoryID, p.Price, p.MinStockLevel, p.StockLevel, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return wrapStoreErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE):
// las operaciones concurrentes sobre el mismo producto se serializan aquí,
// en el store, sin lock manager en el proceso.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.MinStockLevel, &p.StockLevel, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get product", err)
	}
	return &p, nil
}

// Update actualiza los campos editables. No toca stock_level: ese campo solo
// lo mueve AdjustStockLevel dentro de las transacciones del ledger.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, price = $4, min_stock_level = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Name, p.CategoryID, p.Price, p.MinStockLevel, p.UpdatedAt)
	if err != nil {
		return wrapStoreErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// AdjustStockLevel suma delta al stock derivado en un solo UPDATE.
func (r *ProductRepo) AdjustStockLevel(ctx context.Context, id int64, delta int) error {
	query := `UPDATE products SET stock_level = stock_level + $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, delta)
	if err != nil {
		return wrapStoreErr("adjust stock level", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List devuelve todos los productos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, wrapStoreErr("list products", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.MinStockLevel, &p.StockLevel, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, wrapStoreErr("scan product", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Delete elimina el producto. El guard de stock lo aplica el ledger antes de
// llegar aquí.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return wrapStoreErr("delete product", err)
	}
	return nil
}
