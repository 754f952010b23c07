// Package ledger implementa todas las mutaciones de lotes de stock y del
// stock_level derivado del producto. Ningún otro componente escribe esos
// documentos.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockadoodle/inventory-core/internal/domain"
	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

// UseCase es el ledger de lotes. Cada operación es una unidad de trabajo
// corta: transacción, bloqueo de la fila del producto, mutación, verificación
// del invariante y log de auditoría. El invariante central —
// stock_level == Σ quantity de los lotes del producto — se re-verifica dentro
// de la transacción en cada mutación; cualquier violación aborta sin commit
// parcial.
type UseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	ids      IDAllocator
	now      Clock
	log      *logger.Logger
}

// NewUseCase construye el ledger.
func NewUseCase(txRunner TxRunner, products repository.ProductRepository, ids IDAllocator, now Clock, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, products: products, ids: ids, now: now, log: log}
}

// AddBatchInput entrada para AddBatch.
type AddBatchInput struct {
	ProductID      int64
	Quantity       int
	ExpirationDate *time.Time // nil = el lote no expira
	Reason         string
	UserID         int64 // actor (manager/admin) para el log de auditoría
}

// AddBatch crea un lote nuevo para el producto y suma su cantidad al
// stock_level. Falla con ErrProductNotFound si el producto no existe y con
// ErrInvalidQuantity si la cantidad no es positiva.
func (uc *UseCase) AddBatch(ctx context.Context, in AddBatchInput) (*entity.StockBatch, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	opID := uuid.New().String()

	var batch *entity.StockBatch
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		batches repository.StockBatchRepository,
		logs repository.ProductLogRepository,
	) error {
		product, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		batchID, err := uc.ids.NextID(ctx, entity.CounterStockBatch)
		if err != nil {
			return err
		}
		batch = &entity.StockBatch{
			ID:             batchID,
			ProductID:      in.ProductID,
			Quantity:       in.Quantity,
			ExpirationDate: in.ExpirationDate,
			CreatedAt:      uc.now(),
			Reason:         in.Reason,
		}
		if err := batches.Create(ctx, batch); err != nil {
			return err
		}
		if err := products.AdjustStockLevel(ctx, in.ProductID, in.Quantity); err != nil {
			return err
		}
		if err := uc.checkInvariant(ctx, products, batches, in.ProductID); err != nil {
			return err
		}
		notes := fmt.Sprintf("lote %d: +%d unidades (%s)", batchID, in.Quantity, in.Reason)
		return uc.appendLog(ctx, logs, in.ProductID, in.UserID, entity.ActionAddBatch, notes)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("product_id", in.ProductID).
		Int64("batch_id", batch.ID).
		Int("quantity", in.Quantity).
		Int64("user_id", in.UserID).
		Msg("lote agregado")
	return batch, nil
}

// DisposeInput entrada para Dispose.
type DisposeInput struct {
	BatchID  int64
	Quantity int
	Reason   string
	UserID   int64
}

// Dispose descuenta unidades de un lote concreto y del stock_level del
// producto. El ledger no elige el lote: el caller lo selecciona (el motor de
// alertas recomienda el de expiración más próxima, pero aquí se respeta la
// elección del caller). Falla con ErrInsufficientQuantity si la cantidad
// excede la disponible en el lote; en ese caso no se descuenta nada.
func (uc *UseCase) Dispose(ctx context.Context, in DisposeInput) (*entity.StockBatch, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	opID := uuid.New().String()

	var updated *entity.StockBatch
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		batches repository.StockBatchRepository,
		logs repository.ProductLogRepository,
	) error {
		batch, err := batches.GetByID(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrBatchNotFound
		}
		// Bloquear primero la fila del producto: serializa las operaciones
		// concurrentes sobre el mismo producto en el store.
		product, err := products.GetForUpdate(ctx, batch.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		// Releer el lote ya bajo el lock del producto.
		batch, err = batches.GetForUpdate(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrBatchNotFound
		}
		if in.Quantity > batch.Quantity {
			return domain.ErrInsufficientQuantity
		}
		if err := batches.DecrementQuantity(ctx, in.BatchID, in.Quantity); err != nil {
			return err
		}
		if err := products.AdjustStockLevel(ctx, batch.ProductID, -in.Quantity); err != nil {
			return err
		}
		if err := uc.checkInvariant(ctx, products, batches, batch.ProductID); err != nil {
			return err
		}
		notes := fmt.Sprintf("lote %d: -%d unidades (%s)", in.BatchID, in.Quantity, in.Reason)
		if err := uc.appendLog(ctx, logs, batch.ProductID, in.UserID, entity.ActionDispose, notes); err != nil {
			return err
		}
		out := *batch
		out.Quantity -= in.Quantity
		updated = &out
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("batch_id", in.BatchID).
		Int64("product_id", updated.ProductID).
		Int("quantity", in.Quantity).
		Int64("user_id", in.UserID).
		Msg("unidades dispuestas")
	return updated, nil
}

// DeleteBatch elimina un lote. Falla con ErrBatchNotEmpty mientras el lote
// tenga unidades: obliga a disponer antes de eliminar, para no perder
// silenciosamente unidades en circulación.
func (uc *UseCase) DeleteBatch(ctx context.Context, batchID, userID int64) error {
	opID := uuid.New().String()

	var productID int64
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		batches repository.StockBatchRepository,
		logs repository.ProductLogRepository,
	) error {
		batch, err := batches.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrBatchNotFound
		}
		if _, err := products.GetForUpdate(ctx, batch.ProductID); err != nil {
			return err
		}
		batch, err = batches.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrBatchNotFound
		}
		if batch.Quantity > 0 {
			return domain.ErrBatchNotEmpty
		}
		productID = batch.ProductID
		if err := batches.Delete(ctx, batchID); err != nil {
			return err
		}
		if err := uc.checkInvariant(ctx, products, batches, batch.ProductID); err != nil {
			return err
		}
		notes := fmt.Sprintf("lote %d eliminado", batchID)
		return uc.appendLog(ctx, logs, batch.ProductID, userID, entity.ActionDeleteBatch, notes)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("batch_id", batchID).
		Int64("product_id", productID).
		Int64("user_id", userID).
		Msg("lote eliminado")
	return nil
}

// EditBatchInput entrada para EditBatch. Reemplaza los metadatos del lote:
// expiración (nil = sin fecha) y motivo. La cantidad es inmutable por esta vía.
type EditBatchInput struct {
	BatchID        int64
	ExpirationDate *time.Time
	Reason         string
	UserID         int64
}

// EditBatch modifica solo metadatos del lote.
func (uc *UseCase) EditBatch(ctx context.Context, in EditBatchInput) (*entity.StockBatch, error) {
	opID := uuid.New().String()

	var updated *entity.StockBatch
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		batches repository.StockBatchRepository,
		logs repository.ProductLogRepository,
	) error {
		batch, err := batches.GetByID(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrBatchNotFound
		}
		if err := batches.UpdateMeta(ctx, in.BatchID, in.ExpirationDate, in.Reason); err != nil {
			return err
		}
		notes := fmt.Sprintf("lote %d: metadatos actualizados", in.BatchID)
		if err := uc.appendLog(ctx, logs, batch.ProductID, in.UserID, entity.ActionEditBatch, notes); err != nil {
			return err
		}
		out := *batch
		out.ExpirationDate = in.ExpirationDate
		out.Reason = in.Reason
		updated = &out
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("batch_id", in.BatchID).
		Int64("user_id", in.UserID).
		Msg("lote editado")
	return updated, nil
}

// DeleteProduct elimina un producto con el mismo guard que DeleteBatch pero a
// nivel de producto: falla con ErrProductHasStock mientras algún lote tenga
// unidades. Si procede, elimina en cascada los lotes y el log del producto.
func (uc *UseCase) DeleteProduct(ctx context.Context, productID, userID int64) error {
	opID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		batches repository.StockBatchRepository,
		logs repository.ProductLogRepository,
	) error {
		product, err := products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		sum, err := batches.SumQuantityByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if sum != product.StockLevel {
			uc.log.Error().
				Int64("product_id", productID).
				Int("stock_level", product.StockLevel).
				Int("batch_sum", sum).
				Msg("invariante de stock violado antes de eliminar producto")
			return domain.ErrConsistencyViolation
		}
		if sum > 0 {
			return domain.ErrProductHasStock
		}
		if err := batches.DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		if err := logs.DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		return products.Delete(ctx, productID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("product_id", productID).
		Int64("user_id", userID).
		Msg("producto eliminado")
	return nil
}

// CreateProductInput entrada para CreateProduct.
type CreateProductInput struct {
	Name          string
	CategoryID    int64
	Price         decimal.Decimal
	MinStockLevel int
}

// CreateProduct registra un producto nuevo con stock_level 0 (el stock solo
// entra vía AddBatch). El ID se obtiene del asignador ANTES de construir la
// entidad: si el asignador falla, nada se persiste.
func (uc *UseCase) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	if in.Name == "" || in.MinStockLevel < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	id, err := uc.ids.NextID(ctx, entity.CounterProduct)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		ID:            id,
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		Price:         in.Price,
		MinStockLevel: in.MinStockLevel,
		StockLevel:    0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("product_id", id).Str("name", in.Name).Msg("producto creado")
	return product, nil
}

// EditProductInput entrada para EditProduct. No toca StockLevel.
type EditProductInput struct {
	ProductID     int64
	Name          string
	CategoryID    int64
	Price         decimal.Decimal
	MinStockLevel int
	UserID        int64
}

// EditProduct actualiza los campos editables del producto y deja registro en
// el log de auditoría. StockLevel queda fuera: solo lo mueven los lotes.
func (uc *UseCase) EditProduct(ctx context.Context, in EditProductInput) (*entity.Product, error) {
	if in.Name == "" || in.MinStockLevel < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	opID := uuid.New().String()

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		batches repository.StockBatchRepository,
		logs repository.ProductLogRepository,
	) error {
		product, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		product.Name = in.Name
		product.CategoryID = in.CategoryID
		product.Price = in.Price
		product.MinStockLevel = in.MinStockLevel
		product.UpdatedAt = uc.now()
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		if err := uc.appendLog(ctx, logs, in.ProductID, in.UserID, entity.ActionEditProduct, "datos del producto actualizados"); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("product_id", in.ProductID).
		Int64("user_id", in.UserID).
		Msg("producto editado")
	return updated, nil
}

// checkInvariant re-verifica dentro de la transacción que el stock derivado
// coincide con la suma de los lotes. Un mismatch es un bug, no un error del
// usuario: se loguea a nivel error y la transacción completa se revierte.
func (uc *UseCase) checkInvariant(
	ctx context.Context,
	products repository.ProductRepository,
	batches repository.StockBatchRepository,
	productID int64,
) error {
	product, err := products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	sum, err := batches.SumQuantityByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.StockLevel != sum {
		uc.log.Error().
			Int64("product_id", productID).
			Int("stock_level", product.StockLevel).
			Int("batch_sum", sum).
			Msg("invariante de stock violado; transacción revertida")
		return domain.ErrConsistencyViolation
	}
	return nil
}

// appendLog asigna un ID al registro de auditoría y lo persiste dentro de la
// misma transacción que la mutación.
func (uc *UseCase) appendLog(
	ctx context.Context,
	logs repository.ProductLogRepository,
	productID, userID int64,
	actionType, notes string,
) error {
	logID, err := uc.ids.NextID(ctx, entity.CounterProductLog)
	if err != nil {
		return err
	}
	return logs.Append(ctx, &entity.ProductLog{
		ID:         logID,
		ProductID:  productID,
		UserID:     userID,
		ActionType: actionType,
		LogTime:    uc.now(),
		Notes:      notes,
	})
}
