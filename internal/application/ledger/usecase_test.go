package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockadoodle/inventory-core/internal/application/ledger"
	"github.com/stockadoodle/inventory-core/internal/domain"
	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────
//
// memStore simula el store: mapas por colección. El TxRunner falso toma un
// snapshot antes de ejecutar el callback y lo restaura si falla, imitando el
// rollback de una transacción real.

type memStore struct {
	products map[int64]entity.Product
	batches  map[int64]entity.StockBatch
	logs     []entity.ProductLog
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[int64]entity.Product),
		batches:  make(map[int64]entity.StockBatch),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.batches {
		cp.batches[k] = v
	}
	cp.logs = append([]entity.ProductLog(nil), s.logs...)
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.batches = from.batches
	s.logs = from.logs
}

type memProducts struct{ s *memStore }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) AdjustStockLevel(_ context.Context, id int64, delta int) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.StockLevel += delta
	r.s.products[id] = p
	return nil
}

func (r memProducts) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	delete(r.s.products, id)
	return nil
}

type memBatches struct{ s *memStore }

func (r memBatches) Create(_ context.Context, b *entity.StockBatch) error {
	r.s.batches[b.ID] = *b
	return nil
}

func (r memBatches) GetByID(_ context.Context, id int64) (*entity.StockBatch, error) {
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r memBatches) GetForUpdate(ctx context.Context, id int64) (*entity.StockBatch, error) {
	return r.GetByID(ctx, id)
}

func (r memBatches) ListByProduct(_ context.Context, productID int64) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.ProductID == productID {
			cp := b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memBatches) DecrementQuantity(_ context.Context, id int64, qty int) error {
	b, ok := r.s.batches[id]
	if !ok {
		return domain.ErrBatchNotFound
	}
	if b.Quantity < qty {
		return domain.ErrInsufficientQuantity
	}
	b.Quantity -= qty
	r.s.batches[id] = b
	return nil
}

func (r memBatches) UpdateMeta(_ context.Context, id int64, expiration *time.Time, reason string) error {
	b, ok := r.s.batches[id]
	if !ok {
		return domain.ErrBatchNotFound
	}
	b.ExpirationDate = expiration
	b.Reason = reason
	r.s.batches[id] = b
	return nil
}

func (r memBatches) SumQuantityByProduct(_ context.Context, productID int64) (int, error) {
	sum := 0
	for _, b := range r.s.batches {
		if b.ProductID == productID {
			sum += b.Quantity
		}
	}
	return sum, nil
}

func (r memBatches) Delete(_ context.Context, id int64) error {
	delete(r.s.batches, id)
	return nil
}

func (r memBatches) DeleteByProduct(_ context.Context, productID int64) error {
	for id, b := range r.s.batches {
		if b.ProductID == productID {
			delete(r.s.batches, id)
		}
	}
	return nil
}

type memLogs struct{ s *memStore }

func (r memLogs) Append(_ context.Context, log *entity.ProductLog) error {
	r.s.logs = append(r.s.logs, *log)
	return nil
}

func (r memLogs) DeleteByProduct(_ context.Context, productID int64) error {
	var kept []entity.ProductLog
	for _, l := range r.s.logs {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	r.s.logs = kept
	return nil
}

type memTxRunner struct{ s *memStore }

func (t memTxRunner) Run(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.StockBatchRepository,
	repository.ProductLogRepository,
) error) error {
	snap := t.s.snapshot()
	if err := fn(memProducts{t.s}, memBatches{t.s}, memLogs{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type fakeAllocator struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func (a *fakeAllocator) NextID(_ context.Context, collection string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seqs == nil {
		a.seqs = make(map[string]int64)
	}
	a.seqs[collection]++
	return a.seqs[collection], nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2023, time.December, 15, 10, 0, 0, 0, time.UTC)

func newLedger(s *memStore) *ledger.UseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return ledger.NewUseCase(
		memTxRunner{s},
		memProducts{s},
		&fakeAllocator{},
		func() time.Time { return fixedNow },
		log,
	)
}

func seedProduct(s *memStore, id int64, stock int) {
	s.products[id] = entity.Product{
		ID:            id,
		Name:          "Leche entera 1L",
		CategoryID:    1,
		Price:         decimal.NewFromFloat(2.50),
		MinStockLevel: 10,
		StockLevel:    stock,
	}
}

func seedBatch(s *memStore, id, productID int64, qty int, exp *time.Time) {
	s.batches[id] = entity.StockBatch{
		ID: id, ProductID: productID, Quantity: qty,
		ExpirationDate: exp, CreatedAt: fixedNow, Reason: "compra",
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func stockOf(t *testing.T, s *memStore, productID int64) int {
	t.Helper()
	p, ok := s.products[productID]
	require.True(t, ok)
	return p.StockLevel
}

func batchSum(s *memStore, productID int64) int {
	sum := 0
	for _, b := range s.batches {
		if b.ProductID == productID {
			sum += b.Quantity
		}
	}
	return sum
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestAddBatch(t *testing.T) {
	t.Run("suma al stock y deja log", func(t *testing.T) {
		s := newMemStore()
		seedProduct(s, 1, 0)
		uc := newLedger(s)

		batch, err := uc.AddBatch(context.Background(), ledger.AddBatchInput{
			ProductID: 1, Quantity: 5, ExpirationDate: datePtr(2024, time.January, 1),
			Reason: "compra", UserID: 1001,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, batch.Quantity)
		assert.Equal(t, 5, stockOf(t, s, 1))
		require.Len(t, s.logs, 1)
		assert.Equal(t, entity.ActionAddBatch, s.logs[0].ActionType)
		assert.Equal(t, int64(1001), s.logs[0].UserID)
	})

	t.Run("cantidad no positiva", func(t *testing.T) {
		s := newMemStore()
		seedProduct(s, 1, 0)
		uc := newLedger(s)

		_, err := uc.AddBatch(context.Background(), ledger.AddBatchInput{ProductID: 1, Quantity: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		_, err = uc.AddBatch(context.Background(), ledger.AddBatchInput{ProductID: 1, Quantity: -3})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Empty(t, s.batches)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		s := newMemStore()
		uc := newLedger(s)

		_, err := uc.AddBatch(context.Background(), ledger.AddBatchInput{ProductID: 99, Quantity: 5})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Empty(t, s.batches)
	})
}

func TestDispose(t *testing.T) {
	t.Run("descuenta del lote y del stock", func(t *testing.T) {
		s := newMemStore()
		seedProduct(s, 1, 8)
		seedBatch(s, 10, 1, 8, nil)
		uc := newLedger(s)

		batch, err := uc.Dispose(context.Background(), ledger.DisposeInput{
			BatchID: 10, Quantity: 3, Reason: "vencido", UserID: 1001,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, batch.Quantity)
		assert.Equal(t, 5, stockOf(t, s, 1))
		require.Len(t, s.logs, 1)
		assert.Equal(t, entity.ActionDispose, s.logs[0].ActionType)
	})

	t.Run("cantidad insuficiente no cambia nada", func(t *testing.T) {
		s := newMemStore()
		seedProduct(s, 1, 5)
		seedBatch(s, 10, 1, 5, nil)
		uc := newLedger(s)

		_, err := uc.Dispose(context.Background(), ledger.DisposeInput{BatchID: 10, Quantity: 6})
		assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
		assert.Equal(t, 5, s.batches[10].Quantity, "sin descuento parcial")
		assert.Equal(t, 5, stockOf(t, s, 1))
		assert.Empty(t, s.logs, "sin entrada de log en operación fallida")
	})

	t.Run("lote inexistente", func(t *testing.T) {
		s := newMemStore()
		uc := newLedger(s)

		_, err := uc.Dispose(context.Background(), ledger.DisposeInput{BatchID: 77, Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrBatchNotFound)
	})
}

func TestDeleteBatch(t *testing.T) {
	t.Run("con unidades falla, vacío procede", func(t *testing.T) {
		s := newMemStore()
		seedProduct(s, 1, 5)
		seedBatch(s, 10, 1, 5, nil)
		uc := newLedger(s)

		err := uc.DeleteBatch(context.Background(), 10, 1001)
		assert.ErrorIs(t, err, domain.ErrBatchNotEmpty)

		_, err = uc.Dispose(context.Background(), ledger.DisposeInput{BatchID: 10, Quantity: 5})
		require.NoError(t, err)
		require.NoError(t, uc.DeleteBatch(context.Background(), 10, 1001))
		assert.NotContains(t, s.batches, int64(10))
		assert.Equal(t, 0, stockOf(t, s, 1))
	})

	t.Run("lote inexistente", func(t *testing.T) {
		s := newMemStore()
		uc := newLedger(s)
		assert.ErrorIs(t, uc.DeleteBatch(context.Background(), 99, 1001), domain.ErrBatchNotFound)
	})
}

// TestEscenarioFEFO reproduce el escenario completo: P con B1(5, exp
// 2024-01-01) y B2(3, exp 2024-06-01); se dispone todo B1 y se elimina; el
// stock restante es el de B2.
func TestEscenarioFEFO(t *testing.T) {
	s := newMemStore()
	seedProduct(s, 1, 8)
	seedBatch(s, 1, 1, 5, datePtr(2024, time.January, 1))
	seedBatch(s, 2, 1, 3, datePtr(2024, time.June, 1))
	uc := newLedger(s)

	_, err := uc.Dispose(context.Background(), ledger.DisposeInput{BatchID: 1, Quantity: 5, Reason: "vencido", UserID: 1001})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteBatch(context.Background(), 1, 1001))

	assert.Equal(t, 3, stockOf(t, s, 1))
	assert.Equal(t, stockOf(t, s, 1), batchSum(s, 1))
}

// TestInvarianteConservacion: tras cualquier secuencia de operaciones,
// stock_level == Σ quantity de los lotes (incluyendo lotes en cero hasta que
// se eliminan).
func TestInvarianteConservacion(t *testing.T) {
	s := newMemStore()
	seedProduct(s, 1, 0)
	uc := newLedger(s)
	ctx := context.Background()

	b1, err := uc.AddBatch(ctx, ledger.AddBatchInput{ProductID: 1, Quantity: 7, Reason: "compra", UserID: 1001})
	require.NoError(t, err)
	b2, err := uc.AddBatch(ctx, ledger.AddBatchInput{ProductID: 1, Quantity: 4, Reason: "compra", UserID: 1001})
	require.NoError(t, err)
	assert.Equal(t, 11, stockOf(t, s, 1))

	_, err = uc.Dispose(ctx, ledger.DisposeInput{BatchID: b1.ID, Quantity: 7, UserID: 1001})
	require.NoError(t, err)
	assert.Equal(t, 4, stockOf(t, s, 1))
	assert.Equal(t, stockOf(t, s, 1), batchSum(s, 1), "el lote en cero cuenta hasta que se elimina")

	require.NoError(t, uc.DeleteBatch(ctx, b1.ID, 1001))
	_, err = uc.Dispose(ctx, ledger.DisposeInput{BatchID: b2.ID, Quantity: 1, UserID: 1001})
	require.NoError(t, err)

	assert.Equal(t, 3, stockOf(t, s, 1))
	assert.Equal(t, stockOf(t, s, 1), batchSum(s, 1))
}

// TestViolacionDeInvariante: si el stock derivado fue corrompido por fuera del
// ledger, la siguiente mutación lo detecta, falla con ConsistencyViolation y
// no deja escrituras parciales.
func TestViolacionDeInvariante(t *testing.T) {
	s := newMemStore()
	seedProduct(s, 1, 99) // corrupto: no hay lotes que lo respalden
	seedBatch(s, 10, 1, 2, nil)
	uc := newLedger(s)

	_, err := uc.AddBatch(context.Background(), ledger.AddBatchInput{ProductID: 1, Quantity: 5, UserID: 1001})
	assert.ErrorIs(t, err, domain.ErrConsistencyViolation)
	assert.Equal(t, 99, stockOf(t, s, 1), "rollback completo: el stock corrupto queda como estaba")
	assert.Len(t, s.batches, 1, "el lote nuevo no se persiste")
	assert.Empty(t, s.logs)
}

func TestEditBatch_SoloMetadatos(t *testing.T) {
	s := newMemStore()
	seedProduct(s, 1, 5)
	seedBatch(s, 10, 1, 5, datePtr(2024, time.January, 1))
	uc := newLedger(s)

	newExp := datePtr(2024, time.February, 15)
	batch, err := uc.EditBatch(context.Background(), ledger.EditBatchInput{
		BatchID: 10, ExpirationDate: newExp, Reason: "reempaque", UserID: 1001,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, batch.Quantity, "la cantidad es inmutable vía EditBatch")
	assert.Equal(t, *newExp, *s.batches[10].ExpirationDate)
	assert.Equal(t, "reempaque", s.batches[10].Reason)
	require.Len(t, s.logs, 1)
	assert.Equal(t, entity.ActionEditBatch, s.logs[0].ActionType)
}

func TestDeleteProduct(t *testing.T) {
	t.Run("con stock falla", func(t *testing.T) {
		s := newMemStore()
		seedProduct(s, 1, 3)
		seedBatch(s, 10, 1, 3, nil)
		uc := newLedger(s)

		err := uc.DeleteProduct(context.Background(), 1, 1001)
		assert.ErrorIs(t, err, domain.ErrProductHasStock)
		assert.Contains(t, s.products, int64(1))
	})

	t.Run("sin stock elimina en cascada", func(t *testing.T) {
		s := newMemStore()
		seedProduct(s, 1, 0)
		seedBatch(s, 10, 1, 0, nil)
		s.logs = append(s.logs, entity.ProductLog{ID: 1, ProductID: 1, ActionType: entity.ActionDispose})
		uc := newLedger(s)

		require.NoError(t, uc.DeleteProduct(context.Background(), 1, 1001))
		assert.Empty(t, s.products)
		assert.Empty(t, s.batches)
		assert.Empty(t, s.logs, "los logs del producto se eliminan en cascada")
	})

	t.Run("producto inexistente", func(t *testing.T) {
		s := newMemStore()
		uc := newLedger(s)
		assert.ErrorIs(t, uc.DeleteProduct(context.Background(), 9, 1001), domain.ErrProductNotFound)
	})
}

func TestCreateProduct_IDsDelAsignador(t *testing.T) {
	s := newMemStore()
	uc := newLedger(s)

	p1, err := uc.CreateProduct(context.Background(), ledger.CreateProductInput{
		Name: "Arroz 500g", CategoryID: 1, Price: decimal.NewFromFloat(1.20), MinStockLevel: 5,
	})
	require.NoError(t, err)
	p2, err := uc.CreateProduct(context.Background(), ledger.CreateProductInput{
		Name: "Azúcar 1kg", CategoryID: 1, Price: decimal.NewFromFloat(2.10), MinStockLevel: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), p1.ID)
	assert.Equal(t, int64(2), p2.ID)
	assert.Equal(t, 0, p1.StockLevel, "el stock solo entra vía AddBatch")
}

func TestEditProduct_NoTocaStock(t *testing.T) {
	s := newMemStore()
	seedProduct(s, 1, 7)
	seedBatch(s, 10, 1, 7, nil)
	uc := newLedger(s)

	p, err := uc.EditProduct(context.Background(), ledger.EditProductInput{
		ProductID: 1, Name: "Leche deslactosada 1L", CategoryID: 2,
		Price: decimal.NewFromFloat(3.10), MinStockLevel: 12, UserID: 1001,
	})
	require.NoError(t, err)
	assert.Equal(t, "Leche deslactosada 1L", p.Name)
	assert.Equal(t, 7, p.StockLevel)
	require.Len(t, s.logs, 1)
	assert.Equal(t, entity.ActionEditProduct, s.logs[0].ActionType)
}
