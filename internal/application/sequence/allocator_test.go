package sequence_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockadoodle/inventory-core/internal/application/sequence"
	"github.com/stockadoodle/inventory-core/internal/domain"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

// fakeCounterRepo simula el upsert-incremento atómico del store con un mutex.
type fakeCounterRepo struct {
	mu   sync.Mutex
	seqs map[string]int64
	fail error // si no es nil, NextSequence falla siempre con este error
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{seqs: make(map[string]int64)}
}

func (f *fakeCounterRepo) NextSequence(_ context.Context, name string, initial int64) (int64, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seqs[name]; !ok {
		f.seqs[name] = initial
	}
	f.seqs[name]++
	return f.seqs[name], nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestNextID_PrimerValorTrasInicial(t *testing.T) {
	alloc := sequence.NewAllocator(newFakeCounterRepo(), testLogger())

	id, err := alloc.NextID(context.Background(), "product_id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "contadores normales nacen en 0: primer ID = 1")

	id, err = alloc.NextID(context.Background(), "user_id")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), id, "user_id nace en 1000: primer ID = 1001")
}

// TestNextID_ConcurrenciaSinDuplicadosNiHuecos: N callers concurrentes sobre
// la misma colección reciben exactamente N valores distintos y contiguos.
func TestNextID_ConcurrenciaSinDuplicadosNiHuecos(t *testing.T) {
	const n = 200
	alloc := sequence.NewAllocator(newFakeCounterRepo(), testLogger())

	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := alloc.NextID(context.Background(), "stockbatch_id")
			require.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		assert.Equal(t, int64(i+1), id, "la secuencia ordenada debe ser 1..N sin duplicados ni huecos")
	}
}

func TestNextID_ColeccionesIndependientes(t *testing.T) {
	alloc := sequence.NewAllocator(newFakeCounterRepo(), testLogger())

	for i := 1; i <= 3; i++ {
		id, err := alloc.NextID(context.Background(), "product_id")
		require.NoError(t, err)
		assert.Equal(t, int64(i), id)
	}
	id, err := alloc.NextID(context.Background(), "sale_id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "cada colección lleva su propio contador")
}

func TestNextID_StoreNoDisponible(t *testing.T) {
	repo := newFakeCounterRepo()
	repo.fail = domain.ErrStorageUnavailable
	alloc := sequence.NewAllocator(repo, testLogger())

	_, err := alloc.NextID(context.Background(), "product_id")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
