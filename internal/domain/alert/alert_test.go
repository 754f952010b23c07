package alert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockadoodle/inventory-core/internal/domain/alert"
	"github.com/stockadoodle/inventory-core/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		minStock int
		want     string
	}{
		{"stock cero es OUT_OF_STOCK", 0, 10, alert.StatusOutOfStock},
		{"stock bajo el mínimo es LOW_STOCK", 5, 10, alert.StatusLowStock},
		{"stock igual al mínimo es OK", 10, 10, alert.StatusOK},
		{"stock sobre el mínimo es OK", 25, 10, alert.StatusOK},
		{"cero con mínimo cero sigue siendo OUT_OF_STOCK", 0, 0, alert.StatusOutOfStock},
		{"una unidad con mínimo cero es OK", 1, 0, alert.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, alert.StockStatus(tt.stock, tt.minStock))
		})
	}
}

// TestExpiringBatches_OrdenFEFO verifica que los lotes por vencer salen
// ordenados por expiración ascendente: el primero es la recomendación FEFO.
func TestExpiringBatches_OrdenFEFO(t *testing.T) {
	today := date(2023, time.December, 15)
	batches := []*entity.StockBatch{
		{ID: 2, Quantity: 3, ExpirationDate: datePtr(2024, time.June, 1)},
		{ID: 1, Quantity: 5, ExpirationDate: datePtr(2024, time.January, 1)},
	}

	expiring := alert.ExpiringBatches(batches, today, 30)

	require.Len(t, expiring, 1, "solo B1 cae dentro del horizonte de 30 días")
	assert.Equal(t, int64(1), expiring[0].ID)
}

func TestExpiringBatches_IgnoraVaciosYSinFecha(t *testing.T) {
	today := date(2024, time.March, 1)
	batches := []*entity.StockBatch{
		{ID: 1, Quantity: 0, ExpirationDate: datePtr(2024, time.March, 2)},  // vacío
		{ID: 2, Quantity: 4, ExpirationDate: nil},                           // no expira
		{ID: 3, Quantity: 2, ExpirationDate: datePtr(2024, time.March, 8)},  // dentro
		{ID: 4, Quantity: 1, ExpirationDate: datePtr(2024, time.March, 3)},  // dentro, antes
		{ID: 5, Quantity: 9, ExpirationDate: datePtr(2024, time.April, 20)}, // fuera
	}

	expiring := alert.ExpiringBatches(batches, today, 7)

	require.Len(t, expiring, 2)
	assert.Equal(t, int64(4), expiring[0].ID, "el lote que vence primero va primero")
	assert.Equal(t, int64(3), expiring[1].ID)
}

func TestExpiringBatches_BordeDelHorizonte(t *testing.T) {
	today := date(2024, time.March, 1)
	batches := []*entity.StockBatch{
		{ID: 1, Quantity: 1, ExpirationDate: datePtr(2024, time.March, 8)}, // exactamente today+7
		{ID: 2, Quantity: 1, ExpirationDate: datePtr(2024, time.March, 9)}, // un día después
	}

	expiring := alert.ExpiringBatches(batches, today, 7)

	require.Len(t, expiring, 1, "la fecha de corte es inclusiva")
	assert.Equal(t, int64(1), expiring[0].ID)
}

func TestClassify_Escenarios(t *testing.T) {
	today := date(2024, time.March, 1)

	t.Run("sin stock es CRITICAL", func(t *testing.T) {
		p := &entity.Product{MinStockLevel: 10, StockLevel: 0}
		c, ok := alert.Classify(p, nil, today, 7)
		require.True(t, ok)
		assert.Equal(t, []string{alert.StatusOutOfStock}, c.Tags)
		assert.Equal(t, alert.SeverityCritical, c.Severity)
	})

	t.Run("stock bajo es WARNING", func(t *testing.T) {
		p := &entity.Product{MinStockLevel: 10, StockLevel: 5}
		c, ok := alert.Classify(p, nil, today, 7)
		require.True(t, ok)
		assert.Equal(t, []string{alert.StatusLowStock}, c.Tags)
		assert.Equal(t, alert.SeverityWarning, c.Severity)
	})

	t.Run("sin problemas no emite fila", func(t *testing.T) {
		p := &entity.Product{MinStockLevel: 10, StockLevel: 10}
		_, ok := alert.Classify(p, nil, today, 7)
		assert.False(t, ok)
	})

	t.Run("expiración próxima agrega tag y fecha más temprana", func(t *testing.T) {
		p := &entity.Product{MinStockLevel: 2, StockLevel: 8}
		batches := []*entity.StockBatch{
			{ID: 1, Quantity: 5, ExpirationDate: datePtr(2024, time.March, 6)},
			{ID: 2, Quantity: 3, ExpirationDate: datePtr(2024, time.March, 4)},
		}
		c, ok := alert.Classify(p, batches, today, 7)
		require.True(t, ok)
		assert.Equal(t, []string{alert.TagExpiringSoon}, c.Tags)
		assert.Equal(t, alert.SeverityWarning, c.Severity)
		require.NotNil(t, c.EarliestExpiry)
		assert.Equal(t, date(2024, time.March, 4), *c.EarliestExpiry)
	})

	t.Run("sin stock y por expirar sigue siendo CRITICAL", func(t *testing.T) {
		p := &entity.Product{MinStockLevel: 10, StockLevel: 0}
		batches := []*entity.StockBatch{
			{ID: 1, Quantity: 1, ExpirationDate: datePtr(2024, time.March, 2)},
		}
		c, ok := alert.Classify(p, batches, today, 7)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{alert.StatusOutOfStock, alert.TagExpiringSoon}, c.Tags)
		assert.Equal(t, alert.SeverityCritical, c.Severity)
	})
}

// TestClassify_Determinista: mismo snapshot y misma fecha producen siempre el
// mismo resultado.
func TestClassify_Determinista(t *testing.T) {
	today := date(2024, time.March, 1)
	p := &entity.Product{MinStockLevel: 10, StockLevel: 3}
	batches := []*entity.StockBatch{
		{ID: 1, Quantity: 3, ExpirationDate: datePtr(2024, time.March, 5)},
	}

	c1, ok1 := alert.Classify(p, batches, today, 7)
	c2, ok2 := alert.Classify(p, batches, today, 7)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, c1, c2)
}
