// Package alert implementa el motor de alertas de inventario como funciones
// puras sobre un snapshot del estado (servicio de dominio). La fecha "hoy" se
// pasa siempre como parámetro: mismo snapshot + misma fecha = mismo resultado.
package alert

import (
	"sort"
	"time"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
)

// Estados de stock de un producto.
const (
	StatusOutOfStock = "OUT_OF_STOCK"
	StatusLowStock   = "LOW_STOCK"
	StatusOK         = "OK"
)

// Tag adicional cuando hay lotes por expirar dentro del horizonte.
const TagExpiringSoon = "EXPIRING_SOON"

// Severidades de una clasificación con tags presentes.
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
)

// StockStatus clasifica el nivel de stock de un producto:
// OUT_OF_STOCK si stock == 0; LOW_STOCK si 0 < stock < mínimo; OK en otro caso.
func StockStatus(stockLevel, minStockLevel int) string {
	switch {
	case stockLevel == 0:
		return StatusOutOfStock
	case stockLevel < minStockLevel:
		return StatusLowStock
	default:
		return StatusOK
	}
}

// ExpiringBatches devuelve los lotes con unidades (Quantity > 0) cuya fecha de
// expiración cae en o antes de today + horizonDays, ordenados ascendente por
// fecha de expiración. El primer elemento es la recomendación FEFO (first
// expired, first out) para el caller de Dispose.
func ExpiringBatches(batches []*entity.StockBatch, today time.Time, horizonDays int) []*entity.StockBatch {
	cutoff := today.AddDate(0, 0, horizonDays)
	var expiring []*entity.StockBatch
	for _, b := range batches {
		if b.Quantity > 0 && b.Expired(cutoff) {
			expiring = append(expiring, b)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].ExpirationDate.Before(*expiring[j].ExpirationDate)
	})
	return expiring
}

// Classification es el resultado de clasificar un producto con problemas.
type Classification struct {
	Tags           []string   // subconjunto de {OUT_OF_STOCK, LOW_STOCK, EXPIRING_SOON}
	Severity       string     // CRITICAL si OUT_OF_STOCK está presente, si no WARNING
	EarliestExpiry *time.Time // expiración más próxima entre los lotes por vencer
}

// Classify evalúa stock y expiraciones de un producto. ok == false significa
// que el producto no tiene problemas y NO debe aparecer en la salida de
// alertas (no se emite fila con severidad "none").
func Classify(p *entity.Product, batches []*entity.StockBatch, today time.Time, horizonDays int) (Classification, bool) {
	var c Classification

	switch StockStatus(p.StockLevel, p.MinStockLevel) {
	case StatusOutOfStock:
		c.Tags = append(c.Tags, StatusOutOfStock)
	case StatusLowStock:
		c.Tags = append(c.Tags, StatusLowStock)
	}

	if expiring := ExpiringBatches(batches, today, horizonDays); len(expiring) > 0 {
		c.Tags = append(c.Tags, TagExpiringSoon)
		earliest := *expiring[0].ExpirationDate
		c.EarliestExpiry = &earliest
	}

	if len(c.Tags) == 0 {
		return Classification{}, false
	}

	c.Severity = SeverityWarning
	for _, tag := range c.Tags {
		if tag == StatusOutOfStock {
			c.Severity = SeverityCritical
			break
		}
	}
	return c, true
}
