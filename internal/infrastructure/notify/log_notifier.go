// Package notify contiene sinks de entrega de alertas.
package notify

import (
	"context"

	"github.com/stockadoodle/inventory-core/internal/application/alerts"
	"github.com/stockadoodle/inventory-core/internal/application/dto"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

var _ alerts.Notifier = (*LogNotifier)(nil)

// LogNotifier entrega las alertas como eventos estructurados al log. Sirve de
// sink por defecto cuando no hay canal de correo configurado: cada producto
// con problemas emite un evento warn (o error si es crítico).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el sink de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Deliver emite un evento por alerta y un resumen final. Nunca falla: el log
// es best effort y no debe tumbar el escaneo.
func (n *LogNotifier) Deliver(_ context.Context, report *dto.AlertReportDTO) error {
	for _, a := range report.Alerts {
		ev := n.log.Warn()
		if a.Severity == "CRITICAL" {
			ev = n.log.Error()
		}
		ev.Int64("product_id", a.ProductID).
			Str("product", a.ProductName).
			Int("stock", a.CurrentStock).
			Int("min_stock", a.MinStockLevel).
			Strs("status", a.AlertStatus).
			Str("expira", a.ExpirationDate).
			Msg("alerta de inventario")
	}
	n.log.Info().
		Int("total", report.Summary.TotalAlerts).
		Int("criticas", report.Summary.CriticalAlerts).
		Int("advertencias", report.Summary.WarningAlerts).
		Msg("escaneo de alertas completado")
	return nil
}
