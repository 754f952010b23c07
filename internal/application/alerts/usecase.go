// Package alerts expone el escaneo de alertas de bajo stock y expiración.
// Solo lee: la clasificación vive en el dominio (alert) y es determinista para
// un snapshot y una fecha dados.
package alerts

import (
	"context"
	"sort"
	"time"

	"github.com/stockadoodle/inventory-core/internal/application/dto"
	"github.com/stockadoodle/inventory-core/internal/domain/alert"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

// DefaultHorizonDays horizonte por defecto para expiraciones.
const DefaultHorizonDays = 7

// Notifier es el sink de notificaciones (email, log...). El core lo consume
// como llamada opaca; la entrega real es un colaborador externo.
type Notifier interface {
	Deliver(ctx context.Context, report *dto.AlertReportDTO) error
}

// Clock entrega la fecha "hoy" para las comparaciones de expiración.
type Clock func() time.Time

// UseCase escanea productos y lotes y clasifica alertas.
type UseCase struct {
	products repository.ProductRepository
	batches  repository.StockBatchRepository
	notifier Notifier
	today    Clock
	log      *logger.Logger
}

// NewUseCase construye el escáner de alertas. notifier puede ser nil si no se
// quiere entrega (solo consulta).
func NewUseCase(
	products repository.ProductRepository,
	batches repository.StockBatchRepository,
	notifier Notifier,
	today Clock,
	log *logger.Logger,
) *UseCase {
	return &UseCase{products: products, batches: batches, notifier: notifier, today: today, log: log}
}

// GetAlerts clasifica todos los productos y devuelve solo los que tienen
// problemas, con el resumen partido por severidad. horizonDays <= 0 usa el
// horizonte por defecto (7 días).
func (uc *UseCase) GetAlerts(ctx context.Context, horizonDays int) (*dto.AlertReportDTO, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	today := uc.today()

	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	report := &dto.AlertReportDTO{
		ReportID:   dto.ReportAlerts,
		ReportName: "Low-Stock and Expiration Alert Report",
	}
	for _, p := range products {
		batches, err := uc.batches.ListByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		c, ok := alert.Classify(p, batches, today, horizonDays)
		if !ok {
			continue
		}
		row := dto.AlertRowDTO{
			ProductID:     p.ID,
			ProductName:   p.Name,
			CurrentStock:  p.StockLevel,
			MinStockLevel: p.MinStockLevel,
			AlertStatus:   c.Tags,
			Severity:      c.Severity,
		}
		if c.EarliestExpiry != nil {
			row.ExpirationDate = c.EarliestExpiry.Format("2006-01-02")
		}
		report.Alerts = append(report.Alerts, row)
		if c.Severity == alert.SeverityCritical {
			report.Summary.CriticalAlerts++
		} else {
			report.Summary.WarningAlerts++
		}
	}
	report.Summary.TotalAlerts = len(report.Alerts)
	return report, nil
}

// NotifyAlerts escanea y entrega el reporte al sink cuando hay alertas.
// Sin alertas no se entrega nada.
func (uc *UseCase) NotifyAlerts(ctx context.Context, horizonDays int) error {
	report, err := uc.GetAlerts(ctx, horizonDays)
	if err != nil {
		return err
	}
	if report.Summary.TotalAlerts == 0 || uc.notifier == nil {
		return nil
	}
	if err := uc.notifier.Deliver(ctx, report); err != nil {
		return err
	}
	uc.log.Info().
		Int("total", report.Summary.TotalAlerts).
		Int("critical", report.Summary.CriticalAlerts).
		Msg("alertas entregadas al sink de notificaciones")
	return nil
}
