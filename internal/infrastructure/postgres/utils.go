package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stockadoodle/inventory-core/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// wrapStoreErr traduce fallas de transporte/timeout del store a
// domain.ErrStorageUnavailable (transitorio, reintentable). El resto de los
// errores se envuelve con la operación para conservar la causa.
func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 57014 = query_canceled (statement_timeout); clase 08 = connection exception
		return pgErr.Code == "57014" || (len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08")
	}
	return pgconn.Timeout(err)
}
