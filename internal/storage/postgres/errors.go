package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
	codeQueryCanceled        = "57014"
	codeAdminShutdown        = "57P01"

	idempotencyConstraint = "orders_idempotency_key_key"
)

var uniqueMessages = map[string]string{
	"inventory_items_barcode_key": "barcode already exists",
	"inventory_items_sku_key":     "sku already exists",
	"customers_email_key":         "email already exists",
	"orders_order_number_key":     "order number already exists",
}

// classify maps driver and server failures onto the apperror taxonomy. Errors that are
// already classified pass through unchanged.
func classify(entity string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return apperror.Unavailable(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return apperror.Conflict(entity, "", err)
		case codeUniqueViolation:
			if pgErr.ConstraintName == idempotencyConstraint {
				return apperror.Conflict("order", "", err)
			}
			msg, ok := uniqueMessages[pgErr.ConstraintName]
			if !ok {
				msg = pgErr.Detail
			}
			return apperror.AlreadyExists(entity, msg)
		case codeQueryCanceled, codeAdminShutdown:
			return apperror.Unavailable(err)
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return apperror.Unavailable(err)
		}
		return fmt.Errorf("%s: %w", entity, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.Unavailable(err)
	}
	return fmt.Errorf("%s: %w", entity, err)
}
