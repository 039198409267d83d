// Package pgerr maps raw store errors onto the errs taxonomy. Repositories
// pass every error returned by the database through Classify, so the core
// only ever sees TransientStoreError, FatalStoreError or one of its own
// typed errors.
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"

	"bidding/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var transientCodes = map[string]struct{}{
	pgerrcode.SerializationFailure: {},
	pgerrcode.DeadlockDetected:     {},
	pgerrcode.LockNotAvailable:     {},
	pgerrcode.TooManyConnections:   {},
	pgerrcode.AdminShutdown:        {},
	pgerrcode.CannotConnectNow:     {},
	pgerrcode.QueryCanceled:        {},
}

var typed = []error{
	errs.ErrValueIsRequired,
	errs.ErrValueIsInvalid,
	errs.ErrValueIsOutOfRange,
	errs.ErrObjectNotFound,
	errs.ErrForbidden,
	errs.ErrInvalidState,
	errs.ErrConflict,
	errs.ErrCapacityExceeded,
	errs.ErrTransientStore,
	errs.ErrFatalStore,
}

// Classify wraps err for operation op. Errors that are already typed and
// context cancellation pass through unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range typed {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if IsTransient(err) {
		return errs.NewTransientStoreError(op, err)
	}
	return errs.NewFatalStoreError(op, err)
}

// IsTransient reports whether err is worth retrying in a new transaction.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := transientCodes[pgErr.Code]; ok {
			return true
		}
		return pgerrcode.IsConnectionException(pgErr.Code)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
