package pgerr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bidding/internal/adapters/out/postgres/pgerr"
	"bidding/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
		fatal     bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, transient: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, transient: true},
		{name: "lock timeout", err: &pgconn.PgError{Code: pgerrcode.LockNotAvailable}, transient: true},
		{name: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, transient: true},
		{name: "wrapped deadlock", err: fmt.Errorf("update: %w", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}), transient: true},
		{name: "sqlite busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, transient: true},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, fatal: true},
		{name: "syntax error", err: &pgconn.PgError{Code: pgerrcode.SyntaxError}, fatal: true},
		{name: "plain error", err: errors.New("boom"), fatal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pgerr.Classify("op", tt.err)

			assert.Equal(t, tt.transient, errors.Is(err, errs.ErrTransientStore))
			assert.Equal(t, tt.fatal, errors.Is(err, errs.ErrFatalStore))
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "op")
		})
	}
}

func TestClassify_PassesThrough(t *testing.T) {
	notFound := errs.NewObjectNotFoundError("order", "RX250101-001")
	transient := errs.NewTransientStoreError("earlier", errors.New("x"))

	assert.Nil(t, pgerr.Classify("op", nil))
	assert.Same(t, notFound, pgerr.Classify("op", notFound))
	assert.Same(t, transient, pgerr.Classify("op", transient))
	assert.Equal(t, context.Canceled, pgerr.Classify("op", context.Canceled))
	assert.ErrorIs(t, pgerr.Classify("op", fmt.Errorf("q: %w", context.DeadlineExceeded)), context.DeadlineExceeded)
}
