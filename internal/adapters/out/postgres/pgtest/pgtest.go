// Package pgtest opens stores for adapter and integration tests: an
// in-memory SQLite database with the schema auto-migrated, or a PostgreSQL
// container with the goose migrations applied.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bidding/internal/adapters/out/postgres/identityrepo"
	"bidding/internal/adapters/out/postgres/migrations"
	"bidding/internal/adapters/out/postgres/orderrepo"
	"bidding/internal/adapters/out/postgres/outboxrepo"
	"bidding/internal/adapters/out/postgres/quoterepo"
	"bidding/internal/adapters/out/postgres/sequencerepo"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var sqliteSeq atomic.Int64

// OpenSQLite returns a fresh in-memory database private to t. It has a
// single connection, so a test must not query outside an open transaction
// while that transaction is running.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, sqliteSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&quoterepo.QuoteDTO{},
		&sequencerepo.DailySequenceDTO{},
		&outboxrepo.OutboxMessageDTO{},
		&identityrepo.ProviderDTO{},
	))

	return db
}

// Postgres is a running PostgreSQL container with the schema migrated.
type Postgres struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// StartPostgres starts a container and applies all migrations.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	pg := &Postgres{Container: container}
	if err = pg.connect(ctx); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	return pg, nil
}

func (p *Postgres) connect(ctx context.Context) error {
	dsn, err := p.Container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return err
	}

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(32)

	migrator, err := migrations.New(sqlDB, nil)
	if err != nil {
		return err
	}
	if err = migrator.Up(ctx); err != nil {
		return err
	}

	p.DB = db
	return nil
}

// Truncate empties every table.
func (p *Postgres) Truncate() error {
	return p.DB.Exec(
		"TRUNCATE TABLE quotes, orders, providers, daily_sequence_counters, outbox_messages",
	).Error
}

func (p *Postgres) Terminate(ctx context.Context) error {
	if sqlDB, err := p.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return p.Container.Terminate(ctx)
}
