package pipeline

import (
	"context"
	"fmt"

	"github.com/heartmarshall/abaevdict/internal/adapter/postgres"
	"github.com/heartmarshall/abaevdict/internal/adapter/sqlite"
	"github.com/heartmarshall/abaevdict/internal/config"
	"github.com/heartmarshall/abaevdict/internal/domain"
)

// TableLoader is the database contract consumed by the load phase.
// Implemented by sqlite.Store and postgres.Store.
type TableLoader interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Clear(ctx context.Context) error
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int, error)
	RecordRun(ctx context.Context, run domain.BuildRun) error
}

// Store is a TableLoader that owns a connection.
type Store interface {
	TableLoader
	CountRows(ctx context.Context, table string) (int, error)
	Close() error
}

var (
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// OpenStore connects to the configured database and migrates its schema.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.Database.DSN, cfg.Output.ListDelimiter)
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
