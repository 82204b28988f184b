package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/abaevdict/internal/adapter/sqlschema"
	"github.com/heartmarshall/abaevdict/internal/config"
	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/migrations"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store loads dictionary tables into PostgreSQL.
type Store struct {
	db    DB
	txm   *TxManager
	close func()
}

// New wraps an existing connection pool.
func New(db DB) *Store {
	return &Store{db: db, txm: NewTxManager(db), close: func() {}}
}

// Open connects to the database described by cfg and applies migrations.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	s := New(pool)
	s.close = pool.Close
	return s, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Postgres())
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close releases the pool when the store owns it.
func (s *Store) Close() error {
	s.close()
	return nil
}

// RunInTx runs fn in one transaction; see TxManager.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.txm.RunInTx(ctx, fn)
}

// Clear deletes every row of the dictionary tables and the run log.
func (s *Store) Clear(ctx context.Context) error {
	batch := &pgx.Batch{}
	for _, table := range sqlschema.DeleteOrder {
		batch.Queue("DELETE FROM " + table)
	}
	if _, err := s.sendBatchExec(ctx, batch); err != nil {
		return mapError(err, "clear")
	}
	return nil
}

// InsertRows inserts rows into table with one multi-row statement and
// returns the number of affected rows.
func (s *Store) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	b := psql.Insert(table).Columns(columns...)
	for _, row := range rows {
		b = b.Values(row...)
	}
	if suffix, ok := sqlschema.Upserts[table]; ok {
		b = b.Suffix(suffix)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", table, err)
	}

	tag, err := QuerierFromCtx(ctx, s.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, table)
	}
	return int(tag.RowsAffected()), nil
}

// RecordRun stores a completed build run.
func (s *Store) RecordRun(ctx context.Context, run domain.BuildRun) error {
	query, args, err := psql.Insert(sqlschema.BuildRuns).
		Columns(sqlschema.Columns[sqlschema.BuildRuns]...).
		Values(sqlschema.RunRow(run)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", sqlschema.BuildRuns, err)
	}

	if _, err := QuerierFromCtx(ctx, s.db).Exec(ctx, query, args...); err != nil {
		return mapError(err, sqlschema.BuildRuns)
	}
	return nil
}

// CountRows returns the number of rows in table.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	if err := QuerierFromCtx(ctx, s.db).QueryRow(ctx, "SELECT count(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&n); err != nil {
		return 0, mapError(err, table)
	}
	return n, nil
}

func (s *Store) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	results := QuerierFromCtx(ctx, s.db).SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}
