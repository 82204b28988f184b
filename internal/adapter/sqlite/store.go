// Package sqlite loads the dictionary tables into a single-file SQLite
// database. List columns are stored as text joined with the list delimiter.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/heartmarshall/abaevdict/internal/adapter/sqlschema"
	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/migrations"
)

var sqb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Store loads dictionary tables into SQLite.
type Store struct {
	db    *sql.DB
	txm   *TxManager
	delim string
}

// Open opens (creating if needed) the database file at dsn with foreign
// keys enforced, and applies migrations.
func Open(ctx context.Context, dsn, listDelimiter string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; a transaction holds the only connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, txm: NewTxManager(db), delim: listDelimiter}, nil
}

func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunInTx runs fn in one transaction; see TxManager.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.txm.RunInTx(ctx, fn)
}

// Clear deletes every row of the dictionary tables and the run log.
func (s *Store) Clear(ctx context.Context) error {
	q := querierFromCtx(ctx, s.db)
	for _, table := range sqlschema.DeleteOrder {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return mapError(err, table)
		}
	}
	return nil
}

// InsertRows inserts rows into table with one multi-row statement and
// returns the number of affected rows.
func (s *Store) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	b := sqb.Insert(table).Columns(columns...)
	for _, row := range rows {
		vals, err := s.flatten(columns, row)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", table, err)
		}
		b = b.Values(vals...)
	}
	if suffix, ok := sqlschema.Upserts[table]; ok {
		b = b.Suffix(suffix)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", table, err)
	}

	res, err := querierFromCtx(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", table, err)
	}
	return int(n), nil
}

// flatten joins list values, which SQLite has no column type for. Items
// holding the delimiter would not split back and are rejected.
func (s *Store) flatten(columns []string, row []any) ([]any, error) {
	out := make([]any, len(row))
	for i, v := range row {
		if list, ok := v.([]string); ok {
			for _, it := range list {
				if strings.Contains(it, s.delim) {
					return nil, domain.NewValidationError(columns[i],
						fmt.Sprintf("item %q contains list delimiter %q", it, s.delim))
				}
			}
			out[i] = strings.Join(list, s.delim)
			continue
		}
		out[i] = v
	}
	return out, nil
}

// RecordRun stores a completed build run.
func (s *Store) RecordRun(ctx context.Context, run domain.BuildRun) error {
	row := sqlschema.RunRow(run)
	row[0] = run.ID.String()

	query, args, err := sqb.Insert(sqlschema.BuildRuns).
		Columns(sqlschema.Columns[sqlschema.BuildRuns]...).
		Values(row...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", sqlschema.BuildRuns, err)
	}

	if _, err := querierFromCtx(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return mapError(err, sqlschema.BuildRuns)
	}
	return nil
}

// CountRows returns the number of rows in table.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	if _, ok := sqlschema.Columns[table]; !ok {
		return 0, fmt.Errorf("count rows: unknown table %q", table)
	}
	var n int
	if err := querierFromCtx(ctx, s.db).QueryRowContext(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		return 0, mapError(err, table)
	}
	return n, nil
}
