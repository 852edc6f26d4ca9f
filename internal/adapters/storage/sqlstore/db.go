// Package sqlstore implementa los repositorios sobre database/sql.
// El mismo esquema y las mismas consultas sirven para Postgres (pgx) y SQLite (sqlcipher).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mutecomm/go-sqlcipher/v4"
	"github.com/sethvargo/go-retry"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown database driver")

type Options struct {
	Driver string // postgres | sqlite
	DSN    string // URL de postgres o path del archivo sqlite

	// Key cifra el archivo SQLite. Vacío = sin cifrado.
	Key string

	// ConnectRetries reintentos del ping inicial (backoff fibonacci).
	ConnectRetries int
}

// DB es un *sql.DB que sabe en qué dialecto hablar.
type DB struct {
	*sql.DB
	driver string
}

// Open abre y verifica la conexión. Postgres puede tardar en aceptar conexiones
// (docker compose, CI), por eso el ping se reintenta.
func Open(ctx context.Context, opts Options) (*DB, error) {
	var (
		sqlDB *sql.DB
		err   error
	)

	switch opts.Driver {
	case DriverPostgres:
		sqlDB, err = sql.Open("pgx", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: open postgres: %w", err)
		}
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)

	case DriverSQLite:
		if dir := filepath.Dir(opts.DSN); dir != "" {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("sqlstore: create database directory: %w", err)
			}
		}
		sqlDB, err = sql.Open("sqlite3", sqliteDSN(opts.DSN, opts.Key))
		if err != nil {
			return nil, fmt.Errorf("sqlstore: open sqlite: %w", err)
		}
		// SQLite serializa escrituras; una sola conexión evita SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)

	default:
		return nil, fmt.Errorf("sqlstore: %w: %q", ErrUnknownDriver, opts.Driver)
	}

	if err := ping(ctx, sqlDB, opts.ConnectRetries); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if opts.Driver == DriverSQLite {
		if _, err := sqlDB.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("sqlstore: enable WAL mode: %w", err)
		}
	}

	return &DB{DB: sqlDB, driver: opts.Driver}, nil
}

func (db *DB) Driver() string { return db.driver }

func ping(ctx context.Context, sqlDB *sql.DB, retries int) error {
	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxRetries(uint64(max(retries, 0)), b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if err := sqlDB.PingContext(pctx); err != nil {
			return retry.RetryableError(fmt.Errorf("sqlstore: ping: %w", err))
		}
		return nil
	})
}

func sqliteDSN(path, key string) string {
	if key == "" {
		return path
	}
	return path + "?_pragma_key=" + url.QueryEscape(key)
}

// rebind pasa los "?" a "$n" cuando el motor es Postgres.
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.ExecContext(ctx, db.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.QueryRowContext(ctx, db.rebind(query), args...)
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.QueryContext(ctx, db.rebind(query), args...)
}
