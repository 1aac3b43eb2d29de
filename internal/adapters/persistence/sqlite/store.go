// Package sqlite is the durable store behind the "sqlite" persistence
// driver. Plain connections are *sql.Conn and transactions are *sql.Tx;
// the DAOs run the same statements against either.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions:
// 1 - projects and todos
const currentSchemaVersion = 1

// querier is what *sql.DB, *sql.Conn and *sql.Tx have in common.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// connection is the ports.Connection handed to the data portal. Exactly
// one of conn and tx is set.
type connection struct {
	dataSource string
	conn       *sql.Conn
	tx         *sql.Tx
}

func (c *connection) DataSource() string { return c.dataSource }

func (c *connection) querier() querier {
	if c.tx != nil {
		return c.tx
	}
	return c.conn
}

// Store is a SQLite database holding projects and todos. It implements
// ports.ConnectionManager and ports.HealthChecker.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock stamping created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for schema setup.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open creates or opens the database at dsn and brings its schema up to
// date.
//
// The database runs in WAL mode with foreign keys enforced and a 5-second
// busy timeout. SQLite allows one writer, so the pool holds one connection.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	s := &Store{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	s.db = db

	if err := s.applyPragmas(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.applySchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyPragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := s.db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("executing %q: %w", p, err)
		}
	}
	return nil
}

func (s *Store) applySchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	if version < currentSchemaVersion {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("setting schema version: %w", err)
		}
		s.logger.InfoContext(ctx, "sqlite schema migrated",
			slog.Int("from", version),
			slog.Int("to", currentSchemaVersion),
		)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// Registry returns a DAO registry over the store.
func (s *Store) Registry() *persistence.Registry {
	r := persistence.NewRegistry()
	registerDAOs(r, s)
	return r
}

// q returns the statement runner behind conn. A nil conn runs on the pool.
func (s *Store) q(conn ports.Connection) (querier, error) {
	if conn == nil {
		return s.db, nil
	}
	c, ok := conn.(*connection)
	if !ok {
		return nil, &domain.ArgumentError{Function: "sqlite", Argument: "conn", Message: fmt.Sprintf("expected a sqlite connection, got %T", conn)}
	}
	return c.querier(), nil
}

func asConnection(conn ports.Connection) (*connection, error) {
	c, ok := conn.(*connection)
	if !ok {
		return nil, &domain.ArgumentError{Function: "sqlite", Argument: "conn", Message: fmt.Sprintf("expected a sqlite connection, got %T", conn)}
	}
	return c, nil
}

// OpenConnection implements ports.ConnectionManager.
func (s *Store) OpenConnection(ctx context.Context, dataSource string) (ports.Connection, error) {
	c, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite connection: %w", err)
	}
	return &connection{dataSource: dataSource, conn: c}, nil
}

// CloseConnection implements ports.ConnectionManager.
func (s *Store) CloseConnection(_ context.Context, _ string, conn ports.Connection) error {
	c, err := asConnection(conn)
	if err != nil {
		return err
	}
	if c.conn == nil {
		return &domain.ArgumentError{Function: "sqlite.CloseConnection", Argument: "conn", Message: "is a transaction"}
	}
	return c.conn.Close()
}

// BeginTransaction implements ports.ConnectionManager.
func (s *Store) BeginTransaction(ctx context.Context, dataSource string) (ports.Connection, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning sqlite transaction: %w", err)
	}
	return &connection{dataSource: dataSource, tx: tx}, nil
}

// CommitTransaction implements ports.ConnectionManager.
func (s *Store) CommitTransaction(_ context.Context, _ string, conn ports.Connection) error {
	c, err := asConnection(conn)
	if err != nil {
		return err
	}
	if c.tx == nil {
		return &domain.ArgumentError{Function: "sqlite.CommitTransaction", Argument: "conn", Message: "is not a transaction"}
	}
	return c.tx.Commit()
}

// RollbackTransaction implements ports.ConnectionManager.
func (s *Store) RollbackTransaction(_ context.Context, _ string, conn ports.Connection) error {
	c, err := asConnection(conn)
	if err != nil {
		return err
	}
	if c.tx == nil {
		return &domain.ArgumentError{Function: "sqlite.RollbackTransaction", Argument: "conn", Message: "is not a transaction"}
	}
	return c.tx.Rollback()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "sqlite" }

// HealthCheck implements ports.HealthChecker by pinging the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	return nil
}

// translate maps constraint violations to domain errors.
func translate(what string, err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return fmt.Errorf("%s: %w", what, domain.ErrConflict)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s: referenced row: %w", what, domain.ErrNotFound)
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
