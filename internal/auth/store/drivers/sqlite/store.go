package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/hotellisting/hotellisting/internal/auth/store"

	_ "modernc.org/sqlite"
)

// dbtx is the common surface of *sql.DB and *sql.Tx the repos run against.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer; serialising through one connection
	// avoids SQLITE_BUSY under concurrent transactions.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	// Execute the function
	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	// Commit on success
	return tx.Commit()
}

func (s *Store) Users() store.Users             { return &usersRepo{db: s.db} }
func (s *Store) Roles() store.Roles             { return &rolesRepo{db: s.db} }
func (s *Store) NamedTokens() store.NamedTokens { return &namedTokensRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint translates sqlite unique-constraint failures into the store
// sentinel. modernc.org/sqlite does not expose typed constraint errors, so
// the message text is the only signal available.
func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}
