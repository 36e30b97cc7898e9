package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"musicstream/internal/models"
)

// seedLockKey identifies the advisory lock serialising catalogue seeding.
const seedLockKey int64 = 7_301_205_101

// Writer is the mutation surface handed to callers of Exclusive.
type Writer interface {
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, name string, age int) (models.User, error)
	CreateTrack(ctx context.Context, title, artist string) (models.Track, error)
	CreatePlaylist(ctx context.Context, playlist models.NewPlaylist) (models.PlaylistSummary, error)
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs statements against either the connection pool or an open transaction.
type Queries struct {
	db dbtx
}

// Store provides persistence backed by Postgres.
type Store struct {
	*Queries
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{Queries: &Queries{db: db}, db: db}
}

// InTx runs fn inside a single transaction. The transaction is rolled back
// unless fn returns nil and the commit succeeds.
func (s *Store) InTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("begin tx", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&Queries{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("commit tx", err)
	}
	tx = nil

	return nil
}

// Exclusive runs fn in one transaction holding the seeding advisory lock, so
// concurrent process starts cannot both observe an empty catalogue.
func (s *Store) Exclusive(ctx context.Context, fn func(w Writer) error) error {
	return s.InTx(ctx, func(q *Queries) error {
		if _, err := q.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
			return wrapErr("acquire seed lock", err)
		}
		return fn(q)
	})
}

// CreatePlaylist inserts the playlist and its membership atomically.
func (s *Store) CreatePlaylist(ctx context.Context, playlist models.NewPlaylist) (models.PlaylistSummary, error) {
	var created models.PlaylistSummary
	err := s.InTx(ctx, func(q *Queries) error {
		var err error
		created, err = q.CreatePlaylist(ctx, playlist)
		return err
	})
	return created, err
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}

func wrapErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	var (
		connErr *pgconn.ConnectError
		netErr  net.Error
	)
	switch {
	case errors.As(err, &connErr), errors.As(err, &netErr):
		return true
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return true
	}
	return pgconn.Timeout(err)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
