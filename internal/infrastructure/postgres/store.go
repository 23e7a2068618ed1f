package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

// db is satisfied by both *pgxpool.Pool and pgx.Tx, so the same repository
// code serves auto-commit and transactional paths.
type db interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Store is the Postgres-backed persistence layer.
type Store struct {
	pool     *pgxpool.Pool
	kyc      *KycRepository
	profiles *ProfileRepository
	users    *UserRepository
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:     pool,
		kyc:      NewKycRepository(pool),
		profiles: NewProfileRepository(pool),
		users:    NewUserRepository(pool),
	}
}

func (s *Store) Kyc() repository.KycRepository         { return s.kyc }
func (s *Store) Profiles() repository.ProfileRepository { return s.profiles }
func (s *Store) Users() repository.UserRepository       { return s.users }

// WithinTx executes fn inside one transaction; fn receives repositories bound
// to that transaction. Rollback on any error, commit otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bound := &txStore{
		kyc:      NewKycRepository(tx),
		profiles: NewProfileRepository(tx),
		users:    NewUserRepository(tx),
	}
	if err := fn(bound); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type txStore struct {
	kyc      *KycRepository
	profiles *ProfileRepository
	users    *UserRepository
}

func (t *txStore) Kyc() repository.KycRepository         { return t.kyc }
func (t *txStore) Profiles() repository.ProfileRepository { return t.profiles }
func (t *txStore) Users() repository.UserRepository       { return t.users }

var _ repository.Store = (*Store)(nil)
var _ repository.Tx = (*txStore)(nil)
