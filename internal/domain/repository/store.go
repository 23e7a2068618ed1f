package repository

import (
	"context"
	"errors"
)

// Sentinel errors shared by every store implementation.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Tx groups the repositories bound to one atomic unit of work. Writes issued
// through a Tx either all commit or all roll back.
type Tx interface {
	Kyc() KycRepository
	Profiles() ProfileRepository
	Users() UserRepository
}

// Store is the persistence boundary the application services depend on.
// Outside a transaction the repositories operate in auto-commit mode.
type Store interface {
	Tx

	// WithinTx runs fn inside a single transaction and commits only if fn
	// returns nil. Any error from fn aborts the whole transaction.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
