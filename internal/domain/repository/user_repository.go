package repository

import (
	"context"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Account lifecycle is owned elsewhere; the KYC core needs lookups plus the
// has_profile flip performed inside the submission transaction.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SetHasProfile(ctx context.Context, userID string, hasProfile bool) error
}
