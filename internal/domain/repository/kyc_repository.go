package repository

import (
	"context"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
)

// KycRepository persists KYC submissions. The storage layer must carry a
// uniqueness constraint on user_id so that concurrent duplicate submissions
// collapse into ErrDuplicate rather than racing past an application check.
type KycRepository interface {
	// Create inserts a new record and fills ID/CreatedAt/UpdatedAt.
	// Returns ErrDuplicate when a record already exists for the user.
	Create(ctx context.Context, rec *entity.KycRecord) error

	GetByID(ctx context.Context, id string) (*entity.KycRecord, error)
	GetByUserID(ctx context.Context, userID string) (*entity.KycRecord, error)
	List(ctx context.Context) ([]entity.KycRecord, error)

	// UpdateReview writes the terminal transition: status plus the
	// reviewed_at/reviewed_by audit stamp. Returns ErrNotFound if the record
	// vanished underneath the reviewer.
	UpdateReview(ctx context.Context, rec *entity.KycRecord) error
}
