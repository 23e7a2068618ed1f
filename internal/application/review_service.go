package application

import (
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
	"github.com/pawmart/pawmart-backend/pkg/helpers"
	"github.com/pawmart/pawmart-backend/pkg/mailer"
)

// ReviewService implements the admin approval/rejection state machine.
// PENDING is the only state a transition can leave; APPROVED and REJECTED are
// hard stops. Approval activates the matching role profile in the same
// transaction as the status flip.
type ReviewService struct {
	Store      repository.Store
	Redis      *redis.Client
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESKycIndex string
	Notifier   *helpers.RabbitPublisher
}

func NewReviewService(store repository.Store, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esKycIndex string, notifier *helpers.RabbitPublisher) *ReviewService {
	return &ReviewService{
		Store:      store,
		Redis:      rdb,
		Logger:     logger,
		ES:         es,
		ESKycIndex: esKycIndex,
		Notifier:   notifier,
	}
}

// Approve transitions the record to APPROVED and activates the matching role
// profile, atomically. A record already in a terminal state is a conflict,
// not an idempotent success.
func (s *ReviewService) Approve(ctx context.Context, kycID, reviewerID string) (*entity.KycRecord, error) {
	rec, err := s.review(ctx, kycID, reviewerID, entity.KycApproved)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"kyc_id": rec.ID, "user_id": rec.UserID, "reviewer": reviewerID}).
		Info("kyc approved")
	s.afterDecision(ctx, rec)
	return rec, nil
}

// Reject transitions the record to REJECTED. The profile shell stays inert in
// PENDING; there is no profile-side effect.
func (s *ReviewService) Reject(ctx context.Context, kycID, reviewerID string) (*entity.KycRecord, error) {
	rec, err := s.review(ctx, kycID, reviewerID, entity.KycRejected)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"kyc_id": rec.ID, "user_id": rec.UserID, "reviewer": reviewerID}).
		Info("kyc rejected")
	s.afterDecision(ctx, rec)
	return rec, nil
}

func (s *ReviewService) review(ctx context.Context, kycID, reviewerID string, target entity.KycStatus) (*entity.KycRecord, error) {
	var rec *entity.KycRecord
	err := s.Store.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		rec, err = tx.Kyc().GetByID(ctx, kycID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrKycNotFound
			}
			return err
		}
		if rec.Status.Terminal() {
			if rec.Status == entity.KycApproved {
				return ErrAlreadyApproved
			}
			return ErrAlreadyRejected
		}

		now := time.Now().UTC()
		rec.Status = target
		rec.ReviewedAt = &now
		rec.ReviewedBy = reviewerID
		if err := tx.Kyc().UpdateReview(ctx, rec); err != nil {
			return err
		}

		if target == entity.KycApproved {
			// Unknown role aborts the whole transaction: approval must not
			// partially succeed.
			return ActivateProfile(ctx, tx, rec.RoleType, rec.UserID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// afterDecision refreshes the per-user cache and search index and hands the
// decision to the notification queue. All best-effort: the decision is
// already committed.
func (s *ReviewService) afterDecision(ctx context.Context, rec *entity.KycRecord) {
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, kycCacheKey(rec.UserID), rec, kycCacheTTL); err != nil {
			s.Logger.WithError(err).WithField("user_id", rec.UserID).Warn("kyc cache write failed")
		}
	}
	indexKycRecord(ctx, s.ES, s.ESKycIndex, s.Logger, rec)

	if s.Notifier != nil {
		job := mailer.DecisionJob{
			To:       rec.Email,
			FullName: rec.FullName,
			KycID:    rec.ID,
			UserID:   rec.UserID,
			RoleType: string(rec.RoleType),
			Decision: string(rec.Status),
		}
		if err := s.Notifier.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("kyc_id", rec.ID).Warn("kyc decision publish failed")
		}
	}
}
