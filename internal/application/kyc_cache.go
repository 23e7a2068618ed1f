package application

import (
	"context"
	"time"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/pkg/helpers"
)

// Redis read-through cache of a user's own KYC record. Best-effort on both
// sides: a cache failure is logged and the database remains authoritative.

const kycCacheTTL = time.Hour

func kycCacheKey(userID string) string {
	return "kyc:user:" + userID
}

func (s *KycService) cacheRecord(ctx context.Context, rec *entity.KycRecord) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, kycCacheKey(rec.UserID), rec, kycCacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", rec.UserID).Warn("kyc cache write failed")
	}
}

func (s *KycService) cachedRecord(ctx context.Context, userID string) (*entity.KycRecord, bool) {
	if s.Redis == nil {
		return nil, false
	}
	var rec entity.KycRecord
	found, err := helpers.RedisGetJSON(ctx, s.Redis, kycCacheKey(userID), &rec)
	if err != nil || !found {
		return nil, false
	}
	return &rec, true
}
