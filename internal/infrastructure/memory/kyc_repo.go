package memory

import (
	"context"
	"sort"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

type kycRepo struct {
	get func(fn func(st *state) error) error
}

func (r *kycRepo) Create(ctx context.Context, rec *entity.KycRecord) error {
	return r.get(func(st *state) error {
		if _, exists := st.kycByUser[rec.UserID]; exists {
			return repository.ErrDuplicate
		}
		rec.ID = newID()
		rec.CreatedAt = now()
		rec.UpdatedAt = rec.CreatedAt
		st.kyc[rec.ID] = copyKyc(rec)
		st.kycByUser[rec.UserID] = rec.ID
		return nil
	})
}

func (r *kycRepo) GetByID(ctx context.Context, id string) (*entity.KycRecord, error) {
	var out *entity.KycRecord
	err := r.get(func(st *state) error {
		rec, ok := st.kyc[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = copyKyc(rec)
		return nil
	})
	return out, err
}

func (r *kycRepo) GetByUserID(ctx context.Context, userID string) (*entity.KycRecord, error) {
	var out *entity.KycRecord
	err := r.get(func(st *state) error {
		id, ok := st.kycByUser[userID]
		if !ok {
			return repository.ErrNotFound
		}
		out = copyKyc(st.kyc[id])
		return nil
	})
	return out, err
}

func (r *kycRepo) List(ctx context.Context) ([]entity.KycRecord, error) {
	var out []entity.KycRecord
	err := r.get(func(st *state) error {
		for _, rec := range st.kyc {
			out = append(out, *copyKyc(rec))
		}
		sort.Slice(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

func (r *kycRepo) UpdateReview(ctx context.Context, rec *entity.KycRecord) error {
	return r.get(func(st *state) error {
		stored, ok := st.kyc[rec.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.Status = rec.Status
		if rec.ReviewedAt != nil {
			t := *rec.ReviewedAt
			stored.ReviewedAt = &t
		}
		stored.ReviewedBy = rec.ReviewedBy
		stored.UpdatedAt = now()
		return nil
	})
}

var _ repository.KycRepository = (*kycRepo)(nil)
