package memory

import (
	"context"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

type userRepo struct {
	get func(fn func(st *state) error) error
}

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	return r.get(func(st *state) error {
		for _, existing := range st.users {
			if existing.Email == u.Email {
				return repository.ErrDuplicate
			}
		}
		if u.ID == "" {
			u.ID = newID()
		}
		u.CreatedAt = now()
		u.UpdatedAt = u.CreatedAt
		cp := *u
		st.users[u.ID] = &cp
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.get(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		cp := *u
		out = &cp
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.get(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				cp := *u
				out = &cp
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *userRepo) SetHasProfile(ctx context.Context, userID string, hasProfile bool) error {
	return r.get(func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return repository.ErrNotFound
		}
		u.HasProfile = hasProfile
		u.UpdatedAt = now()
		return nil
	})
}

var _ repository.UserRepository = (*userRepo)(nil)
