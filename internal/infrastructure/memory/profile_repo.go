package memory

import (
	"context"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

type profileRepo struct {
	get func(fn func(st *state) error) error
}

func (r *profileRepo) UpsertVendor(ctx context.Context, p *entity.VendorProfile) error {
	return r.get(func(st *state) error {
		if existing, ok := st.vendors[p.UserID]; ok {
			existing.Name = p.Name
			existing.Email = p.Email
			existing.Phone = p.Phone
			existing.UpdatedAt = now()
			*p = *existing
			return nil
		}
		p.ID = newID()
		p.CreatedAt = now()
		p.UpdatedAt = p.CreatedAt
		cp := *p
		st.vendors[p.UserID] = &cp
		return nil
	})
}

func (r *profileRepo) GetVendorByUserID(ctx context.Context, userID string) (*entity.VendorProfile, error) {
	var out *entity.VendorProfile
	err := r.get(func(st *state) error {
		p, ok := st.vendors[userID]
		if !ok {
			return repository.ErrNotFound
		}
		cp := *p
		out = &cp
		return nil
	})
	return out, err
}

func (r *profileRepo) ActivateVendor(ctx context.Context, userID string) error {
	return r.get(func(st *state) error {
		p, ok := st.vendors[userID]
		if !ok {
			return repository.ErrNotFound
		}
		p.IsVerified = true
		p.Status = entity.ProfileActive
		p.UpdatedAt = now()
		return nil
	})
}

func (r *profileRepo) UpsertHotel(ctx context.Context, p *entity.HotelProfile) error {
	return r.get(func(st *state) error {
		if existing, ok := st.hotels[p.UserID]; ok {
			existing.Name = p.Name
			existing.Email = p.Email
			existing.Phone = p.Phone
			existing.UpdatedAt = now()
			*p = *existing
			return nil
		}
		p.ID = newID()
		p.CreatedAt = now()
		p.UpdatedAt = p.CreatedAt
		cp := *p
		st.hotels[p.UserID] = &cp
		return nil
	})
}

func (r *profileRepo) GetHotelByUserID(ctx context.Context, userID string) (*entity.HotelProfile, error) {
	var out *entity.HotelProfile
	err := r.get(func(st *state) error {
		p, ok := st.hotels[userID]
		if !ok {
			return repository.ErrNotFound
		}
		cp := *p
		out = &cp
		return nil
	})
	return out, err
}

func (r *profileRepo) ActivateHotel(ctx context.Context, userID string) error {
	return r.get(func(st *state) error {
		p, ok := st.hotels[userID]
		if !ok {
			return repository.ErrNotFound
		}
		p.IsVerified = true
		p.Status = entity.ProfileActive
		p.UpdatedAt = now()
		return nil
	})
}

func (r *profileRepo) UpsertHotelAddress(ctx context.Context, a *entity.HotelAddress) error {
	return r.get(func(st *state) error {
		if existing, ok := st.addresses[a.HotelProfileID]; ok {
			existing.StreetAddress = a.StreetAddress
			existing.UpdatedAt = now()
			*a = *existing
			return nil
		}
		a.ID = newID()
		a.CreatedAt = now()
		a.UpdatedAt = a.CreatedAt
		cp := *a
		st.addresses[a.HotelProfileID] = &cp
		return nil
	})
}

func (r *profileRepo) GetHotelAddress(ctx context.Context, hotelProfileID string) (*entity.HotelAddress, error) {
	var out *entity.HotelAddress
	err := r.get(func(st *state) error {
		a, ok := st.addresses[hotelProfileID]
		if !ok {
			return repository.ErrNotFound
		}
		cp := *a
		out = &cp
		return nil
	})
	return out, err
}

func (r *profileRepo) UpsertSchool(ctx context.Context, p *entity.PetSchoolProfile) error {
	return r.get(func(st *state) error {
		if existing, ok := st.schools[p.UserID]; ok {
			existing.Name = p.Name
			existing.Email = p.Email
			existing.Phone = p.Phone
			existing.UpdatedAt = now()
			*p = *existing
			return nil
		}
		p.ID = newID()
		p.CreatedAt = now()
		p.UpdatedAt = p.CreatedAt
		cp := *p
		st.schools[p.UserID] = &cp
		return nil
	})
}

func (r *profileRepo) GetSchoolByUserID(ctx context.Context, userID string) (*entity.PetSchoolProfile, error) {
	var out *entity.PetSchoolProfile
	err := r.get(func(st *state) error {
		p, ok := st.schools[userID]
		if !ok {
			return repository.ErrNotFound
		}
		cp := *p
		out = &cp
		return nil
	})
	return out, err
}

func (r *profileRepo) ActivateSchool(ctx context.Context, userID string) error {
	return r.get(func(st *state) error {
		p, ok := st.schools[userID]
		if !ok {
			return repository.ErrNotFound
		}
		p.IsVerified = true
		p.Status = entity.ProfileActive
		p.UpdatedAt = now()
		return nil
	})
}

func (r *profileRepo) EnsureSitter(ctx context.Context, p *entity.PetSitterProfile) error {
	return r.get(func(st *state) error {
		if _, ok := st.sitters[p.UserID]; ok {
			// resubmission leaves sitter-owned fields alone
			return nil
		}
		p.ID = newID()
		p.CreatedAt = now()
		p.UpdatedAt = p.CreatedAt
		cp := *p
		cp.Languages = append([]string(nil), p.Languages...)
		st.sitters[p.UserID] = &cp
		return nil
	})
}

func (r *profileRepo) GetSitterByUserID(ctx context.Context, userID string) (*entity.PetSitterProfile, error) {
	var out *entity.PetSitterProfile
	err := r.get(func(st *state) error {
		p, ok := st.sitters[userID]
		if !ok {
			return repository.ErrNotFound
		}
		cp := *p
		cp.Languages = append([]string(nil), p.Languages...)
		out = &cp
		return nil
	})
	return out, err
}

func (r *profileRepo) ActivateSitter(ctx context.Context, userID string) error {
	return r.get(func(st *state) error {
		p, ok := st.sitters[userID]
		if !ok {
			return repository.ErrNotFound
		}
		p.IsVerified = true
		p.ProfileStatus = entity.ProfileActive
		p.UpdatedAt = now()
		return nil
	})
}

var _ repository.ProfileRepository = (*profileRepo)(nil)
