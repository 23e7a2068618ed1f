package repository

import (
	"context"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
)

// ProfileRepository persists the four role-profile shells, each keyed 1:1 by
// user. Upserts follow the provisioning contract: on create the shell starts
// PENDING and unverified; on conflict only contact fields are refreshed and
// activation state is never touched.
type ProfileRepository interface {
	UpsertVendor(ctx context.Context, p *entity.VendorProfile) error
	GetVendorByUserID(ctx context.Context, userID string) (*entity.VendorProfile, error)
	ActivateVendor(ctx context.Context, userID string) error

	// UpsertHotel fills p.ID with the stored profile id so the caller can
	// attach the address shell.
	UpsertHotel(ctx context.Context, p *entity.HotelProfile) error
	GetHotelByUserID(ctx context.Context, userID string) (*entity.HotelProfile, error)
	ActivateHotel(ctx context.Context, userID string) error

	// UpsertHotelAddress keys on hotel_profile_id: an existing address only
	// has its street refreshed, defaults stay as first written.
	UpsertHotelAddress(ctx context.Context, a *entity.HotelAddress) error
	GetHotelAddress(ctx context.Context, hotelProfileID string) (*entity.HotelAddress, error)

	UpsertSchool(ctx context.Context, p *entity.PetSchoolProfile) error
	GetSchoolByUserID(ctx context.Context, userID string) (*entity.PetSchoolProfile, error)
	ActivateSchool(ctx context.Context, userID string) error

	// EnsureSitter inserts an empty sitter shell if none exists and does
	// nothing otherwise. KYC owns none of the sitter's descriptive fields, so
	// resubmission deliberately refreshes nothing.
	EnsureSitter(ctx context.Context, p *entity.PetSitterProfile) error
	GetSitterByUserID(ctx context.Context, userID string) (*entity.PetSitterProfile, error)
	ActivateSitter(ctx context.Context, userID string) error
}
