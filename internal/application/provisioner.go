package application

import (
	"context"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

// ProvisionInput carries the contact fields a KYC submission contributes to
// the role profile shell. Everything else on a profile belongs to the role's
// own dashboard.
type ProvisionInput struct {
	Name           string
	Email          string
	Phone          string
	PresentAddress string
}

// Defaults written into freshly created shells. Owners adjust these later.
const (
	defaultDayStart   = "09:00 AM"
	defaultDayEnd     = "06:00 PM"
	defaultNightStart = "07:00 PM"
	defaultNightEnd   = "08:00 AM"

	defaultCity       = "City"
	defaultCountry    = "Country"
	defaultPostalCode = "0000"
)

type roleHooks struct {
	provision func(ctx context.Context, tx repository.Tx, userID string, in ProvisionInput) error
	activate  func(ctx context.Context, tx repository.Tx, userID string) error
}

// roleRegistry is the single dispatch table for role-specific behavior.
// Submission and review both go through it, so a role cannot gain a
// provisioning path without an activation path; completeness against
// entity.AllRoleTypes is asserted in tests.
var roleRegistry = map[entity.RoleType]roleHooks{
	entity.RoleVendor: {
		provision: provisionVendor,
		activate: func(ctx context.Context, tx repository.Tx, userID string) error {
			return tx.Profiles().ActivateVendor(ctx, userID)
		},
	},
	entity.RoleHotel: {
		provision: provisionHotel,
		activate: func(ctx context.Context, tx repository.Tx, userID string) error {
			return tx.Profiles().ActivateHotel(ctx, userID)
		},
	},
	entity.RoleSchool: {
		provision: provisionSchool,
		activate: func(ctx context.Context, tx repository.Tx, userID string) error {
			return tx.Profiles().ActivateSchool(ctx, userID)
		},
	},
	entity.RolePetSitter: {
		provision: provisionSitter,
		activate: func(ctx context.Context, tx repository.Tx, userID string) error {
			return tx.Profiles().ActivateSitter(ctx, userID)
		},
	},
}

// ProvisionProfile creates or refreshes the profile shell matching role,
// inside the caller's transaction.
func ProvisionProfile(ctx context.Context, tx repository.Tx, role entity.RoleType, userID string, in ProvisionInput) error {
	hooks, ok := roleRegistry[role]
	if !ok {
		return ErrInvalidRole
	}
	return hooks.provision(ctx, tx, userID, in)
}

// ActivateProfile flips the shell matching role to verified and ACTIVE,
// inside the caller's transaction.
func ActivateProfile(ctx context.Context, tx repository.Tx, role entity.RoleType, userID string) error {
	hooks, ok := roleRegistry[role]
	if !ok {
		return ErrInvalidRole
	}
	return hooks.activate(ctx, tx, userID)
}

func provisionVendor(ctx context.Context, tx repository.Tx, userID string, in ProvisionInput) error {
	return tx.Profiles().UpsertVendor(ctx, &entity.VendorProfile{
		UserID:     userID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		IsVerified: false,
		Status:     entity.ProfilePending,
	})
}

func provisionHotel(ctx context.Context, tx repository.Tx, userID string, in ProvisionInput) error {
	hotel := &entity.HotelProfile{
		UserID:            userID,
		Name:              in.Name,
		Email:             in.Email,
		Phone:             in.Phone,
		DayStartingTime:   defaultDayStart,
		DayEndingTime:     defaultDayEnd,
		NightStartingTime: defaultNightStart,
		NightEndingTime:   defaultNightEnd,
		IsVerified:        false,
		Status:            entity.ProfilePending,
	}
	if err := tx.Profiles().UpsertHotel(ctx, hotel); err != nil {
		return err
	}
	// The hotel owns zero-or-one address; the declared present address is
	// used as the street line and the rest defaults until the owner edits it.
	return tx.Profiles().UpsertHotelAddress(ctx, &entity.HotelAddress{
		HotelProfileID: hotel.ID,
		StreetAddress:  in.PresentAddress,
		City:           defaultCity,
		Country:        defaultCountry,
		PostalCode:     defaultPostalCode,
	})
}

func provisionSchool(ctx context.Context, tx repository.Tx, userID string, in ProvisionInput) error {
	return tx.Profiles().UpsertSchool(ctx, &entity.PetSchoolProfile{
		UserID:     userID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		IsVerified: false,
		Status:     entity.ProfilePending,
	})
}

func provisionSitter(ctx context.Context, tx repository.Tx, userID string, in ProvisionInput) error {
	// KYC owns none of the sitter's descriptive fields: the shell is seeded
	// empty and a resubmission changes nothing (EnsureSitter is a no-op when
	// the shell exists).
	return tx.Profiles().EnsureSitter(ctx, &entity.PetSitterProfile{
		UserID:            userID,
		Bio:               "",
		Designations:      "",
		Languages:         []string{},
		YearsOfExperience: 0,
		IsVerified:        false,
		ProfileStatus:     entity.ProfilePending,
	})
}
