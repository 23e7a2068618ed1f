package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

type ProfileRepository struct {
	db db
}

func NewProfileRepository(db db) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func notFoundIf(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// --- vendor ---

func (r *ProfileRepository) UpsertVendor(ctx context.Context, p *entity.VendorProfile) error {
	// On conflict only contact fields refresh; activation state stays.
	row := r.db.QueryRow(ctx, `
		INSERT INTO vendor_profiles (user_id, name, email, phone, is_verified, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
		    updated_at = now()
		RETURNING id, is_verified, status, created_at, updated_at
	`, p.UserID, p.Name, p.Email, p.Phone, p.IsVerified, p.Status)
	return row.Scan(&p.ID, &p.IsVerified, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetVendorByUserID(ctx context.Context, userID string) (*entity.VendorProfile, error) {
	p := &entity.VendorProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, email, phone, is_verified, status, created_at, updated_at
		FROM vendor_profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.IsVerified,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundIf(err)
	}
	return p, nil
}

func (r *ProfileRepository) ActivateVendor(ctx context.Context, userID string) error {
	return r.activate(ctx, `UPDATE vendor_profiles SET is_verified = true, status = $1, updated_at = now() WHERE user_id = $2`, userID)
}

// --- hotel ---

func (r *ProfileRepository) UpsertHotel(ctx context.Context, p *entity.HotelProfile) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO hotel_profiles (
			user_id, name, email, phone, day_starting_time, day_ending_time,
			night_starting_time, night_ending_time, is_verified, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
		    updated_at = now()
		RETURNING id, day_starting_time, day_ending_time, night_starting_time,
		          night_ending_time, is_verified, status, created_at, updated_at
	`, p.UserID, p.Name, p.Email, p.Phone, p.DayStartingTime, p.DayEndingTime,
		p.NightStartingTime, p.NightEndingTime, p.IsVerified, p.Status)
	return row.Scan(&p.ID, &p.DayStartingTime, &p.DayEndingTime,
		&p.NightStartingTime, &p.NightEndingTime, &p.IsVerified, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetHotelByUserID(ctx context.Context, userID string) (*entity.HotelProfile, error) {
	p := &entity.HotelProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, email, phone, day_starting_time,
		       day_ending_time, night_starting_time, night_ending_time,
		       is_verified, status, created_at, updated_at
		FROM hotel_profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone,
		&p.DayStartingTime, &p.DayEndingTime, &p.NightStartingTime,
		&p.NightEndingTime, &p.IsVerified, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundIf(err)
	}
	return p, nil
}

func (r *ProfileRepository) ActivateHotel(ctx context.Context, userID string) error {
	return r.activate(ctx, `UPDATE hotel_profiles SET is_verified = true, status = $1, updated_at = now() WHERE user_id = $2`, userID)
}

func (r *ProfileRepository) UpsertHotelAddress(ctx context.Context, a *entity.HotelAddress) error {
	// Keyed by the owning hotel profile, not a synthetic id. A second
	// submission only refreshes the street line.
	row := r.db.QueryRow(ctx, `
		INSERT INTO hotel_addresses (hotel_profile_id, street_address, city, country, postal_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (hotel_profile_id) DO UPDATE
		SET street_address = EXCLUDED.street_address, updated_at = now()
		RETURNING id, city, country, postal_code, created_at, updated_at
	`, a.HotelProfileID, a.StreetAddress, a.City, a.Country, a.PostalCode)
	return row.Scan(&a.ID, &a.City, &a.Country, &a.PostalCode, &a.CreatedAt, &a.UpdatedAt)
}

func (r *ProfileRepository) GetHotelAddress(ctx context.Context, hotelProfileID string) (*entity.HotelAddress, error) {
	a := &entity.HotelAddress{}
	err := r.db.QueryRow(ctx, `
		SELECT id, hotel_profile_id, street_address, city, country, postal_code, created_at, updated_at
		FROM hotel_addresses WHERE hotel_profile_id = $1
	`, hotelProfileID).Scan(&a.ID, &a.HotelProfileID, &a.StreetAddress, &a.City,
		&a.Country, &a.PostalCode, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFoundIf(err)
	}
	return a, nil
}

// --- school ---

func (r *ProfileRepository) UpsertSchool(ctx context.Context, p *entity.PetSchoolProfile) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO pet_school_profiles (user_id, name, email, phone, is_verified, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
		    updated_at = now()
		RETURNING id, is_verified, status, created_at, updated_at
	`, p.UserID, p.Name, p.Email, p.Phone, p.IsVerified, p.Status)
	return row.Scan(&p.ID, &p.IsVerified, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetSchoolByUserID(ctx context.Context, userID string) (*entity.PetSchoolProfile, error) {
	p := &entity.PetSchoolProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, email, phone, is_verified, status, created_at, updated_at
		FROM pet_school_profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.IsVerified,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundIf(err)
	}
	return p, nil
}

func (r *ProfileRepository) ActivateSchool(ctx context.Context, userID string) error {
	return r.activate(ctx, `UPDATE pet_school_profiles SET is_verified = true, status = $1, updated_at = now() WHERE user_id = $2`, userID)
}

// --- sitter ---

func (r *ProfileRepository) EnsureSitter(ctx context.Context, p *entity.PetSitterProfile) error {
	// DO NOTHING is the contract: KYC never refreshes sitter-owned fields.
	_, err := r.db.Exec(ctx, `
		INSERT INTO pet_sitter_profiles (
			user_id, bio, designations, languages, years_of_experience,
			is_verified, profile_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO NOTHING
	`, p.UserID, p.Bio, p.Designations, p.Languages, p.YearsOfExperience,
		p.IsVerified, p.ProfileStatus)
	return err
}

func (r *ProfileRepository) GetSitterByUserID(ctx context.Context, userID string) (*entity.PetSitterProfile, error) {
	p := &entity.PetSitterProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, bio, designations, languages, years_of_experience,
		       is_verified, profile_status, created_at, updated_at
		FROM pet_sitter_profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.Bio, &p.Designations, &p.Languages,
		&p.YearsOfExperience, &p.IsVerified, &p.ProfileStatus, &p.CreatedAt,
		&p.UpdatedAt)
	if err != nil {
		return nil, notFoundIf(err)
	}
	return p, nil
}

func (r *ProfileRepository) ActivateSitter(ctx context.Context, userID string) error {
	return r.activate(ctx, `UPDATE pet_sitter_profiles SET is_verified = true, profile_status = $1, updated_at = now() WHERE user_id = $2`, userID)
}

func (r *ProfileRepository) activate(ctx context.Context, sql, userID string) error {
	res, err := r.db.Exec(ctx, sql, entity.ProfileActive, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
