package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

type KycRepository struct {
	db db
}

func NewKycRepository(db db) *KycRepository {
	return &KycRepository{db: db}
}

const kycColumns = `
	id, user_id, full_name, email, phone_number, date_of_birth, gender,
	nationality, identification_type, identification_number, present_address,
	permanent_address, emergency_contact_name, emergency_contact_relation,
	emergency_contact_phone, role_type, image, identification_front_image,
	identification_back_image, signature_image, business_name,
	business_registration_number, business_address,
	business_registration_certificate, license_number, license_issue_date,
	license_expiry_date, hotel_license_image, hygiene_certificate,
	facility_photos, status, reviewed_at, reviewed_by, created_at, updated_at`

func (r *KycRepository) Create(ctx context.Context, rec *entity.KycRecord) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO kyc_records (
			user_id, full_name, email, phone_number, date_of_birth, gender,
			nationality, identification_type, identification_number,
			present_address, permanent_address, emergency_contact_name,
			emergency_contact_relation, emergency_contact_phone, role_type,
			image, identification_front_image, identification_back_image,
			signature_image, business_name, business_registration_number,
			business_address, business_registration_certificate, license_number,
			license_issue_date, license_expiry_date, hotel_license_image,
			hygiene_certificate, facility_photos, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30)
		RETURNING id, created_at, updated_at
	`, rec.UserID, rec.FullName, rec.Email, rec.PhoneNumber, rec.DateOfBirth,
		rec.Gender, rec.Nationality, rec.IdentificationType,
		rec.IdentificationNumber, rec.PresentAddress, rec.PermanentAddress,
		rec.EmergencyContactName, rec.EmergencyContactRelation,
		rec.EmergencyContactPhone, rec.RoleType, rec.Image,
		rec.IdentificationFrontImage, rec.IdentificationBackImage,
		rec.SignatureImage, rec.BusinessName, rec.BusinessRegistrationNumber,
		rec.BusinessAddress, rec.BusinessRegistrationCertificate,
		rec.LicenseNumber, rec.LicenseIssueDate, rec.LicenseExpiryDate,
		rec.HotelLicenseImage, rec.HygieneCertificate, rec.FacilityPhotos,
		rec.Status)

	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		// kyc_records carries UNIQUE (user_id); a concurrent duplicate
		// submission loses here rather than in an application-level check.
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func scanKyc(row pgx.Row) (*entity.KycRecord, error) {
	rec := &entity.KycRecord{}
	err := row.Scan(&rec.ID, &rec.UserID, &rec.FullName, &rec.Email,
		&rec.PhoneNumber, &rec.DateOfBirth, &rec.Gender, &rec.Nationality,
		&rec.IdentificationType, &rec.IdentificationNumber,
		&rec.PresentAddress, &rec.PermanentAddress, &rec.EmergencyContactName,
		&rec.EmergencyContactRelation, &rec.EmergencyContactPhone,
		&rec.RoleType, &rec.Image, &rec.IdentificationFrontImage,
		&rec.IdentificationBackImage, &rec.SignatureImage, &rec.BusinessName,
		&rec.BusinessRegistrationNumber, &rec.BusinessAddress,
		&rec.BusinessRegistrationCertificate, &rec.LicenseNumber,
		&rec.LicenseIssueDate, &rec.LicenseExpiryDate, &rec.HotelLicenseImage,
		&rec.HygieneCertificate, &rec.FacilityPhotos, &rec.Status,
		&rec.ReviewedAt, &rec.ReviewedBy, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *KycRepository) GetByID(ctx context.Context, id string) (*entity.KycRecord, error) {
	return scanKyc(r.db.QueryRow(ctx, `SELECT `+kycColumns+` FROM kyc_records WHERE id = $1`, id))
}

func (r *KycRepository) GetByUserID(ctx context.Context, userID string) (*entity.KycRecord, error) {
	return scanKyc(r.db.QueryRow(ctx, `SELECT `+kycColumns+` FROM kyc_records WHERE user_id = $1`, userID))
}

func (r *KycRepository) List(ctx context.Context) ([]entity.KycRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT `+kycColumns+` FROM kyc_records ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.KycRecord
	for rows.Next() {
		rec, err := scanKyc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *KycRepository) UpdateReview(ctx context.Context, rec *entity.KycRecord) error {
	res, err := r.db.Exec(ctx, `
		UPDATE kyc_records
		SET status = $1, reviewed_at = $2, reviewed_by = $3, updated_at = now()
		WHERE id = $4
	`, rec.Status, rec.ReviewedAt, rec.ReviewedBy, rec.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.KycRepository = (*KycRepository)(nil)
