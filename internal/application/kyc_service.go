package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

// DocumentStore is the blob-storage boundary. Uploads happen before the
// submission transaction opens so network latency never holds a database
// lock; a failed upload aborts the submission before anything is persisted.
type DocumentStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// DocumentFile is one uploaded file as received from the transport layer.
type DocumentFile struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// KycDocuments is the document set accompanying a submission. Identity front
// and back are required for every role; the rest are optional and only
// validated per-role when strict mode is enabled.
type KycDocuments struct {
	Image               *DocumentFile
	IdentificationFront *DocumentFile
	IdentificationBack  *DocumentFile
	Signature           *DocumentFile

	BusinessRegistrationCertificate *DocumentFile
	HotelLicense                    *DocumentFile
	HygieneCertificate              *DocumentFile
	FacilityPhotos                  []DocumentFile
}

// SubmitKycInput carries the declared identity and business fields.
type SubmitKycInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	DateOfBirth string
	Gender      string
	Nationality string

	IdentificationType   string
	IdentificationNumber string

	PresentAddress   string
	PermanentAddress string

	EmergencyContactName     string
	EmergencyContactRelation string
	EmergencyContactPhone    string

	RoleType string

	BusinessName               string
	BusinessRegistrationNumber string
	BusinessAddress            string

	LicenseNumber     string
	LicenseIssueDate  string
	LicenseExpiryDate string
}

// KycService orchestrates the one-shot KYC submission: document uploads, the
// atomic record+profile+flag transaction, then best-effort cache and search
// index updates.
type KycService struct {
	Store      repository.Store
	Docs       DocumentStore
	Redis      *redis.Client
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESKycIndex string

	// StrictRoleDocs additionally requires the role-conditional documents
	// (license, certificates) for the roles that use them. Off by default to
	// match the historical lenient behavior.
	StrictRoleDocs bool
}

func NewKycService(store repository.Store, docs DocumentStore, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esKycIndex string, strictRoleDocs bool) *KycService {
	return &KycService{
		Store:          store,
		Docs:           docs,
		Redis:          rdb,
		Logger:         logger,
		ES:             es,
		ESKycIndex:     esKycIndex,
		StrictRoleDocs: strictRoleDocs,
	}
}

// Submit performs the one-time KYC submission for userID. On success the
// returned record is PENDING, the matching role profile shell exists, and the
// user's has_profile flag is set; on any failure nothing is persisted.
func (s *KycService) Submit(ctx context.Context, userID string, in SubmitKycInput, docs KycDocuments) (*entity.KycRecord, error) {
	role, ok := entity.ParseRoleType(in.RoleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, in.RoleType)
	}
	if err := validateDocuments(role, docs, s.StrictRoleDocs); err != nil {
		return nil, err
	}

	// Friendly pre-check; the UNIQUE (user_id) constraint is what actually
	// closes the race under concurrent submissions.
	if _, err := s.Store.Kyc().GetByUserID(ctx, userID); err == nil {
		return nil, ErrAlreadySubmitted
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	urls, err := s.uploadDocuments(ctx, userID, docs)
	if err != nil {
		return nil, err
	}

	rec := buildKycRecord(userID, role, in, urls)

	err = s.Store.WithinTx(ctx, func(tx repository.Tx) error {
		if err := tx.Kyc().Create(ctx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadySubmitted
			}
			return err
		}
		if err := ProvisionProfile(ctx, tx, role, userID, ProvisionInput{
			Name:           in.FullName,
			Email:          in.Email,
			Phone:          in.PhoneNumber,
			PresentAddress: in.PresentAddress,
		}); err != nil {
			return err
		}
		return tx.Users().SetHasProfile(ctx, userID, true)
	})
	if err != nil {
		// Uploaded blobs are orphaned here; they are harmless garbage and
		// reordering uploads into the transaction would be worse.
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": userID, "kyc_id": rec.ID, "role": role}).
		Info("kyc submitted")

	s.cacheRecord(ctx, rec)
	s.indexRecord(ctx, rec)
	return rec, nil
}

// GetMyKyc returns the caller's own submission, reading through the Redis
// cache when possible. ErrKycNotFound when the user never submitted.
func (s *KycService) GetMyKyc(ctx context.Context, userID string) (*entity.KycRecord, error) {
	if rec, ok := s.cachedRecord(ctx, userID); ok {
		return rec, nil
	}
	rec, err := s.Store.Kyc().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrKycNotFound
		}
		return nil, err
	}
	s.cacheRecord(ctx, rec)
	return rec, nil
}

func (s *KycService) uploadDocuments(ctx context.Context, userID string, docs KycDocuments) (documentURLs, error) {
	var urls documentURLs
	upload := func(name string, f *DocumentFile) (string, error) {
		if f == nil {
			return "", nil
		}
		url, err := s.uploadOne(ctx, userID, f)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrUploadFailed, name, err)
		}
		return url, nil
	}

	var err error
	if urls.Image, err = upload("image", docs.Image); err != nil {
		return urls, err
	}
	if urls.IdentificationFront, err = upload("identification_front_image", docs.IdentificationFront); err != nil {
		return urls, err
	}
	if urls.IdentificationBack, err = upload("identification_back_image", docs.IdentificationBack); err != nil {
		return urls, err
	}
	if urls.Signature, err = upload("signature_image", docs.Signature); err != nil {
		return urls, err
	}
	if urls.BusinessRegistrationCertificate, err = upload("business_registration_certificate", docs.BusinessRegistrationCertificate); err != nil {
		return urls, err
	}
	if urls.HotelLicense, err = upload("hotel_license_image", docs.HotelLicense); err != nil {
		return urls, err
	}
	if urls.HygieneCertificate, err = upload("hygiene_certificate", docs.HygieneCertificate); err != nil {
		return urls, err
	}
	for i := range docs.FacilityPhotos {
		url, err := upload("facility_photos", &docs.FacilityPhotos[i])
		if err != nil {
			return urls, err
		}
		urls.FacilityPhotos = append(urls.FacilityPhotos, url)
	}
	return urls, nil
}

func (s *KycService) uploadOne(ctx context.Context, userID string, f *DocumentFile) (string, error) {
	ext := strings.ToLower(filepath.Ext(f.Filename))
	objectPath := filepath.ToSlash(filepath.Join("kyc", userID, uuid.NewString()+ext))
	return s.Docs.Upload(ctx, objectPath, f.ContentType, f.Reader)
}

type documentURLs struct {
	Image               string
	IdentificationFront string
	IdentificationBack  string
	Signature           string

	BusinessRegistrationCertificate string
	HotelLicense                    string
	HygieneCertificate              string
	FacilityPhotos                  []string
}

func validateDocuments(role entity.RoleType, docs KycDocuments, strict bool) error {
	if docs.IdentificationFront == nil {
		return fmt.Errorf("%w: identification_front_image", ErrMissingDocument)
	}
	if docs.IdentificationBack == nil {
		return fmt.Errorf("%w: identification_back_image", ErrMissingDocument)
	}
	if !strict {
		return nil
	}
	for _, req := range requiredRoleDocuments(role, docs) {
		if req.file == nil {
			return fmt.Errorf("%w: %s", ErrMissingDocument, req.name)
		}
	}
	return nil
}

type requiredDoc struct {
	name string
	file *DocumentFile
}

// requiredRoleDocuments lists the role-conditional documents enforced in
// strict mode. Sitters onboard with identity documents only.
func requiredRoleDocuments(role entity.RoleType, docs KycDocuments) []requiredDoc {
	switch role {
	case entity.RoleVendor:
		return []requiredDoc{{"business_registration_certificate", docs.BusinessRegistrationCertificate}}
	case entity.RoleHotel:
		return []requiredDoc{
			{"business_registration_certificate", docs.BusinessRegistrationCertificate},
			{"hotel_license_image", docs.HotelLicense},
			{"hygiene_certificate", docs.HygieneCertificate},
		}
	case entity.RoleSchool:
		return []requiredDoc{{"business_registration_certificate", docs.BusinessRegistrationCertificate}}
	default:
		return nil
	}
}

func buildKycRecord(userID string, role entity.RoleType, in SubmitKycInput, urls documentURLs) *entity.KycRecord {
	return &entity.KycRecord{
		UserID:      userID,
		FullName:    in.FullName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Nationality: in.Nationality,

		IdentificationType:   in.IdentificationType,
		IdentificationNumber: in.IdentificationNumber,

		PresentAddress:   in.PresentAddress,
		PermanentAddress: in.PermanentAddress,

		EmergencyContactName:     in.EmergencyContactName,
		EmergencyContactRelation: in.EmergencyContactRelation,
		EmergencyContactPhone:    in.EmergencyContactPhone,

		RoleType: role,

		Image:                    urls.Image,
		IdentificationFrontImage: urls.IdentificationFront,
		IdentificationBackImage:  urls.IdentificationBack,
		SignatureImage:           urls.Signature,

		BusinessName:                    in.BusinessName,
		BusinessRegistrationNumber:      in.BusinessRegistrationNumber,
		BusinessAddress:                 in.BusinessAddress,
		BusinessRegistrationCertificate: urls.BusinessRegistrationCertificate,

		LicenseNumber:      in.LicenseNumber,
		LicenseIssueDate:   in.LicenseIssueDate,
		LicenseExpiryDate:  in.LicenseExpiryDate,
		HotelLicenseImage:  urls.HotelLicense,
		HygieneCertificate: urls.HygieneCertificate,

		FacilityPhotos: urls.FacilityPhotos,

		Status: entity.KycPending,
	}
}
