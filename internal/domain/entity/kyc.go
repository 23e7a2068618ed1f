package entity

import "time"

// RoleType tags a KYC submission with the marketplace role the user is
// onboarding into. Each tag maps 1:1 to a profile shell variant.
type RoleType string

const (
	RoleVendor    RoleType = "VENDOR"
	RoleHotel     RoleType = "HOTEL"
	RoleSchool    RoleType = "SCHOOL"
	RolePetSitter RoleType = "PET_SITTER"
)

// AllRoleTypes lists every known role tag.
func AllRoleTypes() []RoleType {
	return []RoleType{RoleVendor, RoleHotel, RoleSchool, RolePetSitter}
}

// ParseRoleType validates a raw tag coming off the wire.
func ParseRoleType(s string) (RoleType, bool) {
	switch RoleType(s) {
	case RoleVendor, RoleHotel, RoleSchool, RolePetSitter:
		return RoleType(s), true
	}
	return "", false
}

// KycStatus is the review state of a submission.
// PENDING is initial; APPROVED and REJECTED are terminal.
type KycStatus string

const (
	KycPending  KycStatus = "PENDING"
	KycApproved KycStatus = "APPROVED"
	KycRejected KycStatus = "REJECTED"
)

// Terminal reports whether no further transition is allowed.
func (s KycStatus) Terminal() bool {
	return s == KycApproved || s == KycRejected
}

// KycRecord is the single identity-verification submission a user makes.
// Exactly one non-superseded record may exist per user; it is created once,
// mutated only by the review transition, and never deleted.
type KycRecord struct {
	ID     string
	UserID string

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

	RoleType RoleType

	// Document URLs returned by the document store.
	Image                    string
	IdentificationFrontImage string
	IdentificationBackImage  string
	SignatureImage           string

	BusinessName                    string
	BusinessRegistrationNumber      string
	BusinessAddress                 string
	BusinessRegistrationCertificate string

	LicenseNumber     string
	LicenseIssueDate  string
	LicenseExpiryDate string
	HotelLicenseImage string
	HygieneCertificate string

	FacilityPhotos []string

	Status     KycStatus
	ReviewedAt *time.Time
	ReviewedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}
