package entity

import "time"

// ProfileStatus is the activation state of a role profile shell.
// Shells are created PENDING at KYC submission and flipped to ACTIVE by an
// approved review. Nothing in this subsystem deactivates a profile.
type ProfileStatus string

const (
	ProfilePending ProfileStatus = "PENDING"
	ProfileActive  ProfileStatus = "ACTIVE"
)

// VendorProfile is the seller-side profile shell, keyed 1:1 by user.
type VendorProfile struct {
	ID         string
	UserID     string
	Name       string
	Email      string
	Phone      string
	IsVerified bool
	Status     ProfileStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HotelProfile is the pet-hotel profile shell. Operating-hour fields are
// defaulted at provisioning; the hotel owner adjusts them later from their
// own dashboard.
type HotelProfile struct {
	ID     string
	UserID string
	Name   string
	Email  string
	Phone  string

	DayStartingTime   string
	DayEndingTime     string
	NightStartingTime string
	NightEndingTime   string

	IsVerified bool
	Status     ProfileStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HotelAddress is the zero-or-one address owned by a HotelProfile.
type HotelAddress struct {
	ID             string
	HotelProfileID string
	StreetAddress  string
	City           string
	Country        string
	PostalCode     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PetSchoolProfile is the training-school profile shell.
type PetSchoolProfile struct {
	ID         string
	UserID     string
	Name       string
	Email      string
	Phone      string
	IsVerified bool
	Status     ProfileStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PetSitterProfile is the sitter profile shell. Its descriptive fields are
// owned by the sitter dashboard, not by KYC; provisioning only seeds empty
// values and never refreshes them on resubmission.
type PetSitterProfile struct {
	ID                string
	UserID            string
	Bio               string
	Designations      string
	Languages         []string
	YearsOfExperience int
	IsVerified        bool
	ProfileStatus     ProfileStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
