//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

// Runs against a migrated database. Point TEST_DATABASE_URL at a disposable
// instance and run with -tags integration.
type PostgresStoreSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	store *Store
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	pool, err := NewPool(s.ctx, os.Getenv("TEST_DATABASE_URL"), 4, 1, time.Hour)
	s.Require().NoError(err)
	s.pool = pool
	s.store = NewStore(pool)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `
		TRUNCATE hotel_addresses, hotel_profiles, vendor_profiles,
		pet_school_profiles, pet_sitter_profiles, kyc_records, users CASCADE
	`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) seedUser(email string) string {
	var id string
	err := s.pool.QueryRow(s.ctx, `
		INSERT INTO users (email, password, name, role) VALUES ($1, 'x', 'Jamie Doe', 'USER')
		RETURNING id
	`, email).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *PostgresStoreSuite) newRecord(userID string) *entity.KycRecord {
	return &entity.KycRecord{
		UserID:                   userID,
		FullName:                 "Jamie Doe",
		Email:                    "jamie@example.com",
		PhoneNumber:              "+8801000000000",
		DateOfBirth:              "1990-01-01",
		IdentificationType:       "NID",
		RoleType:                 entity.RoleVendor,
		IdentificationFrontImage: "https://storage.test/front.png",
		IdentificationBackImage:  "https://storage.test/back.png",
		FacilityPhotos:           []string{},
		Status:                   entity.KycPending,
	}
}

func (s *PostgresStoreSuite) TestKycRoundTrip() {
	uid := s.seedUser("jamie@example.com")
	rec := s.newRecord(uid)
	s.Require().NoError(s.store.Kyc().Create(s.ctx, rec))
	s.NotEmpty(rec.ID)

	got, err := s.store.Kyc().GetByUserID(s.ctx, uid)
	s.Require().NoError(err)
	s.Equal(rec.ID, got.ID)
	s.Equal(entity.KycPending, got.Status)
}

func (s *PostgresStoreSuite) TestUniqueConstraintMapsToDuplicate() {
	uid := s.seedUser("jamie@example.com")
	s.Require().NoError(s.store.Kyc().Create(s.ctx, s.newRecord(uid)))

	err := s.store.Kyc().Create(s.ctx, s.newRecord(uid))
	s.Require().ErrorIs(err, repository.ErrDuplicate)
}

func (s *PostgresStoreSuite) TestWithinTxRollback() {
	uid := s.seedUser("jamie@example.com")
	boom := errors.New("boom")

	err := s.store.WithinTx(s.ctx, func(tx repository.Tx) error {
		if err := tx.Kyc().Create(s.ctx, s.newRecord(uid)); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	_, err = s.store.Kyc().GetByUserID(s.ctx, uid)
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *PostgresStoreSuite) TestProfileUpsertPreservesActivation() {
	uid := s.seedUser("jamie@example.com")
	p := &entity.VendorProfile{UserID: uid, Name: "Jamie Doe", Status: entity.ProfilePending}
	s.Require().NoError(s.store.Profiles().UpsertVendor(s.ctx, p))
	s.Require().NoError(s.store.Profiles().ActivateVendor(s.ctx, uid))

	again := &entity.VendorProfile{UserID: uid, Name: "New Name", Status: entity.ProfilePending}
	s.Require().NoError(s.store.Profiles().UpsertVendor(s.ctx, again))

	got, err := s.store.Profiles().GetVendorByUserID(s.ctx, uid)
	s.Require().NoError(err)
	s.Equal("New Name", got.Name)
	s.Equal(entity.ProfileActive, got.Status)
	s.True(got.IsVerified)
}
