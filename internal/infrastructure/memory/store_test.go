package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.store = NewStore()
	s.ctx = context.Background()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) newRecord(userID string) *entity.KycRecord {
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
		Status:                   entity.KycPending,
	}
}

func (s *StoreSuite) TestKycCreateAndLookups() {
	s.Run("creates and finds by id and user", func() {
		rec := s.newRecord("user-1")
		s.Require().NoError(s.store.Kyc().Create(s.ctx, rec))
		s.NotEmpty(rec.ID)
		s.False(rec.CreatedAt.IsZero())

		byID, err := s.store.Kyc().GetByID(s.ctx, rec.ID)
		s.Require().NoError(err)
		s.Equal("Jamie Doe", byID.FullName)

		byUser, err := s.store.Kyc().GetByUserID(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal(rec.ID, byUser.ID)
	})

	s.Run("returns ErrNotFound for unknown lookups", func() {
		_, err := s.store.Kyc().GetByID(s.ctx, "nope")
		s.Require().ErrorIs(err, repository.ErrNotFound)

		_, err = s.store.Kyc().GetByUserID(s.ctx, "nope")
		s.Require().ErrorIs(err, repository.ErrNotFound)
	})
}

func (s *StoreSuite) TestKycOnePerUser() {
	rec := s.newRecord("user-1")
	s.Require().NoError(s.store.Kyc().Create(s.ctx, rec))

	again := s.newRecord("user-1")
	err := s.store.Kyc().Create(s.ctx, again)
	s.Require().ErrorIs(err, repository.ErrDuplicate)

	recs, err := s.store.Kyc().List(s.ctx)
	s.Require().NoError(err)
	s.Len(recs, 1)
}

func (s *StoreSuite) TestKycListNewestFirst() {
	for _, uid := range []string{"a", "b", "c"} {
		s.Require().NoError(s.store.Kyc().Create(s.ctx, s.newRecord(uid)))
		time.Sleep(time.Millisecond)
	}
	recs, err := s.store.Kyc().List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(recs, 3)
	s.True(recs[0].CreatedAt.After(recs[2].CreatedAt))
}

func (s *StoreSuite) TestUpdateReview() {
	rec := s.newRecord("user-1")
	s.Require().NoError(s.store.Kyc().Create(s.ctx, rec))

	now := time.Now().UTC()
	rec.Status = entity.KycApproved
	rec.ReviewedAt = &now
	rec.ReviewedBy = "admin-1"
	s.Require().NoError(s.store.Kyc().UpdateReview(s.ctx, rec))

	got, err := s.store.Kyc().GetByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(entity.KycApproved, got.Status)
	s.Equal("admin-1", got.ReviewedBy)
	s.Require().NotNil(got.ReviewedAt)

	s.Run("unknown record", func() {
		ghost := s.newRecord("ghost")
		ghost.ID = "missing"
		s.ErrorIs(s.store.Kyc().UpdateReview(s.ctx, ghost), repository.ErrNotFound)
	})
}

func (s *StoreSuite) TestWithinTxCommit() {
	err := s.store.WithinTx(s.ctx, func(tx repository.Tx) error {
		if err := tx.Kyc().Create(s.ctx, s.newRecord("user-1")); err != nil {
			return err
		}
		return tx.Profiles().UpsertVendor(s.ctx, &entity.VendorProfile{
			UserID: "user-1",
			Name:   "Jamie Doe",
			Status: entity.ProfilePending,
		})
	})
	s.Require().NoError(err)

	_, err = s.store.Kyc().GetByUserID(s.ctx, "user-1")
	s.NoError(err)
	_, err = s.store.Profiles().GetVendorByUserID(s.ctx, "user-1")
	s.NoError(err)
}

func (s *StoreSuite) TestWithinTxRollback() {
	boom := errors.New("boom")
	err := s.store.WithinTx(s.ctx, func(tx repository.Tx) error {
		if err := tx.Kyc().Create(s.ctx, s.newRecord("user-1")); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	// nothing from the failed transaction is visible
	_, err = s.store.Kyc().GetByUserID(s.ctx, "user-1")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *StoreSuite) TestUsers() {
	u := &entity.User{ID: "user-1", Email: "jamie@example.com", Role: entity.UserRoleUser}
	s.Require().NoError(s.store.Users().Create(s.ctx, u))

	s.Run("rejects duplicate email", func() {
		err := s.store.Users().Create(s.ctx, &entity.User{Email: "jamie@example.com"})
		s.ErrorIs(err, repository.ErrDuplicate)
	})

	s.Run("flips has_profile", func() {
		s.Require().NoError(s.store.Users().SetHasProfile(s.ctx, "user-1", true))
		got, err := s.store.Users().GetByID(s.ctx, "user-1")
		s.Require().NoError(err)
		s.True(got.HasProfile)
	})

	s.Run("unknown user", func() {
		s.ErrorIs(s.store.Users().SetHasProfile(s.ctx, "ghost", true), repository.ErrNotFound)
	})
}
