package application

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/infrastructure/memory"
)

type ReviewServiceSuite struct {
	suite.Suite
	store  *memory.Store
	docs   *fakeDocStore
	submit *KycService
	svc    *ReviewService
	ctx    context.Context
}

func (s *ReviewServiceSuite) SetupTest() {
	s.store = memory.NewStore()
	s.docs = &fakeDocStore{}
	s.submit = &KycService{Store: s.store, Docs: s.docs, Logger: logrus.New()}
	s.svc = &ReviewService{Store: s.store, Logger: logrus.New()}
	s.ctx = context.Background()
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceSuite))
}

// submitAs seeds a user and runs a full submission for the given role,
// returning the pending record.
func (s *ReviewServiceSuite) submitAs(userID, roleType string) *entity.KycRecord {
	s.Require().NoError(s.store.Users().Create(s.ctx, &entity.User{
		ID:    userID,
		Email: userID + "@example.com",
		Role:  entity.UserRoleUser,
	}))
	in := vendorInput()
	in.RoleType = roleType
	rec, err := s.submit.Submit(s.ctx, userID, in, identityDocs())
	s.Require().NoError(err)
	return rec
}

func (s *ReviewServiceSuite) TestApproveVendor() {
	rec := s.submitAs("user-1", "VENDOR")

	approved, err := s.svc.Approve(s.ctx, rec.ID, "admin-1")
	s.Require().NoError(err)
	s.Equal(entity.KycApproved, approved.Status)
	s.Equal("admin-1", approved.ReviewedBy)
	s.Require().NotNil(approved.ReviewedAt)

	p, err := s.store.Profiles().GetVendorByUserID(s.ctx, "user-1")
	s.Require().NoError(err)
	s.True(p.IsVerified)
	s.Equal(entity.ProfileActive, p.Status)
}

func (s *ReviewServiceSuite) TestApproveHotelActivatesHotelProfile() {
	rec := s.submitAs("user-1", "HOTEL")

	_, err := s.svc.Approve(s.ctx, rec.ID, "admin-1")
	s.Require().NoError(err)

	p, err := s.store.Profiles().GetHotelByUserID(s.ctx, "user-1")
	s.Require().NoError(err)
	s.True(p.IsVerified)
	s.Equal(entity.ProfileActive, p.Status)
}

func (s *ReviewServiceSuite) TestApproveSitterActivatesSitterProfile() {
	rec := s.submitAs("user-1", "PET_SITTER")

	_, err := s.svc.Approve(s.ctx, rec.ID, "admin-1")
	s.Require().NoError(err)

	p, err := s.store.Profiles().GetSitterByUserID(s.ctx, "user-1")
	s.Require().NoError(err)
	s.True(p.IsVerified)
	s.Equal(entity.ProfileActive, p.ProfileStatus)
}

func (s *ReviewServiceSuite) TestRejectLeavesProfileInert() {
	rec := s.submitAs("user-1", "VENDOR")

	rejected, err := s.svc.Reject(s.ctx, rec.ID, "admin-1")
	s.Require().NoError(err)
	s.Equal(entity.KycRejected, rejected.Status)
	s.Equal("admin-1", rejected.ReviewedBy)

	p, err := s.store.Profiles().GetVendorByUserID(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(p.IsVerified)
	s.Equal(entity.ProfilePending, p.Status)
}

func (s *ReviewServiceSuite) TestTerminalStatesAreHardStops() {
	s.Run("approved record", func() {
		rec := s.submitAs("user-1", "VENDOR")
		_, err := s.svc.Approve(s.ctx, rec.ID, "admin-1")
		s.Require().NoError(err)

		_, err = s.svc.Approve(s.ctx, rec.ID, "admin-2")
		s.ErrorIs(err, ErrAlreadyApproved)
		_, err = s.svc.Reject(s.ctx, rec.ID, "admin-2")
		s.ErrorIs(err, ErrAlreadyApproved)
	})

	s.Run("rejected record", func() {
		rec := s.submitAs("user-2", "VENDOR")
		_, err := s.svc.Reject(s.ctx, rec.ID, "admin-1")
		s.Require().NoError(err)

		_, err = s.svc.Approve(s.ctx, rec.ID, "admin-2")
		s.ErrorIs(err, ErrAlreadyRejected)
		_, err = s.svc.Reject(s.ctx, rec.ID, "admin-2")
		s.ErrorIs(err, ErrAlreadyRejected)
	})
}

func (s *ReviewServiceSuite) TestUnknownRecord() {
	_, err := s.svc.Approve(s.ctx, "nope", "admin-1")
	s.ErrorIs(err, ErrKycNotFound)
	_, err = s.svc.Reject(s.ctx, "nope", "admin-1")
	s.ErrorIs(err, ErrKycNotFound)
}

// A record carrying a role the registry does not know cannot be half
// approved: the status flip rolls back with the failed activation.
func (s *ReviewServiceSuite) TestUnknownRoleAbortsApproval() {
	rec := &entity.KycRecord{
		UserID:                   "user-1",
		FullName:                 "Jamie Doe",
		Email:                    "jamie@example.com",
		PhoneNumber:              "+8801000000000",
		DateOfBirth:              "1990-01-01",
		IdentificationType:       "NID",
		RoleType:                 entity.RoleType("WIZARD"),
		IdentificationFrontImage: "https://storage.test/front.png",
		IdentificationBackImage:  "https://storage.test/back.png",
		Status:                   entity.KycPending,
	}
	s.Require().NoError(s.store.Kyc().Create(s.ctx, rec))

	_, err := s.svc.Approve(s.ctx, rec.ID, "admin-1")
	s.Require().ErrorIs(err, ErrInvalidRole)

	got, err := s.store.Kyc().GetByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(entity.KycPending, got.Status)
	s.Nil(got.ReviewedAt)
}
