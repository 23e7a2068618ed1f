package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
	"github.com/pawmart/pawmart-backend/internal/infrastructure/memory"
)

// fakeDocStore records uploads in memory. Files whose extension matches
// failExt fail the upload, simulating a blob-storage outage mid-batch.
type fakeDocStore struct {
	mu      sync.Mutex
	uploads []string
	failExt string
}

func (f *fakeDocStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if f.failExt != "" && filepath.Ext(objectPath) == f.failExt {
		return "", io.ErrUnexpectedEOF
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, objectPath)
	return "https://storage.test/" + objectPath, nil
}

func (f *fakeDocStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

type KycServiceSuite struct {
	suite.Suite
	store *memory.Store
	docs  *fakeDocStore
	svc   *KycService
	ctx   context.Context
}

func (s *KycServiceSuite) SetupTest() {
	s.store = memory.NewStore()
	s.docs = &fakeDocStore{}
	s.svc = &KycService{
		Store:  s.store,
		Docs:   s.docs,
		Logger: logrus.New(),
	}
	s.ctx = context.Background()

	s.Require().NoError(s.store.Users().Create(s.ctx, &entity.User{
		ID:    "user-1",
		Email: "jamie@example.com",
		Name:  "Jamie Doe",
		Role:  entity.UserRoleUser,
	}))
}

func TestKycServiceSuite(t *testing.T) {
	suite.Run(t, new(KycServiceSuite))
}

func testDoc(name string) *DocumentFile {
	return &DocumentFile{
		Filename:    name,
		ContentType: "image/png",
		Reader:      strings.NewReader("binary"),
	}
}

func identityDocs() KycDocuments {
	return KycDocuments{
		IdentificationFront: testDoc("front.png"),
		IdentificationBack:  testDoc("back.png"),
	}
}

func vendorInput() SubmitKycInput {
	return SubmitKycInput{
		FullName:           "Jamie Doe",
		Email:              "jamie@example.com",
		PhoneNumber:        "+8801000000000",
		DateOfBirth:        "1990-01-01",
		IdentificationType: "NID",
		PresentAddress:     "12 Bark Street",
		RoleType:           "VENDOR",
		BusinessName:       "Jamie's Pet Shop",
	}
}

func (s *KycServiceSuite) TestSubmitVendor() {
	rec, err := s.svc.Submit(s.ctx, "user-1", vendorInput(), identityDocs())
	s.Require().NoError(err)

	s.Equal(entity.KycPending, rec.Status)
	s.Equal(entity.RoleVendor, rec.RoleType)
	s.NotEmpty(rec.ID)
	s.Contains(rec.IdentificationFrontImage, "https://storage.test/kyc/user-1/")
	s.Contains(rec.IdentificationBackImage, "https://storage.test/kyc/user-1/")
	s.Nil(rec.ReviewedAt)

	s.Run("profile shell is pending", func() {
		p, err := s.store.Profiles().GetVendorByUserID(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal("Jamie Doe", p.Name)
		s.Equal(entity.ProfilePending, p.Status)
		s.False(p.IsVerified)
	})

	s.Run("user flagged as having a profile", func() {
		u, err := s.store.Users().GetByID(s.ctx, "user-1")
		s.Require().NoError(err)
		s.True(u.HasProfile)
	})
}

func (s *KycServiceSuite) TestSubmitHotelUploadsFullDocumentSet() {
	in := vendorInput()
	in.RoleType = "HOTEL"
	in.LicenseNumber = "HL-42"

	docs := identityDocs()
	docs.Image = testDoc("selfie.png")
	docs.Signature = testDoc("sig.png")
	docs.BusinessRegistrationCertificate = testDoc("cert.pdf")
	docs.HotelLicense = testDoc("license.png")
	docs.HygieneCertificate = testDoc("hygiene.pdf")
	docs.FacilityPhotos = []DocumentFile{*testDoc("room1.jpg"), *testDoc("room2.jpg")}

	rec, err := s.svc.Submit(s.ctx, "user-1", in, docs)
	s.Require().NoError(err)

	s.Equal(9, s.docs.count())
	s.Len(rec.FacilityPhotos, 2)
	s.NotEmpty(rec.HotelLicenseImage)
	s.NotEmpty(rec.HygieneCertificate)
	s.NotEmpty(rec.BusinessRegistrationCertificate)

	hotel, err := s.store.Profiles().GetHotelByUserID(s.ctx, "user-1")
	s.Require().NoError(err)
	addr, err := s.store.Profiles().GetHotelAddress(s.ctx, hotel.ID)
	s.Require().NoError(err)
	s.Equal("12 Bark Street", addr.StreetAddress)
}

func (s *KycServiceSuite) TestSubmitTwiceConflicts() {
	_, err := s.svc.Submit(s.ctx, "user-1", vendorInput(), identityDocs())
	s.Require().NoError(err)

	_, err = s.svc.Submit(s.ctx, "user-1", vendorInput(), identityDocs())
	s.Require().ErrorIs(err, ErrAlreadySubmitted)
}

func (s *KycServiceSuite) TestSubmitInvalidRole() {
	in := vendorInput()
	in.RoleType = "WIZARD"
	_, err := s.svc.Submit(s.ctx, "user-1", in, identityDocs())
	s.Require().ErrorIs(err, ErrInvalidRole)
	s.Zero(s.docs.count())
}

func (s *KycServiceSuite) TestSubmitMissingIdentityDocuments() {
	docs := identityDocs()
	docs.IdentificationBack = nil
	_, err := s.svc.Submit(s.ctx, "user-1", vendorInput(), docs)
	s.Require().ErrorIs(err, ErrMissingDocument)

	docs = identityDocs()
	docs.IdentificationFront = nil
	_, err = s.svc.Submit(s.ctx, "user-1", vendorInput(), docs)
	s.Require().ErrorIs(err, ErrMissingDocument)
}

func (s *KycServiceSuite) TestStrictRoleDocs() {
	s.svc.StrictRoleDocs = true

	s.Run("hotel without license is rejected", func() {
		in := vendorInput()
		in.RoleType = "HOTEL"
		_, err := s.svc.Submit(s.ctx, "user-1", in, identityDocs())
		s.Require().ErrorIs(err, ErrMissingDocument)
	})

	s.Run("vendor without certificate is rejected", func() {
		_, err := s.svc.Submit(s.ctx, "user-1", vendorInput(), identityDocs())
		s.Require().ErrorIs(err, ErrMissingDocument)
	})

	s.Run("sitter needs identity documents only", func() {
		in := vendorInput()
		in.RoleType = "PET_SITTER"
		_, err := s.svc.Submit(s.ctx, "user-1", in, identityDocs())
		s.Require().NoError(err)
	})
}

func (s *KycServiceSuite) TestUploadFailureAbortsSubmission() {
	s.docs.failExt = ".png"
	_, err := s.svc.Submit(s.ctx, "user-1", vendorInput(), identityDocs())
	s.Require().ErrorIs(err, ErrUploadFailed)

	_, err = s.store.Kyc().GetByUserID(s.ctx, "user-1")
	s.ErrorIs(err, repository.ErrNotFound)

	u, err := s.store.Users().GetByID(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(u.HasProfile)
}

// A failure anywhere inside the submission transaction must leave no KYC
// record and no profile shell behind.
func (s *KycServiceSuite) TestSubmissionIsAtomic() {
	_, err := s.svc.Submit(s.ctx, "ghost-user", vendorInput(), identityDocs())
	s.Require().Error(err)

	_, err = s.store.Kyc().GetByUserID(s.ctx, "ghost-user")
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.store.Profiles().GetVendorByUserID(s.ctx, "ghost-user")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *KycServiceSuite) TestGetMyKyc() {
	s.Run("before submission", func() {
		_, err := s.svc.GetMyKyc(s.ctx, "user-1")
		s.Require().ErrorIs(err, ErrKycNotFound)
	})

	s.Run("after submission", func() {
		submitted, err := s.svc.Submit(s.ctx, "user-1", vendorInput(), identityDocs())
		s.Require().NoError(err)

		got, err := s.svc.GetMyKyc(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal(submitted.ID, got.ID)
	})
}
