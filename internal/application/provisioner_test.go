package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
	"github.com/pawmart/pawmart-backend/internal/infrastructure/memory"
)

type ProvisionerSuite struct {
	suite.Suite
	store *memory.Store
	ctx   context.Context
}

func (s *ProvisionerSuite) SetupTest() {
	s.store = memory.NewStore()
	s.ctx = context.Background()
}

func TestProvisionerSuite(t *testing.T) {
	suite.Run(t, new(ProvisionerSuite))
}

func (s *ProvisionerSuite) provision(role entity.RoleType, userID string) error {
	return s.store.WithinTx(s.ctx, func(tx repository.Tx) error {
		return ProvisionProfile(s.ctx, tx, role, userID, ProvisionInput{
			Name:           "Jamie Doe",
			Email:          "jamie@example.com",
			Phone:          "+8801000000000",
			PresentAddress: "12 Bark Street",
		})
	})
}

func (s *ProvisionerSuite) activate(role entity.RoleType, userID string) error {
	return s.store.WithinTx(s.ctx, func(tx repository.Tx) error {
		return ActivateProfile(s.ctx, tx, role, userID)
	})
}

// Every known role must be able to round-trip provision then activate; a role
// added to the entity layer without registry hooks fails here.
func (s *ProvisionerSuite) TestRegistryCoversAllRoles() {
	for _, role := range entity.AllRoleTypes() {
		uid := "user-" + string(role)
		s.Require().NoError(s.provision(role, uid), "provision %s", role)
		s.Require().NoError(s.activate(role, uid), "activate %s", role)
	}
}

func (s *ProvisionerSuite) TestUnknownRole() {
	s.ErrorIs(s.provision(entity.RoleType("WIZARD"), "u1"), ErrInvalidRole)
	s.ErrorIs(s.activate(entity.RoleType("WIZARD"), "u1"), ErrInvalidRole)
}

func (s *ProvisionerSuite) TestVendorShell() {
	s.Require().NoError(s.provision(entity.RoleVendor, "u1"))

	p, err := s.store.Profiles().GetVendorByUserID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("Jamie Doe", p.Name)
	s.Equal(entity.ProfilePending, p.Status)
	s.False(p.IsVerified)
}

func (s *ProvisionerSuite) TestVendorReprovisionKeepsActivation() {
	s.Require().NoError(s.provision(entity.RoleVendor, "u1"))
	s.Require().NoError(s.activate(entity.RoleVendor, "u1"))

	s.Require().NoError(s.provision(entity.RoleVendor, "u1"))

	p, err := s.store.Profiles().GetVendorByUserID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(entity.ProfileActive, p.Status)
	s.True(p.IsVerified)
}

func (s *ProvisionerSuite) TestHotelShellWithAddress() {
	s.Require().NoError(s.provision(entity.RoleHotel, "u1"))

	hotel, err := s.store.Profiles().GetHotelByUserID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(defaultDayStart, hotel.DayStartingTime)
	s.Equal(defaultDayEnd, hotel.DayEndingTime)
	s.Equal(defaultNightStart, hotel.NightStartingTime)
	s.Equal(defaultNightEnd, hotel.NightEndingTime)

	addr, err := s.store.Profiles().GetHotelAddress(s.ctx, hotel.ID)
	s.Require().NoError(err)
	s.Equal("12 Bark Street", addr.StreetAddress)
	s.Equal(defaultCity, addr.City)
	s.Equal(defaultCountry, addr.Country)
	s.Equal(defaultPostalCode, addr.PostalCode)
}

func (s *ProvisionerSuite) TestHotelReprovisionKeepsSingleAddress() {
	s.Require().NoError(s.provision(entity.RoleHotel, "u1"))
	hotel, err := s.store.Profiles().GetHotelByUserID(s.ctx, "u1")
	s.Require().NoError(err)

	s.Require().NoError(s.store.WithinTx(s.ctx, func(tx repository.Tx) error {
		return ProvisionProfile(s.ctx, tx, entity.RoleHotel, "u1", ProvisionInput{
			Name:           "Jamie Doe",
			Email:          "jamie@example.com",
			Phone:          "+8801000000000",
			PresentAddress: "99 New Street",
		})
	}))

	again, err := s.store.Profiles().GetHotelByUserID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(hotel.ID, again.ID)

	addr, err := s.store.Profiles().GetHotelAddress(s.ctx, hotel.ID)
	s.Require().NoError(err)
	s.Equal("99 New Street", addr.StreetAddress)
}

func (s *ProvisionerSuite) TestSitterShellSeededEmpty() {
	s.Require().NoError(s.provision(entity.RolePetSitter, "u1"))

	p, err := s.store.Profiles().GetSitterByUserID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Empty(p.Bio)
	s.Empty(p.Designations)
	s.Empty(p.Languages)
	s.Zero(p.YearsOfExperience)
	s.Equal(entity.ProfilePending, p.ProfileStatus)
}

func (s *ProvisionerSuite) TestSitterReprovisionIsNoOp() {
	s.Require().NoError(s.provision(entity.RolePetSitter, "u1"))
	first, err := s.store.Profiles().GetSitterByUserID(s.ctx, "u1")
	s.Require().NoError(err)

	s.Require().NoError(s.provision(entity.RolePetSitter, "u1"))
	second, err := s.store.Profiles().GetSitterByUserID(s.ctx, "u1")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(first.CreatedAt, second.CreatedAt)
	s.Equal(first.UpdatedAt, second.UpdatedAt)
}
