package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

// Store is an in-memory implementation of repository.Store used by unit
// tests and local tooling. WithinTx runs against a snapshot and swaps it in
// only on success, giving real rollback semantics.
type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

type state struct {
	kyc       map[string]*entity.KycRecord // by record id
	kycByUser map[string]string            // userID -> record id
	vendors   map[string]*entity.VendorProfile     // by userID
	hotels    map[string]*entity.HotelProfile      // by userID
	addresses map[string]*entity.HotelAddress      // by hotelProfileID
	schools   map[string]*entity.PetSchoolProfile  // by userID
	sitters   map[string]*entity.PetSitterProfile  // by userID
	users     map[string]*entity.User              // by id
}

func newState() *state {
	return &state{
		kyc:       map[string]*entity.KycRecord{},
		kycByUser: map[string]string{},
		vendors:   map[string]*entity.VendorProfile{},
		hotels:    map[string]*entity.HotelProfile{},
		addresses: map[string]*entity.HotelAddress{},
		schools:   map[string]*entity.PetSchoolProfile{},
		sitters:   map[string]*entity.PetSitterProfile{},
		users:     map[string]*entity.User{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.kyc {
		c.kyc[k] = copyKyc(v)
	}
	for k, v := range s.kycByUser {
		c.kycByUser[k] = v
	}
	for k, v := range s.vendors {
		cp := *v
		c.vendors[k] = &cp
	}
	for k, v := range s.hotels {
		cp := *v
		c.hotels[k] = &cp
	}
	for k, v := range s.addresses {
		cp := *v
		c.addresses[k] = &cp
	}
	for k, v := range s.schools {
		cp := *v
		c.schools[k] = &cp
	}
	for k, v := range s.sitters {
		cp := *v
		cp.Languages = append([]string(nil), v.Languages...)
		c.sitters[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	return c
}

func copyKyc(r *entity.KycRecord) *entity.KycRecord {
	cp := *r
	cp.FacilityPhotos = append([]string(nil), r.FacilityPhotos...)
	if r.ReviewedAt != nil {
		t := *r.ReviewedAt
		cp.ReviewedAt = &t
	}
	return &cp
}

func now() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }

// Live accessors lock per operation; transactional views hold the store lock
// for the whole transaction.

func (s *Store) Kyc() repository.KycRepository {
	return &kycRepo{get: s.locked}
}

func (s *Store) Profiles() repository.ProfileRepository {
	return &profileRepo{get: s.locked}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepo{get: s.locked}
}

// locked runs fn while holding the store mutex against the live state.
func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	unlocked := func(fn2 func(st *state) error) error { return fn2(snapshot) }
	tx := &txView{
		kyc:      &kycRepo{get: unlocked},
		profiles: &profileRepo{get: unlocked},
		users:    &userRepo{get: unlocked},
	}
	if err := fn(tx); err != nil {
		// snapshot dropped: rollback
		return err
	}
	s.st = snapshot
	return nil
}

type txView struct {
	kyc      *kycRepo
	profiles *profileRepo
	users    *userRepo
}

func (t *txView) Kyc() repository.KycRepository          { return t.kyc }
func (t *txView) Profiles() repository.ProfileRepository { return t.profiles }
func (t *txView) Users() repository.UserRepository       { return t.users }

var _ repository.Store = (*Store)(nil)
