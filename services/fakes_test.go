package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/naculis/naculis_game/models"
)

// fakeStore is an in-memory Store. Lookups return copies, so a change
// only sticks once the matching Save method runs, like a real store.
// Transact applies mutations directly without rollback; tests covering
// transactional failure assert on errors, not on rolled-back state.
type fakeStore struct {
	users     map[uuid.UUID]*models.User
	profiles  map[uuid.UUID]*models.UserProfile
	pending   map[string]*models.PendingRegistration
	discounts map[uuid.UUID]*models.Discount

	createDiscountErr error
	saveProfileErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[uuid.UUID]*models.User{},
		profiles:  map[uuid.UUID]*models.UserProfile{},
		pending:   map[string]*models.PendingRegistration{},
		discounts: map[uuid.UUID]*models.Discount{},
	}
}

func (s *fakeStore) Transact(fn func(tx Store) error) error {
	return fn(s)
}

func (s *fakeStore) UserByID(id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) UserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) UserByEmailAndUsername(email, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email && u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) UserExists(email, username string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateUser(u *models.User) error {
	if taken, _ := s.UserExists(u.Email, u.Username); taken {
		return fmt.Errorf("%w: duplicate key", ErrConflict)
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeStore) SaveUser(u *models.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeStore) DeleteUser(u *models.User) error {
	delete(s.users, u.ID)
	for id, p := range s.profiles {
		if p.UserID == u.ID {
			for did, d := range s.discounts {
				if d.ProfileID == id {
					delete(s.discounts, did)
				}
			}
			delete(s.profiles, id)
		}
	}
	return nil
}

func (s *fakeStore) ProfileByUserID(userID uuid.UUID) (*models.UserProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) ProfileByID(id uuid.UUID) (*models.UserProfile, error) {
	if p, ok := s.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) ProfileByReferralCode(code string) (*models.UserProfile, error) {
	for _, p := range s.profiles {
		if p.ReferralCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) ReferralCodeExists(code string) (bool, error) {
	for _, p := range s.profiles {
		if p.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateProfile(p *models.UserProfile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *fakeStore) SaveProfile(p *models.UserProfile) error {
	if s.saveProfileErr != nil {
		return s.saveProfileErr
	}
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *fakeStore) PendingByEmail(email string) (*models.PendingRegistration, error) {
	if p, ok := s.pending[email]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) CreatePending(p *models.PendingRegistration) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	s.pending[p.Email] = &cp
	return nil
}

func (s *fakeStore) SavePending(p *models.PendingRegistration) error {
	cp := *p
	s.pending[p.Email] = &cp
	return nil
}

func (s *fakeStore) DeletePendingByEmail(email string) error {
	delete(s.pending, email)
	return nil
}

func (s *fakeStore) DeleteExpiredPending(now time.Time) (int64, error) {
	var n int64
	for email, p := range s.pending {
		if p.Expired(now) {
			delete(s.pending, email)
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) DiscountsByProfile(profileID uuid.UUID) ([]models.Discount, error) {
	var out []models.Discount
	for _, d := range s.discounts {
		if d.ProfileID == profileID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *fakeStore) DiscountByID(id uuid.UUID) (*models.Discount, error) {
	if d, ok := s.discounts[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) DiscountOwnedBy(id, profileID uuid.UUID) (*models.Discount, error) {
	if d, ok := s.discounts[id]; ok && d.ProfileID == profileID {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) CreateDiscount(d *models.Discount) error {
	if s.createDiscountErr != nil {
		return s.createDiscountErr
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.GrantedAt.IsZero() {
		d.GrantedAt = time.Now()
	}
	cp := *d
	s.discounts[d.ID] = &cp
	return nil
}

func (s *fakeStore) SaveDiscount(d *models.Discount) error {
	cp := *d
	s.discounts[d.ID] = &cp
	return nil
}

func (s *fakeStore) DeleteDiscount(d *models.Discount) error {
	delete(s.discounts, d.ID)
	return nil
}

// seedUser inserts a user with a profile and returns both.
func (s *fakeStore) seedUser(email, username, referralCode string) (*models.User, *models.UserProfile) {
	user := &models.User{
		Email:    email,
		Username: username,
		Password: "$2a$10$fakehash",
		Role:     models.RoleUser,
		IsActive: true,
	}
	_ = s.CreateUser(user)
	profile := &models.UserProfile{
		UserID:       user.ID,
		Hearts:       5,
		ReferralCode: referralCode,
		ReferralLink: "https://play.naculis.com/register?ref=" + referralCode,
	}
	_ = s.CreateProfile(profile)
	return user, profile
}

type fakeKVEntry struct {
	value     string
	expiresAt time.Time
}

type fakeKV struct {
	entries map[string]fakeKVEntry
	now     func() time.Time
}

func newFakeKV(now func() time.Time) *fakeKV {
	if now == nil {
		now = time.Now
	}
	return &fakeKV{entries: map[string]fakeKVEntry{}, now: now}
}

func (kv *fakeKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	kv.entries[key] = fakeKVEntry{value: value, expiresAt: kv.now().Add(ttl)}
	return nil
}

func (kv *fakeKV) Get(_ context.Context, key string) (string, error) {
	entry, ok := kv.entries[key]
	if !ok || kv.now().After(entry.expiresAt) {
		delete(kv.entries, key)
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (kv *fakeKV) Del(_ context.Context, key string) error {
	delete(kv.entries, key)
	return nil
}

type sentMail struct {
	toName, toEmail, subject, body string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *fakeMailer) Send(toName, toEmail, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{toName, toEmail, subject, body})
	return nil
}

func (m *fakeMailer) lastOTP() string {
	if len(m.sent) == 0 {
		return ""
	}
	body := m.sent[len(m.sent)-1].body
	marker := "Your OTP is: "
	i := strings.Index(body, marker)
	if i < 0 {
		return ""
	}
	return body[i+len(marker) : i+len(marker)+6]
}

// fakeClock is a settable time source shared by a test's services.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
