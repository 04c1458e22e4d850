package service

import (
	"context"
	"errors"
	"time"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

// In-memory fakes shared across the service tests. They mirror the store
// contracts: unique email on identities, unique idempotency key on work
// items, atomic from-state check on UpdateStatus.

type stubIdentityRepo struct {
	identities map[string]*domain.Identity // keyed by id
	createErr  error
	deleted    []string
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{identities: make(map[string]*domain.Identity)}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.identities {
		if existing.Email == identity.Email {
			return nil, domain.ErrUserExists
		}
		if identity.IdempotencyKey != "" && existing.IdempotencyKey == identity.IdempotencyKey {
			return nil, domain.ErrUserExists
		}
	}
	r.identities[identity.ID] = cloneIdentity(identity)
	return cloneIdentity(identity), nil
}

func (r *stubIdentityRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Identity, error) {
	for _, i := range r.identities {
		if key != "" && i.IdempotencyKey == key {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, i := range r.identities {
		if i.Email == email {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	if i, ok := r.identities[id]; ok {
		return cloneIdentity(i), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubIdentityRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	i, ok := r.identities[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	i.PasswordHash = passwordHash
	i.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.identities[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.identities, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubProfileRepo struct {
	profiles  map[string]*domain.Profile
	createErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	if p.AllowedSoftware != nil {
		clone.AllowedSoftware = append([]string{}, p.AllowedSoftware...)
	}
	return &clone
}

func (r *stubProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.profiles[profile.ID]; ok {
		return domain.ErrUserExists
	}
	r.profiles[profile.ID] = cloneProfile(profile)
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return cloneProfile(p), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubProfileRepo) List(_ context.Context) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (r *stubProfileRepo) Update(_ context.Context, id string, update ports.ProfileUpdate) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Username != nil {
		p.Username = *update.Username
	}
	if update.ProfilePicture != nil {
		p.ProfilePicture = *update.ProfilePicture
	}
	if update.AllowedSoftware != nil {
		p.AllowedSoftware = append([]string{}, (*update.AllowedSoftware)...)
	}
	p.UpdatedAt = time.Now().UTC()
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.profiles, id)
	return nil
}

type stubWorkItemRepo struct {
	items map[string]*domain.WorkItem
}

func newStubWorkItemRepo() *stubWorkItemRepo {
	return &stubWorkItemRepo{items: make(map[string]*domain.WorkItem)}
}

func cloneWorkItem(w *domain.WorkItem) *domain.WorkItem {
	if w == nil {
		return nil
	}
	clone := *w
	return &clone
}

func (r *stubWorkItemRepo) Create(_ context.Context, item *domain.WorkItem) error {
	if item.IdempotencyKey != "" {
		for _, existing := range r.items {
			if existing.IdempotencyKey == item.IdempotencyKey {
				return domain.ErrWorkItemExists
			}
		}
	}
	r.items[item.ID] = cloneWorkItem(item)
	return nil
}

func (r *stubWorkItemRepo) FindByID(_ context.Context, id string) (*domain.WorkItem, error) {
	if w, ok := r.items[id]; ok {
		return cloneWorkItem(w), nil
	}
	return nil, domain.ErrWorkItemNotFound
}

func (r *stubWorkItemRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.WorkItem, error) {
	for _, w := range r.items {
		if w.IdempotencyKey == key {
			return cloneWorkItem(w), nil
		}
	}
	return nil, domain.ErrWorkItemNotFound
}

func (r *stubWorkItemRepo) List(_ context.Context, filter ports.WorkItemFilter) ([]*domain.WorkItem, error) {
	out := make([]*domain.WorkItem, 0, len(r.items))
	for _, w := range r.items {
		if filter.UserID != "" && w.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		out = append(out, cloneWorkItem(w))
	}
	return out, nil
}

func (r *stubWorkItemRepo) UpdateStatus(_ context.Context, id string, from, to domain.WorkStatus) (*domain.WorkItem, error) {
	w, ok := r.items[id]
	if !ok {
		return nil, domain.ErrWorkItemNotFound
	}
	if w.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	w.Status = to
	w.UpdatedAt = time.Now().UTC()
	return cloneWorkItem(w), nil
}

func (r *stubWorkItemRepo) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, w := range r.items {
		if w.UserID == userID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

type stubResetCodes struct {
	codes map[string]string
}

func newStubResetCodes() *stubResetCodes {
	return &stubResetCodes{codes: make(map[string]string)}
}

func (s *stubResetCodes) Issue(_ context.Context, email, code string) error {
	s.codes[email] = code
	return nil
}

func (s *stubResetCodes) Consume(_ context.Context, email, code string) (bool, error) {
	stored, ok := s.codes[email]
	if !ok || stored != code {
		return false, nil
	}
	delete(s.codes, email)
	return true, nil
}

type stubNotifier struct {
	sent []string // emails a code was delivered to
}

func (s *stubNotifier) SendResetCode(_ context.Context, email, _ string) error {
	s.sent = append(s.sent, email)
	return nil
}

type stubRevoker struct {
	revoked map[string]bool
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]bool)}
}

func (s *stubRevoker) Revoke(_ context.Context, token string, _ time.Duration) error {
	s.revoked[token] = true
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

type stubSSOStore struct {
	tokens map[string]*domain.SSOToken
}

func newStubSSOStore() *stubSSOStore {
	return &stubSSOStore{tokens: make(map[string]*domain.SSOToken)}
}

func (s *stubSSOStore) Save(_ context.Context, token *domain.SSOToken) error {
	clone := *token
	s.tokens[token.Token] = &clone
	return nil
}

func (s *stubSSOStore) Lookup(_ context.Context, token string) (*domain.SSOToken, error) {
	if t, ok := s.tokens[token]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTokenNotFound
}

type stubOverview struct {
	snapshot ports.AdminOverview
}

func (s *stubOverview) Snapshot() ports.AdminOverview {
	return s.snapshot
}

var errStoreDown = errors.New("store down")
