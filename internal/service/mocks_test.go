package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"backtrack/internal/domain"
)

type mockProfileRepo struct {
	profiles map[string]domain.Profile
	err      error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]domain.Profile)}
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (domain.Profile, error) {
	if m.err != nil {
		return domain.Profile{}, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProfileRepo) UpsertAvatar(_ context.Context, userID string, avatar domain.AvatarConfig) (domain.Profile, error) {
	if m.err != nil {
		return domain.Profile{}, m.err
	}
	p := m.profiles[userID]
	p.UserID = userID
	p.OwnAvatar = &avatar
	m.profiles[userID] = p
	return p, nil
}

type mockLocationRepo struct {
	locations map[string]domain.Location
}

func (m *mockLocationRepo) GetByID(_ context.Context, id string) (domain.Location, error) {
	loc, ok := m.locations[id]
	if !ok {
		return domain.Location{}, pgx.ErrNoRows
	}
	return loc, nil
}

type mockPostRepo struct {
	created    []domain.Post
	listed     []domain.Post
	lastCutoff *time.Time
	lastLimit  int
	err        error
}

func (m *mockPostRepo) Create(_ context.Context, post domain.Post) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, post)
	return nil
}

func (m *mockPostRepo) ListActiveByLocation(_ context.Context, locationID string, cutoff *time.Time, limit int) ([]domain.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastCutoff = cutoff
	m.lastLimit = limit
	var out []domain.Post
	for _, p := range m.listed {
		if p.LocationID == locationID {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubLimiter struct {
	allow bool
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) bool {
	s.keys = append(s.keys, key)
	return s.allow
}
