package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"backtrack/internal/domain"
	"backtrack/internal/matching"
	"backtrack/internal/service"
)

type mockProfileRepo struct {
	profiles map[string]domain.Profile
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (domain.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProfileRepo) UpsertAvatar(_ context.Context, userID string, avatar domain.AvatarConfig) (domain.Profile, error) {
	p := domain.Profile{UserID: userID, OwnAvatar: &avatar, UpdatedAt: time.Now().UTC()}
	m.profiles[userID] = p
	return p, nil
}

type mockLocationRepo struct{}

func (mockLocationRepo) GetByID(_ context.Context, id string) (domain.Location, error) {
	if id != "loc-1" {
		return domain.Location{}, pgx.ErrNoRows
	}
	return domain.Location{ID: "loc-1", Name: "Blue Bottle"}, nil
}

type mockPostRepo struct {
	posts []domain.Post
}

func (m *mockPostRepo) Create(_ context.Context, post domain.Post) error {
	m.posts = append(m.posts, post)
	return nil
}

func (m *mockPostRepo) ListActiveByLocation(_ context.Context, locationID string, cutoff *time.Time, _ int) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range m.posts {
		if p.LocationID != locationID {
			continue
		}
		if cutoff != nil && (p.SightingDate == nil || p.SightingDate.Before(*cutoff)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type testServer struct {
	router   *gin.Engine
	profiles *mockProfileRepo
	posts    *mockPostRepo
	pingErr  error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	ts := &testServer{
		profiles: &mockProfileRepo{profiles: make(map[string]domain.Profile)},
		posts:    &mockPostRepo{},
	}
	locations := mockLocationRepo{}
	matcher := matching.NewMatcher(matching.DefaultConfig())

	profileSvc := service.NewProfileService(logger, ts.profiles)
	feedSvc := service.NewFeedService(logger, matcher, ts.profiles, locations, ts.posts, 100)
	postSvc := service.NewPostService(logger, ts.posts, locations, service.NewPostRateLimiter(time.Hour, 2))
	verifier := service.NewTokenVerifier(testSecret, "authenticated", "")

	ts.router = NewRouter(
		logger,
		verifier,
		NewHealthHandler(logger, func(context.Context) error { return ts.pingErr }),
		NewProfileHandler(logger, profileSvc),
		NewFeedHandler(logger, feedSvc),
		NewPostHandler(logger, postSvc),
		NewMatchHandler(logger, matcher),
	)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+testToken(t, user))
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	if rec := ts.do(t, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	ts.pingErr = errors.New("db down")
	if rec := ts.do(t, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestAvatarEndpoints(t *testing.T) {
	ts := newTestServer(t)

	if rec := ts.do(t, http.MethodGet, "/me/avatar", "u1", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before saving, got %d", rec.Code)
	}

	bad := domain.DefaultAvatarConfig
	bad.SkinColor = "Green"
	if rec := ts.do(t, http.MethodPut, "/me/avatar", "u1", bad); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown skin color, got %d", rec.Code)
	}

	if rec := ts.do(t, http.MethodPut, "/me/avatar", "u1", domain.DefaultAvatarConfig); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := ts.do(t, http.MethodGet, "/me/avatar", "u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Avatar domain.AvatarConfig `json:"avatar"`
	}
	decode(t, rec, &resp)
	if resp.Avatar != domain.DefaultAvatarConfig {
		t.Fatalf("unexpected avatar %+v", resp.Avatar)
	}

	if rec := ts.do(t, http.MethodGet, "/me/avatar", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestCreatePostAndFeed(t *testing.T) {
	ts := newTestServer(t)
	viewer := domain.DefaultAvatarConfig
	ts.profiles.profiles["viewer"] = domain.Profile{UserID: "viewer", OwnAvatar: &viewer}

	sighting := time.Now().UTC().AddDate(0, 0, -2)
	rec := ts.do(t, http.MethodPost, "/locations/loc-1/posts", "producer", map[string]any{
		"target_avatar":    domain.DefaultAvatarConfig,
		"note":             "green jacket",
		"sighting_date":    sighting,
		"time_granularity": "morning",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Post domain.Post `json:"post"`
	}
	decode(t, rec, &created)
	if created.Post.SightingDate == nil || created.Post.SightingDate.Hour() != 9 {
		t.Fatalf("expected morning midpoint, got %v", created.Post.SightingDate)
	}

	rec = ts.do(t, http.MethodGet, "/locations/loc-1/feed?filter=last_week&sort=match", "viewer", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var feed service.Feed
	decode(t, rec, &feed)
	if len(feed.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(feed.Items))
	}
	item := feed.Items[0]
	if item.Score == nil || *item.Score != 100 || !item.IsMatch {
		t.Fatalf("unexpected feed item: %+v", item)
	}
	if item.SightingLabel == "" {
		t.Fatalf("expected sighting label")
	}

	rec = ts.do(t, http.MethodGet, "/locations/loc-1/feed?filter=last_24h", "viewer", nil)
	decode(t, rec, &feed)
	if len(feed.Items) != 0 {
		t.Fatalf("two day old sighting is outside last_24h, got %d items", len(feed.Items))
	}
}

func TestFeedBadRequests(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		path string
		want int
	}{
		{"/locations/loc-1/feed?filter=yesterday", http.StatusBadRequest},
		{"/locations/loc-1/feed?threshold=high", http.StatusBadRequest},
		{"/locations/loc-9/feed", http.StatusNotFound},
		{"/locations/loc-1/feed?threshold=10", http.StatusOK},
	}
	for _, tc := range cases {
		if rec := ts.do(t, http.MethodGet, tc.path, "viewer", nil); rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.want, rec.Code)
		}
	}
}

func TestCreatePostErrors(t *testing.T) {
	ts := newTestServer(t)
	future := time.Now().UTC().Add(time.Hour)

	cases := []struct {
		name string
		path string
		body map[string]any
		want int
	}{
		{"future sighting", "/locations/loc-1/posts", map[string]any{
			"target_avatar": domain.DefaultAvatarConfig, "sighting_date": future, "time_granularity": "specific",
		}, http.StatusBadRequest},
		{"date without granularity", "/locations/loc-1/posts", map[string]any{
			"target_avatar": domain.DefaultAvatarConfig, "sighting_date": time.Now().UTC(),
		}, http.StatusBadRequest},
		{"empty avatar", "/locations/loc-1/posts", map[string]any{"note": "hi"}, http.StatusBadRequest},
		{"unknown location", "/locations/loc-9/posts", map[string]any{"target_avatar": domain.DefaultAvatarConfig}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := ts.do(t, http.MethodPost, tc.path, "producer", tc.body); rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreatePostRateLimit(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"target_avatar": domain.DefaultAvatarConfig}

	for i := 0; i < 2; i++ {
		if rec := ts.do(t, http.MethodPost, "/locations/loc-1/posts", "producer", body); rec.Code != http.StatusCreated {
			t.Fatalf("post %d: expected 201, got %d", i, rec.Code)
		}
	}
	if rec := ts.do(t, http.MethodPost, "/locations/loc-1/posts", "producer", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestMatchPreview(t *testing.T) {
	ts := newTestServer(t)

	consumer := domain.DefaultAvatarConfig
	consumer.SkinColor = "Black"
	rec := ts.do(t, http.MethodPost, "/match/preview", "", map[string]any{
		"target":   domain.DefaultAvatarConfig,
		"consumer": consumer,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Result     matching.Result  `json:"result"`
		QuickMatch bool             `json:"quick_match"`
		Primary    matching.Summary `json:"primary"`
	}
	decode(t, rec, &resp)
	if !resp.Result.IsMatch || resp.Result.Score >= 100 || len(resp.Result.Breakdown) == 0 {
		t.Fatalf("unexpected result %+v", resp.Result)
	}
	if !resp.QuickMatch || resp.Primary.MatchCount != 4 {
		t.Fatalf("unexpected summary: quick=%v primary=%+v", resp.QuickMatch, resp.Primary)
	}

	bad := domain.DefaultAvatarConfig
	bad.TopType = "Mohawk"
	rec = ts.do(t, http.MethodPost, "/match/preview", "", map[string]any{"target": bad, "consumer": consumer})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
