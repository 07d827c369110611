package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"backtrack/internal/domain"
	"backtrack/internal/temporal"
)

func newTestPostService(limiter PostRateLimiter) (*PostService, *mockPostRepo) {
	posts := &mockPostRepo{}
	locations := &mockLocationRepo{locations: map[string]domain.Location{"loc-1": {ID: "loc-1"}}}
	svc := NewPostService(zap.NewNop(), posts, locations, limiter)
	svc.now = func() time.Time { return feedNow }
	return svc, posts
}

func granularity(g domain.TimeGranularity) *domain.TimeGranularity {
	return &g
}

func TestCreatePostNormalizesPeriodToMidpoint(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	svc, posts := newTestPostService(limiter)
	sighting := time.Date(2024, 12, 25, 13, 47, 0, 0, time.UTC)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		ProducerID:      "u1",
		LocationID:      "loc-1",
		TargetAvatar:    domain.DefaultAvatarConfig,
		Note:            "  red scarf, reading  ",
		SightingDate:    &sighting,
		TimeGranularity: granularity(domain.GranularityAfternoon),
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	want := time.Date(2024, 12, 25, 15, 0, 0, 0, time.UTC)
	if post.SightingDate == nil || !post.SightingDate.Equal(want) {
		t.Fatalf("expected midpoint %s, got %v", want, post.SightingDate)
	}
	if post.ID == "" || !post.IsActive || !post.CreatedAt.Equal(feedNow) {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Note != "red scarf, reading" {
		t.Fatalf("expected trimmed note, got %q", post.Note)
	}
	if len(posts.created) != 1 {
		t.Fatalf("expected post to be stored")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "u1" {
		t.Fatalf("expected rate limit by producer, got %+v", limiter.keys)
	}
}

func TestCreatePostMidpointNeverAfterNow(t *testing.T) {
	pst := time.FixedZone("PST", -8*3600)
	cases := []struct {
		name     string
		now      time.Time
		sighting time.Time
	}{
		{"evening reported at 19:00 utc", time.Date(2024, 12, 27, 19, 30, 0, 0, time.UTC), time.Date(2024, 12, 27, 19, 0, 0, 0, time.UTC)},
		{"evening reported in the morning pst", feedNow, feedNow.In(pst).Add(-time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestPostService(&stubLimiter{allow: true})
			svc.now = func() time.Time { return tc.now }
			post, err := svc.CreatePost(context.Background(), CreatePostInput{
				ProducerID:      "u1",
				LocationID:      "loc-1",
				TargetAvatar:    domain.DefaultAvatarConfig,
				SightingDate:    &tc.sighting,
				TimeGranularity: granularity(domain.GranularityEvening),
			})
			if err != nil {
				t.Fatalf("create post: %v", err)
			}
			if !post.SightingDate.Equal(tc.now) {
				t.Fatalf("expected sighting capped at %s, got %s", tc.now, post.SightingDate)
			}
			if res := temporal.ValidateSightingDate(post.SightingDate, tc.now); !res.Valid {
				t.Fatalf("stored sighting must stay valid, got %+v", res)
			}
		})
	}
}

func TestCreatePostMidpointUsesClientDay(t *testing.T) {
	pst := time.FixedZone("PST", -8*3600)
	svc, _ := newTestPostService(&stubLimiter{allow: true})
	// 26 de diciembre 19:00 PST es el 27 a las 03:00 UTC.
	sighting := time.Date(2024, 12, 26, 19, 0, 0, 0, pst)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		ProducerID:      "u1",
		LocationID:      "loc-1",
		TargetAvatar:    domain.DefaultAvatarConfig,
		SightingDate:    &sighting,
		TimeGranularity: granularity(domain.GranularityEvening),
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	want := time.Date(2024, 12, 26, 21, 0, 0, 0, pst)
	if !post.SightingDate.Equal(want) || post.SightingDate.Location() != time.UTC {
		t.Fatalf("expected %s stored in UTC, got %s", want.UTC(), post.SightingDate)
	}
	label := temporal.FormatSightingTime(*post.SightingDate, domain.GranularityEvening, feedNow.In(pst), temporal.DefaultFormatOptions())
	if label != "Yesterday evening" {
		t.Fatalf("expected Yesterday evening for the client, got %q", label)
	}
}

func TestCreatePostWithoutSighting(t *testing.T) {
	svc, _ := newTestPostService(&stubLimiter{allow: true})
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		ProducerID:   "u1",
		LocationID:   "loc-1",
		TargetAvatar: domain.DefaultAvatarConfig,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.SightingDate != nil || post.TimeGranularity != nil {
		t.Fatalf("expected no sighting, got %+v", post)
	}
}

func TestCreatePostValidation(t *testing.T) {
	past := feedNow.AddDate(0, 0, -1)
	future := feedNow.Add(time.Hour)
	badAvatar := domain.DefaultAvatarConfig
	badAvatar.HairColor = "Green"

	cases := []struct {
		name string
		in   CreatePostInput
		want error
	}{
		{"unknown avatar value", CreatePostInput{LocationID: "loc-1", TargetAvatar: badAvatar}, ErrInvalidAvatar},
		{"missing primary", CreatePostInput{LocationID: "loc-1", TargetAvatar: domain.AvatarConfig{SkinColor: "Light"}}, ErrInvalidAvatar},
		{"date without granularity", CreatePostInput{LocationID: "loc-1", TargetAvatar: domain.DefaultAvatarConfig, SightingDate: &past}, ErrSightingPairing},
		{"granularity without date", CreatePostInput{LocationID: "loc-1", TargetAvatar: domain.DefaultAvatarConfig, TimeGranularity: granularity(domain.GranularityMorning)}, ErrSightingPairing},
		{"unknown granularity", CreatePostInput{LocationID: "loc-1", TargetAvatar: domain.DefaultAvatarConfig, SightingDate: &past, TimeGranularity: granularity("night")}, ErrInvalidGranularity},
		{"future sighting", CreatePostInput{LocationID: "loc-1", TargetAvatar: domain.DefaultAvatarConfig, SightingDate: &future, TimeGranularity: granularity(domain.GranularitySpecific)}, ErrInvalidSightingDate},
		{"note too long", CreatePostInput{LocationID: "loc-1", TargetAvatar: domain.DefaultAvatarConfig, Note: strings.Repeat("a", maxNoteLength+1)}, ErrNoteTooLong},
		{"unknown location", CreatePostInput{LocationID: "loc-9", TargetAvatar: domain.DefaultAvatarConfig}, ErrLocationNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, posts := newTestPostService(&stubLimiter{allow: true})
			tc.in.ProducerID = "u1"
			if _, err := svc.CreatePost(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(posts.created) != 0 {
				t.Fatalf("invalid post must not be stored")
			}
		})
	}
}

func TestCreatePostRateLimited(t *testing.T) {
	svc, posts := newTestPostService(&stubLimiter{allow: false})
	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		ProducerID:   "u1",
		LocationID:   "loc-1",
		TargetAvatar: domain.DefaultAvatarConfig,
	})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(posts.created) != 0 {
		t.Fatalf("rate limited post must not be stored")
	}
}
