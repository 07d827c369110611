package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"backtrack/internal/domain"
	"backtrack/internal/matching"
	"backtrack/internal/repository"
	"backtrack/internal/temporal"
)

// FeedService arma el feed de una ubicación para un viewer.
type FeedService struct {
	logger    *zap.Logger
	matcher   *matching.Matcher
	profiles  repository.ProfileRepository
	locations repository.LocationRepository
	posts     repository.PostRepository
	limit     int
	format    temporal.FormatOptions
	now       func() time.Time
}

func NewFeedService(
	logger *zap.Logger,
	matcher *matching.Matcher,
	profiles repository.ProfileRepository,
	locations repository.LocationRepository,
	posts repository.PostRepository,
	limit int,
) *FeedService {
	if matcher == nil {
		matcher = matching.DefaultMatcher
	}
	return &FeedService{
		logger:    logger,
		matcher:   matcher,
		profiles:  profiles,
		locations: locations,
		posts:     posts,
		limit:     limit,
		format:    temporal.DefaultFormatOptions(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type FeedRequest struct {
	ViewerID    string
	LocationID  string
	Filter      temporal.FilterOption
	Threshold   *int
	SortByMatch bool
	OnlyMatches bool
}

type Feed struct {
	Location        domain.Location   `json:"location"`
	Items           []domain.FeedItem `json:"items"`
	Threshold       int               `json:"threshold"`
	ViewerHasAvatar bool              `json:"viewer_has_avatar"`
	Filter          string            `json:"filter"`
}

// LocationFeed carga ubicación, avatar del viewer y posts en paralelo.
// Sin avatar válido del viewer los posts se listan sin score.
func (s *FeedService) LocationFeed(ctx context.Context, req FeedRequest) (Feed, error) {
	now := s.now()
	if req.Filter == "" {
		req.Filter = temporal.FilterAnyTime
	}
	threshold := s.matcher.Threshold()
	if req.Threshold != nil {
		threshold = matching.ClampThreshold(*req.Threshold)
	}

	var (
		location domain.Location
		viewer   *domain.AvatarConfig
		posts    []domain.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loc, err := s.locations.GetByID(gctx, req.LocationID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLocationNotFound
		}
		if err != nil {
			return fmt.Errorf("get location: %w", err)
		}
		location = loc
		return nil
	})
	g.Go(func() error {
		if req.ViewerID == "" {
			return nil
		}
		profile, err := s.profiles.GetByUserID(gctx, req.ViewerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get viewer profile: %w", err)
		}
		viewer = profile.OwnAvatar
		return nil
	})
	g.Go(func() error {
		list, err := s.posts.ListActiveByLocation(gctx, req.LocationID, temporal.FilterCutoffDate(req.Filter, now), s.limit)
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}
		posts = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return Feed{}, err
	}

	scorable := matching.IsValidForMatching(viewer)
	ordered := temporal.SortPostsWithDeprioritization(posts, now)
	scores := make(map[string]matching.PostMatch, len(ordered))
	if scorable {
		if req.OnlyMatches {
			ordered = s.matcher.FilterMatchingPosts(*viewer, ordered, threshold)
		}
		matches := s.matcher.BatchMatches(*viewer, ordered, threshold)
		if req.SortByMatch {
			ordered = orderByMatch(ordered, matches)
		}
		for _, m := range matches {
			scores[m.PostID] = m
		}
	} else if req.OnlyMatches {
		ordered = nil
	}

	quality := s.matcher.Thresholds()
	items := make([]domain.FeedItem, 0, len(ordered))
	for _, p := range ordered {
		item := domain.FeedItem{
			Post:          p,
			Deprioritized: temporal.IsPostDeprioritized(p, now),
			SightingLabel: temporal.DisplaySightingTime(p, now, s.format),
			Priority:      temporal.PostSortPriority(p, now),
		}
		if m, ok := scores[p.ID]; ok {
			score := m.Score
			item.Score = &score
			item.IsMatch = m.IsMatch
			item.Quality = string(quality.QualityFor(m.Score))
		}
		items = append(items, item)
	}

	s.logger.Debug("feed built",
		zap.String("location_id", req.LocationID),
		zap.String("filter", string(req.Filter)),
		zap.Int("posts", len(posts)),
		zap.Int("items", len(items)),
		zap.Bool("scored", scorable),
	)
	return Feed{
		Location:        location,
		Items:           items,
		Threshold:       threshold,
		ViewerHasAvatar: scorable,
		Filter:          string(req.Filter),
	}, nil
}

// orderByMatch reordena los posts según el resultado de BatchMatches.
func orderByMatch(posts []domain.Post, matches []matching.PostMatch) []domain.Post {
	byID := make(map[string]domain.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	out := make([]domain.Post, 0, len(matches))
	for _, m := range matches {
		out = append(out, byID[m.PostID])
	}
	return out
}
