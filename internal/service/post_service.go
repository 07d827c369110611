package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"backtrack/internal/domain"
	"backtrack/internal/repository"
	"backtrack/internal/temporal"
)

const maxNoteLength = 500

// PostService valida y publica posts de conexión perdida.
type PostService struct {
	logger    *zap.Logger
	posts     repository.PostRepository
	locations repository.LocationRepository
	limiter   PostRateLimiter
	now       func() time.Time
}

func NewPostService(logger *zap.Logger, posts repository.PostRepository, locations repository.LocationRepository, limiter PostRateLimiter) *PostService {
	if limiter == nil {
		limiter = NewPostRateLimiter(time.Hour, 5)
	}
	return &PostService{
		logger:    logger,
		posts:     posts,
		locations: locations,
		limiter:   limiter,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type CreatePostInput struct {
	ProducerID      string
	LocationID      string
	TargetAvatar    domain.AvatarConfig
	Note            string
	SightingDate    *time.Time
	TimeGranularity *domain.TimeGranularity
}

// CreatePost valida la entrada, aplica el rate limit y guarda el post.
// Las franjas del día se guardan en la hora media de su rango, nunca después de now.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (domain.Post, error) {
	now := s.now()
	if err := in.TargetAvatar.Validate(); err != nil {
		return domain.Post{}, err
	}
	note := strings.TrimSpace(in.Note)
	if utf8.RuneCountInString(note) > maxNoteLength {
		return domain.Post{}, ErrNoteTooLong
	}

	sighting, granularity, err := normalizeSighting(in.SightingDate, in.TimeGranularity, now)
	if err != nil {
		return domain.Post{}, err
	}

	if _, err := s.locations.GetByID(ctx, in.LocationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, ErrLocationNotFound
		}
		return domain.Post{}, fmt.Errorf("get location: %w", err)
	}

	if !s.limiter.Allow(ctx, in.ProducerID) {
		return domain.Post{}, ErrRateLimited
	}

	post := domain.Post{
		ID:              uuid.NewString(),
		LocationID:      in.LocationID,
		ProducerID:      in.ProducerID,
		TargetAvatar:    in.TargetAvatar,
		Note:            note,
		SightingDate:    sighting,
		TimeGranularity: granularity,
		IsActive:        true,
		CreatedAt:       now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return domain.Post{}, fmt.Errorf("create post: %w", err)
	}
	s.logger.Info("post created",
		zap.String("post_id", post.ID),
		zap.String("location_id", post.LocationID),
		zap.Bool("has_sighting", sighting != nil),
	)
	return post, nil
}

func normalizeSighting(date *time.Time, granularity *domain.TimeGranularity, now time.Time) (*time.Time, *domain.TimeGranularity, error) {
	if date == nil && granularity == nil {
		return nil, nil, nil
	}
	if date == nil || granularity == nil {
		return nil, nil, ErrSightingPairing
	}
	if !granularity.IsValid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidGranularity, string(*granularity))
	}
	if res := temporal.ValidateSightingDate(date, now); !res.Valid {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidSightingDate, res.Message)
	}
	// El punto medio se toma en la zona horaria del cliente.
	normalized := temporal.DateWithGranularity(*date, *granularity).UTC()
	if normalized.After(now) {
		normalized = now.UTC()
	}
	g := *granularity
	return &normalized, &g, nil
}
