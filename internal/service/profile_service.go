package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"backtrack/internal/domain"
	"backtrack/internal/repository"
)

// ProfileService gestiona el avatar con el que el usuario se describe.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{logger: logger, profiles: profiles}
}

// GetAvatar devuelve ErrAvatarNotFound si el usuario no guardó avatar.
func (s *ProfileService) GetAvatar(ctx context.Context, userID string) (domain.AvatarConfig, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AvatarConfig{}, ErrAvatarNotFound
	}
	if err != nil {
		return domain.AvatarConfig{}, fmt.Errorf("get profile: %w", err)
	}
	if profile.OwnAvatar == nil {
		return domain.AvatarConfig{}, ErrAvatarNotFound
	}
	return *profile.OwnAvatar, nil
}

// SaveAvatar valida el avatar contra las enumeraciones antes de guardarlo.
func (s *ProfileService) SaveAvatar(ctx context.Context, userID string, avatar domain.AvatarConfig) (domain.Profile, error) {
	if err := avatar.Validate(); err != nil {
		return domain.Profile{}, err
	}
	profile, err := s.profiles.UpsertAvatar(ctx, userID, avatar)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("save avatar: %w", err)
	}
	s.logger.Info("avatar saved", zap.String("user_id", userID))
	return profile, nil
}
