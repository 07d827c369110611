package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backtrack/internal/domain"
)

// ProfileRepository persiste el avatar propio de cada usuario.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
	UpsertAvatar(ctx context.Context, userID string, avatar domain.AvatarConfig) (domain.Profile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// GetByUserID devuelve pgx.ErrNoRows si el usuario nunca guardó perfil.
func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	const query = `
		SELECT user_id, display_name, own_avatar, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var (
		profile domain.Profile
		raw     []byte
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&raw,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}
	if err != nil {
		return domain.Profile{}, err
	}
	if len(raw) > 0 {
		var avatar domain.AvatarConfig
		if err := json.Unmarshal(raw, &avatar); err != nil {
			return domain.Profile{}, err
		}
		profile.OwnAvatar = &avatar
	}
	return profile, nil
}

func (r *PgProfileRepository) UpsertAvatar(ctx context.Context, userID string, avatar domain.AvatarConfig) (domain.Profile, error) {
	const query = `
		INSERT INTO profiles (user_id, own_avatar, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET own_avatar = EXCLUDED.own_avatar, updated_at = EXCLUDED.updated_at
		RETURNING display_name
	`
	raw, err := json.Marshal(avatar)
	if err != nil {
		return domain.Profile{}, err
	}
	profile := domain.Profile{
		UserID:    userID,
		OwnAvatar: &avatar,
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.pool.QueryRow(ctx, query, userID, raw, profile.UpdatedAt).Scan(&profile.DisplayName); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}
