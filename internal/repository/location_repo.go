package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backtrack/internal/domain"
)

type LocationRepository interface {
	GetByID(ctx context.Context, id string) (domain.Location, error)
}

type PgLocationRepository struct {
	pool *pgxpool.Pool
}

func NewPgLocationRepository(pool *pgxpool.Pool) *PgLocationRepository {
	return &PgLocationRepository{pool: pool}
}

func (r *PgLocationRepository) GetByID(ctx context.Context, id string) (domain.Location, error) {
	const query = `
		SELECT id, name, address, latitude, longitude, created_at
		FROM locations
		WHERE id = $1
	`
	var loc domain.Location
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&loc.ID,
		&loc.Name,
		&loc.Address,
		&loc.Latitude,
		&loc.Longitude,
		&loc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Location{}, err
	}
	return loc, err
}
