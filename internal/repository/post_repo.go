package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backtrack/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var postColumns = []string{
	"id",
	"location_id",
	"producer_id",
	"target_avatar",
	"note",
	"sighting_date",
	"time_granularity",
	"is_active",
	"created_at",
}

// PostRepository define el contrato de persistencia para posts.
type PostRepository interface {
	Create(ctx context.Context, post domain.Post) error
	ListActiveByLocation(ctx context.Context, locationID string, cutoff *time.Time, limit int) ([]domain.Post, error)
}

// PgPostRepository implementa PostRepository usando pgxpool.
type PgPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

func (r *PgPostRepository) Create(ctx context.Context, post domain.Post) error {
	avatar, err := json.Marshal(post.TargetAvatar)
	if err != nil {
		return err
	}
	var granularity *string
	if post.TimeGranularity != nil {
		g := string(*post.TimeGranularity)
		granularity = &g
	}

	query, args, err := psql.Insert("posts").
		Columns(postColumns...).
		Values(
			post.ID,
			post.LocationID,
			post.ProducerID,
			avatar,
			post.Note,
			post.SightingDate,
			granularity,
			post.IsActive,
			post.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert post: %w", err)
	}
	_, err = r.pool.Exec(ctx, query, args...)
	return err
}

// ListActiveByLocation devuelve los posts activos de una ubicación.
// Con cutoff solo entran posts con sighting_date >= cutoff; sin cutoff también los que no tienen fecha.
func (r *PgPostRepository) ListActiveByLocation(ctx context.Context, locationID string, cutoff *time.Time, limit int) ([]domain.Post, error) {
	query, args, err := buildListByLocationQuery(locationID, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("build list posts: %w", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func buildListByLocationQuery(locationID string, cutoff *time.Time, limit int) (string, []interface{}, error) {
	builder := psql.Select(postColumns...).
		From("posts").
		Where(sq.Eq{"location_id": locationID}).
		Where(sq.Eq{"is_active": true}).
		OrderBy("created_at DESC")
	if cutoff != nil {
		builder = builder.Where(sq.GtOrEq{"sighting_date": *cutoff})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return builder.ToSql()
}

func scanPost(rows pgx.Rows) (domain.Post, error) {
	var (
		post        domain.Post
		avatar      []byte
		granularity *string
	)
	if err := rows.Scan(
		&post.ID,
		&post.LocationID,
		&post.ProducerID,
		&avatar,
		&post.Note,
		&post.SightingDate,
		&granularity,
		&post.IsActive,
		&post.CreatedAt,
	); err != nil {
		return domain.Post{}, err
	}
	if err := json.Unmarshal(avatar, &post.TargetAvatar); err != nil {
		return domain.Post{}, fmt.Errorf("decode target avatar: %w", err)
	}
	if granularity != nil {
		g := domain.TimeGranularity(*granularity)
		post.TimeGranularity = &g
	}
	return post, nil
}
