package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"postarchive/src/domain"
	"postarchive/src/domain/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ArchiveQueryRepository struct {
	pool *pgxpool.Pool
}

func NewArchiveQueryRepository(pool *pgxpool.Pool) *ArchiveQueryRepository {
	return &ArchiveQueryRepository{pool: pool}
}

// LoadPosts retorna os posts arquivados de um criador, na ordem de posição.
func (r *ArchiveQueryRepository) LoadPosts(ctx context.Context, creator string) ([]entities.Post, error) {
	query := `
		SELECT
			position, payload
		FROM
			archived_posts
		WHERE
			creator = $1
		ORDER BY
			position ASC`

	rows, err := r.pool.Query(ctx, query, creator)
	if err != nil {
		return nil, fmt.Errorf("ArchiveQueryRepository.LoadPosts - failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []entities.Post
	for rows.Next() {
		var (
			position int
			payload  []byte
		)
		if err := rows.Scan(&position, &payload); err != nil {
			return nil, fmt.Errorf("ArchiveQueryRepository.LoadPosts - failed to scan row: %w", err)
		}

		var post entities.Post
		if err := json.Unmarshal(payload, &post); err != nil {
			return nil, fmt.Errorf("ArchiveQueryRepository.LoadPosts - failed to decode post %d: %w", position, err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ArchiveQueryRepository.LoadPosts - rows error: %w", err)
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("ArchiveQueryRepository.LoadPosts - creator %s: %w", creator, domain.ErrArchiveNotFound)
	}

	return posts, nil
}

// ListCreators retorna os criadores que possuem posts arquivados.
func (r *ArchiveQueryRepository) ListCreators(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT creator FROM archived_posts ORDER BY creator`)
	if err != nil {
		return nil, fmt.Errorf("ArchiveQueryRepository.ListCreators - failed to query creators: %w", err)
	}
	defer rows.Close()

	creators := make([]string, 0)
	for rows.Next() {
		var creator string
		if err := rows.Scan(&creator); err != nil {
			return nil, fmt.Errorf("ArchiveQueryRepository.ListCreators - failed to scan row: %w", err)
		}
		creators = append(creators, creator)
	}

	return creators, rows.Err()
}
