package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"postarchive/src/domain"
	"postarchive/src/helper/dates"
	"postarchive/src/infra/postgres"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArchiveWriteRepository struct {
	writePool *pgxpool.Pool
}

func NewArchiveWriteRepository(writePool *pgxpool.Pool) *ArchiveWriteRepository {
	return &ArchiveWriteRepository{writePool: writePool}
}

// UpsertPosts grava um lote de posts. A chave é (creator, position); um
// post já existente na mesma posição é substituído.
func (r *ArchiveWriteRepository) UpsertPosts(ctx context.Context, posts []domain.ArchivedPostDTO) error {
	if len(posts) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(posts))
	for _, archived := range posts {
		payload, err := json.Marshal(archived.Post)
		if err != nil {
			return fmt.Errorf("ArchiveWriteRepository.UpsertPosts - failed to encode post %s/%d: %w", archived.Creator, archived.Position, err)
		}

		var (
			title       *string
			publishedAt *time.Time
		)
		if archived.Post.Attributes != nil {
			title = &archived.Post.Attributes.Title
			if t, ok := dates.Parse(archived.Post.Attributes.PublishedAt); ok {
				publishedAt = &t
			}
		}

		rows = append(rows, []interface{}{
			archived.Creator,
			archived.Position,
			postgres.NewNullString(title),
			postgres.NewNullTime(publishedAt),
			payload,
		})
	}

	tx, err := r.writePool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ArchiveWriteRepository.UpsertPosts - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tempTableQuery := `CREATE TEMP TABLE temp_archived_posts (
		creator TEXT, position INT, title TEXT, published_at TIMESTAMPTZ, payload JSONB
	) ON COMMIT DROP;`
	if _, err := tx.Exec(ctx, tempTableQuery); err != nil {
		return fmt.Errorf("ArchiveWriteRepository.UpsertPosts - failed to create temp table: %w", err)
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"temp_archived_posts"},
		[]string{"creator", "position", "title", "published_at", "payload"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("ArchiveWriteRepository.UpsertPosts - failed to copy posts to temp table: %w", err)
	}

	// DISTINCT ON evita atualizar a mesma linha duas vezes no mesmo comando.
	query := `
		INSERT INTO
			archived_posts (creator, position, title, published_at, payload)
		SELECT DISTINCT ON (creator, position)
			creator, position, title, published_at, payload
		FROM
			temp_archived_posts
		ORDER BY
			creator, position
		ON CONFLICT (creator, position) DO UPDATE SET
			title = excluded.title,
			published_at = excluded.published_at,
			payload = excluded.payload,
			updated_at = NOW()
		WHERE
			archived_posts.payload IS DISTINCT FROM excluded.payload`

	if _, err := tx.Exec(ctx, query); err != nil {
		return fmt.Errorf("ArchiveWriteRepository.UpsertPosts - failed to upsert posts: %w", err)
	}

	return tx.Commit(ctx)
}
