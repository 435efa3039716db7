package test_seeder

import (
	"context"
	"fmt"
	"time"
)

// ArchivedPostRow é a linha crua de archived_posts.
type ArchivedPostRow struct {
	Creator     string
	Position    int
	Title       *string
	PublishedAt *time.Time
	Payload     []byte
	UpdatedAt   time.Time
}

// SelectArchivedPosts retorna as linhas de um criador, na ordem de posição.
func (ts TestSeeder) SelectArchivedPosts(ctx context.Context, creator string) []ArchivedPostRow {
	query := `
		SELECT creator, position, title, published_at, payload, updated_at
		FROM archived_posts
		WHERE creator = $1
		ORDER BY position`

	rows, err := ts.pool.Query(ctx, query, creator)
	if err != nil {
		panic(fmt.Sprintf("Seeder.SelectArchivedPosts failed: %v", err))
	}
	defer rows.Close()

	result := make([]ArchivedPostRow, 0)
	for rows.Next() {
		var row ArchivedPostRow
		if err := rows.Scan(&row.Creator, &row.Position, &row.Title, &row.PublishedAt, &row.Payload, &row.UpdatedAt); err != nil {
			panic(fmt.Sprintf("Seeder.SelectArchivedPosts failed to scan: %v", err))
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		panic(fmt.Sprintf("Seeder.SelectArchivedPosts rows error: %v", err))
	}

	return result
}
