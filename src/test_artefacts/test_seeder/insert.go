package test_seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"postarchive/src/domain"
)

// InsertArchivedPost grava um post direto na tabela, sem passar pelo upsert.
func (ts TestSeeder) InsertArchivedPost(ctx context.Context, archived domain.ArchivedPostDTO) {
	payload, err := json.Marshal(archived.Post)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertArchivedPost failed to encode post: %v", err))
	}

	query := `
		INSERT INTO archived_posts (creator, position, title, payload)
		VALUES ($1, $2, $3, $4)`

	var title *string
	if archived.Post.Attributes != nil {
		title = &archived.Post.Attributes.Title
	}

	if _, err := ts.pool.Exec(ctx, query, archived.Creator, archived.Position, title, payload); err != nil {
		panic(fmt.Sprintf("Seeder.InsertArchivedPost failed: %v", err))
	}
}
