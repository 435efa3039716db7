package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"postarchive/src/domain"
	"postarchive/src/domain/entities"
	"postarchive/src/infra/kafka"
	"sort"
	"strings"
)

// PostMessage representa o schema da mensagem Kafka de ingestão de posts
type PostMessage struct {
	Creator  string        `json:"creator"`
	Position int           `json:"position"`
	Post     entities.Post `json:"post"`
}

type ArchiveWriter interface {
	UpsertPosts(ctx context.Context, posts []domain.ArchivedPostDTO) error
}

type PostsConsumer struct {
	logger        *slog.Logger
	archiveWriter ArchiveWriter
}

func NewPostsConsumer(logger *slog.Logger, archiveWriter ArchiveWriter) *PostsConsumer {
	return &PostsConsumer{
		logger:        logger,
		archiveWriter: archiveWriter,
	}
}

func (c *PostsConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting posts consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.HandleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

func (c *PostsConsumer) HandleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Info("Processing posts messages batch", "count", len(messages))

	posts, err := ParsePostMessages(messages)
	if err != nil {
		c.logger.Error("Invalid posts batch", "error", err, "count", len(messages))
		return err
	}

	if err := c.archiveWriter.UpsertPosts(ctx, posts); err != nil {
		c.logger.Error("Failed to upsert posts", "error", err, "posts", len(posts))
		return fmt.Errorf("PostsConsumer.HandleMessages - failed to upsert posts: %w", err)
	}

	c.logger.Info("Successfully processed posts batch",
		"messages", len(messages),
		"posts", len(posts))

	return nil
}

// ParsePostMessages decodifica e valida o lote. Mensagens para a mesma
// posição do mesmo criador são deduplicadas, ficando a última do lote.
func ParsePostMessages(messages []kafka.Message) ([]domain.ArchivedPostDTO, error) {
	type postKey struct {
		creator  string
		position int
	}

	latest := make(map[postKey]domain.ArchivedPostDTO, len(messages))

	for _, msg := range messages {
		var postMsg PostMessage
		if err := json.Unmarshal(msg.Value, &postMsg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal post message with key %s: %w", msg.Key, err)
		}

		creator := strings.TrimSpace(postMsg.Creator)
		if creator == "" {
			return nil, fmt.Errorf("invalid post message with key %s: missing creator", msg.Key)
		}

		if postMsg.Position < 0 {
			return nil, fmt.Errorf("invalid post message with key %s: negative position %d", msg.Key, postMsg.Position)
		}

		if postMsg.Post.Attributes == nil {
			return nil, fmt.Errorf("invalid post message with key %s: %w", msg.Key, domain.ErrMalformedPost)
		}

		latest[postKey{creator: creator, position: postMsg.Position}] = domain.ArchivedPostDTO{
			Creator:  creator,
			Position: postMsg.Position,
			Post:     postMsg.Post,
		}
	}

	posts := make([]domain.ArchivedPostDTO, 0, len(latest))
	for _, post := range latest {
		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Creator != posts[j].Creator {
			return posts[i].Creator < posts[j].Creator
		}
		return posts[i].Position < posts[j].Position
	})

	return posts, nil
}
