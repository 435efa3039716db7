package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"postarchive/src/adapters/kafka/consumers"
	"postarchive/src/domain/entities"
	"postarchive/src/helper/logging"
	"postarchive/src/infra/kafka"
	"postarchive/src/repositories"
)

func main() {
	// Command line flags
	creator := flag.String("creator", "some_creator", "Creator the posts belong to")
	count := flag.Int("count", 50, "Number of posts to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed, fix it to get the same archive twice")
	maxComments := flag.Int("max-comments", 6, "Maximum number of top-level comments per post")
	maxReplies := flag.Int("max-replies", 3, "Maximum number of replies per comment")
	maxDepth := flag.Int("max-depth", 3, "Maximum reply depth")
	outDir := flag.String("out", "", "Write data.json into this directory")
	brokers := flag.String("brokers", "", "Kafka brokers (comma-separated). Produces ingest messages instead of a file")
	topic := flag.String("topic", "archive.posts", "Kafka topic for ingest messages")
	batchSize := flag.Int("batch-size", 100, "Number of messages per batch")
	flag.Parse()

	if *outDir == "" && *brokers == "" {
		log.Fatal("One of the 'out' or 'brokers' flags is required")
	}

	logger := logging.New(os.Stdout, "info")

	messages, err := newGenerator(*seed, *maxComments, *maxReplies, *maxDepth).Archive(*creator, *count)
	if err != nil {
		log.Fatalf("Failed to generate archive: %v", err)
	}

	log.Printf("Generated %d posts for %s (seed %d)", len(messages), *creator, *seed)

	if *outDir != "" {
		if err := writeFile(*outDir, messages); err != nil {
			log.Fatalf("Failed to write archive: %v", err)
		}
	}

	if *brokers != "" {
		if err := produce(logger, *brokers, *topic, *batchSize, messages); err != nil {
			log.Fatalf("Failed to produce archive: %v", err)
		}
	}
}

func writeFile(outDir string, messages []consumers.PostMessage) error {
	posts := make([]entities.Post, 0, len(messages))
	for _, msg := range messages {
		posts = append(posts, msg.Post)
	}

	content, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(outDir, repositories.DataFileName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return err
	}

	log.Printf("Archive written to %s", path)
	return nil
}

func produce(logger *slog.Logger, brokers string, topic string, batchSize int, messages []consumers.PostMessage) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	kafkaClient, err := kafka.NewKafkaProducer(logger, brokers)
	if err != nil {
		return err
	}
	defer kafkaClient.Close()

	batch := make([]kafka.Message, 0, batchSize)
	flush := func() error {
		if err := kafkaClient.Producer(batch, topic); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for _, msg := range messages {
		value, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to encode post %d: %w", msg.Position, err)
		}

		// Chave = criador: os posts de um criador vão para a mesma partição
		batch = append(batch, kafka.Message{Key: msg.Creator, Value: value})
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}
