package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postarchive/src/domain/entities"
	"postarchive/src/helper/env"
	"postarchive/src/helper/logging"
	"postarchive/src/infra/postgres"
	"postarchive/src/infra/redis"
	"postarchive/src/repositories"
	"postarchive/src/services/archive"
	"postarchive/src/services/graph"
	"postarchive/src/services/snapshot"
)

const (
	sourceFile     = "file"
	sourcePostgres = "postgres"
)

type config struct {
	dataDir    string
	creatorURL string
	creator    string
	source     string
	publish    bool
	depthLimit int
}

func main() {
	if err := env.Load(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	cfg := config{}

	// Command line flags
	flag.StringVar(&cfg.dataDir, "data-dir", ".", "Directory with data.json; the document is written there too")
	flag.StringVar(&cfg.creatorURL, "url", "", "Creator page URL, e.g. https://www.patreon.com/creator_name/ (required)")
	flag.StringVar(&cfg.creator, "creator", "", "Creator key in the archive store. Defaults to the last segment of -url")
	flag.StringVar(&cfg.source, "source", sourceFile, "Where posts come from: file or postgres")
	flag.BoolVar(&cfg.publish, "publish", env.GetBool("RENDER_PUBLISH", false), "Also publish the document as the creator's latest snapshot in redis. Defaults to RENDER_PUBLISH")
	flag.IntVar(&cfg.depthLimit, "depth-limit", 0, "Maximum reply depth. 0 renders every level")
	flag.Parse()

	logger := logging.New(os.Stderr, env.GetString("LOG_LEVEL", "warn"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, cfg, time.Now(), os.Stdout); err != nil {
		logger.Error("Render failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg config, now time.Time, stdout io.Writer) error {
	if cfg.creatorURL == "" {
		return errors.New("the 'url' flag is required")
	}
	if cfg.creator == "" {
		cfg.creator = archive.CreatorName(cfg.creatorURL)
	}

	fileRepository := repositories.NewArchiveFileRepository()

	posts, err := loadPosts(ctx, cfg, fileRepository)
	if err != nil {
		return err
	}

	archiveService := archive.NewArchiveService(logger, graph.NewGraphService(logger, cfg.depthLimit))

	document, err := archiveService.RenderDocument(posts, archive.Options{CreatorURL: cfg.creatorURL, Now: now})
	if err != nil {
		return err
	}

	path, err := fileRepository.SaveDocument(cfg.dataDir, archive.OutputFileName(now), document)
	if err != nil {
		return err
	}

	if cfg.publish {
		if err := publish(ctx, logger, cfg.creator, len(posts), document); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "file://%s\n", path)
	return nil
}

func loadPosts(ctx context.Context, cfg config, fileRepository *repositories.ArchiveFileRepository) ([]entities.Post, error) {
	switch cfg.source {
	case sourceFile:
		return fileRepository.LoadPosts(cfg.dataDir)
	case sourcePostgres:
		readWriteClient, err := newReadWriteClient()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer readWriteClient.Close()

		return repositories.NewArchiveQueryRepository(readWriteClient.GetReadPool()).LoadPosts(ctx, cfg.creator)
	default:
		return nil, fmt.Errorf("unknown source %q, use %s or %s", cfg.source, sourceFile, sourcePostgres)
	}
}

func publish(ctx context.Context, logger *slog.Logger, creator string, postCount int, document string) error {
	redisClient := redis.NewRedisClient(
		env.MustGetString("REDIS_HOSTS"),
		env.GetInt("REDIS_POOL_SIZE", 5),
		time.Duration(env.GetInt("SNAPSHOT_TTL_SECONDS", 7*24*3600))*time.Second,
	)
	defer redisClient.Close()

	snapshotService := snapshot.NewSnapshotService(logger, nil, repositories.NewSnapshotRepository(logger, redisClient), nil)

	published, err := snapshotService.Publish(ctx, creator, postCount, document)
	if err != nil {
		return err
	}

	logger.Info("Snapshot published", "creator", creator, "render_id", published.RenderID)
	return nil
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbReadHost := env.GetString("DB_READ_HOST")
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, 2)
}
