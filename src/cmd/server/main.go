package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	archivehttp "postarchive/src/adapters/http"
	"postarchive/src/helper/env"
	"postarchive/src/helper/logging"
	"postarchive/src/infra/postgres"
	"postarchive/src/infra/redis"
	"postarchive/src/repositories"
	"postarchive/src/services/archive"
	"postarchive/src/services/graph"
	"postarchive/src/services/snapshot"

	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting archive server with Uber Fx...")

	if err := env.Load(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newRedisClient,
			newArchiveQueryRepository,
			newSnapshotRepository,
			newGraphService,
			newArchiveService,
			newSnapshotService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
}

func newLogger() *slog.Logger {
	return logging.New(os.Stdout, env.GetString("LOG_LEVEL", "info"))
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbReadHost := env.GetString("DB_READ_HOST")
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newRedisClient() *redis.RedisClient {
	redisHosts := env.MustGetString("REDIS_HOSTS")
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	snapshotTTLSeconds := env.GetInt("SNAPSHOT_TTL_SECONDS", 7*24*3600)
	snapshotTTL := time.Duration(snapshotTTLSeconds) * time.Second

	return redis.NewRedisClient(redisHosts, redisPoolSize, snapshotTTL)
}

func newArchiveQueryRepository(readWriteClient *postgres.ReadWriteClient) *repositories.ArchiveQueryRepository {
	return repositories.NewArchiveQueryRepository(readWriteClient.GetReadPool())
}

func newSnapshotRepository(logger *slog.Logger, redisClient *redis.RedisClient) *repositories.SnapshotRepository {
	return repositories.NewSnapshotRepository(logger, redisClient)
}

func newGraphService(logger *slog.Logger) *graph.GraphService {
	return graph.NewGraphService(logger, env.GetInt("COMMENT_DEPTH_LIMIT", 0))
}

func newArchiveService(logger *slog.Logger, graphService *graph.GraphService) *archive.ArchiveService {
	return archive.NewArchiveService(logger, graphService)
}

func newSnapshotService(
	logger *slog.Logger,
	archiveQueryRepository *repositories.ArchiveQueryRepository,
	snapshotRepository *repositories.SnapshotRepository,
	archiveService *archive.ArchiveService,
) *snapshot.SnapshotService {
	return snapshot.NewSnapshotService(logger, archiveQueryRepository, snapshotRepository, archiveService)
}

func newServer(
	logger *slog.Logger,
	snapshotService *snapshot.SnapshotService,
	readWriteClient *postgres.ReadWriteClient,
	redisClient *redis.RedisClient,
) *archivehttp.Server {

	port := 8888 // default value
	if portStr := os.Getenv("SERVER_ADDR"); portStr != "" {
		if val, err := strconv.Atoi(portStr); err == nil {
			port = val
		}
	}

	return archivehttp.NewServer(logger, port, snapshotService, readWriteClient, redisClient)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger *slog.Logger,
	srv *archivehttp.Server,
	readWriteClient *postgres.ReadWriteClient,
	redisClient *redis.RedisClient,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					logger.Error("Server failed", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server forced to shutdown", "error", err)
				return err
			}

			readWriteClient.Close()
			if err := redisClient.Close(); err != nil {
				logger.Error("Failed to close redis client", "error", err)
			}

			logger.Info("Server exited gracefully")
			return nil
		},
	})
}
