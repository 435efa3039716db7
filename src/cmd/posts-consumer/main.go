package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postarchive/src/adapters/kafka/consumers"
	"postarchive/src/helper/env"
	"postarchive/src/helper/logging"
	"postarchive/src/infra/kafka"
	"postarchive/src/infra/postgres"
	"postarchive/src/repositories"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting Posts Consumer with Uber Fx...")

	if err := env.Load(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newKafkaClient,
			newArchiveWriteRepository,
			newPostsConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	// Start the application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down posts consumer...")

	// Stop the application
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("Posts consumer shutdown complete")
}

func newLogger() *slog.Logger {
	return logging.New(os.Stdout, env.GetString("LOG_LEVEL", "info"))
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	// O consumer só escreve
	return postgres.NewReadWriteClient("", dbWriteHost, "", dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newKafkaClient(logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.MustGetString("KAFKA_POSTS_CONSUMER_GROUP_ID")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 100)

	return kafka.NewKafkaClient(logger, brokers, groupID, batchSize)
}

func newArchiveWriteRepository(readWriteClient *postgres.ReadWriteClient) *repositories.ArchiveWriteRepository {
	return repositories.NewArchiveWriteRepository(readWriteClient.GetWritePool())
}

func newPostsConsumer(
	logger *slog.Logger,
	archiveWriteRepository *repositories.ArchiveWriteRepository,
) *consumers.PostsConsumer {
	return consumers.NewPostsConsumer(logger, archiveWriteRepository)
}

func startConsumer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	readWriteClient *postgres.ReadWriteClient,
	postsConsumer *consumers.PostsConsumer,
) {
	// O ctx do OnStart morre junto com o start; o consumer precisa do seu
	consumerCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			topic := env.GetString("KAFKA_POSTS_TOPIC", "archive.posts")
			logger.Info("Starting posts consumer", "topic", topic)

			// Start consumer in background
			go func() {
				if err := postsConsumer.Start(consumerCtx, kafkaClient, topic); err != nil {
					logger.Error("Consumer failed", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()

			logger.Info("Shutting down Kafka client...")
			if err := kafkaClient.Close(); err != nil {
				logger.Error("Failed to close Kafka client", "error", err)
				return err
			}
			readWriteClient.Close()
			logger.Info("Kafka client shut down gracefully")
			return nil
		},
	})
}
