package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"postarchive/src/domain"
	"postarchive/src/infra/redis"
	"sort"
	"strings"
)

const (
	snapshotKeyPrefix   = "archive:snapshot:"
	snapshotRegistryKey = "archive:snapshots"
)

// SnapshotRepository publica o último documento renderizado de cada
// criador. Um snapshot novo substitui o anterior.
type SnapshotRepository struct {
	logger      *slog.Logger
	redisClient *redis.RedisClient
}

func NewSnapshotRepository(logger *slog.Logger, redisClient *redis.RedisClient) *SnapshotRepository {
	return &SnapshotRepository{
		logger:      logger,
		redisClient: redisClient,
	}
}

func SnapshotKey(creator string) string {
	return snapshotKeyPrefix + creator
}

func (r *SnapshotRepository) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("SnapshotRepository.Publish - failed to encode snapshot: %w", err)
	}

	if err := r.redisClient.SetWithRegistry(ctx, SnapshotKey(snapshot.Creator), string(data), []string{snapshotRegistryKey}); err != nil {
		return fmt.Errorf("SnapshotRepository.Publish - failed to store snapshot for %s: %w", snapshot.Creator, err)
	}

	r.logger.Info("Snapshot published",
		"creator", snapshot.Creator,
		"render_id", snapshot.RenderID,
		"posts", snapshot.PostCount,
		"bytes", len(snapshot.Document))

	return nil
}

func (r *SnapshotRepository) Latest(ctx context.Context, creator string) (*domain.Snapshot, error) {
	data, found, err := r.redisClient.GetKey(ctx, SnapshotKey(creator))
	if err != nil {
		return nil, fmt.Errorf("SnapshotRepository.Latest - failed to read snapshot for %s: %w", creator, err)
	}
	if !found {
		return nil, fmt.Errorf("SnapshotRepository.Latest - creator %s: %w", creator, domain.ErrSnapshotNotFound)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("SnapshotRepository.Latest - failed to decode snapshot for %s: %w", creator, err)
	}

	return &snapshot, nil
}

// ListCreators retorna os criadores com snapshot publicado. Entradas do
// registro cujo snapshot já expirou são removidas.
func (r *SnapshotRepository) ListCreators(ctx context.Context) ([]string, error) {
	keys, err := r.redisClient.SetMembers(ctx, snapshotRegistryKey)
	if err != nil {
		return nil, fmt.Errorf("SnapshotRepository.ListCreators - failed to read registry: %w", err)
	}

	creators := make([]string, 0, len(keys))
	var expired []string
	for _, key := range keys {
		if _, found, err := r.redisClient.GetKey(ctx, key); err == nil && !found {
			expired = append(expired, key)
			continue
		}
		creators = append(creators, strings.TrimPrefix(key, snapshotKeyPrefix))
	}

	if err := r.redisClient.RemoveFromRegistry(ctx, snapshotRegistryKey, expired...); err != nil {
		r.logger.Warn("Failed to prune snapshot registry", "error", err, "expired", len(expired))
	}

	sort.Strings(creators)
	return creators, nil
}
