package redis

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client     redis.UniversalClient
	defaultTTL time.Duration
}

// NewRedisClient aceita uma lista de endereços separada por vírgula. Com um
// único endereço o cliente é standalone; com vários, cluster.
func NewRedisClient(addrs string, poolSize int, defaultTTL time.Duration) *RedisClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: strings.Split(addrs, ","),

		PoolSize:     poolSize,
		MinIdleConns: 2,

		MaxRedirects: 3,

		// Documentos renderizados podem ter alguns MB
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

// SetWithRegistry grava o valor num hash com TTL e registra a chave nos
// sets de registro informados.
func (rc *RedisClient) SetWithRegistry(ctx context.Context, key string, value string, registryKeys []string) error {
	pipe := rc.client.Pipeline()

	fields := map[string]interface{}{
		"data":      value,
		"stored_at": time.Now().Unix(),
	}
	pipe.HSet(ctx, key, fields)
	if rc.defaultTTL > 0 {
		pipe.Expire(ctx, key, rc.defaultTTL)
	}

	for _, registryKey := range registryKeys {
		pipe.SAdd(ctx, registryKey, key)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// GetKey retorna (valor, encontrado, erro). Cache miss não é erro.
func (rc *RedisClient) GetKey(ctx context.Context, key string) (string, bool, error) {
	result := rc.client.HGet(ctx, key, "data")

	if result.Err() == redis.Nil {
		return "", false, nil
	}
	if result.Err() != nil {
		return "", false, result.Err()
	}

	return result.Val(), true, nil
}

func (rc *RedisClient) SetMembers(ctx context.Context, registryKey string) ([]string, error) {
	return rc.client.SMembers(ctx, registryKey).Result()
}

func (rc *RedisClient) RemoveFromRegistry(ctx context.Context, registryKey string, members ...string) error {
	if len(members) == 0 {
		return nil
	}

	values := make([]interface{}, len(members))
	for i, member := range members {
		values[i] = member
	}
	return rc.client.SRem(ctx, registryKey, values...).Err()
}

func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
