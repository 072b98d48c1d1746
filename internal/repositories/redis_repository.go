package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/config"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

const SessionKeyPrefix = "session"

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

func NewRedisClient(ctx context.Context, cfg *config.RedisConnect) (*redis.Client, error) {

	redisURL := cfg.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.Username, cfg.Host, cfg.Port)))

	// Parse the Redis URL
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil
}

// redisCredentialRepository lets several terminals (a kiosk fleet, say) share
// one stored session per profile. Entries expire after ttl.
type redisCredentialRepository struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisCredentialRepo(client *redis.Client, profile string, ttl time.Duration) CredentialRepository {
	return &redisCredentialRepository{
		client: client,
		key:    Key(SessionKeyPrefix, profile),
		ttl:    ttl,
	}
}

func (r *redisCredentialRepository) Save(ctx context.Context, session *models.Session) error {

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session for key %s: %w", r.key, err)
	}

	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", r.key, err)
	}

	return nil
}

func (r *redisCredentialRepository) Load(ctx context.Context) (*models.Session, error) {

	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get key %s from redis: %w", r.key, err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session for key %s: %w", r.key, err)
	}

	return &session, nil
}

func (r *redisCredentialRepository) Delete(ctx context.Context) error {

	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", r.key, err)
	}

	return nil
}
