package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/vidcert/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedisClient connects to the quiz session store. It returns a nil client
// when REDIS_ADDR is empty so callers can fall back to process memory.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR is not set. Generated quizzes will be kept in process memory.")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("Redis connection established")
	return client, nil
}
