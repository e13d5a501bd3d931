package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"laptop-price-api/config"
	"laptop-price-api/logger"
	"laptop-price-api/models"

	"github.com/redis/go-redis/v9"
)

var ErrFeedUnavailable = errors.New("live prediction feed is not configured")

const (
	pingAttempts = 10
	pingInterval = 2 * time.Second
)

// PredictionBroadcaster publishes prediction events on a Redis channel.
// Without a reachable Redis every method is a no-op.
type PredictionBroadcaster struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

// NewPredictionBroadcaster returns a usable broadcaster even when it also
// returns an error: an unreachable Redis leaves it disabled.
func NewPredictionBroadcaster(cfg config.RedisConfig, log *logger.Logger) (*PredictionBroadcaster, error) {
	return newPredictionBroadcaster(cfg, log, pingAttempts, pingInterval)
}

func newPredictionBroadcaster(cfg config.RedisConfig, log *logger.Logger, attempts int, wait time.Duration) (*PredictionBroadcaster, error) {
	b := &PredictionBroadcaster{channel: cfg.Channel, log: log}
	if cfg.URL == "" {
		return b, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return b, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	// Retry covers the broker starting alongside the API
	var lastErr error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			b.client = client
			return b, nil
		}
		log.Warn("redis ping failed", "attempt", i+1, "of", attempts, "error", lastErr)
		if i < attempts-1 {
			time.Sleep(wait)
		}
	}

	_ = client.Close()
	return b, fmt.Errorf("redis ping failed after %d attempts: %w", attempts, lastErr)
}

func (b *PredictionBroadcaster) Available() bool {
	return b.client != nil
}

func (b *PredictionBroadcaster) Publish(ctx context.Context, event models.PredictionEvent) error {
	if b.client == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, data).Err()
}

// Subscribe relays raw event payloads until ctx ends or the returned close
// function is called.
func (b *PredictionBroadcaster) Subscribe(ctx context.Context) (<-chan string, func() error, error) {
	if b.client == nil {
		return nil, nil, ErrFeedUnavailable
	}

	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, pubsub.Close, nil
}

func (b *PredictionBroadcaster) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}
