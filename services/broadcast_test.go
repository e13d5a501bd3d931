package services

import (
	"context"
	"path/filepath"
	"testing"

	"laptop-price-api/config"
	"laptop-price-api/logger"
	"laptop-price-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifactsConfig(pipeline, reference string) config.ArtifactsConfig {
	dir := filepath.Join("..", "inference", "testdata")
	return config.ArtifactsConfig{
		PipelinePath:  filepath.Join(dir, pipeline),
		ReferencePath: filepath.Join(dir, reference),
	}
}

func TestBroadcasterDisabled(t *testing.T) {
	b, err := NewPredictionBroadcaster(config.RedisConfig{Channel: "test"}, logger.NewNop())
	require.NoError(t, err)

	assert.False(t, b.Available())
	assert.NoError(t, b.Publish(context.Background(), models.PredictionEvent{PredictedPrice: 1}))

	_, _, err = b.Subscribe(context.Background())
	assert.ErrorIs(t, err, ErrFeedUnavailable)
	assert.NoError(t, b.Close())
}

func TestBroadcasterBadURL(t *testing.T) {
	b, err := NewPredictionBroadcaster(config.RedisConfig{URL: "http://not-redis", Channel: "test"}, logger.NewNop())
	require.Error(t, err)
	require.NotNil(t, b)
	assert.False(t, b.Available())
}

func TestBroadcasterUnreachable(t *testing.T) {
	cfg := config.RedisConfig{URL: "redis://127.0.0.1:1/0", Channel: "test"}
	b, err := newPredictionBroadcaster(cfg, logger.NewNop(), 2, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")

	assert.False(t, b.Available())
	assert.NoError(t, b.Publish(context.Background(), models.PredictionEvent{}))
}
