package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewRedisRejectsMalformedURL(t *testing.T) {
	r, err := NewRedis(context.Background(), "http://not-redis", zap.NewNop())

	assert.Nil(t, r)
	assert.ErrorContains(t, err, "invalid redis url")
}
