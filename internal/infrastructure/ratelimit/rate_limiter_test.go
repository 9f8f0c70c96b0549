package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowExhaustsBurstPerKey(t *testing.T) {
	rl := NewRateLimiter(2)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, wait := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok)
}

func TestAllowRefillsOverTime(t *testing.T) {
	rl := NewRateLimiter(60)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		ok, _ := rl.Allow("ip")
		assert.True(t, ok)
	}
	ok, _ := rl.Allow("ip")
	assert.False(t, ok)

	now = now.Add(2 * time.Second)
	ok, _ = rl.Allow("ip")
	assert.True(t, ok)
}

func TestCleanupDropsIdleKeys(t *testing.T) {
	rl := NewRateLimiter(10)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(2 * time.Hour)
	rl.Allow("new")

	rl.Cleanup(time.Hour)
	assert.Equal(t, 1, rl.size())
}
