package cache

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestRateCache(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := NewRateCache(time.Minute, logger)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, ok := c.Get("ethereum_usd")
	assert.False(t, ok)

	c.Set("ethereum_usd", 3100.5)
	rate, ok := c.Get("ethereum_usd")
	assert.True(t, ok)
	assert.Equal(t, 3100.5, rate)

	now = now.Add(61 * time.Second)
	_, ok = c.Get("ethereum_usd")
	assert.False(t, ok, "stale rate must not be served")
}

func TestRateCache_DefaultTTL(t *testing.T) {
	logger, _ := test.NewNullLogger()
	assert.Equal(t, DefaultTTL, NewRateCache(0, logger).ttl)
}
