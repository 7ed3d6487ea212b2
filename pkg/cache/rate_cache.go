package cache

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultTTL = 10 * time.Minute

type CachedRate struct {
	Rate      float64
	Timestamp time.Time
}

// RateCache курсы монет к фиату с ограниченным сроком жизни
type RateCache struct {
	mu    sync.Mutex
	rates map[string]CachedRate
	ttl   time.Duration
	now   func() time.Time
	log   logrus.FieldLogger
}

func NewRateCache(ttl time.Duration, log logrus.FieldLogger) *RateCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RateCache{
		rates: make(map[string]CachedRate),
		ttl:   ttl,
		now:   time.Now,
		log:   log,
	}
}

// Get возвращает курс из кэша или false, если его нет или он устарел
func (c *RateCache) Get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rateData, ok := c.rates[key]
	if !ok {
		return 0, false
	}

	if c.now().Sub(rateData.Timestamp) > c.ttl {
		delete(c.rates, key)
		return 0, false
	}

	c.log.Debugf("Курс взят из кэша для %s", key)
	return rateData.Rate, true
}

// Set сохраняет курс в кэш
func (c *RateCache) Set(key string, rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rates[key] = CachedRate{
		Rate:      rate,
		Timestamp: c.now(),
	}

	c.log.Debugf("Курс сохранён в кэш для %s", key)
}
