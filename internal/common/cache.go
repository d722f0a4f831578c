package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
	ttl time.Duration
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{Cache: cache.New(expirationTime, cleanupTime), ttl: expirationTime}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

// SetUntil stores value for the default expiration but never past deadline.
// Nothing is stored when deadline has already passed.
func (c *Cache) SetUntil(key string, value interface{}, deadline time.Time) {
	d := time.Until(deadline)
	if d <= 0 {
		return
	}

	if c.ttl <= 0 || d < c.ttl {
		c.Cache.Set(key, value, d)
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// DeleteFunc removes every unexpired item for which fn returns true.
func (c *Cache) DeleteFunc(fn func(key string, value interface{}) bool) {
	for key, item := range c.Cache.Items() {
		if fn(key, item.Object) {
			c.Cache.Delete(key)
		}
	}
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyUserByAccessToken(hash []byte) string {
	return "user_by_access_token:" + string(hash)
}
