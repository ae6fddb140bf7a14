package resultcache

import "time"

// Config holds sizing and expiry settings for the result cache.
//
// Example (builder style):
//
//	cfg := resultcache.DefaultConfig().
//	    WithTTL(2 * time.Minute).
//	    WithCapacity(512)
type Config struct {
	// Maximum number of cached pages before the least recently used entry
	// is evicted.
	Capacity int `yaml:"capacity" env:"RESULTCACHE_CAPACITY"`

	// How long a cached page stays valid. Expired entries are treated as
	// misses.
	TTL time.Duration `yaml:"ttl" env:"RESULTCACHE_TTL"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Capacity: 256,
		TTL:      5 * time.Minute,
	}
}

func (c *Config) WithCapacity(n int) *Config {
	c.Capacity = n
	return c
}

func (c *Config) WithTTL(d time.Duration) *Config {
	c.TTL = d
	return c
}
