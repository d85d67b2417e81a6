package memo

// Option applies a configuration option to the in-memory cache.
type Option func(*config)

type config struct {
	maxSize int
}

// WithMaxSize sets how many entries the cache keeps before evicting the
// oldest. A value <= 0 disables caching.
func WithMaxSize(maxSize int) Option {
	return func(c *config) {
		c.maxSize = maxSize
	}
}
