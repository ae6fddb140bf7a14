package savedfilters

// Config holds settings for the saved-filter store.
type Config struct {
	// Path of the SQLite database file. ":memory:" keeps the store
	// in-process, which the tests use.
	Path string `yaml:"path" env:"SAVEDFILTERS_PATH"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Path: "saved_filters.db",
	}
}

func (c *Config) WithPath(path string) *Config {
	c.Path = path
	return c
}
