package browser

import "time"

// Config holds the per-store settings of one browsing session.
//
// Example (builder style):
//
//	cfg := browser.DefaultConfig("conn-7", "documents").
//	    WithPageSize(100).
//	    WithSearchDebounce(150 * time.Millisecond)
type Config struct {
	// ConnectionID identifies the backend connection; part of every cache
	// fingerprint.
	ConnectionID string `yaml:"connection_id" env:"BROWSER_CONNECTION_ID"`

	// Namespace is the collection the store browses.
	Namespace string `yaml:"namespace" env:"BROWSER_NAMESPACE"`

	// PageSize is the number of rows per page. Defaults to 50.
	PageSize int `yaml:"page_size" env:"BROWSER_PAGE_SIZE"`

	// SearchDebounce is how long search text edits are coalesced before
	// they take effect. Defaults to 300ms.
	SearchDebounce time.Duration `yaml:"search_debounce" env:"BROWSER_SEARCH_DEBOUNCE"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig(connectionID, namespace string) *Config {
	return &Config{
		ConnectionID:   connectionID,
		Namespace:      namespace,
		PageSize:       50,
		SearchDebounce: 300 * time.Millisecond,
	}
}

func (c *Config) WithPageSize(n int) *Config {
	c.PageSize = n
	return c
}

func (c *Config) WithSearchDebounce(d time.Duration) *Config {
	c.SearchDebounce = d
	return c
}
