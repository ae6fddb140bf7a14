package resultcache

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/recordatlas/browse/v1/filters"
	"github.com/recordatlas/browse/v1/query"
)

// Fingerprint identifies one cacheable page: the connection and namespace
// it was fetched from, the full query-shaping state, and the page address.
// Two fingerprints hash equal exactly when the backend would serve the
// same bytes for both.
type Fingerprint struct {
	ConnectionID string
	Namespace    string
	Config       query.QueryConfig
	Page         int
	PageSize     int
}

// predicateView is the semantic content of a predicate. The random
// predicate ID and the display string are excluded so that re-creating an
// identical predicate still hits the cache.
type predicateView struct {
	Attribute string           `json:"attribute"`
	Operator  filters.Operator `json:"operator"`
	Value     filters.Value    `json:"value"`
}

// fingerprintDoc is the canonical serialized form. Struct field order
// fixes the key order, keeping the encoding deterministic.
type fingerprintDoc struct {
	ConnectionID string            `json:"connection_id"`
	Namespace    string            `json:"namespace"`
	Predicates   []predicateView   `json:"predicates,omitempty"`
	Config       query.QueryConfig `json:"config"`
	Page         int               `json:"page"`
	PageSize     int               `json:"page_size"`
}

// Key renders the fingerprint as a fixed-width cache key.
func (f Fingerprint) Key() string {
	doc := fingerprintDoc{
		ConnectionID: f.ConnectionID,
		Namespace:    f.Namespace,
		Config:       f.Config,
		Page:         f.Page,
		PageSize:     f.PageSize,
	}
	for _, p := range f.Config.Predicates {
		doc.Predicates = append(doc.Predicates, predicateView{
			Attribute: p.Attribute,
			Operator:  p.Operator,
			Value:     p.Value,
		})
	}
	// Predicates are hashed through the reduced view only.
	doc.Config.Predicates = nil

	data, err := json.Marshal(doc)
	if err != nil {
		// Every field is a plain value; marshalling cannot fail in
		// practice. Fall back to an uncacheable key.
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
