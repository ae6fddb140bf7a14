package savedfilters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/recordatlas/browse/v1/filters"
)

// ErrFilterNotFound is returned when no saved filter has the requested
// name.
var ErrFilterNotFound = errors.New("savedfilters: filter not found")

// SavedFilter is one named filter set a user can recall later: the active
// predicates plus the search text, scoped to a namespace.
type SavedFilter struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Namespace  string              `json:"namespace"`
	Predicates []filters.Predicate `json:"predicates"`
	SearchText string              `json:"search_text,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// Store persists saved filters in a SQLite database. Safe for concurrent
// use; database/sql serializes access to the single connection.
type Store struct {
	conn *sql.DB
}

// OpenStore opens or creates the saved-filter database at the configured
// path.
func OpenStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	conn, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("savedfilters: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("savedfilters: set pragma: %w", err)
		}
	}

	store := &Store{conn: conn}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("savedfilters: initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saved_filters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			namespace TEXT NOT NULL,
			predicates TEXT NOT NULL,
			search_text TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE(namespace, name)
		);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save inserts or updates a filter set, keyed by (namespace, name).
// The returned filter carries the assigned ID and timestamps.
func (s *Store) Save(ctx context.Context, filter SavedFilter) (SavedFilter, error) {
	encoded, err := json.Marshal(filter.Predicates)
	if err != nil {
		return SavedFilter{}, fmt.Errorf("savedfilters: encode predicates: %w", err)
	}

	now := time.Now().UTC()
	if filter.ID == "" {
		filter.ID = uuid.NewString()
		filter.CreatedAt = now
	}
	filter.UpdatedAt = now

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO saved_filters (id, name, namespace, predicates, search_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(namespace, name) DO UPDATE SET
			predicates = excluded.predicates,
			search_text = excluded.search_text,
			updated_at = excluded.updated_at
	`, filter.ID, filter.Name, filter.Namespace, string(encoded), filter.SearchText,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return SavedFilter{}, fmt.Errorf("savedfilters: save %q: %w", filter.Name, err)
	}
	// Re-read so the caller sees the canonical row: an update by name
	// keeps the original ID and creation time.
	return s.Get(ctx, filter.Namespace, filter.Name)
}

// Get returns the saved filter with the given name in a namespace.
func (s *Store) Get(ctx context.Context, namespace, name string) (SavedFilter, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, name, namespace, predicates, search_text, created_at, updated_at
		FROM saved_filters WHERE namespace = ? AND name = ?
	`, namespace, name)
	filter, err := scanFilter(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedFilter{}, fmt.Errorf("%w: %q", ErrFilterNotFound, name)
	}
	return filter, err
}

// List returns every saved filter in a namespace, most recently updated
// first.
func (s *Store) List(ctx context.Context, namespace string) ([]SavedFilter, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, name, namespace, predicates, search_text, created_at, updated_at
		FROM saved_filters WHERE namespace = ?
		ORDER BY updated_at DESC
	`, namespace)
	if err != nil {
		return nil, fmt.Errorf("savedfilters: list: %w", err)
	}
	defer rows.Close()

	var out []SavedFilter
	for rows.Next() {
		filter, err := scanFilter(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, filter)
	}
	return out, rows.Err()
}

// Delete removes a saved filter by name.
func (s *Store) Delete(ctx context.Context, namespace, name string) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM saved_filters WHERE namespace = ? AND name = ?`, namespace, name)
	if err != nil {
		return fmt.Errorf("savedfilters: delete %q: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrFilterNotFound, name)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

func scanFilter(scan func(dest ...any) error) (SavedFilter, error) {
	var (
		filter    SavedFilter
		encoded   string
		createdAt string
		updatedAt string
	)
	if err := scan(&filter.ID, &filter.Name, &filter.Namespace, &encoded, &filter.SearchText, &createdAt, &updatedAt); err != nil {
		return SavedFilter{}, err
	}
	if err := json.Unmarshal([]byte(encoded), &filter.Predicates); err != nil {
		return SavedFilter{}, fmt.Errorf("savedfilters: decode predicates: %w", err)
	}
	var err error
	if filter.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return SavedFilter{}, fmt.Errorf("savedfilters: parse created_at: %w", err)
	}
	if filter.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return SavedFilter{}, fmt.Errorf("savedfilters: parse updated_at: %w", err)
	}
	return filter, nil
}
