// Package savedfilters persists named filter sets so a user can recall a
// previously assembled view of a namespace. Each saved filter captures the
// predicate list and search text under a (namespace, name) key, backed by a
// local SQLite database.
package savedfilters
