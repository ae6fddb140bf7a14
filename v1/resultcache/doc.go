// Package resultcache caches served result pages keyed by a fingerprint
// of the connection, namespace, query-shaping state, and page address.
//
// The cache is an LRU with per-entry expiry. It exists to make revisiting
// a recently seen page free; any destructive mutation purges it entirely
// because deletions invalidate keyset boundaries in ways individual
// entries cannot detect.
package resultcache
