// Package pagination implements forward-only keyset pagination over a
// backend that has no native page offsets.
//
// Every page after the first is addressed by an exclusive lower-bound row
// key. The tracker records the last row key of each fetched page so that
// revisiting an earlier page reuses its recorded entry boundary instead of
// re-walking the result set, while a jump past the known frontier degrades
// to forward motion from the last loaded row.
package pagination
