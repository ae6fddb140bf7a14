// Package browser is the orchestration layer of the query engine. A Store
// holds the editable query state of one browsing session and turns page
// requests into the full fetch sequence: result cache lookup, count
// sub-query, primary query, keyset bookkeeping, and background schema
// discovery from the returned rows.
//
// The store is deliberately pull-based: edits change state and notify via
// the optional change callback, and the embedding application decides
// when to call LoadPage. Only one backend fetch runs at a time.
package browser
