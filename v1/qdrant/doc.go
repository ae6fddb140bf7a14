// Package qdrant adapts a Qdrant deployment to the executor seam.
//
// Compiled filter expressions translate into Qdrant filter conditions,
// sorted and browse pages into Scroll requests (the keyset cursor becomes
// the scroll offset, since points scroll in id order natively), vector
// ranking into Query requests, and count aggregates into the Count API.
//
// Qdrant has no BM25 ranking and no score combinators; queries using them
// return executor.ErrUnsupportedQuery so the orchestrator can surface the
// limitation instead of serving wrong results.
package qdrant
