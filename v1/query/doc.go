// Package query compiles the user-editable query-shaping state into the
// single request object the backend store accepts.
//
// [Compile] is a pure function from (QueryConfig, PageRequest, registry) to
// [BackendQuery]. Three constraints shape it:
//
//   - The backend only paginates by keyset: the page boundary becomes a
//     ["id","Gt",cursor] clause ANDed onto the filter; there is no offset.
//   - Ranking and aggregation are mutually exclusive in one request. The
//     compiler branches on "has aggregations" before emitting rank_by or
//     include_attributes, never emitting both.
//   - Three ranking strategies (lexical sort, BM25 relevance, ANN vector
//     similarity) plus a custom expression mode collapse into one rank_by
//     argument, selected by a fixed priority order.
//
// Determinism matters: the encoded query doubles as cache-fingerprint input,
// so [AggregateBy] marshals with sorted keys and compiling twice yields
// byte-identical output.
package query
