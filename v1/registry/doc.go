// Package registry tracks the discovered schema of the browsed namespace.
//
// The backend store is schemaless from the client's perspective: attribute
// types are learned by inspecting returned rows ([SchemaRegistry.DiscoverFromRows])
// and optionally seeded from authoritative schema metadata ([SchemaRegistry.Declare]).
// The query compiler and the filter model consume the read-only [Registry]
// view to pick value coercions and validate operator/type combinations.
//
// Discovery is monotone: it widens what is known and never narrows it, so a
// page of rows that happens to omit an attribute cannot degrade the schema.
package registry
