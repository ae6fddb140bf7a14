// Package executor defines the seam between the query engine and a
// concrete search backend: the Executor interface its adapters implement,
// the normalized Result shape they return, and the standardized error set
// every adapter funnels its native failures through.
package executor
