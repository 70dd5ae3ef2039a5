// Package querysql answers sparql queries by compiling them to SQL over an
// in-memory SQLite database.
//
// Run loads a merged provenance graph into a single triples(s, p, o) table
// of N-Triples-encoded terms, compiles the query's basic graph pattern to a
// self-join (one table alias per triple pattern, shared variables becoming
// join equalities), executes it, and materializes the full result table in
// memory. Column order follows the query's projection order.
//
// Every compiled query carries a deterministic ORDER BY: the query's own
// keys first, then every projected column as a tiebreaker, so identical
// stores always produce identical result tables.
//
// All fixed terms are passed as SQL parameters, never interpolated. The
// AVG, HOURS, MINUTES, and SECONDS builtins are SQLite functions registered
// on a dedicated driver instance.
package querysql
