// Package sparql parses the graph-pattern query dialect aeronote accepts
// into a typed query IR.
//
// The dialect is the SPARQL subset the provenance workflow needs, nothing
// more: PREFIX declarations, a SELECT projection of variables and
// `(expr AS ?var)` expressions, a WHERE group of triple patterns with
// optional `FILTER(?var = term)` constraints, and ORDER BY. The supported
// expressions are AVG plus the time-component extractors HOURS, MINUTES,
// and SECONDS.
//
// Parsing and validation are separate steps: Parse builds the IR and
// rejects syntax errors with position information; Query.Validate rejects
// structurally well-formed queries the backend cannot answer (unbound
// projection variables, aggregates mixed with row-wise projections, and
// the like). The SQL backend in internal/querysql consumes the validated
// IR.
package sparql
