// Package rdf implements the in-memory triple store underneath every
// provenance graph aeronote builds, persists, and queries.
//
// The store is a set of (subject, predicate, object) statements with
// insertion-ordered iteration and statement-level dedup. It serializes to
// and parses from Turtle; serialize-then-parse reproduces an equivalent
// statement set regardless of order.
//
// The term model is deliberately minimal: subjects and predicates are IRIs,
// objects are IRIs or literals. Blank nodes are not supported - nothing
// aeronote records needs them, and rejecting them keeps parsing and the
// query backend simple.
package rdf
