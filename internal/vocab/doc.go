// Package vocab defines the IRI namespaces and predicate constants used by
// the provenance graphs aeronote records.
//
// The vocabulary is deliberately small: the PROV-O core (Entity, Activity,
// Agent and the five relation properties), the RDF/RDFS/XSD terms needed to
// type and label nodes, the W3C Time ontology terms used by the
// average-duration artifact, and the aeronote instance namespaces under
// which entities, agents, and activities are minted.
//
// All constants are full IRIs. The Prefixes table maps the short prefixes
// used in Turtle output and in query text to these namespaces.
package vocab
