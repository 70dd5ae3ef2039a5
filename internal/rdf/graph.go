package rdf

// Triple is a single (subject, predicate, object) statement.
type Triple struct {
	S IRI
	P IRI
	O Term
}

// Encoded returns the N-Triples encoding of the whole statement. Two
// triples are the same statement iff their encodings are equal.
func (t Triple) Encoded() string {
	return t.S.Encoded() + " " + t.P.Encoded() + " " + t.O.Encoded() + " ."
}

// Graph is an insertion-ordered set of statements. Adding the same triple
// twice stores it once. The zero value is not usable; call NewGraph.
//
// Graph is not safe for concurrent mutation.
type Graph struct {
	seen    map[string]struct{}
	triples []Triple
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// Add appends a statement to the graph. Returns true if the statement was
// new, false if an equal statement was already present.
func (g *Graph) Add(t Triple) bool {
	key := t.Encoded()
	if _, dup := g.seen[key]; dup {
		return false
	}
	g.seen[key] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// AddAll adds every statement in ts, returning the number actually added.
func (g *Graph) AddAll(ts []Triple) int {
	added := 0
	for _, t := range ts {
		if g.Add(t) {
			added++
		}
	}
	return added
}

// Merge unions other into g and returns the number of statements added.
// Plain set union: statements already present are not duplicated.
func (g *Graph) Merge(other *Graph) int {
	if other == nil {
		return 0
	}
	return g.AddAll(other.triples)
}

// Len returns the number of distinct statements in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Has reports whether the graph contains the statement.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.seen[t.Encoded()]
	return ok
}

// Triples returns a copy of the statements in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Matching returns the statements matching the given pattern in insertion
// order. A zero-value subject or predicate ("") and a nil object act as
// wildcards.
func (g *Graph) Matching(s, p IRI, o Term) []Triple {
	var out []Triple
	var oKey string
	if o != nil {
		oKey = o.Encoded()
	}
	for _, t := range g.triples {
		if s != "" && t.S != s {
			continue
		}
		if p != "" && t.P != p {
			continue
		}
		if o != nil && t.O.Encoded() != oKey {
			continue
		}
		out = append(out, t)
	}
	return out
}
