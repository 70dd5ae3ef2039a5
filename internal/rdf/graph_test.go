package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeronote/aeronote/internal/vocab"
)

func entity(name string) IRI {
	return IRI(vocab.EntityNS + name)
}

func TestGraph_AddDeduplicates(t *testing.T) {
	g := NewGraph()

	st := Triple{S: entity("a.csv"), P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)}
	assert.True(t, g.Add(st))
	assert.False(t, g.Add(st), "same statement must be stored once")
	assert.Equal(t, 1, g.Len())
}

func TestGraph_AddDistinguishesObjectKinds(t *testing.T) {
	g := NewGraph()

	// An IRI object and a literal object with the same text are different
	// statements.
	g.Add(Triple{S: entity("a"), P: IRI(vocab.RDFSLabel), O: IRI("x")})
	g.Add(Triple{S: entity("a"), P: IRI(vocab.RDFSLabel), O: NewLiteral("x")})
	assert.Equal(t, 2, g.Len())
}

func TestGraph_MergeIsSetUnion(t *testing.T) {
	shared := Triple{S: entity("shared"), P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)}

	g1 := NewGraph()
	g1.Add(shared)
	g1.Add(Triple{S: entity("one"), P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)})

	g2 := NewGraph()
	g2.Add(shared)
	g2.Add(Triple{S: entity("two"), P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)})

	merged := NewGraph()
	merged.Merge(g1)
	added := merged.Merge(g2)

	assert.Equal(t, 1, added, "only the non-shared statement should be added")
	assert.Equal(t, 3, merged.Len())
	assert.True(t, merged.Has(shared))
}

func TestGraph_MergeOrderIndependent(t *testing.T) {
	a := NewGraph()
	a.Add(Triple{S: entity("a"), P: IRI(vocab.ProvUsed), O: entity("b")})
	b := NewGraph()
	b.Add(Triple{S: entity("b"), P: IRI(vocab.ProvUsed), O: entity("c")})
	c := NewGraph()
	c.Add(Triple{S: entity("c"), P: IRI(vocab.ProvUsed), O: entity("a")})

	forward := NewGraph()
	forward.Merge(a)
	forward.Merge(b)
	forward.Merge(c)

	backward := NewGraph()
	backward.Merge(c)
	backward.Merge(b)
	backward.Merge(a)

	require.Equal(t, forward.Len(), backward.Len())
	for _, st := range forward.Triples() {
		assert.True(t, backward.Has(st), "missing %s", st.Encoded())
	}
}

func TestGraph_Matching(t *testing.T) {
	g := NewGraph()
	out := entity("out.json")
	in1 := entity("in1.csv")
	in2 := entity("in2.csv")
	g.Add(Triple{S: out, P: IRI(vocab.ProvWasDerivedFrom), O: in1})
	g.Add(Triple{S: out, P: IRI(vocab.ProvWasDerivedFrom), O: in2})
	g.Add(Triple{S: out, P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)})

	derived := g.Matching("", IRI(vocab.ProvWasDerivedFrom), nil)
	assert.Len(t, derived, 2)

	fromIn1 := g.Matching(out, IRI(vocab.ProvWasDerivedFrom), in1)
	require.Len(t, fromIn1, 1)
	assert.Equal(t, in1, fromIn1[0].O)

	assert.Empty(t, g.Matching(in1, "", nil))
}

func TestGraph_TriplesReturnsCopy(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{S: entity("a"), P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)})

	ts := g.Triples()
	ts[0].S = entity("mutated")

	assert.Equal(t, entity("a"), g.Triples()[0].S)
}
