package rdf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeronote/aeronote/internal/vocab"
)

// sampleGraph covers every term shape the serializer handles: full IRIs,
// prefixed names, plain and typed literals, and bare numerics.
func sampleGraph() *Graph {
	out := entity("event-description/2013-04-04.json")
	in := entity("observational-data/2013-04-04.csv")
	agent := IRI(vocab.AgentNS + "agent-1")
	mean := entity("average-duration#mean")

	g := NewGraph()
	g.Add(Triple{S: out, P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)})
	g.Add(Triple{S: out, P: IRI(vocab.ProvWasAttributedTo), O: agent})
	g.Add(Triple{S: out, P: IRI(vocab.ProvWasDerivedFrom), O: in})
	g.Add(Triple{S: agent, P: IRI(vocab.RDFType), O: IRI(vocab.ProvAgent)})
	g.Add(Triple{S: in, P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)})
	g.Add(Triple{S: mean, P: IRI(vocab.RDFType), O: IRI(vocab.TimeDuration)})
	g.Add(Triple{S: mean, P: IRI(vocab.TimeNumericDuration), O: NewTypedLiteral("1.5", IRI(vocab.XSDDecimal))})
	g.Add(Triple{S: mean, P: IRI(vocab.TimeUnitType), O: IRI(vocab.TimeUnitHour)})
	return g
}

func TestSerialize_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleGraph().Serialize(&buf, FormatTurtle))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "sample_graph", buf.Bytes())
}

func TestSerialize_Deterministic(t *testing.T) {
	var first bytes.Buffer
	require.NoError(t, sampleGraph().Serialize(&first, FormatTurtle))

	// Same statements added in a different order serialize identically.
	reordered := NewGraph()
	ts := sampleGraph().Triples()
	for i := len(ts) - 1; i >= 0; i-- {
		reordered.Add(ts[i])
	}
	var second bytes.Buffer
	require.NoError(t, reordered.Serialize(&second, FormatTurtle))

	assert.Equal(t, first.String(), second.String())
}

func TestSerialize_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := sampleGraph().Serialize(&buf, Format("rdfxml"))

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, Format("rdfxml"), unsupported.Format)
}

func TestRoundTrip_SerializeThenParse(t *testing.T) {
	want := sampleGraph()

	var buf bytes.Buffer
	require.NoError(t, want.Serialize(&buf, FormatTurtle))

	got, err := Parse(&buf, FormatTurtle)
	require.NoError(t, err)

	require.Equal(t, want.Len(), got.Len())
	for _, st := range want.Triples() {
		assert.True(t, got.Has(st), "missing statement %s", st.Encoded())
	}
}

func TestRoundTrip_DecimalWithoutIntegerPart(t *testing.T) {
	// Lexical forms like ".5" are valid xsd:decimal but not bare Turtle
	// tokens; they must serialize quoted and still round-trip.
	want := NewGraph()
	mean := entity("average-duration#mean")
	for _, lexical := range []string{".5", "+.5", "-.5"} {
		want.Add(Triple{S: mean, P: IRI(vocab.TimeNumericDuration), O: NewTypedLiteral(lexical, IRI(vocab.XSDDecimal))})
	}

	var buf bytes.Buffer
	require.NoError(t, want.Serialize(&buf, FormatTurtle))
	assert.Contains(t, buf.String(), `".5"^^xsd:decimal`)

	got, err := Parse(&buf, FormatTurtle)
	require.NoError(t, err)
	require.Equal(t, want.Len(), got.Len())
	for _, st := range want.Triples() {
		assert.True(t, got.Has(st), "missing statement %s", st.Encoded())
	}
}

func TestParse_NormalizesLiteralLexicalForms(t *testing.T) {
	// A hand-written unit may carry a decomposed form; it must compare
	// equal to the same text built through the constructors.
	src := "<http://example.org/a> <http://www.w3.org/2000/01/rdf-schema#label> \"café\" .\n"
	g, err := ParseString(src, FormatTurtle)
	require.NoError(t, err)

	assert.True(t, g.Has(Triple{
		S: "http://example.org/a",
		P: IRI(vocab.RDFSLabel),
		O: NewLiteral("café"),
	}))
}

func TestParse_HandwrittenVariations(t *testing.T) {
	src := `# hand-written provenance fragment
@prefix ex: <http://example.org/> .

ex:out a prov:Entity ;
    prov:wasDerivedFrom ex:in1, ex:in2 ;
    rdfs:label "an output"@en .

<http://example.org/in1> rdfs:label "first input" .
`
	g, err := ParseString(src, FormatTurtle)
	require.NoError(t, err)

	ex := IRI("http://example.org/")
	assert.True(t, g.Has(Triple{S: ex + "out", P: IRI(vocab.RDFType), O: IRI(vocab.ProvEntity)}))
	assert.True(t, g.Has(Triple{S: ex + "out", P: IRI(vocab.ProvWasDerivedFrom), O: ex + "in1"}))
	assert.True(t, g.Has(Triple{S: ex + "out", P: IRI(vocab.ProvWasDerivedFrom), O: ex + "in2"}))
	assert.True(t, g.Has(Triple{S: ex + "out", P: IRI(vocab.RDFSLabel), O: NewLangLiteral("an output", "en")}))
	assert.True(t, g.Has(Triple{S: ex + "in1", P: IRI(vocab.RDFSLabel), O: NewLiteral("first input")}))
	assert.Equal(t, 5, g.Len())
}

func TestParse_NumericLiterals(t *testing.T) {
	src := `<http://example.org/d> <http://www.w3.org/2006/time#numericDuration> 1.5 .
<http://example.org/d> <http://example.org/count> 42 .
`
	g, err := ParseString(src, FormatTurtle)
	require.NoError(t, err)

	assert.True(t, g.Has(Triple{
		S: "http://example.org/d",
		P: IRI(vocab.TimeNumericDuration),
		O: Literal{Lexical: "1.5", Datatype: IRI(vocab.XSDDecimal)},
	}))
	assert.True(t, g.Has(Triple{
		S: "http://example.org/d",
		P: "http://example.org/count",
		O: Literal{Lexical: "42", Datatype: IRI(vocab.XSDInteger)},
	}))
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"missing dot":        `<http://a> <http://b> <http://c>`,
		"unterminated IRI":   `<http://a <http://b> <http://c> .`,
		"unterminated quote": `<http://a> <http://b> "oops .`,
		"undeclared prefix":  `nope:s nope:p nope:o .`,
		"blank node":         `_:b0 <http://b> <http://c> .`,
		"bare word subject":  `subject <http://b> <http://c> .`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString(src, FormatTurtle)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr, "source: %s", src)
			assert.Greater(t, parseErr.Line, 0)
		})
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := ParseString("", Format("ntriples"))
	var unsupported *UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupported))
}

func TestParse_LineNumbersInErrors(t *testing.T) {
	src := "@prefix ex: <http://example.org/> .\n\nex:a ex:b \"unclosed\n"
	_, err := ParseString(src, FormatTurtle)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Line)
}
