package prov

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeronote/aeronote/internal/rdf"
	"github.com/aeronote/aeronote/internal/testutil"
	"github.com/aeronote/aeronote/internal/vocab"
)

var relationPredicates = []rdf.IRI{
	rdf.IRI(vocab.ProvWasGeneratedBy),
	rdf.IRI(vocab.ProvWasAttributedTo),
	rdf.IRI(vocab.ProvWasAssociatedWith),
	rdf.IRI(vocab.ProvWasDerivedFrom),
	rdf.IRI(vocab.ProvUsed),
}

func countRelations(g *rdf.Graph) int {
	n := 0
	for _, p := range relationPredicates {
		n += len(g.Matching("", p, nil))
	}
	return n
}

func testRequest(inputs ...string) BuildRequest {
	start := time.Date(2013, 4, 4, 10, 0, 0, 0, time.UTC)
	return BuildRequest{
		Inputs: inputs,
		Output: "event-description/2013-04-04.json",
		Type:   Visualization,
		Start:  start,
		End:    start.Add(5 * time.Second),
		Agent:  "agent-1",
	}
}

func TestBuild_ScenarioVisualization(t *testing.T) {
	b := &Builder{NewID: testutil.Sequence("act-")}

	g, err := b.Build(testRequest("observational-data/2013-04-04.csv"))
	require.NoError(t, err)

	output := EntityIRI("event-description/2013-04-04.json")
	input := EntityIRI("observational-data/2013-04-04.csv")
	agent := AgentIRI("agent-1")
	activity := ActivityIRI("act-0001")

	assert.True(t, g.Has(rdf.Triple{S: output, P: rdf.IRI(vocab.ProvWasAttributedTo), O: agent}))
	assert.True(t, g.Has(rdf.Triple{S: output, P: rdf.IRI(vocab.ProvWasGeneratedBy), O: activity}))
	assert.True(t, g.Has(rdf.Triple{S: activity, P: rdf.IRI(vocab.ProvWasAssociatedWith), O: agent}))
	assert.True(t, g.Has(rdf.Triple{S: output, P: rdf.IRI(vocab.ProvWasDerivedFrom), O: input}))
	assert.True(t, g.Has(rdf.Triple{S: input, P: rdf.IRI(vocab.ProvWasAttributedTo), O: agent}))
	assert.True(t, g.Has(rdf.Triple{S: activity, P: rdf.IRI(vocab.ProvUsed), O: input}))

	assert.True(t, g.Has(rdf.Triple{S: activity, P: rdf.IRI(vocab.RDFSLabel), O: rdf.NewLiteral("a data visualization activity")}))
	assert.True(t, g.Has(rdf.Triple{S: activity, P: rdf.IRI(vocab.ProvStartedAtTime),
		O: rdf.NewTypedLiteral("2013-04-04T10:00:00Z", rdf.IRI(vocab.XSDDateTime))}))
	assert.True(t, g.Has(rdf.Triple{S: activity, P: rdf.IRI(vocab.ProvEndedAtTime),
		O: rdf.NewTypedLiteral("2013-04-04T10:00:05Z", rdf.IRI(vocab.XSDDateTime))}))
}

func TestBuild_RelationCount(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("%d_inputs", n), func(t *testing.T) {
			inputs := make([]string, n)
			for i := range inputs {
				inputs[i] = fmt.Sprintf("input-%d.csv", i)
			}

			g, err := NewBuilder().Build(testRequest(inputs...))
			require.NoError(t, err)

			assert.Equal(t, 3+3*n, countRelations(g),
				"3 output/activity/agent relations plus 3 per input")

			// Every input appears in exactly one derivation edge, all
			// targeting the one output.
			derived := g.Matching("", rdf.IRI(vocab.ProvWasDerivedFrom), nil)
			require.Len(t, derived, n)
			for _, st := range derived {
				assert.Equal(t, EntityIRI("event-description/2013-04-04.json"), st.S)
			}
		})
	}
}

func TestBuild_DuplicateInputsCollapse(t *testing.T) {
	g, err := NewBuilder().Build(testRequest("same.csv", "same.csv"))
	require.NoError(t, err)
	assert.Equal(t, 3+3*1, countRelations(g))
}

func TestBuild_EmptyInputsRejected(t *testing.T) {
	g, err := NewBuilder().Build(testRequest())
	require.ErrorIs(t, err, ErrNoInputs)
	assert.Nil(t, g, "no partial graph on failure")
}

func TestBuild_UnknownTypeRejected(t *testing.T) {
	req := testRequest("in.csv")
	req.Type = ActivityType(42)

	g, err := NewBuilder().Build(req)
	var unknown *UnknownActivityTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Nil(t, g)
}

func TestBuild_EndBeforeStartRejected(t *testing.T) {
	req := testRequest("in.csv")
	req.End = req.Start.Add(-time.Second)

	g, err := NewBuilder().Build(req)
	var interval *IntervalError
	require.ErrorAs(t, err, &interval)
	assert.Nil(t, g)
}

func TestBuild_EqualStartEndAccepted(t *testing.T) {
	req := testRequest("in.csv")
	req.End = req.Start

	_, err := NewBuilder().Build(req)
	assert.NoError(t, err)
}

func TestBuild_OutputAsInputRejected(t *testing.T) {
	req := testRequest("in.csv", "event-description/2013-04-04.json")

	g, err := NewBuilder().Build(req)
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "event-description/2013-04-04.json", cycle.Entity)
	assert.Nil(t, g)
}

func TestBuild_FreshActivityIDs(t *testing.T) {
	b := NewBuilder()
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		g, err := b.Build(testRequest("in.csv"))
		require.NoError(t, err)

		generated := g.Matching("", rdf.IRI(vocab.ProvWasGeneratedBy), nil)
		require.Len(t, generated, 1)
		id := generated[0].O.Encoded()
		_, dup := seen[id]
		require.False(t, dup, "activity id %s repeated", id)
		seen[id] = struct{}{}
	}
}

func TestBuild_AgentReusedAcrossPositions(t *testing.T) {
	g, err := NewBuilder().Build(testRequest("in.csv"))
	require.NoError(t, err)

	// Output and input attribute to the same agent node.
	attributed := g.Matching("", rdf.IRI(vocab.ProvWasAttributedTo), nil)
	require.Len(t, attributed, 2)
	assert.Equal(t, attributed[0].O, attributed[1].O)
}
