package prov

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aeronote/aeronote/internal/rdf"
	"github.com/aeronote/aeronote/internal/vocab"
)

// dateTimeLayout is the lexical form used for xsd:dateTime literals.
// Timestamps are normalized to UTC before formatting.
const dateTimeLayout = "2006-01-02T15:04:05Z"

// BuildRequest carries everything one template invocation needs. The agent
// is an explicit parameter on every call; there is no ambient agent state.
type BuildRequest struct {
	// Inputs are the workspace-relative names of the input artifacts.
	// Must be non-empty. Duplicates collapse to one entity.
	Inputs []string

	// Output is the workspace-relative name of the produced artifact.
	Output string

	// Type classifies the activity. Must be one of the closed-set values.
	Type ActivityType

	// Start and End bound the activity execution. End must not precede
	// Start.
	Start time.Time
	End   time.Time

	// Agent identifies the responsible party.
	Agent string
}

// Builder constructs provenance graphs. NewID generates activity
// identifiers; the default draws random uuids, which makes collisions
// negligible over a process lifetime. Tests may pin it.
type Builder struct {
	NewID func() string
}

// NewBuilder returns a Builder with the uuid-backed id generator.
func NewBuilder() *Builder {
	return &Builder{NewID: uuid.NewString}
}

// EntityIRI returns the IRI minted for a data artifact name.
func EntityIRI(name string) rdf.IRI {
	return rdf.IRI(vocab.EntityNS + name)
}

// AgentIRI returns the IRI minted for an agent identity.
func AgentIRI(id string) rdf.IRI {
	return rdf.IRI(vocab.AgentNS + id)
}

// ActivityIRI returns the IRI minted for a generated activity id.
func ActivityIRI(id string) rdf.IRI {
	return rdf.IRI(vocab.ActivityNS + id)
}

// Build emits the provenance graph for one activity execution. Validation
// failures return a nil graph; a partially built graph is never returned.
func (b *Builder) Build(req BuildRequest) (*rdf.Graph, error) {
	if !req.Type.Valid() {
		return nil, &UnknownActivityTypeError{Code: req.Type.Code()}
	}
	inputs := dedupe(req.Inputs)
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	if req.End.Before(req.Start) {
		return nil, &IntervalError{Start: req.Start, End: req.End}
	}
	for _, in := range inputs {
		if in == req.Output {
			return nil, &CycleError{Entity: req.Output}
		}
	}

	output := EntityIRI(req.Output)
	agent := AgentIRI(req.Agent)
	activity := ActivityIRI(b.NewID())

	g := rdf.NewGraph()

	// Node statements.
	g.Add(rdf.Triple{S: output, P: rdf.IRI(vocab.RDFType), O: rdf.IRI(vocab.ProvEntity)})
	g.Add(rdf.Triple{S: agent, P: rdf.IRI(vocab.RDFType), O: rdf.IRI(vocab.ProvAgent)})
	g.Add(rdf.Triple{S: activity, P: rdf.IRI(vocab.RDFType), O: rdf.IRI(vocab.ProvActivity)})
	g.Add(rdf.Triple{S: activity, P: rdf.IRI(vocab.RDFType), O: req.Type.Class()})
	g.Add(rdf.Triple{S: activity, P: rdf.IRI(vocab.RDFSLabel), O: rdf.NewLiteral(req.Type.Label())})
	g.Add(rdf.Triple{S: activity, P: rdf.IRI(vocab.ProvStartedAtTime), O: dateTimeLiteral(req.Start)})
	g.Add(rdf.Triple{S: activity, P: rdf.IRI(vocab.ProvEndedAtTime), O: dateTimeLiteral(req.End)})

	// Output / activity / agent relations.
	g.Add(rdf.Triple{S: output, P: rdf.IRI(vocab.ProvWasGeneratedBy), O: activity})
	g.Add(rdf.Triple{S: output, P: rdf.IRI(vocab.ProvWasAttributedTo), O: agent})
	g.Add(rdf.Triple{S: activity, P: rdf.IRI(vocab.ProvWasAssociatedWith), O: agent})

	// Per-input relations.
	for _, name := range inputs {
		in := EntityIRI(name)
		g.Add(rdf.Triple{S: in, P: rdf.IRI(vocab.RDFType), O: rdf.IRI(vocab.ProvEntity)})
		g.Add(rdf.Triple{S: output, P: rdf.IRI(vocab.ProvWasDerivedFrom), O: in})
		g.Add(rdf.Triple{S: in, P: rdf.IRI(vocab.ProvWasAttributedTo), O: agent})
		g.Add(rdf.Triple{S: activity, P: rdf.IRI(vocab.ProvUsed), O: in})
	}

	return g, nil
}

func dateTimeLiteral(t time.Time) rdf.Literal {
	return rdf.NewTypedLiteral(t.UTC().Format(dateTimeLayout), rdf.IRI(vocab.XSDDateTime))
}

// dedupe drops duplicate input names, keeping a sorted order so the emitted
// statement sequence is deterministic.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
