package cli

import (
	"log/slog"
	"time"

	"github.com/aeronote/aeronote/internal/config"
	"github.com/aeronote/aeronote/internal/prov"
	"github.com/aeronote/aeronote/internal/provstore"
)

// stepRecorder captures provenance for one workflow step: it builds the
// template graph and persists it as an independent unit.
type stepRecorder struct {
	agent   string
	builder *prov.Builder
	store   *provstore.Store
	now     func() time.Time
}

func newStepRecorder(cfg *config.Config) *stepRecorder {
	return &stepRecorder{
		agent:   cfg.Agent,
		builder: prov.NewBuilder(),
		store:   provstore.New(cfg.ProvenanceDir()),
		now:     time.Now,
	}
}

// record builds and persists the provenance graph for a step that ran
// from start until now. It returns the storage key of the persisted
// unit. A failure here loses the step's provenance but never undoes the
// step's data artifact.
func (r *stepRecorder) record(typ prov.ActivityType, inputs []string, output string, start time.Time) (string, error) {
	g, err := r.builder.Build(prov.BuildRequest{
		Inputs: inputs,
		Output: output,
		Type:   typ,
		Start:  start,
		End:    r.now(),
		Agent:  r.agent,
	})
	if err != nil {
		return "", WrapCoded(ExitFailure, ErrCodeProvenance, "failed to build provenance", err)
	}
	key, err := r.store.Persist(g, "")
	if err != nil {
		return "", WrapCoded(ExitCommandError, ErrCodeProvenance, "failed to persist provenance", err)
	}
	slog.Debug("provenance recorded", "activity", typ.Code(), "key", key)
	return key, nil
}
