package event

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeronote/aeronote/internal/rdf"
	"github.com/aeronote/aeronote/internal/vocab"
)

func TestAverageHours(t *testing.T) {
	rows := []DatasetRow{
		{Day: "2013-04-04", Beginning: "10:00", End: "11:00", Duration: time.Hour},
		{Day: "2013-04-05", Beginning: "09:00", End: "11:00", Duration: 2 * time.Hour},
	}
	hours, err := AverageHours(rows)
	require.NoError(t, err)
	assert.Equal(t, 1.5, hours)
}

func TestAverageHours_EmptyDataset(t *testing.T) {
	_, err := AverageHours(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestAverageGraph(t *testing.T) {
	g := AverageGraph(1.5)
	assert.Equal(t, 3, g.Len())
	assert.True(t, g.Has(rdf.Triple{S: AverageIRI, P: rdf.IRI(vocab.RDFType), O: rdf.IRI(vocab.TimeDuration)}))
	assert.True(t, g.Has(rdf.Triple{S: AverageIRI, P: rdf.IRI(vocab.TimeNumericDuration), O: rdf.NewTypedLiteral("1.5", rdf.IRI(vocab.XSDDecimal))}))
	assert.True(t, g.Has(rdf.Triple{S: AverageIRI, P: rdf.IRI(vocab.TimeUnitType), O: rdf.IRI(vocab.TimeUnitHour)}))
}

func TestAverage_WriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "average-duration.ttl")
	require.NoError(t, WriteAverage(path, 1.5))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "time:numericDuration 1.5")

	hours, err := ReadAverage(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, hours)
}

func TestReadAverage_RejectsForeignGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.ttl")
	src := "@prefix prov: <http://www.w3.org/ns/prov#> .\n\n<https://aeronote.dev/entity/x> a prov:Entity .\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	_, err := ReadAverage(path)
	assert.ErrorContains(t, err, "expected one numeric duration")
}
