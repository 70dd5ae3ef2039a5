package event

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aeronote/aeronote/internal/rdf"
	"github.com/aeronote/aeronote/internal/vocab"
)

// ErrEmptyDataset is returned when an average is requested over zero
// events.
var ErrEmptyDataset = errors.New("event dataset is empty")

// AverageIRI identifies the average-duration entity. Its local part is
// the artifact's workspace-relative path.
const AverageIRI = rdf.IRI(vocab.EntityNS + "average-duration.ttl")

// AverageHours returns the mean event duration in hours.
func AverageHours(rows []DatasetRow) (float64, error) {
	if len(rows) == 0 {
		return 0, ErrEmptyDataset
	}
	var total time.Duration
	for _, row := range rows {
		total += row.Duration
	}
	return total.Hours() / float64(len(rows)), nil
}

// AverageGraph expresses the mean duration in the W3C Time ontology: a
// time:Duration with a decimal time:numericDuration in time:unitHour.
func AverageGraph(hours float64) *rdf.Graph {
	lexical := strconv.FormatFloat(hours, 'f', -1, 64)
	g := rdf.NewGraph()
	g.Add(rdf.Triple{S: AverageIRI, P: rdf.IRI(vocab.RDFType), O: rdf.IRI(vocab.TimeDuration)})
	g.Add(rdf.Triple{S: AverageIRI, P: rdf.IRI(vocab.TimeNumericDuration), O: rdf.NewTypedLiteral(lexical, rdf.IRI(vocab.XSDDecimal))})
	g.Add(rdf.Triple{S: AverageIRI, P: rdf.IRI(vocab.TimeUnitType), O: rdf.IRI(vocab.TimeUnitHour)})
	return g
}

// WriteAverage serializes the average-duration graph as Turtle.
func WriteAverage(path string, hours float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write average: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write average: %w", err)
	}
	if err := AverageGraph(hours).Serialize(f, rdf.FormatTurtle); err != nil {
		f.Close()
		return fmt.Errorf("write average %s: %w", path, err)
	}
	return f.Close()
}

// ReadAverage parses an average-duration Turtle file back to hours.
func ReadAverage(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	g, err := rdf.ParseString(string(data), rdf.FormatTurtle)
	if err != nil {
		return 0, fmt.Errorf("read average %s: %w", path, err)
	}
	matches := g.Matching("", rdf.IRI(vocab.TimeNumericDuration), nil)
	if len(matches) != 1 {
		return 0, fmt.Errorf("read average %s: expected one numeric duration, found %d", path, len(matches))
	}
	lit, ok := matches[0].O.(rdf.Literal)
	if !ok {
		return 0, fmt.Errorf("read average %s: numeric duration is not a literal", path)
	}
	hours, err := strconv.ParseFloat(lit.Lexical, 64)
	if err != nil {
		return 0, fmt.Errorf("read average %s: %w", path, err)
	}
	return hours, nil
}
