// Package provstore persists provenance graphs as Turtle files, one file
// per workflow step, and merges them back into a single queryable graph.
package provstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aeronote/aeronote/internal/rdf"
)

// Clock supplies wall-clock time for storage keys. Tests pin it to make
// keys deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// keyLayout is the second-resolution timestamp in storage keys. Colons are
// not filename-safe everywhere, so the time portion uses dashes.
const keyLayout = "2006-01-02T15-04-05"

// Store writes and reads persisted provenance graphs under one directory.
type Store struct {
	// Dir is the directory holding the persisted units.
	Dir string

	// Clock supplies the timestamp portion of generated keys.
	Clock Clock

	// Suffix generates the collision-resistant tail of a key. Two
	// persists within the same wall-clock second still get distinct
	// keys.
	Suffix func() string
}

// New creates a store over dir with the system clock and a random suffix
// generator. The directory is created on first Persist.
func New(dir string) *Store {
	return &Store{
		Dir:    dir,
		Clock:  systemClock{},
		Suffix: func() string { return uuid.NewString()[:8] },
	}
}

// Persist writes one graph as an independently named Turtle file and
// returns its storage key (the file name). An empty nameHint yields the
// default key: second-resolution timestamp plus a random suffix.
func (s *Store) Persist(g *rdf.Graph, nameHint string) (string, error) {
	key := nameHint
	if key == "" {
		key = s.Clock.Now().UTC().Format(keyLayout) + "-" + s.Suffix()
	}
	name := key + ".ttl"

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("persist provenance: %w", err)
	}
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("persist provenance: %w", err)
	}
	if err := g.Serialize(f, rdf.FormatTurtle); err != nil {
		f.Close()
		return "", fmt.Errorf("persist provenance %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("persist provenance %s: %w", name, err)
	}
	return name, nil
}

// LoadIssue reports one persisted unit that failed to load. Issues do not
// abort the rest of the batch; the caller decides their severity.
type LoadIssue struct {
	File string
	Err  error
}

func (i LoadIssue) String() string {
	return fmt.Sprintf("%s: %v", i.File, i.Err)
}

// LoadAll parses every .ttl unit under the store directory and unions them
// into one graph. Malformed or unreadable units are skipped and reported.
// A missing directory is an empty store, not an error.
func (s *Store) LoadAll() (*rdf.Graph, []LoadIssue, error) {
	merged := rdf.NewGraph()

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil, nil
		}
		return nil, nil, fmt.Errorf("load provenance: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".ttl") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var issues []LoadIssue
	for _, name := range names {
		f, err := os.Open(filepath.Join(s.Dir, name))
		if err != nil {
			issues = append(issues, LoadIssue{File: name, Err: err})
			continue
		}
		g, err := rdf.Parse(f, rdf.FormatTurtle)
		f.Close()
		if err != nil {
			issues = append(issues, LoadIssue{File: name, Err: err})
			continue
		}
		merged.Merge(g)
	}
	return merged, issues, nil
}
