// Package event manages event descriptions and the datasets derived from
// them: per-event JSON descriptions, the combined event-dataset CSV, and
// the average-duration artifact serialized as Turtle.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// descriptionSchema constrains an event description document. Times are
// minute-resolution clock times within one day.
const descriptionSchema = `
#Description: {
	day:       =~"^[0-9]{4}-[0-9]{2}-[0-9]{2}$"
	beginning: =~"^([01][0-9]|2[0-3]):[0-5][0-9]$"
	end:       =~"^([01][0-9]|2[0-3]):[0-5][0-9]$"
}
`

// Description records one observed event: the day it occurred and its
// beginning and end clock times (HH:MM).
type Description struct {
	Day       string `json:"day"`
	Beginning string `json:"beginning"`
	End       string `json:"end"`
}

// DescriptionError reports an event description that fails schema
// validation or has an inverted time interval.
type DescriptionError struct {
	File string
	Msg  string
}

func (e *DescriptionError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("invalid event description: %s", e.Msg)
	}
	return fmt.Sprintf("invalid event description %s: %s", e.File, e.Msg)
}

// Validate checks the description against the schema and requires the end
// time to fall strictly after the beginning.
func (d *Description) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(descriptionSchema).LookupPath(cue.ParsePath("#Description"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling description schema: %w", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	doc := ctx.CompileBytes(data)
	if err := doc.Err(); err != nil {
		return &DescriptionError{Msg: err.Error()}
	}
	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &DescriptionError{Msg: err.Error()}
	}

	if _, err := d.Duration(); err != nil {
		return err
	}
	return nil
}

// Duration returns the event's length. The end must be after the
// beginning; events never span midnight.
func (d *Description) Duration() (time.Duration, error) {
	begin, err := time.Parse("15:04", d.Beginning)
	if err != nil {
		return 0, &DescriptionError{Msg: fmt.Sprintf("bad beginning time %q", d.Beginning)}
	}
	end, err := time.Parse("15:04", d.End)
	if err != nil {
		return 0, &DescriptionError{Msg: fmt.Sprintf("bad end time %q", d.End)}
	}
	dur := end.Sub(begin)
	if dur <= 0 {
		return 0, &DescriptionError{Msg: fmt.Sprintf("end %s is not after beginning %s", d.End, d.Beginning)}
	}
	return dur, nil
}

// Write validates the description and writes it as JSON, creating parent
// directories as needed.
func (d *Description) Write(path string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write event description: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadDescription loads and validates one event description file.
func ReadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Description
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, &DescriptionError{File: path, Msg: err.Error()}
	}
	if err := d.Validate(); err != nil {
		var de *DescriptionError
		if errors.As(err, &de) && de.File == "" {
			de.File = path
		}
		return nil, err
	}
	return &d, nil
}
