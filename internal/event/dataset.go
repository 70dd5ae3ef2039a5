package event

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DatasetRow is one event in the combined dataset.
type DatasetRow struct {
	Day       string
	Beginning string
	End       string
	Duration  time.Duration
}

var datasetHeader = []string{"day", "beginning", "end", "duration"}

// BuildDataset reads every .json event description under dir, computes
// each event's duration, and returns the rows ordered by day then
// beginning time. A missing directory yields an empty dataset.
func BuildDataset(dir string) ([]DatasetRow, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}

	var rows []DatasetRow
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		d, err := ReadDescription(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		dur, err := d.Duration()
		if err != nil {
			return nil, err
		}
		rows = append(rows, DatasetRow{Day: d.Day, Beginning: d.Beginning, End: d.End, Duration: dur})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Day != rows[j].Day {
			return rows[i].Day < rows[j].Day
		}
		return rows[i].Beginning < rows[j].Beginning
	})
	return rows, nil
}

// WriteDataset writes the rows as CSV, creating parent directories as
// needed. Durations use Go duration syntax so ReadDataset can parse them
// back.
func WriteDataset(path string, rows []DatasetRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(datasetHeader); err != nil {
		f.Close()
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	for _, row := range rows {
		record := []string{row.Day, row.Beginning, row.End, row.Duration.String()}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write dataset %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	return f.Close()
}

// ReadDataset loads a dataset CSV written by WriteDataset.
func ReadDataset(path string) ([]DatasetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(records) == 0 || len(records[0]) != len(datasetHeader) {
		return nil, fmt.Errorf("read dataset %s: not an event dataset", path)
	}

	var rows []DatasetRow
	for i, record := range records[1:] {
		dur, err := time.ParseDuration(record[3])
		if err != nil {
			return nil, fmt.Errorf("read dataset %s row %d: %w", path, i+1, err)
		}
		rows = append(rows, DatasetRow{Day: record[0], Beginning: record[1], End: record[2], Duration: dur})
	}
	return rows, nil
}
