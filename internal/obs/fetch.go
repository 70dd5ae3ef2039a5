// Package obs fetches daily aerosol observation data from the remote data
// service and writes it into the workspace.
//
// One fetch is one HTTP GET returning CSV: an hour-of-day column followed
// by named numeric measurement columns. Failures are never retried; they
// surface as *FetchError and the user retries manually.
package obs

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FetchError reports a failed observation fetch: network failure, a
// non-success status, or malformed CSV.
type FetchError struct {
	Date string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch observations for %s: %v", e.Date, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Day is one day of observation data: the CSV header (hour column first,
// then measurement columns) and the data records.
type Day struct {
	Date    string
	Header  []string
	Records [][]string
}

// Client fetches observation days from one data service endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client with a 30-second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchDay retrieves the observation data for one day (YYYY-MM-DD).
func (c *Client) FetchDay(ctx context.Context, date string) (*Day, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &FetchError{Date: date, Err: fmt.Errorf("malformed date: %w", err)}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, &FetchError{Date: date, Err: err}
	}
	q := u.Query()
	q.Set("day", date)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Date: date, Err: err}
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{Date: date, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Date: date, Err: fmt.Errorf("data service returned %s", resp.Status)}
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, &FetchError{Date: date, Err: fmt.Errorf("malformed CSV: %w", err)}
	}
	day, err := newDay(date, records)
	if err != nil {
		return nil, &FetchError{Date: date, Err: err}
	}
	return day, nil
}

func newDay(date string, records [][]string) (*Day, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("no observation rows for %s", date)
	}
	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("observation CSV needs an hour column and at least one measurement column")
	}
	rows := records[1:]
	for i, row := range rows {
		if hour, err := strconv.Atoi(row[0]); err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("row %d: bad hour-of-day %q", i+1, row[0])
		}
	}
	return &Day{Date: date, Header: header, Records: rows}, nil
}

// WriteCSV writes the day to path, creating parent directories as needed.
func (d *Day) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write observations: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write observations: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(d.Header); err != nil {
		f.Close()
		return fmt.Errorf("write observations %s: %w", path, err)
	}
	if err := w.WriteAll(d.Records); err != nil {
		f.Close()
		return fmt.Errorf("write observations %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write observations %s: %w", path, err)
	}
	return nil
}
