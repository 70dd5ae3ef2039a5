package obs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "hour,particulate,humidity\n0,12.5,80\n1,13.1,79\n"

func TestFetchDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2013-04-04", r.URL.Query().Get("day"))
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	day, err := NewClient(srv.URL).FetchDay(context.Background(), "2013-04-04")
	require.NoError(t, err)
	assert.Equal(t, "2013-04-04", day.Date)
	assert.Equal(t, []string{"hour", "particulate", "humidity"}, day.Header)
	require.Len(t, day.Records, 2)
	assert.Equal(t, []string{"1", "13.1", "79"}, day.Records[1])
}

func TestFetchDay_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchDay(context.Background(), "2013-04-04")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "2013-04-04", fe.Date)
	assert.Contains(t, fe.Error(), "500")
}

func TestFetchDay_MalformedCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hour,particulate\n0,\"unterminated\n"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchDay(context.Background(), "2013-04-04")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestFetchDay_BadHourColumn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hour,particulate\n25,12.5\n"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchDay(context.Background(), "2013-04-04")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Error(), "bad hour-of-day")
}

func TestFetchDay_MalformedDate(t *testing.T) {
	_, err := NewClient("http://unused.invalid").FetchDay(context.Background(), "April 4th")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestWriteCSV(t *testing.T) {
	day := &Day{
		Date:    "2013-04-04",
		Header:  []string{"hour", "particulate"},
		Records: [][]string{{"0", "12.5"}, {"1", "13.1"}},
	}
	path := filepath.Join(t.TempDir(), "observational-data", "2013-04-04.csv")
	require.NoError(t, day.WriteCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hour,particulate\n0,12.5\n1,13.1\n", string(data))
}
