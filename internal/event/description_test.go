package event

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescription_Validate(t *testing.T) {
	d := &Description{Day: "2013-04-04", Beginning: "10:00", End: "11:00"}
	require.NoError(t, d.Validate())
}

func TestDescription_ValidateRejectsBadFields(t *testing.T) {
	cases := map[string]Description{
		"bad day":            {Day: "April 4", Beginning: "10:00", End: "11:00"},
		"bad beginning":      {Day: "2013-04-04", Beginning: "25:00", End: "11:00"},
		"bad end":            {Day: "2013-04-04", Beginning: "10:00", End: "10:61"},
		"seconds resolution": {Day: "2013-04-04", Beginning: "10:00:00", End: "11:00"},
		"missing day":        {Beginning: "10:00", End: "11:00"},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			var de *DescriptionError
			require.ErrorAs(t, d.Validate(), &de)
		})
	}
}

func TestDescription_ValidateRejectsInvertedInterval(t *testing.T) {
	d := &Description{Day: "2013-04-04", Beginning: "11:00", End: "10:00"}
	var de *DescriptionError
	require.ErrorAs(t, d.Validate(), &de)
	assert.Contains(t, de.Msg, "not after")

	zero := &Description{Day: "2013-04-04", Beginning: "10:00", End: "10:00"}
	require.ErrorAs(t, zero.Validate(), &de)
}

func TestDescription_Duration(t *testing.T) {
	d := &Description{Day: "2013-04-04", Beginning: "10:15", End: "11:45"}
	dur, err := d.Duration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, dur)
}

func TestDescription_WriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event-description", "2013-04-04.json")
	d := &Description{Day: "2013-04-04", Beginning: "10:00", End: "11:30"}
	require.NoError(t, d.Write(path))

	got, err := ReadDescription(path)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDescription_WriteRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	d := &Description{Day: "2013-04-04", Beginning: "11:00", End: "10:00"}
	require.Error(t, d.Write(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "invalid description must not be written")
}

func TestReadDescription_RejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := ReadDescription(path)
	var de *DescriptionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, path, de.File)
}
