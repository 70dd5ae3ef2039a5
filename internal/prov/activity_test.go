package prov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivityType_ClosedSet(t *testing.T) {
	for _, code := range ActivityTypeCodes() {
		parsed, err := ParseActivityType(code)
		require.NoError(t, err)
		assert.Equal(t, code, parsed.Code())
		assert.True(t, parsed.Valid())
	}
}

func TestParseActivityType_Unknown(t *testing.T) {
	for _, code := range []string{"", "classification", "VISUALIZATION"} {
		_, err := ParseActivityType(code)
		var unknown *UnknownActivityTypeError
		require.ErrorAs(t, err, &unknown, "code %q", code)
		assert.Equal(t, code, unknown.Code)
	}
}

func TestActivityType_Labels(t *testing.T) {
	assert.Equal(t, "a data visualization activity", Visualization.Label())
	assert.Equal(t, "a data averaging activity", AveragingTransformation.Label())
	assert.Equal(t, "a data transformation activity", GenericTransformation.Label())
}

func TestActivityType_ZeroValueInvalid(t *testing.T) {
	var zero ActivityType
	assert.False(t, zero.Valid())
	assert.Equal(t, "invalid", zero.String())
}
