package json_types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeDecodesLenientFormats(t *testing.T) {
	for _, raw := range []string{
		`"2026-03-10T10:00:00"`,
		`"2026-03-10T10:00:00Z"`,
		`"2026-03-10"`,
	} {
		var dt DateTime
		require.NoError(t, json.Unmarshal([]byte(raw), &dt), raw)
		assert.Equal(t, 2026, dt.Date.Year(), raw)
	}
}

func TestDateDecodesNonStringTokensAsZero(t *testing.T) {
	// Dirty remote data must not fail the read.
	for _, raw := range []string{`null`, `5`, `{}`, `[]`} {
		var dt DateTime
		require.NoError(t, json.Unmarshal([]byte(raw), &dt), raw)
		assert.True(t, dt.Date.IsZero(), raw)

		var d Date
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.True(t, d.Date.IsZero(), raw)
	}
}

func TestDateTimeOrEmptyTolerantOfMissingValue(t *testing.T) {
	for _, raw := range []string{`null`, `""`} {
		var dt DateTimeOrEmpty
		require.NoError(t, json.Unmarshal([]byte(raw), &dt), raw)
		assert.True(t, dt.Date.IsZero(), raw)
	}

	out, err := json.Marshal(DateTimeOrEmpty{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
