package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePointRoundTrip(t *testing.T) {
	b, err := ParsePoint(`{"type":"Point","coordinates":[24.9633,60.3172]}`)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	out, err := ToGeoJSON(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[24.9633,60.3172]}`, out)
}

func TestParsePointRejects(t *testing.T) {
	tests := map[string]string{
		"not json":     `{nope`,
		"line string":  `{"type":"LineString","coordinates":[[0,0],[1,1]]}`,
		"out of range": `{"type":"Point","coordinates":[200,10]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePoint(raw)
			assert.Error(t, err)
		})
	}
}

func TestEmptyValues(t *testing.T) {
	b, err := ParsePoint("")
	assert.NoError(t, err)
	assert.Nil(t, b)

	s, err := ToGeoJSON(nil)
	assert.NoError(t, err)
	assert.Empty(t, s)
}
