package relay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	raw := `{"type":"projectile","params":{"speed":5,"angle":0,"height":10},"reasoning":"水平抛出"}`

	resp, err := Translate(raw)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "projectile", resp.Type)
	assert.Equal(t, "水平抛出", resp.Reasoning)
	assert.Equal(t, raw, resp.RawResponse)
	require.Contains(t, resp.Params, "speed")
	assert.Equal(t, 5.0, *resp.Params["speed"])
	assert.Equal(t, 10.0, *resp.Params["height"])
	assert.Nil(t, resp.Visual)
}

func TestTranslateDefaults(t *testing.T) {
	resp, err := Translate(`{}`)
	require.NoError(t, err)

	assert.Equal(t, "uniform", resp.Type)
	assert.NotNil(t, resp.Params)
	assert.Empty(t, resp.Params)
	assert.Equal(t, "", resp.Reasoning)
}

func TestTranslateKeepsUnknownCategory(t *testing.T) {
	resp, err := Translate(`{"type":"thermodynamics","params":{"T":300}}`)
	require.NoError(t, err)
	assert.Equal(t, "thermodynamics", resp.Type)
}

func TestTranslateNullParam(t *testing.T) {
	resp, err := Translate(`{"type":"circular","params":{"radius":2,"omega":null}}`)
	require.NoError(t, err)

	require.Contains(t, resp.Params, "omega")
	assert.Nil(t, resp.Params["omega"])
	assert.Equal(t, 2.0, *resp.Params["radius"])
}

func TestTranslateDropsNonNumericParams(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]float64
		gone []string
	}{
		{
			name: "string value",
			raw:  `{"type":"collision","params":{"m1":2,"v1":5,"kind":"elastic"}}`,
			want: map[string]float64{"m1": 2, "v1": 5},
			gone: []string{"kind"},
		},
		{
			name: "overflowing number",
			raw:  `{"type":null,"params":{"v0":1e400,"a":10}}`,
			want: map[string]float64{"a": 10},
			gone: []string{"v0"},
		},
		{
			name: "nested values",
			raw:  `{"params":{"time":5,"pos":[1,2],"unit":{"v":"m/s"},"ok":true}}`,
			want: map[string]float64{"time": 5},
			gone: []string{"pos", "unit", "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Translate(tt.raw)
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Len(t, resp.Params, len(tt.want))
			for name, v := range tt.want {
				require.Contains(t, resp.Params, name)
				assert.Equal(t, v, *resp.Params[name])
			}
			for _, name := range tt.gone {
				assert.NotContains(t, resp.Params, name)
			}
		})
	}
}

func TestTranslateVisualPassThrough(t *testing.T) {
	resp, err := Translate(`{"type":"uniform","params":{},"visual":{"color":"red"}}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"red"}`, string(resp.Visual))

	resp, err = Translate(`{"type":"uniform","visual":null}`)
	require.NoError(t, err)
	assert.Nil(t, resp.Visual)
}

func TestTranslateRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain text", raw: "not json"},
		{name: "empty", raw: ""},
		{name: "truncated", raw: `{"type":"uniform","params":{"v0":`},
		{name: "array", raw: `[1,2,3]`},
		{name: "null", raw: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.raw)
			require.Error(t, err)

			var parseErr *UpstreamParseError
			require.True(t, errors.As(err, &parseErr), "expected UpstreamParseError, got %T", err)
			assert.Equal(t, tt.raw, parseErr.Raw)
			assert.Contains(t, err.Error(), "format error")
		})
	}
}
