package weather

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "list instead of object", payload: `[{"main":{}}]`},
		{name: "string", payload: `"weather"`},
		{name: "null", payload: `null`},
		{name: "no main", payload: `{"weather":[{"description":"clear sky"}]}`},
		{name: "no weather", payload: `{"main":{"temp":1,"humidity":2}}`},
		{name: "empty weather", payload: `{"main":{"temp":1,"humidity":2},"weather":[]}`},
		{name: "weather not a list", payload: `{"main":{"temp":1,"humidity":2},"weather":{"description":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(decode(t, tt.payload))
			require.Error(t, err)

			var malformed *MalformedResponseError
			assert.True(t, errors.As(err, &malformed))
		})
	}
}

func TestParseFull(t *testing.T) {
	info, err := Parse(decode(t, `{"main":{"temp":21.5,"humidity":40},"weather":[{"description":"clear sky"}]}`))
	require.NoError(t, err)

	require.NotNil(t, info.Temperature)
	require.NotNil(t, info.Humidity)
	require.NotNil(t, info.Condition)
	assert.Equal(t, 21.5, *info.Temperature)
	assert.Equal(t, int64(40), *info.Humidity)
	assert.Equal(t, "clear sky", *info.Condition)
}

func TestParsePartial(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		hasTemperature bool
		hasHumidity    bool
		hasCondition   bool
	}{
		{
			name:         "no temp",
			payload:      `{"main":{"humidity":40},"weather":[{"description":"clear sky"}]}`,
			hasHumidity:  true,
			hasCondition: true,
		},
		{
			name:           "no humidity",
			payload:        `{"main":{"temp":-3},"weather":[{"description":"snow"}]}`,
			hasTemperature: true,
			hasCondition:   true,
		},
		{
			name:           "no description",
			payload:        `{"main":{"temp":10,"humidity":90},"weather":[{"main":"Rain"}]}`,
			hasTemperature: true,
			hasHumidity:    true,
		},
		{
			name:    "empty main",
			payload: `{"main":{},"weather":[{}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(decode(t, tt.payload))
			require.NoError(t, err)

			assert.Equal(t, tt.hasTemperature, info.Temperature != nil)
			assert.Equal(t, tt.hasHumidity, info.Humidity != nil)
			assert.Equal(t, tt.hasCondition, info.Condition != nil)
		})
	}
}

func TestParsePlainFloats(t *testing.T) {
	payload := map[string]any{
		"main":    map[string]any{"temp": 1.25, "humidity": float64(77)},
		"weather": []any{map[string]any{"description": "fog"}},
	}

	info, err := Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, 1.25, *info.Temperature)
	assert.Equal(t, int64(77), *info.Humidity)
}

func TestParseHumidityOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "huge", payload: `{"main":{"temp":1,"humidity":1e300},"weather":[{}]}`},
		{name: "huge negative", payload: `{"main":{"temp":1,"humidity":-1e300},"weather":[{}]}`},
		{name: "just above int64", payload: `{"main":{"temp":1,"humidity":9223372036854775808},"weather":[{}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(decode(t, tt.payload))
			require.NoError(t, err)
			assert.Nil(t, info.Humidity)
			assert.NotNil(t, info.Temperature)
		})
	}
}

func TestParseFractionalHumidity(t *testing.T) {
	info, err := Parse(decode(t, `{"main":{"temp":1,"humidity":40.6},"weather":[{}]}`))
	require.NoError(t, err)
	require.NotNil(t, info.Humidity)
	assert.Equal(t, int64(41), *info.Humidity)
}
