package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/mapping"
)

// staticSource implements config.Source over a flat map, for tests that need no file.
type staticSource map[string]any

func (s staticSource) Get(path string) (any, error) {
	value, ok := s[path]
	if !ok {
		return nil, &mapping.MissingKeyError{Key: path}
	}

	return value, nil
}

func TestValue(t *testing.T) {
	t.Parallel()

	source := staticSource{"name": "app", "port": int64(80)}

	name, err := config.Value[string](source, "name")
	require.NoError(t, err)
	assert.Equal(t, "app", name)

	_, err = config.Value[string](source, "port")
	require.ErrorIs(t, err, config.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "int64")

	_, err = config.Value[string](source, "missing")
	require.ErrorIs(t, err, mapping.ErrMissingKey)
}

func TestInt(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    any
		expected int64
		wantErr  bool
	}{
		{name: "integer", value: int64(42), expected: 42},
		{name: "integral float", value: float64(8), expected: 8},
		{name: "fractional float", value: 1.5, wantErr: true},
		{name: "string", value: "42", wantErr: true},
		{name: "bool", value: true, wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.Int(staticSource{"v": testCase.value}, "v")
			if testCase.wantErr {
				require.ErrorIs(t, err, config.ErrTypeMismatch)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestFloat(t *testing.T) {
	t.Parallel()

	source := staticSource{"ratio": 0.5, "count": int64(3), "name": "x"}

	ratio, err := config.Float(source, "ratio")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ratio, 0.0001)

	count, err := config.Float(source, "count")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, count, 0.0001)

	_, err = config.Float(source, "name")
	require.ErrorIs(t, err, config.ErrTypeMismatch)
}

func TestPlain(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	server, err := config.Plain(view, "server")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "localhost", "port": int64(8080)}, server)

	_, err = config.Plain(view, "server.port")
	require.ErrorIs(t, err, config.ErrTypeMismatch)

	server["host"] = "changed"

	host, err := view.Get("server.host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)
}
