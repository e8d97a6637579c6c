package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/backend"
	"github.com/0xalexb/hjarta-cfg/config/keypath"
	"github.com/0xalexb/hjarta-cfg/config/mapping"
	"github.com/0xalexb/hjarta-cfg/config/parser"
	"github.com/0xalexb/hjarta-cfg/config/parser/toml"
)

const serverYAML = `server:
  host: localhost
  port: 8080
debug: true
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func openConfig(t *testing.T, content string) (*config.View, string) {
	t.Helper()

	path := writeConfig(t, "app.rc", content)

	view, err := config.Open(path)
	require.NoError(t, err)

	return view, path
}

func TestView_Get(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	host, err := view.Get("server.host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)

	port, err := view.Get("server.port")
	require.NoError(t, err)
	assert.Equal(t, int64(8080), port)

	server, err := view.Get("server")
	require.NoError(t, err)
	require.IsType(t, &config.View{}, server)

	nested, err := server.(*config.View).Get("port")
	require.NoError(t, err)
	assert.Equal(t, port, nested)
}

func TestView_GetEmptyPathReturnsSelf(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	self, err := view.Get("")
	require.NoError(t, err)
	assert.Same(t, view, self)
}

func TestView_GetIsIdempotent(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	first, err := view.Get("server.port")
	require.NoError(t, err)

	second, err := view.Get("server.port")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestView_MissingKeyNamesOffendingKey(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	_, err := view.Get("server.tls.cert")

	require.ErrorIs(t, err, mapping.ErrMissingKey)

	var missing *mapping.MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "tls", missing.Key)
	assert.NotContains(t, err.Error(), "server.tls.cert")

	_, ok := view.Lookup("server.tls.cert")
	assert.False(t, ok)
}

func TestView_EscapedKeyIsDistinctFromNestedPath(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, "\"a.b\": 1\na:\n  b: 2\n")

	literal, err := view.Get(`a\.b`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), literal)

	nested, err := view.Get("a.b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), nested)

	assert.True(t, view.Has("a.b"))
	assert.Equal(t, []string{"a.b", "a"}, view.Keys())
}

func TestView_EscapedKeyOnlyReachableEscaped(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, "\"a.b\": 1\n")

	_, err := view.Get("a.b")
	require.ErrorIs(t, err, mapping.ErrMissingKey)

	value, err := view.Get(`a\.b`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)
}

func TestView_SetWritesThrough(t *testing.T) {
	t.Parallel()

	view, path := openConfig(t, serverYAML)

	require.NoError(t, view.Set("server.port", 9090))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "server:\n  host: localhost\n  port: 9090\ndebug: true\n", string(data))

	reloaded, err := config.Open(path)
	require.NoError(t, err)

	port, err := config.Int(reloaded, "server.port")
	require.NoError(t, err)
	assert.Equal(t, int64(9090), port)
}

func TestView_SetRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		dialect string
	}{
		{name: "yaml", content: "a: 1\n", dialect: "yaml"},
		{name: "toml", content: "[a]\nfoo = 1\n", dialect: "toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			view, path := openConfig(t, tt.content)
			assert.Equal(t, tt.dialect, view.Backend().Name())

			require.NoError(t, view.Set("x.name", "written"))
			require.NoError(t, view.Set("x.ratio", 0.25))
			require.NoError(t, view.Set(`x.with\.dot`, map[string]any{"count": 3}))

			reloaded, err := config.Open(path, config.WithDialect(tt.dialect))
			require.NoError(t, err)

			name, err := reloaded.Get("x.name")
			require.NoError(t, err)
			assert.Equal(t, "written", name)

			ratio, err := config.Float(reloaded, "x.ratio")
			require.NoError(t, err)
			assert.InDelta(t, 0.25, ratio, 0.0001)

			count, err := config.Int(reloaded, `x.with\.dot.count`)
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)
		})
	}
}

func TestView_WritesVisibleThroughEveryView(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	server, err := view.Get("server")
	require.NoError(t, err)

	require.NoError(t, view.Set("server.host", "example.com"))

	host, err := server.(*config.View).Get("host")
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)

	require.NoError(t, server.(*config.View).Set("port", 1))

	port, err := view.Get("server.port")
	require.NoError(t, err)
	assert.Equal(t, int64(1), port)
}

func TestView_SetReadOnlyDialectKeepsMemoryMutated(t *testing.T) {
	t.Parallel()

	if !backend.LuaAvailable {
		t.Skip("script dialect not built in")
	}

	view, path := openConfig(t, "x = 1\n")
	require.Equal(t, "lua", view.Backend().Name())

	err := view.Set("x", 2)
	require.ErrorIs(t, err, backend.ErrUnsupportedWrite)

	x, err := view.Get("x")
	require.NoError(t, err)
	assert.Equal(t, int64(2), x)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(data))
}

func TestView_SetNullInSectionFileFails(t *testing.T) {
	t.Parallel()

	view, path := openConfig(t, "[a]\nb = 1\n")
	require.Equal(t, "toml", view.Backend().Name())

	err := view.Set("a.c", nil)
	require.ErrorIs(t, err, toml.ErrUnrepresentable)

	reloaded, err := config.Open(path, config.WithDialect("toml"))
	require.NoError(t, err)

	_, err = reloaded.Get("a.c")
	require.ErrorIs(t, err, mapping.ErrMissingKey)
}

func TestView_SetThroughScalarFails(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	err := view.Set("debug.level", "high")
	require.ErrorIs(t, err, mapping.ErrNotMapping)
}

func TestView_SetValueCopiesViews(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	server, err := view.Get("server")
	require.NoError(t, err)

	require.NoError(t, view.Set("backup", server))
	require.NoError(t, view.Set("backup.host", "backup.local"))

	host, err := view.Get("server.host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)

	backupHost, err := view.Get("backup.host")
	require.NoError(t, err)
	assert.Equal(t, "backup.local", backupHost)
}

func TestView_Delete(t *testing.T) {
	t.Parallel()

	view, path := openConfig(t, serverYAML)

	require.NoError(t, view.Delete("server.host"))
	assert.Equal(t, []string{"port"}, mustView(t, view, "server").Keys())

	reloaded, err := config.Open(path)
	require.NoError(t, err)
	assert.False(t, mustView(t, reloaded, "server").Has("host"))

	err = view.Delete("server.host")
	require.ErrorIs(t, err, mapping.ErrMissingKey)

	err = view.Delete("nothing.here")
	require.ErrorIs(t, err, mapping.ErrMissingKey)
}

func TestView_EmptyPathWrites(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	require.ErrorIs(t, view.Set("", 1), config.ErrEmptyPath)
	require.ErrorIs(t, view.Delete(""), config.ErrEmptyPath)
}

func TestView_Iteration(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, serverYAML)

	assert.Equal(t, []string{"server", "debug"}, view.Keys())
	assert.Equal(t, 2, view.Len())
	assert.True(t, view.Has("server"))
	assert.False(t, view.Has("server.host"))

	seen := make(map[string]any)
	for key, value := range view.All() {
		seen[key] = value
	}

	assert.Equal(t, true, seen["debug"])
	require.IsType(t, &config.View{}, seen["server"])
	assert.Equal(t, "server", seen["server"].(*config.View).Prefix())
}

func TestView_String(t *testing.T) {
	t.Parallel()

	view, path := openConfig(t, "a:\n  b:\n    c: 1\n    d: 2\n  e: [1, 2]\nf: x\n")

	assert.Equal(t, `<View "`+path+`" (4 values)>`, view.String())

	nested := mustView(t, view, "a.b")
	assert.Equal(t, `<View "`+path+`" (2 values prefix="a.b")>`, nested.String())
	assert.Equal(t, []string{"a", "b"}, nested.PrefixKeys())
	assert.Equal(t, path, nested.Filename())
}

func TestView_PrefixEscapesKeys(t *testing.T) {
	t.Parallel()

	view, _ := openConfig(t, "\"a.b\":\n  c:\n    d: 1\n")

	nested := mustView(t, view, `a\.b.c`)
	assert.Equal(t, `a\.b.c`, nested.Prefix())
	assert.Equal(t, []string{"a.b", "c"}, nested.PrefixKeys())
}

func TestView_CustomCodec(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "app.rc", serverYAML)

	view, err := config.Open(path, config.WithCodec(keypath.Codec{Separator: '/', Escape: '\\'}))
	require.NoError(t, err)

	port, err := view.Get("server/port")
	require.NoError(t, err)
	assert.Equal(t, int64(8080), port)
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Open(filepath.Join(t.TempDir(), "missing.rc"))
	require.ErrorIs(t, err, os.ErrNotExist)

	garbage := writeConfig(t, "garbage.rc", "::: [ not a config\n")
	_, err = config.Open(garbage)
	require.ErrorIs(t, err, backend.ErrNoDialectMatched)

	yamlFile := writeConfig(t, "app.rc", serverYAML)
	_, err = config.Open(yamlFile, config.WithDialect("toml"))
	require.ErrorIs(t, err, parser.ErrParse)
}

func TestOpen_WithRegistry(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "app.rc", "x = 1\n")

	view, err := config.Open(path, config.WithRegistry(backend.NewRegistry(backend.TOMLDialect())))
	require.NoError(t, err)
	assert.Equal(t, "toml", view.Backend().Name())
}

func TestNew_MemoryBackend(t *testing.T) {
	t.Parallel()

	view, err := config.New(backend.NewMemory("defaults", mapping.FromPlain(map[string]any{"a": 1})))
	require.NoError(t, err)

	a, err := view.Get("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a)

	require.NoError(t, view.Set("b", "two"))
	assert.Equal(t, map[string]any{"a": int64(1), "b": "two"}, view.Plain())
}

func mustView(t *testing.T, view *config.View, path string) *config.View {
	t.Helper()

	value, err := view.Get(path)
	require.NoError(t, err)
	require.IsType(t, &config.View{}, value)

	return value.(*config.View)
}
