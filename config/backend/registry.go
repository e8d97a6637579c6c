package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta-cfg/config/parser"
	tomlparser "github.com/0xalexb/hjarta-cfg/config/parser/toml"
	yamlparser "github.com/0xalexb/hjarta-cfg/config/parser/yaml"
)

// ErrNoDialectMatched is matched by NoDialectMatchedError.
var ErrNoDialectMatched = errors.New("no dialect could parse config file")

// ErrUnknownDialect is returned when a dialect name is not registered.
var ErrUnknownDialect = errors.New("unknown dialect")

// NoDialectMatchedError reports a file that every registered dialect failed to parse.
type NoDialectMatchedError struct {
	Filename string
	// Attempts holds the parse failure of each dialect tried, in order.
	Attempts []error
}

func (e *NoDialectMatchedError) Error() string {
	return fmt.Sprintf("no config parser managed to read config file %q", e.Filename)
}

// Is makes errors.Is(err, ErrNoDialectMatched) succeed.
func (e *NoDialectMatchedError) Is(target error) bool {
	return target == ErrNoDialectMatched
}

// Dialect is a named backend factory.
type Dialect struct {
	Name string
	New  Factory
}

// TOMLDialect returns the read/write nested-section dialect.
func TOMLDialect() Dialect {
	return Dialect{Name: tomlparser.Name, New: NewCustom(tomlparser.Name, tomlparser.Load, tomlparser.Save)}
}

// YAMLDialect returns the read/write structured-mapping dialect.
func YAMLDialect() Dialect {
	return Dialect{Name: yamlparser.Name, New: NewCustom(yamlparser.Name, yamlparser.Load, yamlparser.Save)}
}

// Unavailable returns a dialect whose factory always fails with ErrDialectUnavailable.
func Unavailable(name, reason string) Dialect {
	return Dialect{
		Name: name,
		New: func(string) (Backend, error) {
			return nil, fmt.Errorf("%w: %s: %s", ErrDialectUnavailable, name, reason)
		},
	}
}

// Registry is an ordered collection of dialects. Order defines detection precedence.
type Registry struct {
	dialects []Dialect
}

// NewRegistry returns a registry trying dialects in the given order.
func NewRegistry(dialects ...Dialect) *Registry {
	return &Registry{dialects: append([]Dialect(nil), dialects...)}
}

// DefaultRegistry returns the script, section and structured-mapping dialects, in that order.
func DefaultRegistry() *Registry {
	return NewRegistry(LuaDialect(nil), TOMLDialect(), YAMLDialect())
}

// Names returns the dialect names in precedence order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.dialects))
	for i, dialect := range r.dialects {
		names[i] = dialect.Name
	}

	return names
}

// Lookup returns the dialect registered under name.
func (r *Registry) Lookup(name string) (Dialect, bool) {
	for _, dialect := range r.dialects {
		if dialect.Name == name {
			return dialect, true
		}
	}

	return Dialect{}, false
}

// New creates a backend for filename using the named dialect, without detection.
// An unavailable dialect fails here, immediately.
func (r *Registry) New(name, filename string) (Backend, error) {
	dialect, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownDialect, name, strings.Join(r.Names(), ", "))
	}

	return dialect.New(filename)
}

// Detect picks the first dialect, in registry order, that parses filename.
//
// Each dialect is constructed and forced to load. Unavailable dialects are
// skipped and parse failures move on to the next dialect; any other error,
// such as an unreadable file, stops detection. The returned backend already
// holds its parsed mapping.
func (r *Registry) Detect(filename string) (Backend, error) {
	var attempts []error

	for _, dialect := range r.dialects {
		candidate, err := dialect.New(filename)
		if err != nil {
			if errors.Is(err, ErrDialectUnavailable) {
				slog.Debug("dialect unavailable, skipping", slog.String("dialect", dialect.Name))

				continue
			}

			return nil, fmt.Errorf("creating %s backend for %q: %w", dialect.Name, filename, err)
		}

		_, err = candidate.Mapping()
		if err == nil {
			slog.Debug("dialect detected", slog.String("file", filename), slog.String("dialect", dialect.Name))

			return candidate, nil
		}

		if !errors.Is(err, parser.ErrParse) {
			return nil, fmt.Errorf("loading %q as %s: %w", filename, dialect.Name, err)
		}

		slog.Debug("dialect rejected file",
			slog.String("file", filename),
			slog.String("dialect", dialect.Name),
			slog.String("error", err.Error()))

		attempts = append(attempts, err)
	}

	return nil, &NoDialectMatchedError{Filename: filename, Attempts: attempts}
}

// Load creates a backend for filename, detecting the dialect when name is empty.
func (r *Registry) Load(name, filename string) (Backend, error) {
	if name == "" {
		return r.Detect(filename)
	}

	return r.New(name, filename)
}
