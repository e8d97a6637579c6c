// Package finder locates configuration files by evaluating an ordered search policy.
//
// A policy is a list of rules. Each rule supplies at most one candidate path
// and says whether that path must exist and whether the search continues
// after it is found:
//
//	rules := []finder.Rule{
//		{Enforce: true, Filename: finder.Env("APP_CONFIG_FILENAME")},
//		{Cascade: true, Filename: finder.Path("~/.app.rc")},
//		{Cascade: true, Filename: finder.Path("/etc/app.rc")},
//	}
//	files, err := finder.FindFiles(rules, true)
package finder

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/0xalexb/hjarta-cfg/config/fetcher/file"
)

var (
	// ErrRequiredFileMissing is returned when an enforced rule names a file that does not exist.
	ErrRequiredFileMissing = errors.New("required config file missing")

	// ErrNoFileFound is matched by NoFileFoundError.
	ErrNoFileFound = errors.New("no config file found")
)

// NoFileFoundError reports a search that accepted no candidate.
type NoFileFoundError struct {
	// Searched lists every candidate that was checked and missing, in search order.
	Searched []string
}

func (e *NoFileFoundError) Error() string {
	if len(e.Searched) == 0 {
		return "no config file found, no candidate paths to search"
	}

	return "no config file found, searched: " + strings.Join(e.Searched, ", ")
}

// Is makes errors.Is(err, ErrNoFileFound) succeed.
func (e *NoFileFoundError) Is(target error) bool {
	return target == ErrNoFileFound
}

// Rule is one step of a search policy.
type Rule struct {
	// Enforce fails the whole search when the candidate does not exist.
	Enforce bool
	// Cascade keeps searching after the candidate is found.
	Cascade bool
	// Filename supplies the candidate. An empty result means the rule does not apply.
	Filename func() string
}

// FindFiles evaluates rules in order and returns the candidates that exist.
//
// A missing candidate is remembered and skipped unless its rule is enforced.
// A found candidate stops the search unless its rule cascades. When nothing is
// found, FindFiles returns a *NoFileFoundError if raise is set and an empty
// list otherwise.
func FindFiles(rules []Rule, raise bool) ([]string, error) {
	var (
		found    []string
		searched []string
	)

	for _, rule := range rules {
		candidate := ""
		if rule.Filename != nil {
			candidate = rule.Filename()
		}

		if candidate == "" {
			continue
		}

		if !file.Exists(candidate) {
			if rule.Enforce {
				return nil, fmt.Errorf("%w: %s", ErrRequiredFileMissing, candidate)
			}

			slog.Debug("config file candidate missing", slog.String("path", candidate))

			searched = append(searched, candidate)

			continue
		}

		slog.Debug("config file found", slog.String("path", candidate), slog.Bool("cascade", rule.Cascade))

		found = append(found, candidate)

		if !rule.Cascade {
			break
		}
	}

	if len(found) == 0 && raise {
		return nil, &NoFileFoundError{Searched: searched}
	}

	return found, nil
}

// FindFile is FindFiles with cascading disabled on every rule.
// It returns "" when nothing was found and raise is not set.
func FindFile(rules []Rule, raise bool) (string, error) {
	single := make([]Rule, len(rules))
	for i, rule := range rules {
		rule.Cascade = false
		single[i] = rule
	}

	found, err := FindFiles(single, raise)
	if err != nil {
		return "", err
	}

	if len(found) == 0 {
		return "", nil
	}

	return found[0], nil
}

// Path returns a supplier for p with "~" and environment variables expanded.
func Path(p string) func() string {
	return func() string {
		if p == "" {
			return ""
		}

		return file.Expand(p)
	}
}

// Env returns a supplier reading the path from the environment variable name.
// An unset or empty variable yields no candidate.
func Env(name string) func() string {
	return func() string {
		value := os.Getenv(name)
		if value == "" {
			return ""
		}

		return file.Expand(value)
	}
}
