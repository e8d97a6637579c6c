package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathIsDirectory is returned when a configuration path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// DefaultMode is the permission used when Write creates a new file.
const DefaultMode os.FileMode = 0o600

// Read returns the contents of the file at fpath.
// Returns an error if the file cannot be read or if the path points to a directory.
func Read(fpath string) ([]byte, error) {
	cleanPath := filepath.Clean(fpath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return data, nil
}

// Write overwrites the file at fpath with data, keeping the existing permissions.
// The write goes straight to the target; there is no temporary file and rename.
func Write(fpath string, data []byte) error {
	cleanPath := filepath.Clean(fpath)

	mode := DefaultMode

	stat, err := os.Stat(cleanPath)
	if err == nil {
		if stat.IsDir() {
			return fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		mode = stat.Mode().Perm()
	}

	err = os.WriteFile(cleanPath, data, mode)
	if err != nil {
		return fmt.Errorf("writing file %q: %w", cleanPath, err)
	}

	return nil
}

// Exists reports whether something exists at fpath.
func Exists(fpath string) bool {
	_, err := os.Stat(filepath.Clean(fpath))

	return err == nil
}

// Expand replaces environment variables and a leading "~" in fpath.
// "~" is left untouched when the home directory cannot be determined.
func Expand(fpath string) string {
	expanded := os.ExpandEnv(fpath)

	if expanded != "~" && !strings.HasPrefix(expanded, "~/") {
		return expanded
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}

	return filepath.Join(home, strings.TrimPrefix(expanded, "~"))
}
