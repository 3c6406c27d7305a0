// Package workdir provides utilities for managing the CLI output directory.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alkime/stylepost/internal/content"
)

// Root returns the base directory for all CLI output. An explicit dir wins;
// otherwise the path resolves to:
//
//	$HOME/Documents/Stylepost
func Root(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Stylepost"), nil
}

// RunName names a run directory: <YYYY-MM-DD>-<slug>.
func RunName(now time.Time, subject string) string {
	slug := content.GenerateSlug(subject)
	if slug == "" {
		slug = "run"
	}
	return now.Format("2006-01-02") + "-" + slug
}

// RunPath returns the full path for a run directory with the given name.
func RunPath(root, name string) string {
	return filepath.Join(root, "runs", name)
}

// Prep ensures that the run directory for the given name exists and returns it.
func Prep(root, name string) (string, error) {
	path := RunPath(root, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("failed to create working directory %s: %w", path, err)
	}

	return path, nil
}
