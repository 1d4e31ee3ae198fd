// Package depinfo maintains the dependency-hash file: one line per bundled
// external dependency recording its coordinate and the SHA-256 of its jar.
package depinfo

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opmodel/shadeplan/internal/coordinate"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/graph"
	"github.com/opmodel/shadeplan/internal/provided"
)

// Entry is one line of the file.
type Entry struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`

	// SHA256 is the base64-encoded digest.
	SHA256 string `json:"sha256"`
}

// String renders "group:artifact:version:sha256".
func (e Entry) String() string {
	return strings.Join([]string{e.Group, e.Artifact, e.Version, e.SHA256}, ":")
}

// DefaultPath is where the file for module lives when no path is given.
func DefaultPath(graphSource string, module graph.ModuleID) string {
	return filepath.Join(filepath.Dir(graphSource), module.Name+"-dependencyInfo.txt")
}

// Collect hashes every bundle entry of n that names a file. Entries that reg
// marks as provided for n are left out, as they never reach the bundle. A nil
// reg keeps every entry.
func Collect(n *graph.Node, reg *provided.Registry) ([]Entry, error) {
	var entries []Entry
	for _, b := range n.Bundle {
		if b.File == "" {
			continue
		}
		if reg != nil && reg.Matches(n.ID, b.Coordinate, coordinate.MatchRegex) {
			continue
		}
		sum, err := hashFile(b.File)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Group:    b.Coordinate.Group,
			Artifact: b.Coordinate.Artifact,
			Version:  b.Coordinate.Version,
			SHA256:   sum,
		})
	}
	return entries, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", oerrors.NewNotFoundError("bundled artifact does not exist", path,
				"Fix the 'file' of the bundle entry in the build graph")
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// Render joins entries with newlines. There is no trailing newline.
func Render(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// Write replaces the file at path with the rendered entries.
func Write(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(Render(entries)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Check compares the file at path with the rendered entries. A missing or
// different file is ErrOutdated.
func Check(path string, entries []Entry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return oerrors.NewOutdatedError("the dependency hashes file does not exist", path,
				"Run 'shadeplan deps write' to create it")
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if string(data) != Render(entries) {
		return oerrors.NewOutdatedError("the dependency hashes file is outdated", path,
			"Run 'shadeplan deps write' to refresh it")
	}
	return nil
}
