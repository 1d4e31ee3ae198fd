package vcs

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
)

// gitVersionRegex matches output like "git version 2.43.0".
var gitVersionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// ToolInfo describes the git installation.
type ToolInfo struct {
	// Version is the git version, empty when unknown.
	Version string `json:"version,omitempty"`

	// Path is the resolved path to git.
	Path string `json:"path,omitempty"`

	// Found indicates if git was found.
	Found bool `json:"found"`

	// Message explains a failed detection.
	Message string `json:"message,omitempty"`
}

// Detect looks up binary (or "git") and reads its version.
func Detect(binary string) ToolInfo {
	if binary == "" {
		binary = "git"
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return ToolInfo{Message: binary + " not found in PATH"}
	}

	cmd := exec.Command(path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return ToolInfo{Path: path, Found: true, Message: "failed to get git version: " + err.Error()}
	}

	return ToolInfo{Path: path, Found: true, Version: extractVersion(out.String())}
}

func extractVersion(output string) string {
	return gitVersionRegex.FindString(output)
}

// String returns a human-readable summary.
func (t ToolInfo) String() string {
	if !t.Found {
		return "  Git Version: not found\n  Git Path:    -"
	}
	v := t.Version
	if v == "" {
		v = t.Message
	}
	return fmt.Sprintf("  Git Version: %s\n  Git Path:    %s", v, t.Path)
}
