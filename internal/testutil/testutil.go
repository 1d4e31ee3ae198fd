// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleGraph is a small plugin layout: a platform module embeds core, which
// embeds api. The platform module treats api and the host libraries as provided.
const SampleGraph = `modules:
  - name: api
    group: org.example
  - name: common
    group: org.example
  - name: core
    group: org.example
    embeds: [api]
    requires: [common]
    relocations:
      - from: org.bstats
        to: org.example.shadow.bstats
    bundle:
      - coordinate: org.bstats:bstats-base:3.0.0
        file: libs/bstats-base-3.0.0.jar
  - name: spigot
    group: org.example
    embeds: [core]
    requires: [common]
    provided:
      - group: org.spigotmc
        artifact: spigot-api
        version: "1.20.1"
      - group: org.incendo
        artifact: ".*"
    providedModules: [api]
    relocations:
      - from: io.papermc.lib
        to: org.example.shadow.paperlib
    bundle:
      - coordinate: org.incendo:cloud-core:2.0.0
      - coordinate: io.papermc:paperlib:1.0.8
        file: libs/paperlib-1.0.8.jar
`

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteGraph writes a graph file named build-graph.yaml into a fresh temp dir
// and returns its path.
func WriteGraph(t *testing.T, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "build-graph.yaml", content)
}

// WriteSampleProject writes SampleGraph together with the jar files it names.
// It returns the graph path.
func WriteSampleProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, "libs/bstats-base-3.0.0.jar", "bstats-base")
	WriteFile(t, dir, "libs/paperlib-1.0.8.jar", "paperlib")
	return WriteFile(t, dir, "build-graph.yaml", SampleGraph)
}
