package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

// fakeGit writes an executable shell script standing in for git.
func fakeGit(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-ins need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "git")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestGit_Describe(t *testing.T) {
	bin := fakeGit(t, `echo "v1.2.0-3-gabc1234-dirty"`)
	g := &Git{Binary: bin}

	out, err := g.Describe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0-3-gabc1234-dirty", out)
}

func TestGit_DescribeEmptyOutput(t *testing.T) {
	bin := fakeGit(t, `exit 0`)

	out, err := (&Git{Binary: bin}).Describe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestGit_DescribeReceivesArguments(t *testing.T) {
	bin := fakeGit(t, `echo "$@"`)

	out, err := (&Git{Binary: bin}).Describe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "describe --tags --always --dirty", out)

	out, err = (&Git{Binary: bin}).ShortCommit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rev-parse --short=7 HEAD", out)
}

func TestGit_Failures(t *testing.T) {
	tests := []struct {
		name     string
		git      func(t *testing.T) *Git
		contains string
	}{
		{
			name: "non-zero exit",
			git: func(t *testing.T) *Git {
				return &Git{Binary: fakeGit(t, `echo "fatal: not a git repository" >&2; exit 128`)}
			},
			contains: "exit code 128",
		},
		{
			name: "missing binary",
			git: func(t *testing.T) *Git {
				return &Git{Binary: filepath.Join(t.TempDir(), "no-such-git")}
			},
		},
		{
			name: "timeout",
			git: func(t *testing.T) *Git {
				return &Git{Binary: fakeGit(t, `exec sleep 5`), Timeout: 50 * time.Millisecond}
			},
			contains: "timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.git(t).Describe(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrToolUnavailable))
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestStatic(t *testing.T) {
	out, err := Static{Text: " v0.7.0\n"}.Describe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v0.7.0", out)

	_, err = Static{Err: oerrors.ErrToolUnavailable}.Describe(context.Background())
	assert.True(t, errors.Is(err, oerrors.ErrToolUnavailable))
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, "2.43.0", extractVersion("git version 2.43.0\n"))
	assert.Equal(t, "2.39.3", extractVersion("git version 2.39.3 (Apple Git-146)"))
	assert.Equal(t, "", extractVersion("garbage"))
}

func TestToolInfo_String(t *testing.T) {
	assert.Contains(t, ToolInfo{}.String(), "not found")
	assert.Contains(t, ToolInfo{Found: true, Path: "/usr/bin/git", Version: "2.43.0"}.String(), "2.43.0")
}
