// Package vcs queries version control for the text version derivation starts from.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

// DefaultTimeout bounds every git invocation when Git.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Describer produces `git describe`-style text for the working tree.
type Describer interface {
	Describe(ctx context.Context) (string, error)
}

// Git wraps calls to the external git binary.
type Git struct {
	// Binary is the path to git. If empty, "git" is used from PATH.
	Binary string

	// Dir is the working directory. If empty, the process directory is used.
	Dir string

	// Timeout bounds each invocation. If zero, DefaultTimeout is used.
	Timeout time.Duration
}

// Describe runs `git describe --tags --always --dirty`.
// Any failure wraps ErrToolUnavailable.
func (g *Git) Describe(ctx context.Context) (string, error) {
	return g.runCapture(ctx, "describe", "--tags", "--always", "--dirty")
}

// ShortCommit runs `git rev-parse --short=7 HEAD`.
func (g *Git) ShortCommit(ctx context.Context) (string, error) {
	return g.runCapture(ctx, "rev-parse", "--short=7", "HEAD")
}

// runCapture executes git and returns trimmed stdout.
func (g *Git) runCapture(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, g.binary(), args...)
	cmd.Dir = g.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		name := "git " + strings.Join(args, " ")
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s timed out after %s: %w", name, g.timeout(), oerrors.ErrToolUnavailable)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s failed with exit code %d: %s: %w",
				name, exitErr.ExitCode(), strings.TrimSpace(stderr.String()), oerrors.ErrToolUnavailable)
		}
		return "", fmt.Errorf("%s: %v: %w", name, err, oerrors.ErrToolUnavailable)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (g *Git) binary() string {
	if g.Binary != "" {
		return g.Binary
	}
	return "git"
}

func (g *Git) timeout() time.Duration {
	if g.Timeout > 0 {
		return g.Timeout
	}
	return DefaultTimeout
}

// Static is a Describer that returns fixed text.
type Static struct {
	Text string
	Err  error
}

// Describe returns s.Text, or s.Err when set.
func (s Static) Describe(context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return strings.TrimSpace(s.Text), nil
}
