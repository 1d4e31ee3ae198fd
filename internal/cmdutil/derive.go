package cmdutil

import (
	"context"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/config"
	"github.com/opmodel/shadeplan/internal/output"
	"github.com/opmodel/shadeplan/internal/vcs"
	"github.com/opmodel/shadeplan/internal/version"
)

// NewDeriver wires a version.Deriver from the resolved configuration.
// A non-empty describe replaces the git call.
func NewDeriver(gc *cmdtypes.GlobalConfig, describe string) (*version.Deriver, error) {
	cfg := gc.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	env, err := config.EnvLookup(cfg.Version.EnvFile)
	if err != nil {
		return nil, err
	}

	var describer vcs.Describer = spinnerDescriber{inner: NewGit(gc)}
	if describe != "" {
		describer = vcs.Static{Text: describe}
	}

	return &version.Deriver{
		Env:        env,
		Describer:  describer,
		RefTypeVar: cfg.Version.RefTypeVar,
		RefNameVar: cfg.Version.RefNameVar,
	}, nil
}

// NewGit returns the git wrapper configured for gc.
func NewGit(gc *cmdtypes.GlobalConfig) *vcs.Git {
	cfg := gc.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &vcs.Git{Binary: cfg.Git.Binary, Dir: cfg.Git.Dir, Timeout: cfg.Git.Timeout}
}

// spinnerDescriber shows a spinner on a terminal while git runs.
type spinnerDescriber struct {
	inner vcs.Describer
}

// Describe hands the text back over a channel. RunWithSpinner may return on
// cancellation while the action is still running.
func (s spinnerDescriber) Describe(ctx context.Context) (string, error) {
	textCh := make(chan string, 1)
	err := output.RunWithSpinner(ctx, func() error {
		text, err := s.inner.Describe(ctx)
		textCh <- text
		return err
	}, output.WithTitle("Describing working tree"))
	if err != nil {
		return "", err
	}
	return <-textCh, nil
}
