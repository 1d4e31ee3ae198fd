package version

import (
	"context"
	"os"

	"github.com/opmodel/shadeplan/internal/output"
	"github.com/opmodel/shadeplan/internal/vcs"
)

// Default environment variables for the CI tag override.
const (
	DefaultRefTypeVar = "GITHUB_REF_TYPE"
	DefaultRefNameVar = "GITHUB_REF_NAME"
)

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(key string) string

// Source records where a derived version came from.
type Source string

const (
	SourceOverride Source = "ci-tag"
	SourceVCS      Source = "vcs"
	SourceFallback Source = "fallback"
)

// Result is a derived version.
type Result struct {
	Version string `json:"version"`
	Source  Source `json:"source"`

	// Describe is the raw describe text, empty unless Source is SourceVCS.
	Describe string `json:"describe,omitempty"`
}

// Deriver computes the artifact version. A CI tag build wins; otherwise the
// describer is asked, and any failure falls back to Fallback.
type Deriver struct {
	// Env defaults to os.Getenv.
	Env Getenv

	Describer vcs.Describer

	// RefTypeVar and RefNameVar default to the GitHub Actions names.
	RefTypeVar string
	RefNameVar string
}

// Derive never fails. Problems with the describer are logged as warnings.
func (d *Deriver) Derive(ctx context.Context) Result {
	env := d.Env
	if env == nil {
		env = os.Getenv
	}

	refType := env(orDefault(d.RefTypeVar, DefaultRefTypeVar))
	refName := env(orDefault(d.RefNameVar, DefaultRefNameVar))
	if refType == "tag" && refName != "" {
		output.Debug("using CI tag for version", "ref", refName)
		return Result{Version: trimV(refName), Source: SourceOverride}
	}

	if d.Describer == nil {
		output.Warn("no version control available, using fallback version", "version", Fallback)
		return Result{Version: Fallback, Source: SourceFallback}
	}

	text, err := d.Describer.Describe(ctx)
	if err != nil {
		output.Warn("could not describe working tree, using fallback version",
			"version", Fallback, "err", err)
		return Result{Version: Fallback, Source: SourceFallback}
	}

	desc := ParseDescriptor(text)
	output.Debug("parsed describe output", "text", text, "state", desc.State.String())
	return Result{Version: desc.Version(), Source: SourceVCS, Describe: text}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
