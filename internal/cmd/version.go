package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/cmdutil"
	"github.com/opmodel/shadeplan/internal/output"
	"github.com/opmodel/shadeplan/internal/vcs"
	"github.com/opmodel/shadeplan/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show shadeplan version information.

Displays:
  - shadeplan version, commit, and build date
  - CUE SDK version the graph schema is evaluated with
  - the git installation used for version derivation`,
		Args:        cobra.NoArgs,
		Annotations: skipConfig(),
		RunE: func(c *cobra.Command, _ []string) error {
			info := struct {
				version.Info
				Git vcs.ToolInfo `json:"git"`
			}{
				Info: version.Get(),
				Git:  vcs.Detect(cmdutil.NewGit(gc).Binary),
			}

			return render(c, gc, output.FormatTable, info, func() string {
				return version.FullString(info.Info, info.Git)
			})
		},
	}

	c.AddCommand(newVersionDeriveCmd(gc))

	return c
}

// deriveResult is the output of version derive.
type deriveResult struct {
	Version     string         `json:"version"`
	Base        string         `json:"base"`
	Source      version.Source `json:"source"`
	Describe    string         `json:"describe,omitempty"`
	Snapshot    bool           `json:"snapshot"`
	Branch      string         `json:"branch,omitempty"`
	BuildNumber string         `json:"buildNumber"`
	Major       *uint64        `json:"major,omitempty"`
	Minor       *uint64        `json:"minor,omitempty"`
	Patch       *uint64        `json:"patch,omitempty"`
	Prerelease  string         `json:"prerelease,omitempty"`
}

func newVersionDeriveCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		deriveFlags cmdutil.DeriveFlags
		full        bool
		branch      bool
		strict      bool
	)

	c := &cobra.Command{
		Use:   "derive",
		Short: "Derive the artifact version from version control",
		Long: `Derive the version an artifact is stamped with.

A CI tag build (GITHUB_REF_TYPE=tag by default) uses the tag name. Otherwise
'git describe --tags --always --dirty' is interpreted:

  v1.2.0                  1.2.0
  v1.2.0-3-gabc1234       1.2.0-SNAPSHOT
  abc1234                 0.0.0-SNAPSHOT
  v1.2.0-dirty            1.2.0-dirty

When git is missing, times out, or the directory is not a repository the
version is 0.0.0-SNAPSHOT.

Examples:
  shadeplan version derive
  shadeplan version derive --full --branch
  shadeplan version derive --describe v1.2.0-3-gabc1234 -o json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			d, err := cmdutil.NewDeriver(gc, deriveFlags.Describe)
			if err != nil {
				return err
			}

			res := d.Derive(c.Context())
			out := deriveResult{
				Version:     res.Version,
				Base:        res.Version,
				Source:      res.Source,
				Describe:    res.Describe,
				Snapshot:    version.IsSnapshot(res.Version),
				BuildNumber: version.BuildNumberString(version.BuildNumber(d.Env)),
			}

			sv, err := version.Semver(res.Version)
			switch {
			case err == nil:
				major, minor, patch := sv.Major(), sv.Minor(), sv.Patch()
				out.Major, out.Minor, out.Patch = &major, &minor, &patch
				out.Prerelease = sv.Prerelease()
			case strict:
				return err
			default:
				output.Debug("derived version is not semantic", "version", res.Version)
			}

			if full {
				commit := ""
				if deriveFlags.Describe == "" {
					commit, err = cmdutil.NewGit(gc).ShortCommit(c.Context())
					if err != nil {
						output.Warn("could not read commit", "err", err)
					}
				}
				out.Version = version.FullVersion(out.Version, commit)
			}

			if branch {
				out.Branch = version.BranchName(d.Env)
				if version.ShouldAddBranchName(d.Env, out.Branch) {
					out.Version = version.WithBranchName(out.Branch, out.Version)
				}
			}

			return render(c, gc, output.FormatTable, out, func() string {
				return out.Version
			})
		},
	}

	deriveFlags.AddTo(c)
	c.Flags().BoolVar(&full, "full", false, "Attach the commit to snapshot versions")
	c.Flags().BoolVar(&branch, "branch", false, "Prefix the branch name on feature branches")
	c.Flags().BoolVar(&strict, "strict", false, "Fail unless the derived version is semantic")

	return c
}

