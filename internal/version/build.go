package version

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultBranch is reported when no CI branch variable is set.
const DefaultBranch = "local/dev"

var branchUnsafe = regexp.MustCompile(`[^0-9A-Za-z\-_]`)

// IsSnapshot reports whether v is a development version.
func IsSnapshot(v string) bool {
	return strings.Contains(v, snapshotSuffix)
}

// FullVersion attaches the commit to snapshot versions as build metadata,
// e.g. 0.7.0-SNAPSHOT+abc1234. Release versions are returned unchanged.
func FullVersion(v, commit string) string {
	if !IsSnapshot(v) {
		return v
	}
	if commit == "" {
		commit = "unknown"
	}
	return strings.Replace(v, snapshotSuffix, snapshotSuffix+"+"+commit, 1)
}

// BranchName reads GIT_BRANCH, then GITHUB_REF_NAME.
func BranchName(env Getenv) string {
	for _, key := range []string{"GIT_BRANCH", "GITHUB_REF_NAME"} {
		if v := env(key); v != "" {
			return v
		}
	}
	return DefaultBranch
}

// ShouldAddBranchName reports whether versions built from branch should carry
// the branch name. IGNORE_BRANCH=true disables it; master and local builds never do.
func ShouldAddBranchName(env Getenv, branch string) bool {
	if ignore, err := strconv.ParseBool(env("IGNORE_BRANCH")); err == nil {
		return !ignore
	}
	return branch != "master" && branch != DefaultBranch
}

// WithBranchName prefixes v with branch, replacing characters outside
// [0-9A-Za-z-_] with '-'.
func WithBranchName(branch, v string) string {
	return branchUnsafe.ReplaceAllString(branch, "-") + "-" + v
}

// BuildNumber reads BUILD_NUMBER, then GITHUB_RUN_NUMBER. It returns -1 when
// neither holds a number.
func BuildNumber(env Getenv) int {
	for _, key := range []string{"BUILD_NUMBER", "GITHUB_RUN_NUMBER"} {
		v := env(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return -1
		}
		return n
	}
	return -1
}

// BuildNumberString renders n, or "??" for -1.
func BuildNumberString(n int) string {
	if n == -1 {
		return "??"
	}
	return strconv.Itoa(n)
}
