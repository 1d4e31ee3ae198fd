package version

import (
	"regexp"
	"strconv"
	"strings"
)

// Fallback is the version used when nothing better can be derived.
const Fallback = "0.0.0-SNAPSHOT"

const (
	snapshotSuffix = "-SNAPSHOT"
	dirtySuffix    = "-dirty"
)

var hashOnly = regexp.MustCompile(`^[0-9a-f]+$`)

// State classifies describe text.
type State int

const (
	// StateEmpty is blank describe output.
	StateEmpty State = iota
	// StateNoTag is a bare commit hash: no tag is reachable.
	StateNoTag
	// StateOnTag is a commit that carries a tag.
	StateOnTag
	// StateAfterTag is a commit some distance after the nearest tag.
	StateAfterTag
	// StateOther is text in no recognized shape. It is used as written.
	StateOther
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateNoTag:
		return "no-tag"
	case StateOnTag:
		return "on-tag"
	case StateAfterTag:
		return "after-tag"
	default:
		return "other"
	}
}

// Descriptor is describe text taken apart.
type Descriptor struct {
	State State

	// Tag is the nearest tag as written, or the whole text for StateOther.
	Tag string

	// CommitsSinceTag is -1 when the text does not carry a count.
	CommitsSinceTag int

	// ShortHash is the abbreviated commit, without the "g" marker.
	ShortHash string

	Dirty bool
}

// ParseDescriptor reads the output of `git describe --tags --always --dirty`.
func ParseDescriptor(text string) Descriptor {
	text = strings.TrimSpace(text)
	d := Descriptor{CommitsSinceTag: -1}
	if text == "" {
		return d
	}

	if strings.HasSuffix(text, dirtySuffix) {
		d.Dirty = true
		text = strings.TrimSuffix(text, dirtySuffix)
	}

	parts := strings.Split(text, "-")
	n := len(parts)
	switch {
	case n == 1 && hashOnly.MatchString(parts[0]):
		d.State = StateNoTag
		d.ShortHash = parts[0]
	case n == 1:
		d.State = StateOnTag
		d.Tag = parts[0]
	case n >= 3 && strings.HasPrefix(parts[n-1], "g"):
		d.State = StateAfterTag
		d.Tag = strings.Join(parts[:n-2], "-")
		d.ShortHash = strings.TrimPrefix(parts[n-1], "g")
		if count, err := strconv.Atoi(parts[n-2]); err == nil {
			d.CommitsSinceTag = count
		}
	default:
		d.State = StateOther
		d.Tag = text
	}
	return d
}

// Version renders the descriptor as an artifact version.
func (d Descriptor) Version() string {
	var v string
	switch d.State {
	case StateEmpty:
		return Fallback
	case StateNoTag:
		v = Fallback
	case StateAfterTag:
		v = trimV(d.Tag) + snapshotSuffix
	default:
		v = trimV(d.Tag)
	}
	if d.Dirty {
		v += dirtySuffix
	}
	return v
}

// Canonical converts describe text straight to a version string.
func Canonical(text string) string {
	return ParseDescriptor(text).Version()
}

func trimV(s string) string {
	return strings.TrimPrefix(s, "v")
}
