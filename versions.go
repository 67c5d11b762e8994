package apidoc

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// sortVersions orders versions lexically, or by semantic version precedence
// when WithSemverOrdering is set.
func (r *Registry) sortVersions(versions []string) {
	if !r.semverOrdering {
		slices.Sort(versions)
		return
	}
	SortSemver(versions)
}

// SortSemver sorts versions by semantic version precedence. Versions that
// do not parse as semver ("beta", "") sort after the rest, lexically.
func SortSemver(versions []string) {
	parsed := make(map[string]*semver.Version, len(versions))
	for _, v := range versions {
		if sv, err := semver.NewVersion(v); err == nil {
			parsed[v] = sv
		}
	}

	slices.SortStableFunc(versions, func(a, b string) int {
		sa, okA := parsed[a]
		sb, okB := parsed[b]
		switch {
		case okA && okB:
			if c := sa.Compare(sb); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
}
