package fret

import (
	"fmt"
	"strings"

	"github.com/woozymasta/semver"
)

// member is an internal record carrying one parsed family tag.
type member struct {
	raw     string        // raw input string
	ver     semver.Semver // parsed semver
	counter int           // trailing numeric prerelease identifier
}

// familyPrefix returns the raw-string prefix every family tag shares,
// without the leading "v": "MAJOR.MINOR.PATCH-MARKER.".
func familyPrefix(base semver.Semver, marker string) string {
	return formatVersion(base, marker) + "."
}

// collect filters tags down to the active family for base+marker.
//
// Cheap raw prefix match first, SemVer parse only for candidates. Tags
// outside the prefix are ignored. A candidate that fails to parse, or
// whose trailing prerelease identifier is not numeric, yields
// ErrTagFormat: inside the family a malformed tag is corruption, not
// noise.
func collect(tags []string, base semver.Semver, marker string) ([]member, error) {
	prefix := familyPrefix(base, marker)

	var fam []member
	for _, t := range tags {
		if !strings.HasPrefix(trimV(t), prefix) {
			continue
		}

		v, ok := semver.Parse(t)
		if !ok || !v.IsValid() || !v.HasPre() {
			return nil, fmt.Errorf("%w: %q", ErrTagFormat, t)
		}

		idents := strings.Split(v.Prerelease, ".")
		if len(idents) < 2 || idents[0] != marker {
			return nil, fmt.Errorf("%w: %q", ErrTagFormat, t)
		}

		n, ok := numericIdent(idents[len(idents)-1])
		if !ok {
			return nil, fmt.Errorf("%w: %q has a non-numeric counter", ErrTagFormat, t)
		}

		fam = append(fam, member{raw: t, ver: v, counter: n})
	}

	return fam, nil
}

// anchor returns the highest family member by SemVer precedence.
// Ties (possible when members differ only in build metadata) are broken
// by the higher counter, then by input order.
func anchor(fam []member) member {
	best := fam[0]
	for _, m := range fam[1:] {
		c := m.ver.Compare(best.ver)
		if c > 0 || (c == 0 && m.counter > best.counter) {
			best = m
		}
	}

	return best
}

// Family returns the raw tags of the active family for baseVersion and
// opt.Marker, ordered by mode. Inputs outside the family are dropped;
// malformed family tags yield ErrTagFormat, same as Resolve.
func Family(baseVersion string, tags []string, opt Options, mode SortMode) ([]string, error) {
	opt = opt.normalized()

	base, err := parseBase(baseVersion)
	if err != nil {
		return nil, err
	}

	fam, err := collect(tags, base, opt.Marker)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(fam))
	switch mode {
	case SortAsc:
		sortMembers(fam, true)
	case SortDesc:
		sortMembers(fam, false)
	default:
		// keep input order
	}

	for _, m := range fam {
		out = append(out, m.raw)
	}

	return out, nil
}
