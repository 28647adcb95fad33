package fret

import (
	"strconv"
	"strings"
)

// Next is the resolved outcome of one release attempt.
type Next struct {
	// Version is the bare next version, e.g. "1.2.3-bscotch.2".
	Version string
	// Tag is the v-prefixed tag for Version, e.g. "v1.2.3-bscotch.2".
	Tag string
	// Anchor is the highest existing family tag the counter was derived
	// from; empty when the family is new.
	Anchor string
	// Counter is the trailing numeric identifier of Tag.
	Counter int
}

// Resolve computes the next fork release version and tag.
// Simple, readable pipeline:
//  1. validate the base version (full X.Y.Z release, no prerelease)
//  2. collect the active family (raw prefix match, then parse)
//  3. no family -> seed a new one at counter zero
//  4. else -> bump the trailing counter of the highest member
//
// The result is pure and order-independent over tags: it sorts strictly
// above every family member and never appears in the input set.
func Resolve(baseVersion string, tags []string, opt Options) (Next, error) {
	opt = opt.normalized()

	base, err := parseBase(baseVersion)
	if err != nil {
		return Next{}, err
	}

	fam, err := collect(tags, base, opt.Marker)
	if err != nil {
		return Next{}, err
	}

	// A base version never released under this marker starts a fresh
	// family. This also covers a manifest bump in either direction while
	// higher counters exist for another base version.
	if len(fam) == 0 {
		ver := formatVersion(base, opt.Marker+".0")
		return Next{Version: ver, Tag: "v" + ver}, nil
	}

	top := anchor(fam)

	// Hold marker and intermediate identifiers fixed, bump the counter.
	idents := strings.Split(top.ver.Prerelease, ".")
	idents[len(idents)-1] = strconv.Itoa(top.counter + 1)

	ver := formatVersion(base, strings.Join(idents, "."))

	return Next{
		Version: ver,
		Tag:     "v" + ver,
		Anchor:  top.raw,
		Counter: top.counter + 1,
	}, nil
}
