package fret

import (
	"fmt"
	"strconv"

	"github.com/woozymasta/semver"
)

// parseBase validates the manifest base version: a full X.Y.Z release
// version with no prerelease segment. A leading "v" and build metadata
// are tolerated; shorthand forms (X, X.Y) are not.
func parseBase(s string) (semver.Semver, error) {
	v, ok := semver.Parse(s)
	if !ok || !v.IsValid() || !v.HasPatch() {
		return semver.Semver{}, fmt.Errorf("%w: %q", ErrVersionFormat, s)
	}

	if v.HasPre() {
		return semver.Semver{}, fmt.Errorf("%w: %q carries a prerelease segment", ErrVersionFormat, s)
	}

	return v, nil
}

// formatVersion renders "MAJOR.MINOR.PATCH-PRERELEASE" without parsing.
// prerelease is passed without the leading '-' (e.g. "bscotch.2").
func formatVersion(base semver.Semver, prerelease string) string {
	return strconv.Itoa(base.Major) + "." +
		strconv.Itoa(base.Minor) + "." +
		strconv.Itoa(base.Patch) + "-" + prerelease
}
