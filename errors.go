package fret

import "errors"

var (
	// ErrVersionFormat reports a base version that is not a full X.Y.Z
	// release version (shorthand, junk, or carrying a prerelease segment).
	ErrVersionFormat = errors.New("invalid base version")

	// ErrTagFormat reports a tag that matched the family prefix but does
	// not parse as a SemVer with a numeric trailing identifier. Such tags
	// are surfaced rather than skipped: a hand-edited family tag could
	// break the monotonicity of the counter.
	ErrTagFormat = errors.New("invalid family tag")
)
