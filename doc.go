/*
Package fret (Fork RElease Tagger) computes the next release tag for a
downstream fork that keeps its own prerelease counter on top of the
upstream base version.

The package is I/O-agnostic: it operates purely on a base version string
and a slice of tag strings. Typical flow:

 1. Read the base version from the project manifest (e.g. package.json).
 2. Fetch existing tags elsewhere (git tag --list, GitHub API).
 3. Call Resolve with desired Options (fork marker).
 4. Create the resulting tag in the orchestration layer.

Fork tags have the form vX.Y.Z-MARKER.N where X.Y.Z is the base version
declared in the manifest, MARKER is the fork's distinguishing prerelease
identifier, and N is a strictly increasing counter. Tags sharing a base
version and marker form one release family; Resolve picks the highest
family member by SemVer precedence and bumps its trailing counter. When
the base version changes in the manifest (either direction), the family
is empty and the counter restarts at zero.

SemVer notes:
  - A leading "v" is accepted on input tags and on the base version.
  - Tags outside the active family are ignored, never an error.
  - A tag matching the family prefix that does not parse as a valid
    SemVer, or whose trailing identifier is not numeric, is reported as
    ErrTagFormat rather than skipped.

Usage example:

	tags := []string{
		"v2.0.0-bscotch.0", "v2.0.0-bscotch.1", "v1.9.9-bscotch.7",
		"v2.0.0", "nightly", "sha256-xxx.sig",
	}

	next, err := fret.Resolve("2.0.0", tags, fret.Options{Marker: "bscotch"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(next.Tag) // v2.0.0-bscotch.2
*/
package fret
