// Package vcs supplies the tag snapshot and declared base version a
// release attempt consumes, plus the write operations the orchestrator
// needs (tagging, pushing, release creation).
package vcs

import (
	"context"
	"path"
)

// TagSource is the read-only contract the resolver pipeline consumes:
// one consistent snapshot of tags and the manifest version per release
// attempt. Implementations: Git (local repository) and Remote (GitHub).
type TagSource interface {
	// ListTags returns every tag whose name matches the glob pattern.
	// An empty pattern or "*" returns all tags.
	ListTags(ctx context.Context, pattern string) ([]string, error)

	// ManifestVersion returns the base version currently declared in the
	// project manifest.
	ManifestVersion(ctx context.Context) (string, error)
}

// matchTag reports whether a tag name matches the glob pattern.
func matchTag(pattern, tag string) (bool, error) {
	if pattern == "" || pattern == "*" {
		return true, nil
	}

	return path.Match(pattern, tag)
}
