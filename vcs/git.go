package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forktools/fret/manifest"
)

// Git reads and writes a local repository by shelling out to the git
// binary. It implements TagSource.
type Git struct {
	// Dir is the repository root.
	Dir string
	// Manifest is the manifest path relative to Dir (e.g. "package.json").
	Manifest string
}

// ListTags returns local tags matching the glob pattern, as printed by
// `git tag --list`.
func (g *Git) ListTags(ctx context.Context, pattern string) ([]string, error) {
	args := []string{"tag", "--list"}
	if pattern != "" {
		args = append(args, pattern)
	}

	out, err := g.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	return splitLines(out), nil
}

// ManifestVersion reads the declared base version from the working tree.
func (g *Git) ManifestVersion(_ context.Context) (string, error) {
	return manifest.Read(filepath.Join(g.Dir, g.Manifest))
}

// EnsureClean fails when the working tree has uncommitted changes.
// Required before a release attempt so the pinned manifest is the only
// local modification.
func (g *Git) EnsureClean(ctx context.Context) error {
	out, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return err
	}

	if out != "" {
		return fmt.Errorf("working tree is dirty:\n%s", out)
	}

	return nil
}

// CreateTag creates an annotated tag at HEAD.
func (g *Git) CreateTag(ctx context.Context, tag, message string) error {
	_, err := g.run(ctx, "tag", "-a", tag, "-m", message)
	return err
}

// PushTag pushes a single tag ref to the remote.
func (g *Git) PushTag(ctx context.Context, remote, tag string) error {
	_, err := g.run(ctx, "push", remote, "refs/tags/"+tag)
	return err
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimRight(stdout.String(), "\n"), nil
}

// splitLines turns git's line-oriented output into a slice, dropping
// blank lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}

	return out
}
