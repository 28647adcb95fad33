// Package release orchestrates one fork release attempt: clean-tree
// check, version resolution, manifest pinning, build hooks, tagging,
// pushing, and GitHub release creation.
//
// The resolver is called exactly once per attempt. Concurrent attempts
// against the same tag namespace are not coordinated here; callers
// serialize release runs externally.
package release

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/forktools/fret"
	"github.com/forktools/fret/config"
	"github.com/forktools/fret/manifest"
	"github.com/forktools/fret/vcs"
)

// gitOps is the slice of vcs.Git the runner depends on.
type gitOps interface {
	EnsureClean(ctx context.Context) error
	ListTags(ctx context.Context, pattern string) ([]string, error)
	CreateTag(ctx context.Context, tag, message string) error
	PushTag(ctx context.Context, remote, tag string) error
}

// publisher creates the release entry for a pushed tag.
type publisher interface {
	CreateRelease(ctx context.Context, owner, repo, tag, name string) (string, error)
}

// runShell executes one build hook; swapped out in tests.
var runShell = func(ctx context.Context, dir, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run %q: %w: %s", command, err, out)
	}

	return nil
}

// Runner sequences the steps of a release attempt.
type Runner struct {
	Config *config.Config
	Git    gitOps
	Hub    publisher // optional; nil skips release creation
	Dir    string    // repository root
	Log    zerolog.Logger
}

// Run performs one release attempt and returns the resolved outcome.
// On a dry run it stops after resolution and reports the plan. Once the
// manifest is pinned, it is restored on every exit path.
func (r *Runner) Run(ctx context.Context) (next fret.Next, err error) {
	cfg := r.Config

	if !cfg.DryRun {
		if err := r.Git.EnsureClean(ctx); err != nil {
			return fret.Next{}, err
		}
	}

	base, err := manifest.Read(filepath.Join(r.Dir, cfg.Manifest))
	if err != nil {
		return fret.Next{}, err
	}

	tags, err := r.Git.ListTags(ctx, "")
	if err != nil {
		return fret.Next{}, err
	}

	next, err = fret.Resolve(base, tags, fret.Options{Marker: cfg.Marker})
	if err != nil {
		return fret.Next{}, err
	}

	r.Log.Info().
		Str("base", base).
		Str("anchor", next.Anchor).
		Str("tag", next.Tag).
		Msg("resolved next fork release")

	if cfg.DryRun {
		for _, cmd := range cfg.Build {
			r.Log.Info().Str("command", cmd).Msg("dry-run: would run build hook")
		}
		r.Log.Info().
			Str("tag", next.Tag).
			Str("remote", cfg.Remote).
			Msg("dry-run: would tag, push, and publish")

		return next, nil
	}

	restore, err := manifest.Pin(filepath.Join(r.Dir, cfg.Manifest), next.Version)
	if err != nil {
		return fret.Next{}, err
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	for _, cmd := range cfg.Build {
		r.Log.Info().Str("command", cmd).Msg("running build hook")
		if err := runShell(ctx, r.Dir, cmd); err != nil {
			return fret.Next{}, err
		}
	}

	if err := r.Git.CreateTag(ctx, next.Tag, "fork release "+next.Version); err != nil {
		return fret.Next{}, err
	}

	if err := r.Git.PushTag(ctx, cfg.Remote, next.Tag); err != nil {
		return fret.Next{}, err
	}

	r.Log.Info().Str("tag", next.Tag).Str("remote", cfg.Remote).Msg("tag pushed")

	if r.Hub != nil && cfg.Repo != "" {
		owner, repo, err := vcs.ParseRepo(cfg.Repo)
		if err != nil {
			return fret.Next{}, err
		}

		url, err := r.Hub.CreateRelease(ctx, owner, repo, next.Tag, next.Version)
		if err != nil {
			return fret.Next{}, err
		}

		r.Log.Info().Str("url", url).Msg("release published")
	}

	return next, nil
}
