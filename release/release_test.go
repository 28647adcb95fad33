package release

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/forktools/fret/config"
	"github.com/forktools/fret/manifest"
)

const manifestSrc = `{
  "name": "@bscotch/example",
  "version": "2.0.0"
}
`

// fakeGit records the operations the runner performs.
type fakeGit struct {
	tags    []string
	dirty   bool
	pushErr error
	calls   []string
}

func (f *fakeGit) EnsureClean(context.Context) error {
	f.calls = append(f.calls, "clean")
	if f.dirty {
		return errors.New("working tree is dirty")
	}
	return nil
}

func (f *fakeGit) ListTags(context.Context, string) ([]string, error) {
	f.calls = append(f.calls, "list")
	return f.tags, nil
}

func (f *fakeGit) CreateTag(_ context.Context, tag, _ string) error {
	f.calls = append(f.calls, "tag "+tag)
	return nil
}

func (f *fakeGit) PushTag(_ context.Context, remote, tag string) error {
	f.calls = append(f.calls, "push "+remote+" "+tag)
	return f.pushErr
}

type fakeHub struct {
	created []string
}

func (f *fakeHub) CreateRelease(_ context.Context, owner, repo, tag, _ string) (string, error) {
	f.created = append(f.created, owner+"/"+repo+"@"+tag)
	return "https://example.invalid/" + tag, nil
}

func newRunner(t *testing.T, git *fakeGit, hub publisher, cfg *config.Config) *Runner {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifestSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	return &Runner{
		Config: cfg,
		Git:    git,
		Hub:    hub,
		Dir:    dir,
		Log:    zerolog.Nop(),
	}
}

func readManifestVersion(t *testing.T, dir string) string {
	t.Helper()

	v, err := manifest.Read(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestRun_DryRun(t *testing.T) {
	git := &fakeGit{tags: []string{"v2.0.0-bscotch.0", "v2.0.0-bscotch.1"}}
	cfg := &config.Config{Marker: "bscotch", Manifest: "package.json", Remote: "origin", DryRun: true}
	r := newRunner(t, git, nil, cfg)

	next, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if next.Tag != "v2.0.0-bscotch.2" {
		t.Fatalf("tag got %q; want %q", next.Tag, "v2.0.0-bscotch.2")
	}

	for _, c := range git.calls {
		if strings.HasPrefix(c, "tag ") || strings.HasPrefix(c, "push ") {
			t.Fatalf("dry run performed %q", c)
		}
	}

	if got := readManifestVersion(t, r.Dir); got != "2.0.0" {
		t.Fatalf("dry run changed the manifest to %q", got)
	}
}

func TestRun_FullSequence(t *testing.T) {
	git := &fakeGit{tags: []string{"v2.0.0-bscotch.0"}}
	hub := &fakeHub{}
	cfg := &config.Config{
		Marker:   "bscotch",
		Manifest: "package.json",
		Remote:   "origin",
		Repo:     "bscotch/example",
		Build:    []string{"make pack"},
	}
	r := newRunner(t, git, hub, cfg)

	// The build hook must observe the pinned version.
	var pinnedDuringBuild string
	orig := runShell
	runShell = func(_ context.Context, dir, _ string) error {
		pinnedDuringBuild = readManifestVersion(t, dir)
		return nil
	}
	defer func() { runShell = orig }()

	next, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if next.Tag != "v2.0.0-bscotch.1" {
		t.Fatalf("tag got %q; want %q", next.Tag, "v2.0.0-bscotch.1")
	}

	if pinnedDuringBuild != "2.0.0-bscotch.1" {
		t.Fatalf("build hook saw manifest version %q; want pinned %q", pinnedDuringBuild, "2.0.0-bscotch.1")
	}

	wantCalls := []string{"clean", "list", "tag v2.0.0-bscotch.1", "push origin v2.0.0-bscotch.1"}
	if len(git.calls) != len(wantCalls) {
		t.Fatalf("calls %v; want %v", git.calls, wantCalls)
	}
	for i, c := range wantCalls {
		if git.calls[i] != c {
			t.Fatalf("call %d = %q; want %q", i, git.calls[i], c)
		}
	}

	if len(hub.created) != 1 || hub.created[0] != "bscotch/example@v2.0.0-bscotch.1" {
		t.Fatalf("releases created: %v", hub.created)
	}

	// Manifest restored after success.
	if got := readManifestVersion(t, r.Dir); got != "2.0.0" {
		t.Fatalf("manifest left at %q after run", got)
	}
}

func TestRun_RestoresManifestOnFailure(t *testing.T) {
	git := &fakeGit{pushErr: errors.New("remote hung up")}
	cfg := &config.Config{Marker: "bscotch", Manifest: "package.json", Remote: "origin"}
	r := newRunner(t, git, nil, cfg)

	orig := runShell
	runShell = func(context.Context, string, string) error { return nil }
	defer func() { runShell = orig }()

	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("Run: want push error")
	}

	if got := readManifestVersion(t, r.Dir); got != "2.0.0" {
		t.Fatalf("manifest left at %q after failed run", got)
	}
}

func TestRun_DirtyTree(t *testing.T) {
	git := &fakeGit{dirty: true}
	cfg := &config.Config{Marker: "bscotch", Manifest: "package.json", Remote: "origin"}
	r := newRunner(t, git, nil, cfg)

	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("Run: want dirty tree error")
	}

	if got := readManifestVersion(t, r.Dir); got != "2.0.0" {
		t.Fatalf("manifest left at %q", got)
	}
}

func TestRun_BadBaseVersion(t *testing.T) {
	git := &fakeGit{}
	cfg := &config.Config{Marker: "bscotch", Manifest: "package.json", Remote: "origin"}
	r := newRunner(t, git, nil, cfg)

	if err := os.WriteFile(filepath.Join(r.Dir, "package.json"), []byte(`{"version": "2.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("Run: want version format error")
	}
}
