package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"

	"github.com/forktools/fret/manifest"
)

// GitHubClient wraps the GitHub API operations the release pipeline uses.
type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient builds a client; token may be empty for anonymous
// read-only access (tag listing of public repositories).
func NewGitHubClient(token string) *GitHubClient {
	c := github.NewClient(nil)
	if token != "" {
		c = c.WithAuthToken(token)
	}

	return &GitHubClient{client: c}
}

// ListTags returns all repository tags matching the glob pattern,
// paginating through the API.
func (g *GitHubClient) ListTags(ctx context.Context, owner, repo, pattern string) ([]string, error) {
	var all []string
	opts := &github.ListOptions{PerPage: 100}

	for {
		tags, resp, err := g.client.Repositories.ListTags(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list tags for %s/%s: %w", owner, repo, err)
		}

		for _, t := range tags {
			ok, err := matchTag(pattern, t.GetName())
			if err != nil {
				return nil, fmt.Errorf("tag pattern %q: %w", pattern, err)
			}
			if ok {
				all = append(all, t.GetName())
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// FileContent fetches a file from the repository's default branch.
func (g *GitHubClient) FileContent(ctx context.Context, owner, repo, path string) ([]byte, error) {
	file, _, _, err := g.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s from %s/%s: %w", path, owner, repo, err)
	}

	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is not a file", path, owner, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s from %s/%s: %w", path, owner, repo, err)
	}

	return []byte(content), nil
}

// CreateRelease publishes a release entry for an already-pushed tag and
// returns its URL. Fork tags are prereleases by construction, so the
// entry is marked accordingly.
func (g *GitHubClient) CreateRelease(ctx context.Context, owner, repo, tag, name string) (string, error) {
	rel := &github.RepositoryRelease{
		TagName:    github.String(tag),
		Name:       github.String(name),
		Prerelease: github.Bool(true),
	}

	created, _, err := g.client.Repositories.CreateRelease(ctx, owner, repo, rel)
	if err != nil {
		return "", fmt.Errorf("create release %s in %s/%s: %w", tag, owner, repo, err)
	}

	return created.GetHTMLURL(), nil
}

// Remote adapts GitHubClient to the TagSource contract for a fixed
// repository and manifest path.
type Remote struct {
	Hub      *GitHubClient
	Owner    string
	Repo     string
	Manifest string
}

// ListTags implements TagSource.
func (r *Remote) ListTags(ctx context.Context, pattern string) ([]string, error) {
	return r.Hub.ListTags(ctx, r.Owner, r.Repo, pattern)
}

// ManifestVersion implements TagSource by fetching the manifest from the
// default branch.
func (r *Remote) ManifestVersion(ctx context.Context) (string, error) {
	data, err := r.Hub.FileContent(ctx, r.Owner, r.Repo, r.Manifest)
	if err != nil {
		return "", err
	}

	return manifest.Parse(r.Manifest, data)
}

// ParseRepo splits an "owner/repo" spec or GitHub URL into its parts.
func ParseRepo(spec string) (owner, repo string, err error) {
	s := strings.TrimPrefix(spec, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, ".git")
	s = strings.TrimSuffix(s, "/")

	parts := strings.SplitN(s, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse GitHub repo from %q", spec)
	}

	return parts[0], parts[1], nil
}
