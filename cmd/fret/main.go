/*
Package main is the fret CLI tool (Fork RElease Tagger).
It resolves the next fork release tag from a base version and a set of
existing tags, and can run the full release pipeline.
*/
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/forktools/fret"
	"github.com/forktools/fret/config"
	"github.com/forktools/fret/release"
	"github.com/forktools/fret/vcs"
)

type Options struct {
	// Resolution inputs
	OptionsResolve OptionsResolve `group:"Resolution"`
	// Where tags come from
	OptionsSource OptionsSource `group:"Tag source"`
	// Release pipeline
	OptionsRelease OptionsRelease `group:"Release"`
	// Output format
	OptionsOutput OptionsOutput `group:"Output"`
}

type OptionsResolve struct {
	Base   string `short:"b" long:"base"   description:"Base version (overrides the manifest)"`
	Marker string `short:"m" long:"marker" description:"Fork marker prerelease identifier"`
	Config string `short:"c" long:"config" description:"Path to config file" default:".fret.yml"`
}

type OptionsSource struct {
	GitDir   string `short:"C" long:"git-dir"  description:"Local git repository to read tags from (default: stdin)"`
	GitHub   string `short:"g" long:"github"   description:"GitHub repo (owner/repo) to read tags from"`
	Token    string `short:"t" long:"token"    description:"GitHub token" env:"GITHUB_TOKEN"`
	Manifest string `short:"M" long:"manifest" description:"Manifest path relative to the repo root"`
	Pattern  string `short:"P" long:"pattern"  description:"Tag glob pattern for listing (default: all tags)"`
}

type OptionsRelease struct {
	Release bool   `short:"r" long:"release" description:"Run the full release pipeline (requires a local git repo)"`
	DryRun  bool   `short:"n" long:"dry-run" description:"Resolve and print the plan without side effects"`
	Remote  string `long:"remote"            description:"Git remote to push the tag to"`
}

type OptionsOutput struct {
	JSON    bool   `short:"j" long:"json"    description:"Print the full resolution as JSON"`
	Family  bool   `short:"F" long:"family"  description:"Print the active release family instead of resolving"`
	Sort    string `short:"S" long:"sort"    description:"Family sort order" choice:"none" choice:"asc" choice:"desc" default:"asc"`
	Limit   int    `short:"l" long:"limit"   description:"Max family entries (<=0 = unlimited)" default:"0"`
	Verbose bool   `short:"v" long:"verbose" description:"Verbose logging"`
}

func main() {
	var opt Options
	parser := flags.NewParser(&opt, flags.Default|flags.AllowBoolValues)
	parser.LongDescription = `fret — Fork RElease Tagger.
Computes the next release tag for a downstream fork: reads the base version
from the project manifest, finds the fork's release family among existing
tags, and bumps its counter. Can also tag, push, and publish the release.`
	if _, err := parser.Parse(); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level := zerolog.WarnLevel
	if opt.OptionsOutput.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg := loadConfig(opt, log)

	if opt.OptionsRelease.Release {
		runRelease(opt, cfg, log)
		return
	}

	base, tags := gather(opt, cfg, log)

	fOpt := fret.Options{Marker: cfg.Marker}

	if opt.OptionsOutput.Family {
		fam, err := fret.Family(base, tags, fOpt, fret.ParseSort(opt.OptionsOutput.Sort))
		if err != nil {
			log.Fatal().Err(err).Msg("family listing failed")
		}
		if opt.OptionsOutput.Limit > 0 && opt.OptionsOutput.Limit < len(fam) {
			fam = fam[:opt.OptionsOutput.Limit]
		}
		for _, t := range fam {
			fmt.Println(t)
		}
		return
	}

	next, err := fret.Resolve(base, tags, fOpt)
	if err != nil {
		log.Fatal().Err(err).Msg("resolution failed")
	}

	if opt.OptionsOutput.JSON {
		out, err := json.MarshalIndent(next, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("encode result")
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println(next.Tag)
}

// loadConfig layers the config file under CLI overrides.
func loadConfig(opt Options, log zerolog.Logger) *config.Config {
	cfg, err := config.Load(opt.OptionsResolve.Config)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal().Err(err).Msg("load config")
		}
		cfg = config.Default()
	}

	if s := opt.OptionsResolve.Marker; s != "" {
		cfg.Marker = fret.ParseMarker(s)
	}
	if s := opt.OptionsSource.Manifest; s != "" {
		cfg.Manifest = s
	}
	if s := opt.OptionsRelease.Remote; s != "" {
		cfg.Remote = s
	}
	if s := opt.OptionsSource.GitHub; s != "" {
		cfg.Repo = s
	}
	cfg.Token = opt.OptionsSource.Token
	cfg.DryRun = opt.OptionsRelease.DryRun

	return cfg
}

// gather produces the (base version, tag set) pair for resolution.
func gather(opt Options, cfg *config.Config, log zerolog.Logger) (string, []string) {
	ctx := context.Background()

	var src vcs.TagSource
	switch {
	case opt.OptionsSource.GitHub != "":
		owner, repo, err := vcs.ParseRepo(opt.OptionsSource.GitHub)
		if err != nil {
			log.Fatal().Err(err).Msg("bad --github value")
		}
		src = &vcs.Remote{
			Hub:      vcs.NewGitHubClient(cfg.Token),
			Owner:    owner,
			Repo:     repo,
			Manifest: cfg.Manifest,
		}

	case opt.OptionsSource.GitDir != "":
		src = &vcs.Git{Dir: opt.OptionsSource.GitDir, Manifest: cfg.Manifest}

	default:
		base := opt.OptionsResolve.Base
		if base == "" {
			log.Fatal().Msg("--base is required when tags come from stdin")
		}
		return base, readStdin(log)
	}

	tags, err := src.ListTags(ctx, opt.OptionsSource.Pattern)
	if err != nil {
		log.Fatal().Err(err).Msg("list tags")
	}

	base := opt.OptionsResolve.Base
	if base == "" {
		if base, err = src.ManifestVersion(ctx); err != nil {
			log.Fatal().Err(err).Msg("read manifest version")
		}
	}

	return base, tags
}

func runRelease(opt Options, cfg *config.Config, log zerolog.Logger) {
	dir := opt.OptionsSource.GitDir
	if dir == "" {
		dir = "."
	}

	runner := &release.Runner{
		Config: cfg,
		Git:    &vcs.Git{Dir: dir, Manifest: cfg.Manifest},
		Dir:    dir,
		Log:    log,
	}
	if cfg.Repo != "" && cfg.Token != "" {
		runner.Hub = vcs.NewGitHubClient(cfg.Token)
	}

	next, err := runner.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("release failed")
	}

	fmt.Println(next.Tag)
}

// readStdin reads tags line by line, skipping blanks.
func readStdin(log zerolog.Logger) []string {
	in := make([]string, 0, 1024)
	sc := bufio.NewScanner(os.Stdin)
	const maxLine = 10 * 1024 * 1024
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, maxLine)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			in = append(in, s)
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatal().Err(err).Msg("read stdin")
	}

	return in
}
