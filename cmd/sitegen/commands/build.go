package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/history"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/site"
	"git.home.luguber.info/inful/sitegen/internal/source"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Source   string `arg:"" optional:"" help:"Source directory to generate the site from"`
	Output   string `short:"o" help:"Output directory for the generated site"`
	File     string `short:"f" help:"Render a single file instead of a directory"`
	Clean    bool   `help:"Clean the output directory before generating the site"`
	Prefix   string `help:"Site link prefix for deployment under a non-root URL path"`
	Template string `short:"t" help:"Built-in template name (overrides any template.html)"`
	Strict   bool   `help:"Treat build warnings as errors"`
	Repo     string `help:"Build from a remote git repository instead of a local directory"`
	Ref      string `help:"Branch to check out when --repo is used"`
	Subdir   string `help:"Directory inside the repository to use as the source root"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	opts := b.resolveOptions(cfg)
	ctx := context.Background()

	if b.Repo != "" {
		if b.File != "" {
			return fmt.Errorf("--repo and --file are mutually exclusive")
		}
		workDir, err := os.MkdirTemp("", "sitegen-checkout-*")
		if err != nil {
			return fmt.Errorf("create workspace: %w", err)
		}
		defer func() {
			if err := os.RemoveAll(workDir); err != nil {
				slog.Warn("failed to clean up workspace", logfields.Path(workDir), logfields.Error(err))
			}
		}()
		srcRoot, err := source.Clone(ctx, source.Repo{URL: b.Repo, Ref: b.Ref, Subdir: b.Subdir}, workDir)
		if err != nil {
			return err
		}
		opts.Source = srcRoot
	}

	return RunBuild(ctx, cfg, opts)
}

// resolveOptions layers CLI flags over configuration values.
func (b *BuildCmd) resolveOptions(cfg *config.Config) site.Options {
	opts := site.Options{
		Source:       cfg.Source,
		Output:       cfg.Output.Directory,
		Prefix:       cfg.Site.Prefix,
		TemplateName: cfg.Site.Template,
		Strict:       cfg.Strict,
		Clean:        cfg.Output.Clean,
		File:         b.File,
	}
	if b.Source != "" {
		opts.Source = b.Source
	}
	if b.Output != "" {
		opts.Output = b.Output
	}
	if b.Prefix != "" {
		opts.Prefix = b.Prefix
	}
	if b.Template != "" {
		opts.TemplateName = b.Template
	}
	if b.Strict {
		opts.Strict = true
	}
	if b.Clean {
		opts.Clean = true
	}
	return opts
}

// RunBuild executes one pipeline run, logs the outcome and records it in the
// build history when enabled.
func RunBuild(ctx context.Context, cfg *config.Config, opts site.Options) error {
	buildID := uuid.NewString()
	started := time.Now()
	slog.Info("starting site build",
		logfields.BuildID(buildID),
		logfields.Source(opts.Source),
		logfields.Output(opts.Output),
		slog.Bool("strict", opts.Strict))

	generator, err := site.New(opts, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	res, runErr := generator.Run(ctx)

	if cfg.History.Enabled {
		recordBuild(ctx, cfg, buildID, started, opts, res, runErr)
	}
	if runErr != nil {
		return runErr
	}

	slog.Info("site build finished",
		logfields.BuildID(buildID),
		logfields.Pages(res.Pages),
		logfields.Assets(res.Assets),
		logfields.Warnings(res.Warnings),
		slog.Duration("duration", res.Duration))
	return nil
}

func recordBuild(ctx context.Context, cfg *config.Config, buildID string, started time.Time, opts site.Options, res *site.Result, runErr error) {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("could not open build history", logfields.Error(err))
		return
	}
	defer store.Close()

	rec := history.Record{
		ID:        buildID,
		StartedAt: started,
		Duration:  time.Since(started),
		Source:    opts.Source,
		Output:    opts.Output,
		Strict:    opts.Strict,
		Outcome:   "failed",
	}
	if runErr == nil {
		rec.Pages = res.Pages
		rec.Assets = res.Assets
		rec.Warnings = res.Warnings
		rec.Outcome = "success"
		if res.Warnings > 0 {
			rec.Outcome = "warning"
		}
	}
	if err := store.Append(ctx, rec); err != nil {
		slog.Warn("could not record build history", logfields.Error(err))
	}
}
