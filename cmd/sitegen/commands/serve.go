package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/preview"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// ServeCmd implements the 'serve' command: build once, then serve the output
// directory locally. Rebuilds are always full pipeline runs.
type ServeCmd struct {
	Source       string        `arg:"" optional:"" help:"Source directory to generate the site from"`
	Output       string        `short:"o" help:"Output directory for the generated site"`
	Port         int           `short:"p" help:"Port to listen on"`
	Watch        bool          `short:"w" help:"Rebuild when the source tree changes"`
	RebuildEvery time.Duration `help:"Rebuild on a fixed interval (e.g. 5m); 0 disables"`
	Prefix       string        `help:"Site link prefix for deployment under a non-root URL path"`
	Template     string        `short:"t" help:"Built-in template name (overrides any template.html)"`
	Strict       bool          `help:"Treat build warnings as errors"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	opts := site.Options{
		Source:       cfg.Source,
		Output:       cfg.Output.Directory,
		Prefix:       cfg.Site.Prefix,
		TemplateName: cfg.Site.Template,
		Strict:       cfg.Strict,
	}
	if s.Source != "" {
		opts.Source = s.Source
	}
	if s.Output != "" {
		opts.Output = s.Output
	}
	if s.Prefix != "" {
		opts.Prefix = s.Prefix
	}
	if s.Template != "" {
		opts.TemplateName = s.Template
	}
	if s.Strict {
		opts.Strict = true
	}
	port := cfg.Serve.Port
	if s.Port != 0 {
		port = s.Port
	}
	watch := cfg.Serve.Watch || s.Watch
	rebuildEvery := s.RebuildEvery
	if rebuildEvery == 0 && cfg.Serve.RebuildEvery != "" {
		d, err := time.ParseDuration(cfg.Serve.RebuildEvery)
		if err != nil {
			return fmt.Errorf("invalid serve.rebuild_every: %w", err)
		}
		rebuildEvery = d
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)
	rebuild := func(ctx context.Context) error {
		g, err := site.New(opts, recorder)
		if err != nil {
			return err
		}
		_, err = g.Run(ctx)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initial build; in lenient mode a failed first build still leaves
	// whatever output already existed servable.
	if err := rebuild(ctx); err != nil {
		return err
	}

	return preview.Run(ctx, preview.Options{
		SourceDir:    opts.Source,
		OutputDir:    opts.Output,
		Port:         port,
		Watch:        watch,
		RebuildEvery: rebuildEvery,
		Registry:     registry,
		Rebuild:      rebuild,
	})
}
