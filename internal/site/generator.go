package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markup"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

// Options configures one pipeline run.
type Options struct {
	Source string // source tree root
	Output string // output directory
	Prefix string // site link prefix
	// TemplateName selects a built-in template by name; it overrides any
	// template.html discovered in the source tree.
	TemplateName string
	// File renders a single document instead of walking Source.
	File   string
	Strict bool
	Clean  bool
}

// Result summarizes a completed run.
type Result struct {
	Pages    int
	Assets   int
	Warnings int
	Duration time.Duration
}

// Generator drives the two-pass pipeline. It exclusively owns the ledger:
// created empty at the start of Run, appended during the walk, read-only
// during TOC assembly, discarded when Run returns.
type Generator struct {
	opts     Options
	policy   *sgerrors.Policy
	recorder metrics.Recorder
	template string
}

// New validates options and prepares a Generator. rec may be nil.
func New(opts Options, rec metrics.Recorder) (*Generator, error) {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	g := &Generator{
		opts:     opts,
		policy:   &sgerrors.Policy{Strict: opts.Strict},
		recorder: rec,
	}
	if opts.TemplateName != "" {
		tmpl, err := BuiltinTemplate(opts.TemplateName)
		if err != nil {
			return nil, err
		}
		g.template = tmpl
	}
	return g, nil
}

// Run executes the pipeline: first pass (walk, render, copy), second pass
// (per-page TOC assembly and substitution), persist.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res, err := g.run(ctx)
	elapsed := time.Since(start)
	g.recorder.ObserveBuildDuration(elapsed)
	if err != nil {
		g.recorder.IncBuildOutcome("failed")
		return nil, err
	}
	res.Duration = elapsed
	if res.Warnings > 0 {
		g.recorder.IncBuildOutcome("warning")
	} else {
		g.recorder.IncBuildOutcome("success")
	}
	return res, nil
}

func (g *Generator) run(ctx context.Context) (*Result, error) {
	outDir, err := filepath.Abs(g.opts.Output)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}
	if g.opts.Clean {
		slog.Debug("cleaning output directory", logfields.Output(outDir))
		if err := os.RemoveAll(outDir); err != nil {
			return nil, fmt.Errorf("clean output directory: %w", err)
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	walkStart := time.Now()
	ledger, assets, err := g.firstPass(outDir)
	g.recorder.ObserveStageDuration("walk", time.Since(walkStart))
	slog.Debug("stage finished", logfields.Stage("walk"), slog.Duration("duration", time.Since(walkStart)))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assembleStart := time.Now()
	pages, err := g.secondPass(ledger, outDir)
	g.recorder.ObserveStageDuration("assemble", time.Since(assembleStart))
	slog.Debug("stage finished", logfields.Stage("assemble"), slog.Duration("duration", time.Since(assembleStart)))
	if err != nil {
		return nil, err
	}

	g.recorder.AddPagesRendered(pages)
	g.recorder.AddAssetsCopied(assets)
	g.recorder.AddWarnings(g.policy.Warnings)
	return &Result{Pages: pages, Assets: assets, Warnings: g.policy.Warnings}, nil
}

// firstPass builds the ledger, either by walking the source tree or, in
// single-file mode, by rendering the one document at depth 1.
func (g *Generator) firstPass(outDir string) (Ledger, int, error) {
	if g.opts.File != "" {
		ledger, err := g.renderSingleFile(g.opts.File)
		return ledger, 0, err
	}

	root, err := filepath.Abs(g.opts.Source)
	if err != nil {
		return nil, 0, fmt.Errorf("resolve source path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, fmt.Errorf("stat source path: %w", err)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("source path %s is not a directory (use --file for single documents)", root)
	}

	walker := &Walker{
		Root:   root,
		OutDir: outDir,
		Renderer: &Renderer{
			Root:     root,
			Prefix:   g.opts.Prefix,
			Template: g.template,
			Policy:   g.policy,
		},
		Policy: g.policy,
	}
	ledger, err := walker.Walk()
	if err != nil {
		return nil, 0, err
	}
	return ledger, walker.AssetsCopied, nil
}

func (g *Generator) renderSingleFile(file string) (Ledger, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("resolve file path: %w", err)
	}
	if !markup.IsMarkupPath(abs) {
		return nil, fmt.Errorf("%s is not a recognized markup document", abs)
	}
	r := &Renderer{
		Root:     filepath.Dir(abs),
		Prefix:   g.opts.Prefix,
		Template: g.template,
		Policy:   g.policy,
	}
	html, err := r.RenderPage(abs)
	if err != nil {
		return nil, err
	}
	rel := markup.RenderedPath(filepath.Base(abs))
	return Ledger{{Kind: EntryPage, Depth: 1, RelPath: rel, HTML: html}}, nil
}

// secondPass assembles each page's TOC over the full ledger, substitutes the
// placeholder and persists the page.
func (g *Generator) secondPass(ledger Ledger, outDir string) (int, error) {
	pages := 0
	for _, e := range ledger {
		if e.Kind != EntryPage {
			continue
		}
		toc := AssembleTOC(ledger, e.Depth, e.RelPath, g.opts.Prefix)
		html := strings.ReplaceAll(e.HTML, TOCMarker, toc)

		dst := filepath.Join(outDir, filepath.FromSlash(e.RelPath))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return pages, fmt.Errorf("create output directory: %w", err)
		}
		slog.Debug("writing page", logfields.File(e.RelPath), logfields.Depth(e.Depth))
		if err := os.WriteFile(dst, []byte(html), 0o644); err != nil {
			return pages, fmt.Errorf("write page %s: %w", e.RelPath, err)
		}
		pages++
	}
	return pages, nil
}
