package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitegen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Generate the HTML site from a source tree"`
	Serve   ServeCmd   `cmd:"" help:"Build, then serve the site locally with optional watch and scheduled rebuilds"`
	Init    InitCmd    `cmd:"" help:"Initialize a starter configuration file"`
	History HistoryCmd `cmd:"" help:"Show recent build records"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the configuration file. Layering flags over the loaded
// values happens per command, in each resolveOptions.
func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}
