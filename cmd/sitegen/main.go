package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/sitegen/cmd/sitegen/commands"
	"github.com/alecthomas/kong"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("sitegen"),
		kong.Description("Static site generator for djot and Markdown document trees."),
		kong.UsageOnError(),
		kong.Vars{"version": commands.Version},
		kong.Bind(cli),
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()})
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
