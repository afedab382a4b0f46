package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID  = "build_id"
	KeyStage    = "stage"
	KeyPath     = "path"
	KeyFile     = "file"
	KeySource   = "source"
	KeyOutput   = "output"
	KeyURL      = "url"
	KeyFormat   = "format"
	KeyDepth    = "depth"
	KeyPages    = "pages"
	KeyAssets   = "assets"
	KeyWarnings = "warnings"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr  { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func File(f string) slog.Attr      { return slog.String(KeyFile, f) }
func Source(s string) slog.Attr    { return slog.String(KeySource, s) }
func Output(o string) slog.Attr    { return slog.String(KeyOutput, o) }
func URL(u string) slog.Attr       { return slog.String(KeyURL, u) }
func Format(f string) slog.Attr    { return slog.String(KeyFormat, f) }
func Depth(d int) slog.Attr        { return slog.Int(KeyDepth, d) }
func Pages(n int) slog.Attr        { return slog.Int(KeyPages, n) }
func Assets(n int) slog.Attr       { return slog.Int(KeyAssets, n) }
func Warnings(n int) slog.Attr     { return slog.Int(KeyWarnings, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
