package errors

import (
	"log/slog"
)

// Policy applies the run-wide strict/lenient decision uniformly to every
// diagnostic kind. In lenient mode diagnostics are logged as warnings and the
// surrounding operation continues; in strict mode they are returned to the
// caller and abort the run. Errors outside the taxonomy (plain I/O failures)
// never go through the policy and stay fatal.
type Policy struct {
	Strict bool

	// Warnings counts diagnostics that were downgraded to log warnings.
	Warnings int
}

// Handle routes a diagnostic according to the policy. The returned error is
// nil in lenient mode.
func (p *Policy) Handle(err *SiteError) error {
	if err == nil {
		return nil
	}
	if p.Strict {
		err.Severity = SeverityFatal
		return err
	}
	p.Warnings++
	slog.Warn(err.Message, slog.String("kind", string(err.Kind)), slog.String("path", err.Path))
	return nil
}
