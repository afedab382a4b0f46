// Package metrics defines observability hooks for site builds, with a
// Prometheus-backed implementation used by the preview server.
package metrics

import "time"

// Recorder defines observability hooks for build metrics. Injection is
// optional: callers without a metrics endpoint pass NoopRecorder.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed
	AddPagesRendered(n int)
	AddAssetsCopied(n int)
	AddWarnings(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) AddPagesRendered(int)                       {}
func (NoopRecorder) AddAssetsCopied(int)                        {}
func (NoopRecorder) AddWarnings(int)                            {}
