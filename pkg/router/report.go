package router

import (
	"log/slog"

	"github.com/google/uuid"
)

// RunReport summarizes one outer-loop invocation: the totals the router
// emits on termination, plus a RunID for log correlation across a batch
// of independent runs (see internal/parallel).
type RunReport struct {
	RunID            string
	Iterations       int
	ArcsWithRipup    int
	ArcsWithoutRipup int
	Checksum         uint64
	Failed           bool
	FailedArc        Arc
	ValidationPassed bool
}

// progressReporter emits a structured progress line every ReportEvery
// iterations: iteration count, cumulative
// arcs routed with/without rip-up, the deltas since the last report, and
// the remaining queue depth.
type progressReporter struct {
	log                  *slog.Logger
	lastArcsWithRipup    int
	lastArcsWithoutRipup int
}

func newProgressReporter(log *slog.Logger) *progressReporter {
	return &progressReporter{log: log}
}

func (r *progressReporter) emit(iteration, arcsWithRipup, arcsWithoutRipup, queueDepth int) {
	r.log.Info("routing progress",
		slog.Int("iteration", iteration),
		slog.Int("arcs_with_ripup", arcsWithRipup),
		slog.Int("arcs_without_ripup", arcsWithoutRipup),
		slog.Int("delta_with_ripup", arcsWithRipup-r.lastArcsWithRipup),
		slog.Int("delta_without_ripup", arcsWithoutRipup-r.lastArcsWithoutRipup),
		slog.Int("queue_depth", queueDepth),
	)
	r.lastArcsWithRipup = arcsWithRipup
	r.lastArcsWithoutRipup = arcsWithoutRipup
}

// newRunID mints an identifier for one routing invocation.
func newRunID() string {
	return uuid.NewString()
}
