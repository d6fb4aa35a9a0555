package bootstrap

import (
	"fmt"
	"log/slog"
)

// Status is a phase's outcome, the poll()-result taxonomy spec §9 asks for
// in place of coroutine yields: Progress | Done(result) | Failed(err), plus
// Cancelled for the between-phases abort point spec §5 describes.
type Status int

const (
	StatusProgress Status = iota
	StatusDone
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusProgress:
		return "progress"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "status(?)"
	}
}

// ProgressReport is delivered to the caller's onProgress callback after
// every phase, so a host UI can update between suspension points.
type ProgressReport struct {
	Phase   string
	Percent int
	Status  Status
}

// Phase is one named step of the fixed bootstrap order, covering a
// (StartPct, EndPct) slice of the overall 0-100 progress range (spec §9:
// "Progress values are defined per phase as (startPct, endPct)").
type Phase struct {
	Name             string
	StartPct, EndPct int

	// Run executes the phase against ctx, mutating ctx.world and ctx's
	// scratch fields. A non-nil error fails the phase.
	Run func(ctx *buildCtx) error

	// Rollback discards whatever allocations Run made, called only when a
	// later phase fails after this one completed (spec §4.7: "may roll back
	// by discarding its allocations"). A phase whose own Run fails is not
	// rolled back.
	Rollback func(ctx *buildCtx)
}

// Runner drives the fixed phase sequence to completion, cancellation, or
// failure.
type Runner struct {
	phases []Phase
	log    *slog.Logger
}

// NewRunner creates a Runner over phases, executed in the given order.
func NewRunner(log *slog.Logger, phases []Phase) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{phases: phases, log: log}
}

// Execute runs every phase in order against cfg. cancelled is polled
// between phases (the orchestrator's only suspension point, per spec §5);
// if it returns true before a phase starts, Execute stops and returns
// ErrCancelled without rolling back phases that already succeeded, since a
// cancellation is a caller decision, not a failure. onProgress, if
// non-nil, is called once per completed phase. A required phase's failure
// rolls back every phase that succeeded, in reverse completion order, and
// Execute returns an aggregate error.
func (r *Runner) Execute(cfg Config, cancelled func() bool, onProgress func(ProgressReport)) (*World, error) {
	ctx := &buildCtx{cfg: cfg, world: &World{}}
	var completed []Phase

	for _, phase := range r.phases {
		if cancelled != nil && cancelled() {
			r.log.Warn("bootstrap cancelled", "subsystem", "map_initialization", "nextPhase", phase.Name)
			if onProgress != nil {
				onProgress(ProgressReport{Phase: phase.Name, Percent: phase.StartPct, Status: StatusCancelled})
			}
			return nil, ErrCancelled
		}

		if err := phase.Run(ctx); err != nil {
			r.log.Error("bootstrap phase failed", "subsystem", "map_initialization", "phase", phase.Name, "error", err)
			for i := len(completed) - 1; i >= 0; i-- {
				if completed[i].Rollback != nil {
					completed[i].Rollback(ctx)
				}
			}
			if onProgress != nil {
				onProgress(ProgressReport{Phase: phase.Name, Percent: phase.StartPct, Status: StatusFailed})
			}
			return nil, fmt.Errorf("bootstrap: phase %q: %w", phase.Name, err)
		}

		completed = append(completed, phase)
		r.log.Info("bootstrap phase complete", "subsystem", "map_initialization", "phase", phase.Name, "percent", phase.EndPct)
		if onProgress != nil {
			onProgress(ProgressReport{Phase: phase.Name, Percent: phase.EndPct, Status: StatusDone})
		}
	}

	return ctx.world, nil
}
