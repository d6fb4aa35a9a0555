// Package bootstrap implements the phased initialization orchestrator
// (spec §4.7's "Initialization orchestration" / §9's coroutine-replacement
// note): a fixed-order sequence of phases — static registries, bitmap +
// definition, province registry, country registry, scenario history,
// adjacency scan, map textures, "everything ready" — each reporting
// progress over an explicit (startPct, endPct) range instead of a
// coroutine yield, with per-phase rollback on a required-phase failure.
//
// Grounded on the teacher's state.Manager Run(ctx) loop (one driver
// stepping through a fixed sequence of state transitions) generalized from
// "one step per incoming message" to "one step per load phase"; the
// poll/cancel shape phase.go adds is this package's own construction,
// since nothing in the example pack implements coroutine-style phased
// loading — spec §9 calls for an explicit phase object in place of
// `IEnumerator`/`yield return null`, and that object's poll() contract is
// authored directly from that paragraph.
package bootstrap

import (
	"log/slog"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/loader/kv"
)

// Config carries every bootstrap input: where to read data files from, and
// the scenario parameters the historical-layering phase needs.
type Config struct {
	// DataDir is the root of the mod/game data tree. Subpaths below are
	// resolved relative to it using the Paradox-style layout the other
	// example repos' data-driven loaders assume (map/, common/,
	// history/provinces/, history/countries/).
	DataDir string

	// ScenarioName is a human label recorded in save metadata; it has no
	// effect on loading.
	ScenarioName string

	// ScenarioStart is T0 for historical date-layering (spec §4.7.4):
	// every dated province-history sub-block on or before this date is
	// folded into the effective starting state.
	ScenarioStart kv.Date

	// MapModeSlots sizes the MapModeTextureArray slot (spec §4.8).
	MapModeSlots int

	// HumanCountry seeds the AI distance-tier scheduler's initial
	// recompute (spec §4.14). Leave as archon.NoCountry to skip it; the
	// embedding host can call Scheduler.Recompute itself once it knows
	// which country the player controls.
	HumanCountry archon.CountryId

	// MasterSeed seeds the deterministic RNG registry (spec §4.13). Zero
	// means "derive one from ScenarioName and ScenarioStart" so a fresh
	// scenario is still fully reproducible without the host having to pick
	// a seed itself; a loaded save overwrites every stream's seed anyway
	// via rng.Registry.RestoreStreamSeeds.
	MasterSeed uint64

	Log *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Log == nil {
		return slog.Default()
	}
	return c.Log
}
