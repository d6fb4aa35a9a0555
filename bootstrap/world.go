package bootstrap

import (
	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/adjacency"
	"github.com/forgottenhistory/archon-engine/ai"
	"github.com/forgottenhistory/archon-engine/command"
	"github.com/forgottenhistory/archon-engine/country"
	"github.com/forgottenhistory/archon-engine/diplomacy"
	"github.com/forgottenhistory/archon-engine/event"
	"github.com/forgottenhistory/archon-engine/loader/areas"
	"github.com/forgottenhistory/archon-engine/loader/bitmap"
	"github.com/forgottenhistory/archon-engine/loader/definitioncsv"
	"github.com/forgottenhistory/archon-engine/mapmode"
	"github.com/forgottenhistory/archon-engine/province"
	"github.com/forgottenhistory/archon-engine/registry"
	"github.com/forgottenhistory/archon-engine/rng"
	"github.com/forgottenhistory/archon-engine/save"
	"github.com/forgottenhistory/archon-engine/texture"
	"github.com/forgottenhistory/archon-engine/timesys"
)

// World bundles every subsystem handle the orchestrator constructs, in the
// explicit-construction-order style spec §9 calls for in place of Unity's
// FindFirstObjectByType scene wiring. A GameState hub wraps exactly one
// World and adds the host-facing API surface (spec §6); World itself knows
// nothing about that surface.
type World struct {
	Registries *registry.Set
	Provinces  *province.Store
	Countries  *country.Store
	Adjacency  *adjacency.Graph
	Textures   *texture.Manager
	Diplomacy  *diplomacy.Book
	Time       *timesys.Scheduler
	Events     *event.Bus
	Commands   *command.Bus
	Saves      *save.Manager
	AI         *ai.Scheduler
	MapModes   *mapmode.Framework
	Areas      *areas.Table
	RNG        *rng.Registry
}

// buildCtx is the orchestrator's scratch state: the World under
// construction plus intermediate data later phases need but that has no
// home on the finished World (raw pixel buffers, parsed-but-not-yet-applied
// kv trees). Keeping these off World keeps the finished hub's surface
// limited to what a running game actually queries.
type buildCtx struct {
	cfg   Config
	world *World

	mapWidth, mapHeight int
	provincePixels      []archon.ProvinceId // per-pixel dense ProvinceId, row-major

	mapBitmap *bitmap.Buffer
	defTable  *definitioncsv.Table
}
