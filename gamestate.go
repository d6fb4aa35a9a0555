package archon

import (
	"time"

	"github.com/google/uuid"

	"github.com/forgottenhistory/archon-engine/adjacency"
	"github.com/forgottenhistory/archon-engine/ai"
	"github.com/forgottenhistory/archon-engine/bootstrap"
	"github.com/forgottenhistory/archon-engine/command"
	"github.com/forgottenhistory/archon-engine/country"
	"github.com/forgottenhistory/archon-engine/diplomacy"
	"github.com/forgottenhistory/archon-engine/event"
	"github.com/forgottenhistory/archon-engine/loader/areas"
	"github.com/forgottenhistory/archon-engine/mapmode"
	"github.com/forgottenhistory/archon-engine/modifier"
	"github.com/forgottenhistory/archon-engine/province"
	"github.com/forgottenhistory/archon-engine/registry"
	"github.com/forgottenhistory/archon-engine/rng"
	"github.com/forgottenhistory/archon-engine/save"
	"github.com/forgottenhistory/archon-engine/texture"
	"github.com/forgottenhistory/archon-engine/timesys"
)

// GameState is the single hub a host application holds (spec §6's "these
// are the only entry points the engine guarantees"). It wraps exactly one
// *bootstrap.World and adds the host-facing API surface; World itself is
// bootstrap's own construction-order scratch type and knows nothing about
// this surface, matching spec §9's "explicit construction order, no
// service locator" note.
type GameState struct {
	world *bootstrap.World

	// countryModifiers holds country-level decaying effects (stability,
	// unrest) per SPEC_FULL.md §3.10's modifier-system supplement. These
	// live here rather than on country.Cold because country.Cold is an
	// LRU-bounded display-data cache (spec §3.3): anything authoritative
	// to the simulation would silently vanish on eviction.
	countryModifiers map[CountryId]*modifier.Stack[uint16]
}

// New runs the bootstrap pipeline to completion and wraps the result in a
// GameState. onProgress, if non-nil, receives one report per phase exactly
// as bootstrap.Runner.Execute reports them.
func New(cfg bootstrap.Config, onProgress func(bootstrap.ProgressReport)) (*GameState, error) {
	world, err := bootstrap.Run(cfg, onProgress)
	if err != nil {
		return nil, err
	}
	gs := &GameState{
		world:            world,
		countryModifiers: make(map[CountryId]*modifier.Stack[uint16]),
	}
	world.Commands.RegisterDecoder(command.KindChangeOwner, command.DecodeChangeOwner)
	world.Time.SetHourCallback(gs.onHour)
	if err := gs.RegisterDefaultSections(); err != nil {
		return nil, err
	}
	return gs, nil
}

// onHour is the tick scheduler's per-hour callback (timesys.Scheduler
// calls it before emitting that hour's HourElapsed event, so command
// execution always precedes any listener observing the hour it ran in,
// per spec §5's ordering guarantee). It executes every command scheduled
// for this tick, publishes the resulting province mutations, and prunes
// decayed diplomacy modifiers once per simulated day.
func (gs *GameState) onHour(tick Tick) error {
	if err := gs.world.Commands.ProcessTick(tick, gs); err != nil {
		return err
	}
	gs.world.Provinces.SwapBuffers()
	if tick%24 == 0 {
		gs.world.Diplomacy.PruneModifiers(tick)
	}
	return nil
}

// ProcessFrame drains the event bus and delivers the accumulated dirty-
// province set to the active map mode (spec §5: "events emitted in tick N
// are delivered no later than frame N+1"). Call this once per host render
// frame, after zero or more Tick calls.
func (gs *GameState) ProcessFrame() {
	gs.world.Events.ProcessEvents()
	gs.world.MapModes.Update()
}

// Tick advances the simulation clock by realDeltaSeconds of wall-clock
// time, executing every command whose scheduled tick falls within that
// span (spec §4.4/§4.5). Returns the first command-execution error
// encountered, per spec §4.5's "execution failure is fatal" semantics;
// the caller is expected to attempt an emergency save and unwind.
func (gs *GameState) Tick(realDeltaSeconds float64) error {
	return gs.world.Time.Advance(realDeltaSeconds)
}

// SetProvinceOwner mutates province's owner and controller, satisfying
// command.ChangeOwner's provinceOwnerSetter interface via an unexported
// method-set match (spec §4.5's command-execution path never imports the
// root package). It emits ProvinceOwnerChanged immediately and
// CountryDestroyed if the previous owner now holds no provinces at all
// (spec §3.3 "a country with zero provinces is destroyed").
func (gs *GameState) SetProvinceOwner(p ProvinceId, newOwner, newController CountryId) error {
	oldOwner := gs.world.Provinces.Owner(p)
	if err := gs.world.Provinces.SetOwner(p, newOwner, newController, gs.world.Countries.Len()); err != nil {
		return err
	}
	tick := gs.world.Time.Tick()
	event.Emit(gs.world.Events, event.ProvinceOwnerChanged{Province: p, OldOwner: oldOwner, NewOwner: newOwner, Tick: tick})

	if oldOwner != NoCountry && oldOwner != newOwner && !gs.countryOwnsAnyProvince(oldOwner) {
		event.Emit(gs.world.Events, event.CountryDestroyed{Country: oldOwner, Tick: tick})
	}
	return nil
}

func (gs *GameState) countryOwnsAnyProvince(c CountryId) bool {
	return gs.world.Provinces.GetCountryProvinceCount(c) > 0
}

// ProvinceExists, ProvinceIsOcean, and CountryCount satisfy
// command.ChangeOwner's provinceValidator interface, letting Validate
// catch an unknown province, an ocean province, or an out-of-range owner
// before Execute ever runs (spec §4.5).
func (gs *GameState) ProvinceExists(id ProvinceId) bool {
	return gs.world.Provinces.Exists(id)
}

func (gs *GameState) ProvinceIsOcean(id ProvinceId) bool {
	return gs.world.Provinces.Hot(id).IsOcean()
}

func (gs *GameState) CountryCount() int {
	return gs.world.Countries.Len()
}

// DeclareWar and MakePeace mutate the diplomacy book and emit the
// corresponding event. Unlike ChangeOwner, spec §3.8 names no wire-command
// frame for diplomacy actions, so these are plain GameState methods rather
// than command.Command implementations; a networked host is expected to
// wrap them in its own command type if it needs replication.
func (gs *GameState) DeclareWar(attacker, defender CountryId) {
	gs.world.Diplomacy.DeclareWar(attacker, defender)
	event.Emit(gs.world.Events, event.WarDeclared{Attacker: attacker, Defender: defender, Tick: gs.world.Time.Tick()})
}

func (gs *GameState) MakePeace(attacker, defender CountryId) {
	gs.world.Diplomacy.MakePeace(attacker, defender)
	event.Emit(gs.world.Events, event.PeaceMade{Attacker: attacker, Defender: defender, Tick: gs.world.Time.Tick()})
}

// SetMapMode activates slot and emits MapModeChanged.
func (gs *GameState) SetMapMode(slot int) error {
	old, _ := gs.world.MapModes.NameOf(gs.world.MapModes.ActiveSlot())
	if err := gs.world.MapModes.SetMode(slot); err != nil {
		return err
	}
	newName, _ := gs.world.MapModes.NameOf(slot)
	event.Emit(gs.world.Events, event.MapModeChanged{Old: old, New: newName})
	return nil
}

// Save writes the current simulation state plus every command submitted
// since the last save (or process start) to path, and resets the command
// log so the next save's log covers only the next interval (spec §4.12).
func (gs *GameState) Save(path, scenarioName string) error {
	meta := save.Metadata{
		DisplayName:  scenarioName,
		TimestampUTC: time.Now().UTC().Unix(),
		Tick:         gs.world.Time.Tick(),
		Speed:        uint8(gs.world.Time.Speed()),
		ScenarioName: scenarioName,
		ScenarioID:   uuid.New(),
	}
	if err := gs.world.Saves.Save(path, meta, gs.world.Commands.CommandLog()); err != nil {
		event.Emit(gs.world.Events, event.SaveFailed{Path: path, Err: err})
		return err
	}
	gs.world.Commands.ResetCommandLog()
	event.Emit(gs.world.Events, event.SaveCompleted{Path: path, Tick: meta.Tick})
	return nil
}

// Load restores every registered section's state from path and reports the
// result, leaving determinism verification to the caller (typically via
// save.VerifyDeterminism(log, result, gs) immediately afterward).
func (gs *GameState) Load(path string) (save.LoadResult, error) {
	return gs.world.Saves.Load(path)
}

// Replay satisfies save.Replayer: it re-executes every command in
// commandLog directly against this GameState (bypassing Validate, since
// this replays already-committed history rather than live submission),
// publishes the resulting province mutations, and returns the checksum a
// determinism check compares against the save file's recorded one.
func (gs *GameState) Replay(commandLog [][]byte) (checksum uint32, err error) {
	for _, wire := range commandLog {
		cmd, err := gs.world.Commands.Decode(wire)
		if err != nil {
			return 0, err
		}
		if err := cmd.Execute(gs); err != nil {
			return 0, err
		}
	}
	gs.world.Provinces.SwapBuffers()
	return gs.world.Saves.ChecksumSections()
}

// --- spec §6 query facades ---

func (gs *GameState) Provinces() *province.Store   { return gs.world.Provinces }
func (gs *GameState) Countries() *country.Store    { return gs.world.Countries }
func (gs *GameState) Time() *timesys.Scheduler     { return gs.world.Time }
func (gs *GameState) Events() *event.Bus           { return gs.world.Events }
func (gs *GameState) Commands() *command.Bus       { return gs.world.Commands }
func (gs *GameState) Adjacency() *adjacency.Graph  { return gs.world.Adjacency }
func (gs *GameState) Pathfinding() *adjacency.Graph { return gs.world.Adjacency }
func (gs *GameState) Resources() *registry.Registry[registry.Resource] {
	return gs.world.Registries.Resources
}
func (gs *GameState) Modifiers() *diplomacy.Book { return gs.world.Diplomacy }
func (gs *GameState) SaveManager() *save.Manager { return gs.world.Saves }
func (gs *GameState) AI() *ai.Scheduler          { return gs.world.AI }
func (gs *GameState) MapModes() *mapmode.Framework { return gs.world.MapModes }
func (gs *GameState) Areas() *areas.Table          { return gs.world.Areas }
func (gs *GameState) Registries() *registry.Set    { return gs.world.Registries }

// RNG returns the named deterministic stream (spec §6's `rng(streamName)`),
// creating it on first use.
func (gs *GameState) RNG(streamName string) *rng.Stream {
	return gs.world.RNG.Stream(streamName)
}

// CountryModifiers returns c's country-level modifier stack, allocating an
// empty one on first use.
func (gs *GameState) CountryModifiers(c CountryId) *modifier.Stack[uint16] {
	s, ok := gs.countryModifiers[c]
	if !ok {
		s = &modifier.Stack[uint16]{}
		gs.countryModifiers[c] = s
	}
	return s
}

// --- spec §6 texture manager facade ---

// BindTexturesToMaterial wires every GPU texture slot into material by its
// well-known property name (spec §6's `bind_textures_to_material`).
func (gs *GameState) BindTexturesToMaterial(material texture.Material) {
	gs.world.Textures.BindTexturesToMaterial(material)
}

// ProvinceIDAt returns the province occupying pixel (x,y) of the province
// map (spec §6's `get_province_id_at(x,y)`).
func (gs *GameState) ProvinceIDAt(x, y int) ProvinceId {
	return gs.world.Textures.ProvinceIDAt(x, y)
}
