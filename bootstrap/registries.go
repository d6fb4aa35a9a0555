package bootstrap

import (
	"path/filepath"

	"github.com/forgottenhistory/archon-engine/command"
	"github.com/forgottenhistory/archon-engine/diplomacy"
	"github.com/forgottenhistory/archon-engine/event"
	"github.com/forgottenhistory/archon-engine/registry"
	"github.com/forgottenhistory/archon-engine/rng"
	"github.com/forgottenhistory/archon-engine/save"
	"github.com/forgottenhistory/archon-engine/timesys"
)

// loadStaticRegistries populates a registry.Set from the optional
// common/{terrain,buildings,units,cultures,religions,resources}.txt files
// (spec §4.7's "static registries" phase, §3.4's "immutable static
// tables"), and constructs every data-independent core service (event
// bus, command bus, diplomacy book, save manager, tick scheduler) that has
// no loader dependency of its own. Every data file is optional per-file
// (spec §5's propagation policy); a missing file simply leaves that
// registry empty.
func loadStaticRegistries(ctx *buildCtx) error {
	log := ctx.cfg.logger()
	set := registry.NewSet()
	commonDir := filepath.Join(ctx.cfg.DataDir, "common")

	ctx.world.Events = event.New(log)
	ctx.world.Commands = command.New(log)
	ctx.world.Commands.SetEventBus(ctx.world.Events)
	ctx.world.Diplomacy = diplomacy.NewBook()
	ctx.world.Saves = save.NewManager(log)
	ctx.world.Time = timesys.New(ctx.world.Events, log, ctx.cfg.ScenarioStart.Year, ctx.cfg.ScenarioStart.Month, ctx.cfg.ScenarioStart.Day)
	ctx.world.RNG = rng.NewRegistry(deriveMasterSeed(ctx.cfg))

	if pairs, ok := readKVFile(log, filepath.Join(commonDir, "terrain.txt")); ok {
		for _, p := range pairs {
			set.Terrains.Register(p.Key, registry.Terrain{
				Key:               p.Key,
				MovementCost:      int16(intOf(p.Value.Block, "movement_cost", 100)),
				DefenceBonus:      int16(intOf(p.Value.Block, "defence", 0)),
				AllowsAgriculture: !boolOf(p.Value.Block, "is_water", false),
			})
		}
	}
	if pairs, ok := readKVFile(log, filepath.Join(commonDir, "religions.txt")); ok {
		for _, p := range pairs {
			name, _ := scalarOf(p.Value.Block, "display_name")
			group, _ := scalarOf(p.Value.Block, "group")
			set.Religions.Register(p.Key, registry.Religion{Key: p.Key, DisplayName: name, Group: group})
		}
	}
	if pairs, ok := readKVFile(log, filepath.Join(commonDir, "cultures.txt")); ok {
		for _, p := range pairs {
			name, _ := scalarOf(p.Value.Block, "display_name")
			group, _ := scalarOf(p.Value.Block, "graphical_group")
			set.Cultures.Register(p.Key, registry.Culture{Key: p.Key, DisplayName: name, GraphicalGroup: group})
		}
	}
	if pairs, ok := readKVFile(log, filepath.Join(commonDir, "resources.txt")); ok {
		for _, p := range pairs {
			name, _ := scalarOf(p.Value.Block, "display_name")
			set.Resources.Register(p.Key, registry.Resource{
				Key:         p.Key,
				DisplayName: name,
				BaseValue:   intOf(p.Value.Block, "base_value", 0),
			})
		}
	}
	if pairs, ok := readKVFile(log, filepath.Join(commonDir, "buildings.txt")); ok {
		for _, p := range pairs {
			set.Buildings.Register(p.Key, registry.Building{
				Key:            p.Key,
				ConstructTicks: uint32(intOf(p.Value.Block, "construct_ticks", 0)),
				RequiresCoast:  boolOf(p.Value.Block, "requires_coast", false),
			})
		}
	}
	if pairs, ok := readKVFile(log, filepath.Join(commonDir, "units.txt")); ok {
		for _, p := range pairs {
			set.Units.Register(p.Key, registry.UnitType{
				Key:           p.Key,
				UpkeepPerHour: intOf(p.Value.Block, "upkeep_per_hour", 0),
				BaseStrength:  int32(intOf(p.Value.Block, "base_strength", 0)),
			})
		}
	}

	set.Build()
	ctx.world.Registries = set
	return nil
}

func rollbackStaticRegistries(ctx *buildCtx) {
	ctx.world.Registries = nil
	ctx.world.Events = nil
	ctx.world.Commands = nil
	ctx.world.Diplomacy = nil
	ctx.world.Saves = nil
	ctx.world.Time = nil
	ctx.world.RNG = nil
}
