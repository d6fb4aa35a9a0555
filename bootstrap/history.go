package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/loader/historical"
	"github.com/forgottenhistory/archon-engine/loader/kv"
	"github.com/forgottenhistory/archon-engine/province"
)

// applyScenarioHistory folds every history/provinces/<id> - *.txt file's
// dated sub-blocks up to cfg.ScenarioStart into each province's initial
// owner/controller/development (spec §4.7.4's "effective state at T0").
// Per-file errors are logged and skipped (spec §5's optional-phase
// propagation policy extends to individual history files even though the
// phase itself is in the required fixed order); a province with no
// history file simply keeps its zero-value Hot from the province-registry
// phase.
func applyScenarioHistory(ctx *buildCtx) error {
	log := ctx.cfg.logger()
	dir := filepath.Join(ctx.cfg.DataDir, "history", "provinces")
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("bootstrap: no history/provinces directory, provinces keep default state", "subsystem", "core_data_loading", "path", dir)
		return nil
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		defID, ok := leadingDefinitionId(e.Name())
		if !ok {
			continue
		}
		id, ok := ctx.world.Provinces.ByDefinition(archon.DefinitionId(defID))
		if !ok {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Warn("bootstrap: could not read province history file, skipping", "subsystem", "core_data_loading", "file", e.Name(), "error", err)
			continue
		}
		pairs, err := kv.Parse(string(data))
		if err != nil {
			log.Warn("bootstrap: malformed province history file, skipping", "subsystem", "core_data_loading", "file", e.Name(), "error", err)
			continue
		}

		effective := historical.EffectiveState(pairs, ctx.cfg.ScenarioStart)
		applyProvinceHistory(ctx, id, effective)
	}

	ctx.world.Provinces.SyncBuffersAfterLoad()
	return nil
}

func applyProvinceHistory(ctx *buildCtx, id archon.ProvinceId, effective []kv.Pair) {
	ownerTag, hasOwner := scalarOf(effective, "owner")
	controllerTag, hasController := scalarOf(effective, "controller")
	if !hasController {
		controllerTag = ownerTag
	}

	var owner, controller archon.CountryId
	if hasOwner {
		owner, _ = ctx.world.Countries.IdOf(ownerTag)
	}
	if controllerTag != "" {
		controller, _ = ctx.world.Countries.IdOf(controllerTag)
	}

	development := uint8(intOf(effective, "base_tax", 0))

	ctx.world.Provinces.Mutate(id, func(h *province.Hot) {
		h.OwnerID = owner
		h.ControllerID = controller
		h.Development = development
	})
}

func rollbackScenarioHistory(ctx *buildCtx) {
	// Hot state is overwritten in place by Mutate; there is nothing
	// distinct to discard on rollback beyond what province-registry
	// already owns, which its own Rollback handles.
}
