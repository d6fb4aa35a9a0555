package bootstrap

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/country"
	"github.com/forgottenhistory/archon-engine/event"
	"github.com/forgottenhistory/archon-engine/loader/kv"
)

// buildCountryRegistry defines one country per history/countries/TAG.txt
// file (a Paradox-convention directory this engine's data-driven loaders
// assume), assigning dense CountryId in sorted-tag order so a given data
// set always yields the same ids regardless of directory iteration order.
// A missing directory is not an error: an embedding test scenario may
// define zero countries and drive everything through bootstrap's
// HumanCountry left at archon.NoCountry.
func buildCountryRegistry(ctx *buildCtx) error {
	log := ctx.cfg.logger()
	dir := filepath.Join(ctx.cfg.DataDir, "history", "countries")
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("bootstrap: no history/countries directory, loading zero countries", "subsystem", "core_data_loading", "path", dir)
		entries = nil
	}

	var tags []string
	pairsByTag := make(map[string][]kv.Pair)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		tag := tagFromFilename(e.Name())
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Warn("bootstrap: could not read country file, skipping", "subsystem", "core_data_loading", "tag", tag, "error", err)
			continue
		}
		pairs, err := kv.Parse(string(data))
		if err != nil {
			log.Warn("bootstrap: malformed country file, skipping", "subsystem", "core_data_loading", "tag", tag, "error", err)
			continue
		}
		tags = append(tags, tag)
		pairsByTag[tag] = pairs
	}
	sort.Strings(tags)

	store := country.NewStore(len(tags)+1, nil)
	for i, tag := range tags {
		id := archon.CountryId(i + 1)
		pairs := pairsByTag[tag]
		hot := country.Hot{
			ColorRGB: uint32(intOf(pairs, "color_rgb", 0)),
			TagHash:  hashTag(tag),
		}
		if cultureKey, ok := scalarOf(pairs, "primary_culture"); ok {
			hot.GraphicalCultureId = uint8(ctx.world.Registries.Cultures.IdOf(cultureKey))
		}
		if err := store.Define(id, tag, hot); err != nil {
			return err
		}
		if religionKey, ok := scalarOf(pairs, "religion"); ok {
			store.Cold(id).PreferredReligion = uint16(ctx.world.Registries.Religions.IdOf(religionKey))
		}
		if name, ok := scalarOf(pairs, "display_name"); ok {
			store.Cold(id).DisplayName = name
		}
		if ctx.world.Events != nil {
			event.Emit(ctx.world.Events, event.CountryCreated{Country: id, Tag: tag})
		}
	}

	ctx.world.Countries = store
	return nil
}

func rollbackCountryRegistry(ctx *buildCtx) {
	ctx.world.Countries = nil
}
