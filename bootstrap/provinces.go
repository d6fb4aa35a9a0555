package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/loader/areas"
	"github.com/forgottenhistory/archon-engine/province"
)

// buildProvinceRegistry assigns every definition.csv row a dense
// ProvinceId (spec §8 property 10: "for every definition.csv row there
// exists exactly one province record after load"), in file order starting
// at 1 (0 stays reserved for NoProvince), and builds the per-pixel
// ProvinceId array the adjacency-scan and map-texture phases need by
// resolving each bitmap pixel's packed color through the definition
// table.
func buildProvinceRegistry(ctx *buildCtx) error {
	rows := ctx.defTable.Rows
	store := province.NewStore(len(rows) + 1)

	for i, row := range rows {
		id := archon.ProvinceId(i + 1)
		hot := province.Hot{}
		if row.IsWater {
			hot.Flags |= province.FlagOcean
		}
		store.Define(id, row.DefinitionId, hot)
	}

	pixels := make([]archon.ProvinceId, len(ctx.mapBitmap.Pixels))
	for i, px := range ctx.mapBitmap.Pixels {
		row, ok := ctx.defTable.ByColor(px.Pack())
		if !ok {
			continue // unmapped color (e.g. anti-aliased border pixel); left as NoProvince
		}
		id, ok := store.ByDefinition(row.DefinitionId)
		if !ok {
			continue
		}
		pixels[i] = id
	}

	ctx.world.Provinces = store
	ctx.provincePixels = pixels

	areasPath := filepath.Join(ctx.cfg.DataDir, "map", "areas.txt")
	if data, err := os.ReadFile(areasPath); err != nil {
		ctx.cfg.logger().Warn("bootstrap: optional data file unavailable, skipping", "subsystem", "core_data_loading", "path", areasPath, "error", err)
	} else if table, err := areas.Parse(string(data), store); err != nil {
		ctx.cfg.logger().Warn("bootstrap: malformed areas.txt, skipping", "subsystem", "core_data_loading", "error", err)
	} else {
		ctx.world.Areas = table
	}

	return nil
}

func rollbackProvinceRegistry(ctx *buildCtx) {
	ctx.world.Provinces = nil
	ctx.world.Areas = nil
	ctx.provincePixels = nil
}
