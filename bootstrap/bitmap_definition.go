package bootstrap

import (
	"path/filepath"

	"github.com/forgottenhistory/archon-engine/loader/bitmap"
	"github.com/forgottenhistory/archon-engine/loader/definitioncsv"
)

// loadBitmapDefinition loads the authoritative province roster (spec
// §4.7.2) and the province bitmap (spec §4.7.1), stashing both on ctx for
// the province-registry phase to consume. Both files are required: without
// them no province can be defined, so the whole load aborts on either
// error (spec §4.7's phase dependency order lists this as one combined
// phase).
func loadBitmapDefinition(ctx *buildCtx) error {
	defPath := filepath.Join(ctx.cfg.DataDir, "map", "definition.csv")
	table, err := definitioncsv.Load(defPath)
	if err != nil {
		return err
	}

	bmpPath := filepath.Join(ctx.cfg.DataDir, "map", "provinces.bmp")
	buf, err := bitmap.Load(bmpPath)
	if err != nil {
		return err
	}

	ctx.mapWidth, ctx.mapHeight = buf.Width, buf.Height
	ctx.mapBitmap = buf
	ctx.defTable = table
	return nil
}

func rollbackBitmapDefinition(ctx *buildCtx) {
	ctx.mapBitmap = nil
	ctx.defTable = nil
	ctx.mapWidth, ctx.mapHeight = 0, 0
}
