package bootstrap

import (
	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/adjacency"
	"github.com/forgottenhistory/archon-engine/ai"
	"github.com/forgottenhistory/archon-engine/province"
)

// runAdjacencyScan builds the province adjacency graph from the per-pixel
// ProvinceId array (spec §4.7's "adjacency scan" phase) and constructs the
// AI distance-tier scheduler over it, running its initial recompute if the
// caller configured a human country (spec §4.14: "at world load... run a
// single BFS").
func runAdjacencyScan(ctx *buildCtx) error {
	graph := adjacency.ScanProvinceGrid(ctx.provincePixels, ctx.mapWidth, ctx.mapHeight)
	ctx.world.Adjacency = graph
	ctx.world.AI = ai.NewScheduler(graph, ctx.world.Provinces, ctx.cfg.logger())

	if ctx.cfg.HumanCountry != archon.NoCountry {
		var human []archon.ProvinceId
		ctx.world.Provinces.All(func(id archon.ProvinceId, h province.Hot) bool {
			if h.OwnerID == ctx.cfg.HumanCountry {
				human = append(human, id)
			}
			return true
		})
		ctx.world.AI.Recompute(human)
	}
	return nil
}

func rollbackAdjacencyScan(ctx *buildCtx) {
	ctx.world.Adjacency = nil
	ctx.world.AI = nil
}
