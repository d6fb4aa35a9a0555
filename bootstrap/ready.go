package bootstrap

import (
	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/country"
	"github.com/forgottenhistory/archon-engine/event"
)

// WorldReady is emitted once, after every required phase has completed —
// spec §4.7's "event 'everything ready'" closing step of the fixed phase
// order.
type WorldReady struct {
	Provinces int
	Countries int
}

func emitWorldReady(ctx *buildCtx) error {
	event.Emit(ctx.world.Events, WorldReady{
		Provinces: ctx.world.Provinces.Len() - 1,
		Countries: countryCount(ctx.world),
	})
	return nil
}

func countryCount(w *World) int {
	n := 0
	w.Countries.All(func(_ archon.CountryId, _ country.Hot) bool {
		n++
		return true
	})
	return n
}

func rollbackWorldReady(ctx *buildCtx) {}
