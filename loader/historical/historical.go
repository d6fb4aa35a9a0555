// Package historical implements the historical date-layering loader (spec
// §4.7.4): province/country files mix initial keys with `YYYY.M.D = {...}`
// sub-blocks; this package applies every dated sub-block whose date is on
// or before the scenario start date, in chronological order, producing the
// "effective state at T0" map the simulation ingests. Dates after T0 are
// ignored.
//
// Grounded on kv.Parse's output tree directly; this package adds no new
// parsing, only the date-sort-and-fold-forward pass spec §4.7.4 describes.
package historical

import (
	"sort"

	"github.com/forgottenhistory/archon-engine/loader/kv"
)

// EffectiveState folds pairs into a flat key->scalar-or-block map: the
// non-dated entries form the base state, and every dated sub-block whose
// date is <= startDate is applied in chronological order, each overriding
// any key it sets. Keys are looked up with kv.Get/kv.GetAll afterward by
// treating the returned []kv.Pair as an ordinary parsed block.
func EffectiveState(pairs []kv.Pair, startDate kv.Date) []kv.Pair {
	var base []kv.Pair
	var dated []kv.Pair

	for _, p := range pairs {
		if p.Value.IsDate && p.Value.Block != nil {
			dated = append(dated, p)
			continue
		}
		base = append(base, p)
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Value.Date.Less(dated[j].Value.Date)
	})

	effective := append([]kv.Pair(nil), base...)
	for _, d := range dated {
		if startDate.Less(d.Value.Date) {
			continue // strictly after T0: ignored
		}
		effective = override(effective, d.Value.Block)
	}
	return effective
}

// override applies each (key,value) in patch to base, replacing the first
// existing entry for that key if present, appending otherwise. This
// matches Paradox history semantics where a dated block only ever
// overrides scalar keys (owner, controller, ...), not repeatable list keys
// like `core`, which accumulate instead; override treats exactly the keys
// isRepeatableKey lists as additive.
func override(base []kv.Pair, patch []kv.Pair) []kv.Pair {
	out := append([]kv.Pair(nil), base...)
	for _, p := range patch {
		if isRepeatableKey(p.Key) {
			out = append(out, p)
			continue
		}
		replaced := false
		for i := range out {
			if out[i].Key == p.Key {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}

// isRepeatableKey lists the keys a dated sub-block adds to rather than
// replaces, mirroring Paradox's convention for list-shaped province
// history keys.
func isRepeatableKey(key string) bool {
	switch key {
	case "core", "add_core", "remove_core", "discovered_by":
		return true
	default:
		return false
	}
}
