// Package areas implements the region/area file loader (SPEC_FULL.md
// §4.16): a thin pass over the same kv tree used by every other history
// file. Each top-level block names a region and carries a
// `provinces = { 1 2 3 }` list of definition.csv ids, which this package
// resolves to dense ProvinceIds via the definition registry. No other
// subsystem consumes region membership directly; GameState exposes it so
// callers (UI, AI region-of-interest queries) can ask "what region is this
// province in."
//
// Grounded on loader/historical for the "fold a kv tree into typed domain
// values" shape, and on province.Store's ByDefinition index for id
// resolution.
package areas

import (
	"fmt"
	"os"
	"strconv"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/loader/kv"
)

// Region is one named collection of provinces.
type Region struct {
	Name      string
	Provinces []archon.ProvinceId
}

// Table indexes every loaded region by name and by member province.
type Table struct {
	Regions  []Region
	byName   map[string]int
	byRegion map[archon.ProvinceId]string
}

// RegionOf returns the name of the region containing province, if any.
func (t *Table) RegionOf(province archon.ProvinceId) (string, bool) {
	name, ok := t.byRegion[province]
	return name, ok
}

// ByName returns the region with the given name.
func (t *Table) ByName(name string) (Region, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Region{}, false
	}
	return t.Regions[i], true
}

// Resolver maps a definition.csv id to its dense runtime ProvinceId, as
// province.Store.ByDefinition does; kept as an interface here so this
// package does not import province and create a dependency cycle risk.
type Resolver interface {
	ByDefinition(archon.DefinitionId) (archon.ProvinceId, bool)
}

// Load reads and parses an area/region file at path.
func Load(path string, resolve Resolver) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", archon.ErrFileIO, err)
	}
	return Parse(string(src), resolve)
}

// Parse parses area/region file contents.
func Parse(src string, resolve Resolver) (*Table, error) {
	pairs, err := kv.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: areas: %v", archon.ErrParse, err)
	}

	t := &Table{
		byName:   make(map[string]int),
		byRegion: make(map[archon.ProvinceId]string),
	}

	for _, p := range pairs {
		if p.Value.Block == nil {
			continue // not a region block (e.g. a stray scalar directive)
		}
		provincesVal, ok := kv.Get(p.Value.Block, "provinces")
		if !ok {
			continue
		}
		region := Region{Name: p.Key}
		for _, tok := range provincesVal.List {
			n, err := strconv.ParseUint(tok, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: areas: region %q: bad province id %q", archon.ErrParse, p.Key, tok)
			}
			id, ok := resolve.ByDefinition(archon.DefinitionId(n))
			if !ok {
				continue // definition id not present in this scenario's province roster
			}
			region.Provinces = append(region.Provinces, id)
			t.byRegion[id] = p.Key
		}
		t.byName[p.Key] = len(t.Regions)
		t.Regions = append(t.Regions, region)
	}
	return t, nil
}
