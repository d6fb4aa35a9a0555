package mapmode

import "github.com/forgottenhistory/archon-engine"

// OwnerLookup resolves a province's current owner, satisfied by
// province.Store.Owner; declared locally to avoid a mapmode→province
// import cycle, the same pattern texture.OwnerLookup uses.
type OwnerLookup interface {
	Owner(archon.ProvinceId) archon.CountryId
}

// PalettePoker writes one entry into the owner-color palette the Political
// mode drives, satisfied by a thin texture-manager adapter.
type PalettePoker interface {
	SetProvincePaletteEntry(province archon.ProvinceId, countryID archon.CountryId)
}

// Political is the default map mode (spec §4.11): for each dirty province,
// look up its owner and write the owner's palette entry into the province
// palette.
type Political struct {
	owners  OwnerLookup
	palette PalettePoker
}

// NewPolitical creates the Political map mode against owners and palette.
func NewPolitical(owners OwnerLookup, palette PalettePoker) *Political {
	return &Political{owners: owners, palette: palette}
}

func (p *Political) OnEnter() {}
func (p *Political) OnExit()  {}

func (p *Political) OnTextureUpdateRequested(dirty []archon.ProvinceId) {
	for _, id := range dirty {
		p.palette.SetProvincePaletteEntry(id, p.owners.Owner(id))
	}
}

// TerrainTexture exposes the static terrain bitmap data the Terrain mode
// copies through, satisfied by a thin texture-manager adapter.
type TerrainTexture interface {
	CopyTerrainToProvincePalette(provinces []archon.ProvinceId)
}

// Terrain is the other default map mode (spec §4.11): uses the loaded
// terrain bitmap directly, with no owner dependency, so it never has
// anything to react to beyond an initial full population at OnEnter.
type Terrain struct {
	source  TerrainTexture
	all     []archon.ProvinceId
}

// NewTerrain creates the Terrain map mode over every province in all,
// copying the static terrain bitmap through on every activation.
func NewTerrain(source TerrainTexture, all []archon.ProvinceId) *Terrain {
	return &Terrain{source: source, all: all}
}

func (t *Terrain) OnEnter() { t.source.CopyTerrainToProvincePalette(t.all) }
func (t *Terrain) OnExit()  {}

func (t *Terrain) OnTextureUpdateRequested(dirty []archon.ProvinceId) {
	// Terrain data never changes mid-game, so dirty-province churn (owner
	// changes) has nothing for this mode to react to.
}
