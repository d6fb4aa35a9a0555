package bootstrap

import (
	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/mapmode"
	"github.com/forgottenhistory/archon-engine/texture"
)

// politicalPalette adapts texture.Manager's raw
// SetProvincePaletteEntry(province, rgb) to mapmode.PalettePoker's
// SetProvincePaletteEntry(province, countryID) by resolving the country's
// color first — the "thin texture-manager adapter" mapmode.PalettePoker's
// own doc comment anticipates, kept in bootstrap since it is the
// only place both texture.Manager and country.Store are already in scope
// together.
type politicalPalette struct {
	textures *texture.Manager
	colorOf  func(archon.CountryId) uint32
}

func (p politicalPalette) SetProvincePaletteEntry(province archon.ProvinceId, countryID archon.CountryId) {
	p.textures.SetProvincePaletteEntry(province, p.colorOf(countryID))
}

// buildMapTextures loads the ProvinceID texture from the scan pixel
// buffer, runs the owner and border-detection dispatchers once (spec
// §4.9's one-shot compute passes), and wires the default Political map
// mode into a fresh mapmode.Framework (spec §4.11).
func buildMapTextures(ctx *buildCtx) error {
	mgr := texture.NewManager(ctx.mapWidth, ctx.mapHeight, ctx.cfg.MapModeSlots)
	if err := mgr.LoadProvinceID(ctx.provincePixels); err != nil {
		return err
	}
	mgr.DispatchOwnerTexture(ctx.world.Provinces)
	mgr.DispatchBorderDetection()

	fw := mapmode.New(ctx.world.Events)
	palette := politicalPalette{textures: mgr, colorOf: func(c archon.CountryId) uint32 {
		if c == archon.NoCountry {
			return 0
		}
		return ctx.world.Countries.Hot(c).ColorRGB
	}}
	const politicalSlot = 0
	political := mapmode.NewPolitical(ctx.world.Provinces, palette)
	if err := fw.Register(politicalSlot, "political", political); err != nil {
		return err
	}

	// Only publish to World once every fallible step above has succeeded,
	// so a failed phase never leaves partial state for the Runner to roll
	// back on top of.
	ctx.world.Textures = mgr
	ctx.world.MapModes = fw
	return nil
}

func rollbackMapTextures(ctx *buildCtx) {
	ctx.world.Textures = nil
	ctx.world.MapModes = nil
}
