// Package texture implements the map texture manager (spec §4.8): the
// fixed set of GPU-resident textures sized to the province bitmap, their
// binding contract, and the CPU-side compute-dispatcher reference
// implementations that populate them (spec §4.9).
//
// The engine never rasterizes per-pixel in steady state; the dispatchers
// here are the one-shot/low-frequency population passes a GPU compute
// shader would otherwise run, kept on the CPU so this module stays
// GPU-API-agnostic. A real embedding applies these same algorithms as
// actual compute shaders; Archon Engine only owns the data layout and the
// reference math.
//
// Grounded on the teacher's cmd/mapgen, which already builds equivalently
// shaped RGBA8 image buffers from province/owner data using
// golang.org/x/image and github.com/anthonynsimon/bild; this package
// reuses bild/transform and bild/blur for the optional post-effects pass
// spec §4.9 calls out, rather than hand-rolling a box/Gaussian blur.
package texture

import (
	"fmt"

	"github.com/forgottenhistory/archon-engine"
)

// Format describes a texture's per-texel layout, matching spec §4.8's
// table. It is metadata only; actual GPU allocation is the host's job.
type Format uint8

const (
	FormatR16G16       Format = iota // ProvinceID: R=low byte, G=high byte
	FormatR16                        // ProvinceOwner: 1-channel 16-bit
	FormatRGBA8                      // palettes, Normal, Highlight, MapModeTextureArray
	FormatR8G8                       // BorderMask: R=country mask, G=province mask
	FormatR8                         // Heightmap, FogOfWar
)

// Slot names every logical texture the manager owns (spec §4.8's table).
type Slot uint8

const (
	SlotProvinceID Slot = iota
	SlotProvinceOwner
	SlotProvinceColorPalette
	SlotCountryColorPalette
	SlotBorderMask
	SlotHeightmap
	SlotNormal
	SlotHighlight
	SlotFogOfWar
	SlotMapModeTextureArray
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotProvinceID:
		return "ProvinceID"
	case SlotProvinceOwner:
		return "ProvinceOwner"
	case SlotProvinceColorPalette:
		return "ProvinceColorPalette"
	case SlotCountryColorPalette:
		return "CountryColorPalette"
	case SlotBorderMask:
		return "BorderMask"
	case SlotHeightmap:
		return "Heightmap"
	case SlotNormal:
		return "Normal"
	case SlotHighlight:
		return "Highlight"
	case SlotFogOfWar:
		return "FogOfWar"
	case SlotMapModeTextureArray:
		return "MapModeTextureArray"
	default:
		return "Slot(?)"
	}
}

// Descriptor is the static shape of one texture slot, used both to compute
// the ≤100MB memory budget (spec §4.8) and to describe what the host must
// allocate.
type Descriptor struct {
	Slot      Slot
	Format    Format
	Width     int
	Height    int
	ArrayLen  int // only meaningful for SlotMapModeTextureArray
	Linear    bool // true only for detail/overlay textures per §4.8's filtering rule
}

// bytesPerTexel returns the per-texel byte cost used for the memory budget
// estimate; it is approximate (palette textures are fixed-size regardless
// of map dimensions).
func (f Format) bytesPerTexel() int {
	switch f {
	case FormatR16G16, FormatR8G8:
		return 2
	case FormatR16:
		return 2
	case FormatRGBA8:
		return 4
	case FormatR8:
		return 1
	default:
		return 0
	}
}

func (d Descriptor) byteSize() int64 {
	n := int64(d.Width) * int64(d.Height) * int64(d.Format.bytesPerTexel())
	if d.ArrayLen > 0 {
		n *= int64(d.ArrayLen)
	}
	return n
}

// Manager owns the fixed texture set, sized to one province bitmap, plus
// the CPU-resident backing buffers the dispatchers populate.
type Manager struct {
	width, height int
	mapModeSlots  int

	descriptors [slotCount]Descriptor

	// CPU-resident mirrors of what a real GPU texture would hold. Only the
	// slots the reference dispatchers actually populate are backed here;
	// Heightmap/Normal/FogOfWar/the country color palette are host-owned in
	// a real renderer and are represented only by their Descriptor.
	provinceID     []uint16 // per-pixel ProvinceId, row-major
	provinceOwner  []uint16 // per-pixel CountryId, populated by DispatchOwnerTexture
	borderMaskR    []uint8  // per-pixel country-border mask
	borderMaskG    []uint8  // per-pixel province-border mask
	provincePalette [256]uint32 // index 0..255 of ProvinceColorPalette, 0x00RRGGBB
}

// NewManager allocates a Manager sized to a width×height province bitmap
// with mapModeSlots custom map-mode texture-array layers.
func NewManager(width, height, mapModeSlots int) *Manager {
	m := &Manager{width: width, height: height, mapModeSlots: mapModeSlots}
	m.descriptors = [slotCount]Descriptor{
		SlotProvinceID:           {Slot: SlotProvinceID, Format: FormatR16G16, Width: width, Height: height},
		SlotProvinceOwner:        {Slot: SlotProvinceOwner, Format: FormatR16, Width: width, Height: height},
		SlotProvinceColorPalette: {Slot: SlotProvinceColorPalette, Format: FormatRGBA8, Width: 256, Height: 1},
		SlotCountryColorPalette:  {Slot: SlotCountryColorPalette, Format: FormatRGBA8, Width: 1024, Height: 1},
		SlotBorderMask:           {Slot: SlotBorderMask, Format: FormatR8G8, Width: width, Height: height},
		SlotHeightmap:            {Slot: SlotHeightmap, Format: FormatR8, Width: width, Height: height},
		SlotNormal:               {Slot: SlotNormal, Format: FormatRGBA8, Width: width, Height: height, Linear: true},
		SlotHighlight:            {Slot: SlotHighlight, Format: FormatRGBA8, Width: width, Height: height, Linear: true},
		SlotFogOfWar:             {Slot: SlotFogOfWar, Format: FormatR8, Width: width, Height: height, Linear: true},
		SlotMapModeTextureArray:  {Slot: SlotMapModeTextureArray, Format: FormatRGBA8, Width: width, Height: height, ArrayLen: mapModeSlots},
	}
	m.provinceID = make([]uint16, width*height)
	m.provinceOwner = make([]uint16, width*height)
	m.borderMaskR = make([]uint8, width*height)
	m.borderMaskG = make([]uint8, width*height)
	return m
}

// Descriptor returns the static layout of a texture slot.
func (m *Manager) Descriptor(slot Slot) Descriptor { return m.descriptors[slot] }

// EstimatedBytes sums every descriptor's approximate byte size, used to
// verify the ≤100MB budget (spec §4.8) for a given map size.
func (m *Manager) EstimatedBytes() int64 {
	var total int64
	for _, d := range m.descriptors {
		total += d.byteSize()
	}
	return total
}

// LoadProvinceID seeds the ProvinceID texture from a per-pixel province
// array, as produced by loader/bitmap + definitioncsv during bootstrap.
func (m *Manager) LoadProvinceID(perPixel []archon.ProvinceId) error {
	if len(perPixel) != len(m.provinceID) {
		return fmt.Errorf("texture: LoadProvinceID: got %d pixels, want %d", len(perPixel), len(m.provinceID))
	}
	for i, p := range perPixel {
		m.provinceID[i] = uint16(p)
	}
	return nil
}

// ProvinceIDAt returns the province at pixel (x,y), matching the §6 API
// contract's `get_province_id_at(x,y) → ProvinceId`.
func (m *Manager) ProvinceIDAt(x, y int) archon.ProvinceId {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return archon.NoProvince
	}
	return archon.ProvinceId(m.provinceID[y*m.width+x])
}

// SetProvincePaletteEntry writes one 0x00RRGGBB entry of the
// ProvinceColorPalette texture, keyed by the province's low byte (the
// palette is 256 entries wide per spec §4.8's table, so entries beyond
// that range alias). mapmode.Political drives this method through the
// mapmode.PalettePoker interface whenever a province's owner changes.
func (m *Manager) SetProvincePaletteEntry(province archon.ProvinceId, rgb uint32) {
	m.provincePalette[uint8(province)] = rgb
}

// ProvincePaletteEntry returns the currently stored palette entry for a
// province's low byte, used by tests and by a diagnostic preview renderer.
func (m *Manager) ProvincePaletteEntry(province archon.ProvinceId) uint32 {
	return m.provincePalette[uint8(province)]
}

// Material is the binding target for BindTexturesToMaterial: a caller
// (renderer) supplied property-name-to-texture-handle sink. The engine
// never creates its own material — per §6, a caller must supply one, with
// a fallback magenta material if none is given.
type Material interface {
	SetTexture(propertyName string, slot Slot)
}

// slotPropertyNames maps each slot to the well-known material property name
// BindTexturesToMaterial writes to.
var slotPropertyNames = [slotCount]string{
	SlotProvinceID:           "_ProvinceIDTex",
	SlotProvinceOwner:        "_ProvinceOwnerTex",
	SlotProvinceColorPalette: "_ProvinceColorPaletteTex",
	SlotCountryColorPalette:  "_CountryColorPaletteTex",
	SlotBorderMask:           "_BorderMaskTex",
	SlotHeightmap:            "_HeightmapTex",
	SlotNormal:               "_NormalTex",
	SlotHighlight:            "_HighlightTex",
	SlotFogOfWar:             "_FogOfWarTex",
	SlotMapModeTextureArray:  "_MapModeTexArray",
}

// BindTexturesToMaterial wires every texture into material by well-known
// property name (spec §6's `bind_textures_to_material(material)`).
func (m *Manager) BindTexturesToMaterial(material Material) {
	for slot := Slot(0); slot < slotCount; slot++ {
		material.SetTexture(slotPropertyNames[slot], slot)
	}
}
