package texture

import "github.com/forgottenhistory/archon-engine"

// OwnerLookup resolves a province's current owner, satisfied by
// province.Store.Owner. Declared as an interface here to avoid an import
// cycle between texture and province.
type OwnerLookup interface {
	Owner(archon.ProvinceId) archon.CountryId
}

// DispatchOwnerTexture is the CPU reference implementation of spec §4.9's
// owner texture dispatcher: for every pixel, resolve its ProvinceID texel
// through owners and write the corresponding CountryId into ProvinceOwner.
// A real embedding runs this as an 8x8-workgroup compute shader instead;
// this reference exists so the layout and semantics are testable without a
// GPU.
func (m *Manager) DispatchOwnerTexture(owners OwnerLookup) {
	for i, pid := range m.provinceID {
		m.provinceOwner[i] = uint16(owners.Owner(archon.ProvinceId(pid)))
	}
}

// ProvinceOwnerAt returns the CPU-mirrored ProvinceOwner texel at (x,y),
// used by tests and the CPU preview path.
func (m *Manager) ProvinceOwnerAt(x, y int) archon.CountryId {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return archon.NoCountry
	}
	return archon.CountryId(m.provinceOwner[y*m.width+x])
}

// DispatchBorderDetection is the CPU reference implementation of spec
// §4.9's pixel-based border-detection fallback: a pixel is a country
// border if any 4-neighbor has a different owner, and a province border if
// any 4-neighbor has a different ProvinceID with the same owner.
func (m *Manager) DispatchBorderDetection() {
	w, h := m.width, m.height
	at := func(x, y int) int { return y*w + x }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := at(x, y)
			pid := m.provinceID[idx]
			owner := m.provinceOwner[idx]

			var countryBorder, provinceBorder bool
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				nIdx := at(nx, ny)
				nPid := m.provinceID[nIdx]
				nOwner := m.provinceOwner[nIdx]
				if nOwner != owner {
					countryBorder = true
				} else if nPid != pid {
					provinceBorder = true
				}
			}
			if countryBorder {
				m.borderMaskR[idx] = 255
			}
			if provinceBorder {
				m.borderMaskG[idx] = 255
			}
		}
	}
}

// BorderMaskAt returns the (countryBorder, provinceBorder) mask byte pair
// at (x,y), as would be sampled from the BorderMask texture's R/G channels.
func (m *Manager) BorderMaskAt(x, y int) (country, province uint8) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, 0
	}
	idx := y*m.width + x
	return m.borderMaskR[idx], m.borderMaskG[idx]
}
