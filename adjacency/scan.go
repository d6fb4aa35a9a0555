package adjacency

import "github.com/forgottenhistory/archon-engine"

// ScanProvinceGrid builds a Graph by walking a per-pixel ProvinceId array
// row-major, connecting every pair of provinces found on either side of a
// horizontal or vertical pixel boundary (spec §4.7's "adjacency scan"
// phase, run once during bootstrap after the ProvinceID texture data is
// available).
//
// Grounded on border.ExtractBoundaryPixels, which walks the identical
// 4-neighbor grid to collect boundary pixels per province pair; this scan
// is the lighter structural-only pass the bootstrap orchestrator needs
// before the border package's curve-fitting pipeline ever runs, so it
// dedupes each pair once via a seen-set instead of accumulating points.
func ScanProvinceGrid(provinceID []archon.ProvinceId, width, height int) *Graph {
	g := New()
	seen := make(map[uint32]bool)
	at := func(x, y int) archon.ProvinceId {
		return provinceID[y*width+x]
	}
	connect := func(a, b archon.ProvinceId) {
		if a == b || a == archon.NoProvince || b == archon.NoProvince {
			return
		}
		key := pairKey(a, b)
		if seen[key] {
			return
		}
		seen[key] = true
		g.Connect(a, b)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := at(x, y)
			if x+1 < width {
				connect(p, at(x+1, y))
			}
			if y+1 < height {
				connect(p, at(x, y+1))
			}
		}
	}
	return g
}

// pairKey canonically orders a and b so (a,b) and (b,a) collide.
func pairKey(a, b archon.ProvinceId) uint32 {
	if a > b {
		a, b = b, a
	}
	return uint32(a)<<16 | uint32(b)
}
