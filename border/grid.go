package border

// Grid is the uniform spatial acceleration structure over BezierSegments
// (spec §4.10 step 3): the map is divided into cellSize-pixel cells, and
// each cell stores the range of indices into a shared segment-index list
// whose bounding boxes intersect it. This lets the fragment shader test
// only the handful of segments near a pixel instead of every segment in
// the world.
type Grid struct {
	CellSize                int
	Width, Height           int // in cells
	CellRanges              []CellRange // len == Width*Height
	IndexList               []int32     // segment indices, grouped by cell
	MaxSegmentsPerCellAlert int         // set when a cell exceeds the §4.10 warning threshold
}

// CellRange is the [Start,End) slice of IndexList belonging to one cell.
type CellRange struct {
	Start, End int32
}

// SegmentsPerCellWarnThreshold is spec §4.10's "log a warning if exceeded"
// target of ≤500 segments per cell on average.
const SegmentsPerCellWarnThreshold = 500

// BuildGrid overlays a cellSize-pixel grid on a mapWidth×mapHeight map and
// buckets every segment by the cells its bounding box intersects.
func BuildGrid(segments []BezierSegment, mapWidth, mapHeight, cellSize int) *Grid {
	gw := (mapWidth + cellSize - 1) / cellSize
	gh := (mapHeight + cellSize - 1) / cellSize
	if gw < 1 {
		gw = 1
	}
	if gh < 1 {
		gh = 1
	}

	buckets := make([][]int32, gw*gh)
	for i, seg := range segments {
		minX, minY, maxX, maxY := segmentBounds(seg)
		c0x, c0y := minX/cellSize, minY/cellSize
		c1x, c1y := maxX/cellSize, maxY/cellSize
		c0x, c0y = clamp(c0x, 0, gw-1), clamp(c0y, 0, gh-1)
		c1x, c1y = clamp(c1x, 0, gw-1), clamp(c1y, 0, gh-1)
		for cy := c0y; cy <= c1y; cy++ {
			for cx := c0x; cx <= c1x; cx++ {
				idx := cy*gw + cx
				buckets[idx] = append(buckets[idx], int32(i))
			}
		}
	}

	g := &Grid{CellSize: cellSize, Width: gw, Height: gh}
	g.CellRanges = make([]CellRange, gw*gh)
	var overflowCells int
	for i, b := range buckets {
		start := int32(len(g.IndexList))
		g.IndexList = append(g.IndexList, b...)
		g.CellRanges[i] = CellRange{Start: start, End: int32(len(g.IndexList))}
		if len(b) > SegmentsPerCellWarnThreshold {
			overflowCells++
		}
	}
	g.MaxSegmentsPerCellAlert = overflowCells
	return g
}

func segmentBounds(seg BezierSegment) (minX, minY, maxX, maxY int) {
	p0, p1, p2, p3 := seg.P0, seg.P1(), seg.P2(), seg.P3
	xs := [4]float32{p0[0], p1.X, p2.X, p3[0]}
	ys := [4]float32{p0[1], p1.Y, p2.Y, p3[1]}
	minX, maxX = int(xs[0]), int(xs[0])
	minY, maxY = int(ys[0]), int(ys[0])
	for i := 1; i < 4; i++ {
		if int(xs[i]) < minX {
			minX = int(xs[i])
		}
		if int(xs[i]) > maxX {
			maxX = int(xs[i])
		}
		if int(ys[i]) < minY {
			minY = int(ys[i])
		}
		if int(ys[i]) > maxY {
			maxY = int(ys[i])
		}
	}
	return
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SegmentsInCell returns the segment indices bucketed into the cell
// containing map-space point (x,y).
func (g *Grid) SegmentsInCell(x, y int) []int32 {
	cx, cy := x/g.CellSize, y/g.CellSize
	if cx < 0 || cy < 0 || cx >= g.Width || cy >= g.Height {
		return nil
	}
	r := g.CellRanges[cy*g.Width+cx]
	return g.IndexList[r.Start:r.End]
}
