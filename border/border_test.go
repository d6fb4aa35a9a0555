package border

import (
	"image"
	"image/color"
	"testing"

	"github.com/forgottenhistory/archon-engine"
)

func TestMakePairKeyIsOrderIndependent(t *testing.T) {
	a, b := archon.ProvinceId(5), archon.ProvinceId(9)
	if MakePairKey(a, b) != MakePairKey(b, a) {
		t.Fatal("expected PairKey to be order-independent")
	}
}

func TestExtractBoundaryPixelsFindsFourNeighborPairs(t *testing.T) {
	// 2x2 grid, each pixel a distinct province: (1 2 / 3 4).
	ids := []archon.ProvinceId{1, 2, 3, 4}
	chains := ExtractBoundaryPixels(ids, 2, 2)
	if len(chains) != 4 {
		t.Fatalf("got %d boundary pairs, want 4 (matches adjacency scenario in spec §8)", len(chains))
	}
}

func TestOrderChainKeepsEveryPoint(t *testing.T) {
	pts := []image.Point{{0, 0}, {5, 5}, {1, 1}, {2, 2}}
	ordered := OrderChain(pts)
	if len(ordered) != len(pts) {
		t.Fatalf("got %d points, want %d", len(ordered), len(pts))
	}
}

func TestChaikinSmoothSkipsShortChains(t *testing.T) {
	short := make([]image.Point, 5)
	out := ChaikinSmooth(short, 2)
	if len(out) != len(short) {
		t.Fatalf("got %d points, want %d (short chain passed through raw)", len(out), len(short))
	}
}

func TestChaikinSmoothGrowsLongChains(t *testing.T) {
	long := make([]image.Point, 25)
	for i := range long {
		long[i] = image.Pt(i, 0)
	}
	out := ChaikinSmooth(long, 1)
	if len(out) <= len(long) {
		t.Fatalf("got %d points, want more than %d after one Chaikin iteration", len(out), len(long))
	}
}

func TestBezierSegmentIsExactly36Bytes(t *testing.T) {
	if bezierSegmentSize != 36 {
		t.Fatalf("got %d bytes, want 36 (spec §3.7)", bezierSegmentSize)
	}
}

func TestFloat16RoundTripsModeratePrecision(t *testing.T) {
	for _, f := range []float32{0, 1, -1, 3.5, -12.25, 100} {
		got := float16ToFloat32(float32ToFloat16(f))
		if diff := got - f; diff > 0.01 || diff < -0.01 {
			t.Fatalf("float16 round trip of %v got %v", f, got)
		}
	}
}

func TestFitSegmentsTagsBothProvinceIds(t *testing.T) {
	points := make([]FloatPoint, 30)
	for i := range points {
		points[i] = FloatPoint{X: float32(i), Y: 0}
	}
	segs := FitSegments(points, 3, 7, BorderCountry)
	if len(segs) == 0 {
		t.Fatal("expected at least one segment")
	}
	for _, s := range segs {
		if (s.ProvinceID1 != 3 || s.ProvinceID2 != 7) && (s.ProvinceID1 != 7 || s.ProvinceID2 != 3) {
			t.Fatalf("got province pair (%d,%d), want (3,7)", s.ProvinceID1, s.ProvinceID2)
		}
		if s.BorderType != BorderCountry {
			t.Fatalf("got border type %v, want BorderCountry", s.BorderType)
		}
	}
}

func TestBuildGridBucketsSegmentsByBoundingBox(t *testing.T) {
	segs := []BezierSegment{
		{P0: [2]float32{0, 0}, P3: [2]float32{10, 10}},
		{P0: [2]float32{500, 500}, P3: [2]float32{510, 510}},
	}
	g := BuildGrid(segs, 1024, 1024, 64)
	if len(g.SegmentsInCell(0, 0)) != 1 {
		t.Fatalf("got %d segments near origin, want 1", len(g.SegmentsInCell(0, 0)))
	}
	if len(g.SegmentsInCell(505, 505)) != 1 {
		t.Fatalf("got %d segments near (505,505), want 1", len(g.SegmentsInCell(505, 505)))
	}
}

func TestPreviewDrawsWithoutPanicking(t *testing.T) {
	canvas := NewPreviewCanvas(16, 16, color.White)
	segs := []BezierSegment{
		{P0: [2]float32{1, 1}, P3: [2]float32{14, 14}},
	}
	Preview(canvas, segs, color.Black, 1)
}
