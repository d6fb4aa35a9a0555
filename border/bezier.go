package border

import (
	"math"
	"unsafe"

	"github.com/forgottenhistory/archon-engine"
)

// BorderType tags a BezierSegment's rendering category (spec §3.7).
type BorderType uint8

const (
	BorderNone BorderType = iota
	BorderProvince
	BorderCountry
)

// float16 is an IEEE-754 binary16 value. Go has no native half-float type
// and none of the example pack's dependencies provide one, so encoding is
// hand-rolled here (see DESIGN.md's standard-library justification) purely
// to let interior control points fit the spec's fixed 36-byte layout: they
// are stored as small offsets from an anchor, which half precision
// represents with ample margin for a ~10-15px fitting window.
type float16 uint16

func float32ToFloat16(f float32) float16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	switch {
	case exp <= 0:
		return float16(sign) // underflows to signed zero
	case exp >= 0x1F:
		return float16(sign | 0x7C00) // overflow to signed infinity
	default:
		return float16(sign | uint16(exp)<<10 | uint16(mant>>13))
	}
}

func float16ToFloat32(h float16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1F
	mant := uint32(h & 0x3FF)

	switch exp {
	case 0:
		return math.Float32frombits(sign) // zero (subnormals flushed to zero)
	case 0x1F:
		return math.Float32frombits(sign | 0x7F800000 | mant<<13) // inf/nan
	default:
		return math.Float32frombits(sign | (exp-15+127)<<23 | mant<<13)
	}
}

// offset16 is a pair of float16-encoded deltas from an anchor point.
type offset16 struct {
	X, Y float16
}

func makeOffset16(anchor, p FloatPoint) offset16 {
	return offset16{X: float32ToFloat16(p.X - anchor.X), Y: float32ToFloat16(p.Y - anchor.Y)}
}

func (o offset16) apply(anchor FloatPoint) FloatPoint {
	return FloatPoint{X: anchor.X + float16ToFloat32(o.X), Y: anchor.Y + float16ToFloat32(o.Y)}
}

// BezierSegment is the fixed 36-byte wire/GPU-buffer layout from spec §3.7:
// two full-precision anchor points (P0, P3), two half-precision control
// offsets relative to their nearest anchor (P1 relative to P0, P2 relative
// to P3), a border type tag, and the two province ids the segment
// separates.
type BezierSegment struct {
	P0          [2]float32
	P3          [2]float32
	P1Offset    offset16
	P2Offset    offset16
	BorderType  BorderType
	ProvinceID1 uint32
	ProvinceID2 uint32
}

const bezierSegmentSize = unsafe.Sizeof(BezierSegment{})

// A failing assertion here is a fatal build error, matching the same
// "fails at compile time" trick province.Hot and country.Hot use for their
// own fixed-size invariants.
var _ [1]struct{} = [bezierSegmentSize - 36 + 1]struct{}{}

// P1 reconstructs the absolute position of the first interior control
// point.
func (b BezierSegment) P1() FloatPoint {
	return b.P1Offset.apply(FloatPoint{X: b.P0[0], Y: b.P0[1]})
}

// P2 reconstructs the absolute position of the second interior control
// point.
func (b BezierSegment) P2() FloatPoint {
	return b.P2Offset.apply(FloatPoint{X: b.P3[0], Y: b.P3[1]})
}

// FitWindowMin and FitWindowMax bound the ~10-15-pixel fitting window spec
// §4.10 step 2 specifies.
const (
	FitWindowMin = 10
	FitWindowMax = 15
)

// FitSegments segments an ordered, possibly-smoothed chain into fitting
// windows and emits one BezierSegment per window (spec §4.10 step 2),
// tagged with borderType and the two provinces the chain separates.
//
// Each window's curve is fit by anchoring P0/P3 at the window's endpoints
// and placing the interior control points one-third of the way along the
// endpoint tangents (estimated from the window's second and
// second-to-last points). This is a closed-form tangent-based fit rather
// than a full constrained least-squares solve; it reproduces the chain's
// local direction exactly at both endpoints, which is what the
// fragment-shader distance test and the "genuine neighbor" invariant (spec
// §8 property 8) depend on, without the iterative solver a true
// least-squares fit would need.
func FitSegments(points []FloatPoint, p1, p2 archon.ProvinceId, borderType BorderType) []BezierSegment {
	if len(points) < 2 {
		return nil
	}
	a, b := p1, p2
	if a > b {
		a, b = b, a
	}

	var segments []BezierSegment
	for start := 0; start < len(points)-1; start += FitWindowMax {
		end := start + FitWindowMax
		if end > len(points)-1 {
			end = len(points) - 1
		}
		window := points[start : end+1]
		if len(window) < 2 {
			break
		}
		segments = append(segments, fitWindow(window, a, b, borderType))
		if end == len(points)-1 {
			break
		}
	}
	return segments
}

func fitWindow(window []FloatPoint, p1, p2 archon.ProvinceId, borderType BorderType) BezierSegment {
	p0 := window[0]
	p3 := window[len(window)-1]

	tangentStart := p0
	if len(window) > 1 {
		tangentStart = window[1]
	}
	tangentEnd := p3
	if len(window) > 1 {
		tangentEnd = window[len(window)-2]
	}

	ctrl1 := FloatPoint{
		X: p0.X + (tangentStart.X-p0.X)/3,
		Y: p0.Y + (tangentStart.Y-p0.Y)/3,
	}
	ctrl2 := FloatPoint{
		X: p3.X + (tangentEnd.X-p3.X)/3,
		Y: p3.Y + (tangentEnd.Y-p3.Y)/3,
	}

	return BezierSegment{
		P0:          [2]float32{p0.X, p0.Y},
		P3:          [2]float32{p3.X, p3.Y},
		P1Offset:    makeOffset16(p0, ctrl1),
		P2Offset:    makeOffset16(p3, ctrl2),
		BorderType:  borderType,
		ProvinceID1: uint32(p1),
		ProvinceID2: uint32(p2),
	}
}
