package border

// RenderMode selects how the renderer resolves border pixels, one of the
// caller-selectable modes spec §4.10 names. The shader branches statically
// on this value; it never changes mid-frame.
type RenderMode uint8

const (
	// ModeNone draws no borders at all.
	ModeNone RenderMode = iota
	// ModePixelPerfect uses the compute-only BorderMask texture: cheap,
	// jagged at the source bitmap's resolution.
	ModePixelPerfect
	// ModeDistanceField resolves borders via a precomputed signed-distance
	// texture rather than per-fragment curve evaluation.
	ModeDistanceField
	// ModeVectorCurves runs the full pipeline in this package: grid lookup
	// followed by per-candidate-segment Bézier distance evaluation.
	ModeVectorCurves
)

func (m RenderMode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModePixelPerfect:
		return "PixelPerfect"
	case ModeDistanceField:
		return "DistanceField"
	case ModeVectorCurves:
		return "VectorCurves"
	default:
		return "RenderMode(?)"
	}
}
