package border

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/llgcode/draw2d/draw2dimg"
)

// Preview rasterizes a set of fitted BezierSegments onto img for debug and
// diagnostic purposes (spec §4.10's authoritative path stays vector; this
// CPU-only preview exists purely to let a developer eyeball the fit
// quality without a GPU). Grounded directly on psmap.Draw's
// BeginPath/MoveTo/.../Stroke usage of draw2dimg, generalized from
// straight-line region outlines to cubic curves via CubicCurveTo.
func Preview(img draw.Image, segments []BezierSegment, strokeColor color.Color, lineWidth float64) {
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(strokeColor)
	gc.SetFillColor(color.Transparent)
	gc.SetLineWidth(lineWidth)

	for _, seg := range segments {
		p1, p2 := seg.P1(), seg.P2()
		gc.BeginPath()
		gc.MoveTo(float64(seg.P0[0]), float64(seg.P0[1]))
		gc.CubicCurveTo(
			float64(p1.X), float64(p1.Y),
			float64(p2.X), float64(p2.Y),
			float64(seg.P3[0]), float64(seg.P3[1]),
		)
		gc.Stroke()
	}
}

// NewPreviewCanvas allocates an RGBA canvas of the given size, pre-filled
// with a background color, suitable for passing to Preview.
func NewPreviewCanvas(width, height int, background color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	return img
}
