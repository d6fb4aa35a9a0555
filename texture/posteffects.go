package texture

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
)

// PostEffects applies the optional compute passes spec §4.9 describes as
// "layered on top of base textures": Gaussian blur and resampling. These
// run on the CPU reference path only; a real embedding runs the equivalent
// as GPU compute passes. Grounded on the teacher's single use of
// github.com/anthonynsimon/bild (rotating a map icon via bild/transform);
// this package exercises both bild/transform and bild/blur, the two
// sub-packages a map renderer's post-effects stage would plausibly need.
type PostEffects struct{}

// BlurFogOfWar applies a Gaussian blur to a fog-of-war mask so newly
// revealed/hidden provinces fade rather than hard-cut, matching the "fog
// noise" post-effect spec §4.9 names. radius is in pixels.
func (PostEffects) BlurFogOfWar(fog *image.Gray, radius float64) *image.Gray {
	blurred := blur.Gaussian(fog, radius)
	out := image.NewGray(fog.Bounds())
	for y := fog.Bounds().Min.Y; y < fog.Bounds().Max.Y; y++ {
		for x := fog.Bounds().Min.X; x < fog.Bounds().Max.X; x++ {
			r, _, _, _ := blurred.At(x, y).RGBA()
			out.SetGray(x, y, color.Gray{Y: uint8(r >> 8)})
		}
	}
	return out
}

// DownsampleHeightmap resizes a heightmap to width×height using bild's
// bilinear resampler, used to build a coarse preview/LOD copy for distant
// tessellation without re-reading the source bitmap.
func (PostEffects) DownsampleHeightmap(height *image.Gray, width, h int) image.Image {
	return transform.Resize(height, width, h, transform.Linear)
}
