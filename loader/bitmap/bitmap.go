// Package bitmap implements the province/heightmap/terrain/normal bitmap
// loader (spec §4.7.1): decodes a BMP into an owned pixel buffer and
// exposes CollectUniqueColors and FindPixelsWithColor for downstream
// province extraction.
//
// Grounded on cmd/mapgen/main.go's image-pipeline idiom: decode via a
// registered stdlib/x-image format decoder, operate over the resulting
// image.Image with bild transforms, blank-import format packages purely
// for their side-effecting format registration. Here the format needed is
// BMP (golang.org/x/image/bmp), the pack's other confirmed image
// dependency alongside webp.
package bitmap

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/bmp"

	"github.com/forgottenhistory/archon-engine"
)

// RGB is a packed 24-bit color, matching definition.csv's R;G;B columns.
type RGB struct{ R, G, B uint8 }

// Pack returns the 0x00RRGGBB packed representation used as a map key
// throughout the province-extraction pipeline.
func (c RGB) Pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Buffer is an owned, decoded bitmap: width/height plus a flat RGB pixel
// array. Spec §4.7.1 calls for "an asynchronous file-read primitive that
// yields an owned byte buffer with explicit disposal"; Go's garbage
// collector makes explicit disposal unnecessary, so Buffer carries no
// Close method — the "ownership" contract is satisfied by Buffer being a
// value the loader alone constructs and the caller alone discards by
// letting it go out of scope.
type Buffer struct {
	Width, Height int
	Pixels        []RGB // row-major, length Width*Height
}

// Load reads and decodes a BMP file at path into an owned Buffer.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", archon.ErrFileIO, err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// Decode parses a BMP stream into an owned Buffer.
func Decode(r io.Reader) (*Buffer, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", archon.ErrParse, err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := &Buffer{Width: w, Height: h, Pixels: make([]RGB, w*h)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			buf.Pixels[y*w+x] = RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}
	return buf, nil
}

// At returns the pixel at (x,y).
func (b *Buffer) At(x, y int) RGB { return b.Pixels[y*b.Width+x] }

// CollectUniqueColors scans the entire buffer once and returns the set of
// distinct colors present, used to cross-check against definition.csv's
// roster (spec §4.7.1).
func (b *Buffer) CollectUniqueColors() map[uint32]RGB {
	out := make(map[uint32]RGB)
	for _, p := range b.Pixels {
		out[p.Pack()] = p
	}
	return out
}

// FindPixelsWithColor returns every (x,y) coordinate whose pixel matches c.
func (b *Buffer) FindPixelsWithColor(c RGB) []image.Point {
	want := c.Pack()
	var out []image.Point
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Pixels[y*b.Width+x].Pack() == want {
				out = append(out, image.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// ToGray reinterprets the buffer as a single-channel grayscale source,
// used for heightmap/fog bitmaps that are nominally single-channel but
// stored as 24-bit BMPs; the red channel is taken as the intensity.
func (b *Buffer) ToGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := b.At(x, y)
			g.SetGray(x, y, color.Gray{Y: p.R})
		}
	}
	return g
}
