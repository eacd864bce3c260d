package extrude

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// newCanvas allocates the destination buffer with every pixel set to the
// grid's background color.
func newCanvas(g Grid) *image.RGBA {
	canvas := image.NewRGBA(g.Bounds())

	if g.Background != (color.RGBA{}) {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(g.Background), image.Point{}, draw.Src)
	}

	return canvas
}

// prepareSource copies img into a fresh RGBA buffer anchored at 0,0 so tile
// coordinates can be used directly and the caller's storage is never shared.
func prepareSource(img image.Image) *image.RGBA {
	b := img.Bounds()

	prepared := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	draw.Draw(prepared, prepared.Bounds(), img, b.Min, draw.Src)

	return prepared
}
