package extrude

import (
	"image"

	"github.com/nfnt/resize"
)

// Preview returns img enlarged by a whole factor with nearest-neighbor
// sampling, which keeps single pixel seams visible when inspecting a sheet.
// Scales below 2 return img unchanged.
func Preview(img image.Image, scale int) image.Image {
	if scale < 2 {
		return img
	}

	b := img.Bounds()

	return resize.Resize(uint(b.Dx()*scale), uint(b.Dy()*scale), img, resize.NearestNeighbor)
}
