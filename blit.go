package extrude

import (
	"fmt"
	"image"

	"github.com/oliamb/cutter"
	"golang.org/x/image/draw"
)

// Region names one of the nine rectangles copied for every tile.
type Region int

const (
	Interior Region = iota
	TopEdge
	LeftEdge
	RightEdge
	BottomEdge
	TopLeftCorner
	TopRightCorner
	BottomLeftCorner
	BottomRightCorner
)

var regionNames = [...]string{
	Interior:          "interior",
	TopEdge:           "top edge",
	LeftEdge:          "left edge",
	RightEdge:         "right edge",
	BottomEdge:        "bottom edge",
	TopLeftCorner:     "top-left corner",
	TopRightCorner:    "top-right corner",
	BottomLeftCorner:  "bottom-left corner",
	BottomRightCorner: "bottom-right corner",
}

func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "unknown region"
	}

	return regionNames[r]
}

// regionCopy is one rectangle of a tile: src is relative to the source tile
// origin, dst is the offset inside the extruded cell. Axes flagged in
// stretch are replicated extrudeAmount times.
type regionCopy struct {
	region   Region
	src      image.Rectangle
	dst      image.Point
	stretchX bool
	stretchY bool
}

func regionCopies(tw, th, e int) []regionCopy {
	interior := regionCopy{region: Interior, src: image.Rect(0, 0, tw, th), dst: image.Pt(e, e)}

	if e == 0 {
		return []regionCopy{interior}
	}

	return []regionCopy{
		interior,

		{region: TopEdge, src: image.Rect(0, 0, tw, 1), dst: image.Pt(e, 0), stretchY: true},
		{region: LeftEdge, src: image.Rect(0, 0, 1, th), dst: image.Pt(0, e), stretchX: true},
		{region: RightEdge, src: image.Rect(tw-1, 0, tw, th), dst: image.Pt(e+tw, e), stretchX: true},
		{region: BottomEdge, src: image.Rect(0, th-1, tw, th), dst: image.Pt(e, e+th), stretchY: true},

		{region: TopLeftCorner, src: image.Rect(0, 0, 1, 1), dst: image.Pt(0, 0), stretchX: true, stretchY: true},
		{region: TopRightCorner, src: image.Rect(tw-1, 0, tw, 1), dst: image.Pt(e+tw, 0), stretchX: true, stretchY: true},
		{region: BottomLeftCorner, src: image.Rect(0, th-1, 1, th), dst: image.Pt(0, e+th), stretchX: true, stretchY: true},
		{region: BottomRightCorner, src: image.Rect(tw-1, th-1, tw, th), dst: image.Pt(e+tw, e+th), stretchX: true, stretchY: true},
	}
}

// copyTile extrudes the tile at col, row of src into dst. Copies that clamp
// to nothing are returned as faults; the remaining regions are still copied.
func copyTile(dst, src *image.RGBA, g Grid, col, row int, spacing bool) []*CopyFault {
	so := g.sourceOrigin(col, row, spacing)
	do := g.destOrigin(col, row, spacing)

	var faults []*CopyFault

	for _, rc := range regionCopies(g.TileWidth, g.TileHeight, g.ExtrudeAmount) {
		scale := image.Pt(1, 1)
		if rc.stretchX {
			scale.X = g.ExtrudeAmount
		}
		if rc.stretchY {
			scale.Y = g.ExtrudeAmount
		}

		if err := blit(dst, src, rc.src.Add(so), do.Add(rc.dst), scale); err != nil {
			faults = append(faults, &CopyFault{
				Col:    col,
				Row:    row,
				Region: rc.region,
				Reason: err.Error(),
			})
		}
	}

	return faults
}

// blit copies sr of src to dp in dst, scaling each axis by the given whole
// factor with nearest-neighbor sampling. Both rectangles are clamped to their
// image bounds. An error means nothing was copied.
func blit(dst, src *image.RGBA, sr image.Rectangle, dp image.Point, scale image.Point) error {
	crop, err := cutter.Crop(src, cutter.Config{
		Width:  sr.Dx(),
		Height: sr.Dy(),
		Anchor: sr.Min,
		Mode:   cutter.TopLeft,
	})
	if err != nil {
		return fmt.Errorf("crop %v: %w", sr, err)
	}

	cr := crop.Bounds()
	if cr.Empty() {
		return fmt.Errorf("source rectangle %v outside %v", sr, src.Bounds())
	}

	// Pixels clipped off the top/left of the source shift the target.
	off := cr.Min.Sub(sr.Min)
	dp = dp.Add(image.Pt(off.X*scale.X, off.Y*scale.Y))

	dr := image.Rectangle{
		Min: dp,
		Max: dp.Add(image.Pt(cr.Dx()*scale.X, cr.Dy()*scale.Y)),
	}
	if dr.Intersect(dst.Bounds()).Empty() {
		return fmt.Errorf("destination rectangle %v outside %v", dr, dst.Bounds())
	}

	if scale == image.Pt(1, 1) {
		draw.Copy(dst, dp, crop, cr, draw.Src, nil)
	} else {
		draw.NearestNeighbor.Scale(dst, dr, crop, cr, draw.Src, nil)
	}

	return nil
}
