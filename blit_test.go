package extrude

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionCopies(t *testing.T) {
	require.Len(t, regionCopies(4, 4, 0), 1)

	copies := regionCopies(4, 3, 2)
	require.Len(t, copies, 9)

	for i, rc := range copies {
		require.Equal(t, Region(i), rc.region, "copies run in table order")
	}

	require.Equal(t, image.Rect(3, 0, 4, 3), copies[RightEdge].src)
	require.Equal(t, image.Pt(6, 2), copies[RightEdge].dst)
	require.Equal(t, image.Rect(0, 2, 4, 3), copies[BottomEdge].src)
	require.Equal(t, image.Pt(2, 5), copies[BottomEdge].dst)
	require.Equal(t, image.Pt(6, 5), copies[BottomRightCorner].dst)
}

func TestRegion_String(t *testing.T) {
	require.Equal(t, "interior", Interior.String())
	require.Equal(t, "bottom-right corner", BottomRightCorner.String())
	require.Equal(t, "unknown region", Region(42).String())
}

func TestBlit_Clamps(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 9, A: 255})

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))

	// Only the 1x1 overlap with the source is copied.
	require.NoError(t, blit(dst, src, image.Rect(1, 1, 3, 3), image.Pt(0, 0), image.Pt(1, 1)))
	require.Equal(t, color.RGBA{R: 9, A: 255}, dst.RGBAAt(0, 0))
	require.Equal(t, color.RGBA{}, dst.RGBAAt(1, 1))

	err := blit(dst, src, image.Rect(5, 5, 6, 6), image.Pt(0, 0), image.Pt(1, 1))
	require.ErrorContains(t, err, "source rectangle")

	err = blit(dst, src, image.Rect(0, 0, 1, 1), image.Pt(10, 10), image.Pt(1, 1))
	require.ErrorContains(t, err, "destination rectangle")
}

func TestBlit_Stretch(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	for x := 0; x < 3; x++ {
		src.SetRGBA(x, 0, color.RGBA{R: uint8(10 * (x + 1)), A: 255})
	}

	dst := image.NewRGBA(image.Rect(0, 0, 3, 4))

	require.NoError(t, blit(dst, src, src.Bounds(), image.Pt(0, 0), image.Pt(1, 4)))

	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			require.Equal(t, src.RGBAAt(x, 0), dst.RGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestCopyTile_PartialSource(t *testing.T) {
	g, err := Plan(4, 4, GridConfig{TileWidth: 4, TileHeight: 4, ExtrudeAmount: 1})
	require.NoError(t, err)

	// Half a tile: everything reading the rightmost column is lost.
	src := image.NewRGBA(image.Rect(0, 0, 2, 4))
	fill(src, color.RGBA{G: 200, A: 255})

	dst := newCanvas(g)

	faults := copyTile(dst, src, g, 0, 0, false)
	require.Len(t, faults, 3)

	var regions []Region
	for _, f := range faults {
		regions = append(regions, f.Region)
		require.Equal(t, 0, f.Col)
		require.Equal(t, 0, f.Row)
		require.Contains(t, f.Error(), f.Region.String())
	}

	require.Equal(t, []Region{RightEdge, TopRightCorner, BottomRightCorner}, regions)

	// The surviving copies still landed.
	require.Equal(t, color.RGBA{G: 200, A: 255}, dst.RGBAAt(1, 1))
	require.Equal(t, color.RGBA{G: 200, A: 255}, dst.RGBAAt(0, 0))
	require.Equal(t, color.RGBA{}, dst.RGBAAt(5, 5))
}

func TestCopyTile_OutOfRange(t *testing.T) {
	g, err := Plan(8, 8, GridConfig{TileWidth: 4, TileHeight: 4, ExtrudeAmount: 1})
	require.NoError(t, err)

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))

	faults := copyTile(newCanvas(g), src, g, 1, 1, false)
	require.Len(t, faults, 9)

	for _, f := range faults {
		require.Contains(t, f.Reason, "source rectangle")
		require.ErrorContains(t, f, "copy skipped: source rectangle")
	}
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
