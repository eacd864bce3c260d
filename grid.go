package extrude

import (
	"image"
	"image/color"
	"math"
)

// GridConfig describes the tile layout of a source tileset and how far each
// tile should be extruded.
type GridConfig struct {
	TileWidth  int
	TileHeight int

	// Margin is the gap between the tileset edge and the first tile.
	Margin int
	// Padding is the gap between neighboring tiles.
	Padding int

	ExtrudeAmount int

	// Background fills every destination pixel no tile is copied onto.
	Background color.RGBA
}

// DefaultGridConfig returns a config for tiles of the given size with the
// default margin, padding, extrusion and a transparent background.
func DefaultGridConfig(tileWidth, tileHeight int) GridConfig {
	return GridConfig{
		TileWidth:     tileWidth,
		TileHeight:    tileHeight,
		ExtrudeAmount: 1,
	}
}

// Validate returns a *ConfigError for the first field out of range.
func (c GridConfig) Validate() error {
	switch {
	case c.TileWidth <= 0:
		return &ConfigError{Field: "tileWidth", Value: c.TileWidth, Rule: "a positive integer"}
	case c.TileHeight <= 0:
		return &ConfigError{Field: "tileHeight", Value: c.TileHeight, Rule: "a positive integer"}
	case c.Margin < 0:
		return &ConfigError{Field: "margin", Value: c.Margin, Rule: "a non-negative integer"}
	case c.Padding < 0:
		return &ConfigError{Field: "padding", Value: c.Padding, Rule: "a non-negative integer"}
	case c.ExtrudeAmount < 0:
		return &ConfigError{Field: "extrudeAmt", Value: c.ExtrudeAmount, Rule: "a non-negative integer"}
	}

	return nil
}

// Grid is the tile geometry derived from a source size and a GridConfig.
type Grid struct {
	GridConfig

	NumCols int
	NumRows int

	ExtrudedTileWidth  int
	ExtrudedTileHeight int

	DestWidth  int
	DestHeight int
}

// Plan derives the grid for a source image of imgWidth x imgHeight pixels.
// Sizes that do not split into whole tiles, or that would extrude into a
// canvas too large to address, yield a *GeometryError.
func Plan(imgWidth, imgHeight int, cfg GridConfig) (Grid, error) {
	if err := cfg.Validate(); err != nil {
		return Grid{}, err
	}

	geometryError := func(axis string, size, tile int, overflow bool) error {
		return &GeometryError{
			Axis:          axis,
			ImageSize:     size,
			TileSize:      tile,
			Margin:        cfg.Margin,
			Padding:       cfg.Padding,
			ExtrudeAmount: cfg.ExtrudeAmount,
			Overflow:      overflow,
		}
	}

	numCols, ok := wholeTiles(imgWidth, cfg.TileWidth, cfg.Margin, cfg.Padding)
	if !ok {
		return Grid{}, geometryError("width", imgWidth, cfg.TileWidth, false)
	}

	numRows, ok := wholeTiles(imgHeight, cfg.TileHeight, cfg.Margin, cfg.Padding)
	if !ok {
		return Grid{}, geometryError("height", imgHeight, cfg.TileHeight, false)
	}

	destWidth, ok := destSize(numCols, cfg.TileWidth, cfg.ExtrudeAmount, cfg.Margin, cfg.Padding)
	if !ok {
		return Grid{}, geometryError("width", imgWidth, cfg.TileWidth, true)
	}

	destHeight, ok := destSize(numRows, cfg.TileHeight, cfg.ExtrudeAmount, cfg.Margin, cfg.Padding)
	if !ok {
		return Grid{}, geometryError("height", imgHeight, cfg.TileHeight, true)
	}

	// image.NewRGBA needs width*height*4 bytes addressable.
	if area, ok := mulInt(destWidth, destHeight); !ok {
		return Grid{}, geometryError("height", imgHeight, cfg.TileHeight, true)
	} else if _, ok := mulInt(area, 4); !ok {
		return Grid{}, geometryError("height", imgHeight, cfg.TileHeight, true)
	}

	return Grid{
		GridConfig: cfg,
		NumCols:    numCols,
		NumRows:    numRows,

		ExtrudedTileWidth:  cfg.TileWidth + 2*cfg.ExtrudeAmount,
		ExtrudedTileHeight: cfg.TileHeight + 2*cfg.ExtrudeAmount,

		DestWidth:  destWidth,
		DestHeight: destHeight,
	}, nil
}

// wholeTiles counts the tiles along one axis, reporting false when the count
// is fractional or not positive.
func wholeTiles(size, tile, margin, padding int) (int, bool) {
	if size <= 0 || margin > size/2 {
		return 0, false
	}

	inner := size - 2*margin
	if inner < tile {
		return 0, false
	}

	// Padding at least as wide as the tiled area leaves room for one tile.
	if padding >= inner {
		if inner != tile {
			return 0, false
		}

		return 1, true
	}

	span := inner + padding
	step := tile + padding

	if span%step != 0 {
		return 0, false
	}

	return span / step, true
}

// destSize is 2*margin + n*(tile + 2*extrude + padding), reporting false
// when it does not fit in an int.
func destSize(n, tile, extrude, margin, padding int) (int, bool) {
	cell, ok := addInts(tile, extrude, extrude, padding)
	if !ok {
		return 0, false
	}

	cells, ok := mulInt(n, cell)
	if !ok {
		return 0, false
	}

	return addInts(cells, margin, margin)
}

// addInts sums non-negative values.
func addInts(vs ...int) (int, bool) {
	var sum int

	for _, v := range vs {
		if v > math.MaxInt-sum {
			return 0, false
		}

		sum += v
	}

	return sum, true
}

// mulInt multiplies non-negative values.
func mulInt(a, b int) (int, bool) {
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}

	return a * b, true
}

// Tiles returns the number of cells in the grid.
func (g Grid) Tiles() int {
	return g.NumCols * g.NumRows
}

// Copies returns the number of region copies an extrusion of the grid
// performs.
func (g Grid) Copies() int {
	return g.Tiles() * len(regionCopies(g.TileWidth, g.TileHeight, g.ExtrudeAmount))
}

// Bounds returns the destination canvas rectangle.
func (g Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.DestWidth, g.DestHeight)
}

// sourceOrigin is the top-left source pixel of the tile at col, row. Unless
// spacing is set, margin and padding are ignored on the read side.
func (g Grid) sourceOrigin(col, row int, spacing bool) image.Point {
	if spacing {
		return image.Pt(
			g.Margin+col*(g.TileWidth+g.Padding),
			g.Margin+row*(g.TileHeight+g.Padding),
		)
	}

	return image.Pt(col*g.TileWidth, row*g.TileHeight)
}

// destOrigin is the top-left pixel of the extruded cell at col, row.
func (g Grid) destOrigin(col, row int, spacing bool) image.Point {
	if spacing {
		return image.Pt(
			g.Margin+col*(g.ExtrudedTileWidth+g.Padding),
			g.Margin+row*(g.ExtrudedTileHeight+g.Padding),
		)
	}

	return image.Pt(col*g.ExtrudedTileWidth, row*g.ExtrudedTileHeight)
}
