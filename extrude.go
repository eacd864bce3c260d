// Package extrude pads every tile of a tileset with copies of its own border
// pixels, so texture filtering in 2D engines no longer bleeds neighboring
// tiles into each other.
package extrude

import (
	"cmp"
	"image"
	"slices"
	"sync"
)

type Extruder struct {
	source *image.RGBA
	cfg    GridConfig
	opts   Options
}

type Options struct {
	// Workers spreads rows over that many goroutines. Values below 2 run
	// everything on the calling goroutine.
	Workers int

	// SampleSpacing honors margin and padding when reading source tiles and
	// when placing destination cells. By default tiles are read at
	// col*tileWidth, row*tileHeight and packed from the canvas origin.
	SampleSpacing bool

	// Progress is called after each finished row with the number of tiles
	// copied so far.
	Progress func(done, total int)
}

// Result is a completed extrusion.
type Result struct {
	Image *image.RGBA
	Grid  Grid

	// Faults lists skipped copies in row, column, region order.
	Faults []*CopyFault
}

// NewExtruder loads the tileset at source. The config is checked before the
// file is touched.
func NewExtruder(source string, cfg GridConfig, opts Options) (*Extruder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	img, err := Load(source)
	if err != nil {
		return nil, err
	}

	return New(img, cfg, opts)
}

// New prepares an extruder for an already decoded tileset. img is copied, so
// later changes to it do not affect the extruder.
func New(img image.Image, cfg GridConfig, opts Options) (*Extruder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Extruder{
		source: prepareSource(img),
		cfg:    cfg,
		opts:   opts,
	}, nil
}

// Plan returns the grid the extruder will use without copying anything.
func (x *Extruder) Plan() (Grid, error) {
	b := x.source.Bounds()

	return Plan(b.Dx(), b.Dy(), x.cfg)
}

// Extrude builds the extruded tileset. Configuration and geometry errors are
// returned before any output exists; skipped copies end up in Result.Faults.
func (x *Extruder) Extrude() (*Result, error) {
	g, err := x.Plan()
	if err != nil {
		return nil, err
	}

	Logger().Debug("grid planned",
		"cols", g.NumCols,
		"rows", g.NumRows,
		"width", g.DestWidth,
		"height", g.DestHeight,
	)

	return x.extrudeGrid(g), nil
}

// extrudeGrid copies every cell of g from the source onto a fresh canvas.
// Skipped copies are logged and collected instead of stopping the run.
func (x *Extruder) extrudeGrid(g Grid) *Result {
	log := Logger()

	canvas := newCanvas(g)

	var (
		mu     sync.Mutex
		faults []*CopyFault
		done   int
	)

	extrudeRow := func(row int) {
		var rowFaults []*CopyFault

		for col := 0; col < g.NumCols; col++ {
			rowFaults = append(rowFaults, copyTile(canvas, x.source, g, col, row, x.opts.SampleSpacing)...)
		}

		mu.Lock()
		defer mu.Unlock()

		faults = append(faults, rowFaults...)
		done += g.NumCols

		if x.opts.Progress != nil {
			x.opts.Progress(done, g.Tiles())
		}

		log.Debug("row extruded", "row", row, "done", done, "total", g.Tiles())
	}

	if x.opts.Workers > 1 && g.NumRows > 1 {
		q := NewQueue(min(x.opts.Workers, g.NumRows))

		for row := 0; row < g.NumRows; row++ {
			q.Work(func() {
				extrudeRow(row)
			})
		}

		q.Wait()
		q.Close()
	} else {
		for row := 0; row < g.NumRows; row++ {
			extrudeRow(row)
		}
	}

	slices.SortFunc(faults, func(a, b *CopyFault) int {
		return cmp.Or(
			cmp.Compare(a.Row, b.Row),
			cmp.Compare(a.Col, b.Col),
			cmp.Compare(a.Region, b.Region),
		)
	})

	for _, f := range faults {
		log.Warn("copy skipped",
			"col", f.Col,
			"row", f.Row,
			"region", f.Region.String(),
			"reason", f.Reason,
		)
	}

	return &Result{
		Image:  canvas,
		Grid:   g,
		Faults: faults,
	}
}
