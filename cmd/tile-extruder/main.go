package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	extrude "github.com/coalaura/go-extrude"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const version = "1.0.0"

const description = "Extrudes the edges of tiles to prevent tearing between frames in 2D tile-based game engines."

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	tileWidth  int
	tileHeight int
	input      string
	output     string
	color      string
	margin     int
	padding    int
	extrudeAmt int

	workers       int
	sampleSpacing bool
	preview       string
	previewScale  int
	verbose       bool
	version       bool
}

func newFlagSet(f *flags, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tile-extruder", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.SortFlags = false

	fs.IntVarP(&f.tileWidth, "tileWidth", "w", 0, "tile width in pixels")
	fs.IntVarP(&f.tileHeight, "tileHeight", "h", 0, "tile height in pixels")
	fs.StringVarP(&f.input, "input", "i", "", "the path to the tileset you want to extrude")
	fs.StringVarP(&f.output, "output", "o", "", "the path to output the extruded tileset image")
	fs.StringVarP(&f.color, "color", "c", "0x00000000", "RGBA hex color to use for the background, only matters if there's margin or padding")
	fs.IntVarP(&f.margin, "margin", "m", 0, "number of pixels between tiles and the edge of the tileset image")
	fs.IntVarP(&f.padding, "padding", "p", 0, "number of pixels between neighboring tiles")
	fs.IntVarP(&f.extrudeAmt, "extrudeAmt", "e", 1, "number of pixels to extrude each tile by")

	fs.IntVar(&f.workers, "workers", runtime.NumCPU(), "number of rows extruded in parallel")
	fs.BoolVar(&f.sampleSpacing, "sampleSpacing", false, "honor margin and padding when reading tiles from the input")
	fs.StringVar(&f.preview, "preview", "", "also write an enlarged copy of the output to this path")
	fs.IntVar(&f.previewScale, "previewScale", 4, "enlargement factor for --preview")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print progress and debug logs")
	fs.BoolVarP(&f.version, "version", "V", false, "print the version and exit")

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: tile-extruder [options]\n\n%s\n\nOptions:\n", description)
		fs.PrintDefaults()
	}

	return fs
}

// run executes the command and returns the process exit status: 0 on
// success, 1 on fatal errors, 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	var f flags

	fs := newFlagSet(&f, stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		fmt.Fprintln(stderr, err)
		fs.Usage()

		return 2
	}

	if f.version {
		fmt.Fprintln(stdout, version)

		return 0
	}

	if missing := missingArgument(f); missing != "" {
		fmt.Fprintf(stderr, "\nMissing %s! See help below for usage information:\n", missing)
		fs.Usage()

		return 2
	}

	bg, err := parseColor(f.color)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid value specified for COLOR with value: %s. %v\n", f.color, err)

		return 2
	}

	for _, path := range []string{f.output, f.preview} {
		if path == "" {
			continue
		}

		if err := extrude.CheckOutputFormat(path); err != nil {
			fmt.Fprintf(stderr, "%q: %v\n", path, err)

			return 2
		}
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}

	extrude.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer extrude.SetLogger(nil)

	cfg := extrude.GridConfig{
		TileWidth:     f.tileWidth,
		TileHeight:    f.tileHeight,
		Margin:        f.margin,
		Padding:       f.padding,
		ExtrudeAmount: f.extrudeAmt,
		Background:    bg,
	}

	if err := process(f, cfg, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "FAILED: %v\n", err)

		return 1
	}

	return 0
}

func process(f flags, cfg extrude.GridConfig, stdout, stderr io.Writer) error {
	p := message.NewPrinter(language.English)

	var s *spinner.Spinner

	opts := extrude.Options{
		Workers:       f.workers,
		SampleSpacing: f.sampleSpacing,
	}

	if f.verbose {
		s = spinner.New([]string{"-", "/", "|", "\\"}, 250*time.Millisecond, spinner.WithWriter(stderr))

		s.Prefix = "0% "
		s.HideCursor = true

		opts.Progress = func(done, total int) {
			perc := int(math.Round(float64(done) / float64(total) * 100))

			s.Lock()
			s.Prefix = fmt.Sprintf("%d%% ", perc)
			s.Unlock()
		}
	}

	x, err := extrude.NewExtruder(f.input, cfg, opts)
	if err != nil {
		return err
	}

	grid, err := x.Plan()
	if err != nil {
		return err
	}

	if f.verbose {
		p.Fprintf(stdout, "Extruding %d tiles (%d x %d) into a %d x %d image\n",
			grid.Tiles(), grid.NumCols, grid.NumRows, grid.DestWidth, grid.DestHeight)
	}

	start := time.Now()

	if s != nil {
		s.Start()
	}

	result, err := x.Extrude()

	if s != nil {
		s.Stop()
	}

	if err != nil {
		return err
	}

	if err := extrude.Save(f.output, result.Image); err != nil {
		return fmt.Errorf("write %q: %w", f.output, err)
	}

	if f.preview != "" {
		if err := extrude.Save(f.preview, extrude.Preview(result.Image, f.previewScale)); err != nil {
			return fmt.Errorf("write preview %q: %w", f.preview, err)
		}
	}

	if n := len(result.Faults); n > 0 {
		p.Fprintf(stderr, "Skipped %d of %d region copies\n", n, result.Grid.Copies())
	}

	if f.verbose {
		p.Fprintf(stdout, "Wrote %q in %s\n", f.output, time.Since(start).Round(time.Millisecond))
	}

	return nil
}

// missingArgument names the first required argument left unset.
func missingArgument(f flags) string {
	switch {
	case f.tileWidth == 0:
		return "tileWidth"
	case f.tileHeight == 0:
		return "tileHeight"
	case f.input == "":
		return "path to tileset image"
	case f.output == "":
		return "path to save extruded tileset image"
	}

	return ""
}

// parseColor reads a non-premultiplied RGBA hex color such as 0xff000080 or
// #336699. Six digit colors are opaque.
func parseColor(s string) (color.RGBA, error) {
	h := strings.ToLower(strings.TrimSpace(s))
	h = strings.TrimPrefix(h, "0x")
	h = strings.TrimPrefix(h, "#")

	switch len(h) {
	case 6:
		h += "ff"
	case 8:
	default:
		return color.RGBA{}, errors.New("expected 6 or 8 hex digits")
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.New("not a hex color")
	}

	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}

	return color.RGBAModel.Convert(c).(color.RGBA), nil
}
