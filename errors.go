package extrude

import (
	"fmt"
)

// ConfigError reports a GridConfig field outside its allowed range.
type ConfigError struct {
	Field string
	Value int
	Rule  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %d: must be %s", e.Field, e.Value, e.Rule)
}

// GeometryError reports a source image whose size does not divide into
// whole tiles under the configured layout, or whose extruded canvas would be
// too large to allocate.
type GeometryError struct {
	Axis          string
	ImageSize     int
	TileSize      int
	Margin        int
	Padding       int
	ExtrudeAmount int

	// Overflow is set when the layout is whole but the canvas is too large.
	Overflow bool
}

func (e *GeometryError) Error() string {
	if e.Overflow {
		return fmt.Sprintf(
			"extruding image %s %d by %d overflows the destination canvas (tiles of %d, margin %d, padding %d)",
			e.Axis, e.ImageSize, e.ExtrudeAmount, e.TileSize, e.Margin, e.Padding,
		)
	}

	return fmt.Sprintf(
		"image %s %d does not fit whole tiles of %d (margin %d, padding %d)",
		e.Axis, e.ImageSize, e.TileSize, e.Margin, e.Padding,
	)
}

// DecodeError wraps a failure to read or decode the source tileset.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tileset image not loaded from %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CopyFault describes a single region copy that was skipped because its
// clamped rectangle was empty. It never aborts an extrusion.
type CopyFault struct {
	Col    int
	Row    int
	Region Region
	Reason string
}

func (f *CopyFault) Error() string {
	return fmt.Sprintf("tile %d,%d: %s copy skipped: %s", f.Col, f.Row, f.Region, f.Reason)
}
