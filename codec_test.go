package extrude

import (
	"bytes"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoad_Lossless(t *testing.T) {
	src := tileset(2, 2, 3, 3, 0, 0)
	dir := t.TempDir()

	for _, ext := range []string{".png", ".bmp", ".tiff", ".webp"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "nested", "out"+ext)

			require.NoError(t, Save(path, src))

			img, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, src.Bounds(), img.Bounds())

			got := image.NewRGBA(img.Bounds())
			draw.Draw(got, got.Bounds(), img, img.Bounds().Min, draw.Src)
			require.Equal(t, src.Pix, got.Pix)
		})
	}
}

func TestLoad_WebPKeepsRGB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.webp")
	require.NoError(t, Save(path, tileset(2, 1, 3, 3, 0, 0)))

	img, err := Load(path)
	require.NoError(t, err)

	_, ycbcr := img.(*image.NYCbCrA)
	require.False(t, ycbcr, "decoded as %T", img)
}

func TestSave_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")

	require.NoError(t, Save(path, tileset(1, 1, 8, 8, 0, 0)))

	img, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestCheckOutputFormat(t *testing.T) {
	require.NoError(t, CheckOutputFormat("out.PNG"))
	require.NoError(t, CheckOutputFormat("dir/out.tif"))
	require.ErrorContains(t, CheckOutputFormat("out.gif"), "unsupported image format .gif")
	require.ErrorContains(t, CheckOutputFormat("out"), "no image extension")

	path := filepath.Join(t.TempDir(), "out.xcf")
	require.Error(t, Save(path, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	require.NoFileExists(t, path)

	var buf bytes.Buffer
	require.Error(t, Encode(&buf, ".gif", image.NewRGBA(image.Rect(0, 0, 1, 1))))
}

func TestLoad_DecodeError(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.png"))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))

	_, err = Load(garbage)
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, garbage, decodeErr.Path)
	require.ErrorIs(t, err, image.ErrFormat)
}
