package extrude

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	xwebp "golang.org/x/image/webp"
)

// Load reads and decodes a tileset. Any failure is returned as a
// *DecodeError.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	br := bufio.NewReader(f)

	var img image.Image

	// WebP goes through x/image/webp, which keeps lossless files in RGB.
	// The decoder registered by gen2brain/webp always converts to YCbCr.
	if isWebP(br) {
		img, err = xwebp.Decode(br)
	} else {
		img, _, err = image.Decode(br)
	}

	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return img, nil
}

func isWebP(br *bufio.Reader) bool {
	head, err := br.Peek(12)
	if err != nil {
		return false
	}

	return string(head[:4]) == "RIFF" && string(head[8:]) == "WEBP"
}

// CheckOutputFormat reports whether Save can encode to path's extension.
func CheckOutputFormat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".png", ".bmp", ".tif", ".tiff", ".jpg", ".jpeg", ".webp":
		return nil
	case "":
		return errors.New("output path has no image extension")
	default:
		return errors.New("unsupported image format " + ext)
	}
}

// Save encodes img to path, picking the format from the extension. WebP
// output is lossless.
func Save(path string, img image.Image) error {
	if err := CheckOutputFormat(path); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(out, filepath.Ext(path), img); err != nil {
		out.Close()

		return fmt.Errorf("encode %q: %w", path, err)
	}

	return out.Close()
}

// Encode writes img to w in the format named by ext (".png", ".webp", ...).
func Encode(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".webp":
		return webp.Encode(w, img, webp.Options{
			Lossless: true,
			Quality:  100,
		})
	}

	return errors.New("unsupported image format " + ext)
}
