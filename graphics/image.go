// SPDX-License-Identifier: Unlicense OR MIT

package graphics

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// DecodeImage reads an image from r and returns the pixels as tightly
// packed NRGBA, the layout textures upload. BMP, GIF, JPEG, PNG and
// TIFF are recognized.
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("graphics: decoding image: %w", err)
	}
	return toNRGBA(img), nil
}

// LoadImage reads an image file.
func LoadImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("graphics: loading image %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// SaveImage writes img in the format named by path's extension: .bmp,
// .jpg, .jpeg, .png, .tif or .tiff.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var encErr error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encErr = png.Encode(f, img)
	case ".jpg", ".jpeg":
		encErr = jpeg.Encode(f, img, nil)
	case ".bmp":
		encErr = bmp.Encode(f, img)
	case ".tif", ".tiff":
		encErr = tiff.Encode(f, img, nil)
	default:
		f.Close()
		return fmt.Errorf("graphics: unsupported image format %q", filepath.Ext(path))
	}
	if cerr := f.Close(); encErr == nil {
		encErr = cerr
	}
	if encErr != nil {
		return fmt.Errorf("graphics: saving image %s: %w", path, encErr)
	}
	return nil
}

// toNRGBA returns img's pixels as tightly packed NRGBA anchored at the
// origin, copying only when the representation differs.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*n.Bounds().Dx() && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
