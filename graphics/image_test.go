// SPDX-License-Identifier: Unlicense OR MIT

package graphics

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = byte(i*37 + 11)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func TestImageRoundtrip(t *testing.T) {
	src := testImage()
	dir := t.TempDir()
	for _, name := range []string{"img.png", "img.bmp", "img.tiff"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(path, src); err != nil {
			t.Fatalf("SaveImage(%s): %v", name, err)
		}
		got, err := LoadImage(path)
		if err != nil {
			t.Fatalf("LoadImage(%s): %v", name, err)
		}
		if got.Bounds() != src.Bounds() {
			t.Errorf("%s: got bounds %v, expected %v", name, got.Bounds(), src.Bounds())
		}
		if !bytes.Equal(got.Pix, src.Pix) {
			t.Errorf("%s: pixels changed across the roundtrip", name)
		}
	}
}

func TestImageSaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.jpg")
	if err := SaveImage(path, testImage()); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	got, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("got bounds %v, expected 3x2", got.Bounds())
	}
}

func TestImageSaveUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.xyz")
	err := SaveImage(path, testImage())
	if err == nil {
		t.Fatal("expected an error for an unknown extension")
	}
	if !strings.Contains(err.Error(), "unsupported image format") {
		t.Errorf("got %q, expected an unsupported format error", err)
	}
}

func TestDecodeImage(t *testing.T) {
	src := testImage()
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	got, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Error("pixels changed across decode")
	}
}

func TestDecodeImageInvalid(t *testing.T) {
	_, err := DecodeImage(strings.NewReader("not an image"))
	if err == nil {
		t.Fatal("expected an error for junk input")
	}
}

func TestToNRGBA(t *testing.T) {
	tight := testImage()
	if got := toNRGBA(tight); got != tight {
		t.Error("expected a tight NRGBA image to be returned as is")
	}

	rgba := image.NewRGBA(image.Rect(2, 3, 5, 6))
	rgba.SetRGBA(2, 3, color.RGBA{R: 200, G: 100, B: 50, A: 0xff})
	got := toNRGBA(rgba)
	if got.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Errorf("got bounds %v, expected the origin anchored 3x3", got.Bounds())
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{R: 200, G: 100, B: 50, A: 0xff}) {
		t.Errorf("got %v, expected the source pixel", c)
	}
}
