// SPDX-License-Identifier: Unlicense OR MIT

package graphics

import (
	"fmt"
	"image"

	"github.com/menuet/VRSFML/internal/gl"
	"github.com/menuet/VRSFML/internal/glctx"
)

// Texture is a GL texture living on the share group, usable from every
// context. The zero value is not valid; use one of the constructors.
//
// A texture may be used concurrently with other resources, but its own
// methods must not race with each other.
type Texture struct {
	tex      uint32
	size     image.Point
	smooth   bool
	repeated bool
	srgb     bool
	cacheID  uint64
}

// NewTexture creates a texture with undefined contents.
func NewTexture(size image.Point) (*Texture, error) {
	return newTexture(size, false)
}

// NewSRGBTexture creates a texture whose storage is sRGB encoded, so
// sampling converts texels to linear color.
func NewSRGBTexture(size image.Point) (*Texture, error) {
	return newTexture(size, true)
}

// NewTextureFromImage creates a texture holding the pixels of img.
func NewTextureFromImage(img image.Image) (*Texture, error) {
	t, err := newTexture(img.Bounds().Size(), false)
	if err != nil {
		return nil, err
	}
	if err := t.Update(img); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

func newTexture(size image.Point, srgb bool) (*Texture, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("graphics: invalid texture size %dx%d", size.X, size.Y)
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return nil, err
	}
	defer release()

	if max := f.GetInteger(gl.MAX_TEXTURE_SIZE); size.X > max || size.Y > max {
		return nil, fmt.Errorf("graphics: texture size %dx%d exceeds the maximum %d", size.X, size.Y, max)
	}

	t := &Texture{tex: f.GenTexture(), size: size, srgb: srgb, cacheID: nextCacheID()}
	internal := gl.Enum(gl.RGBA8)
	if srgb {
		internal = gl.SRGB8_ALPHA8
	}
	f.BindTexture(gl.TEXTURE_2D, t.tex)
	f.TexImage2D(gl.TEXTURE_2D, 0, internal, size.X, size.Y, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	return t, nil
}

// Size returns the texture size in pixels.
func (t *Texture) Size() image.Point {
	return t.size
}

// Native returns the GL texture name, for callers that issue their own
// GL with a context current.
func (t *Texture) Native() uint32 {
	return t.tex
}

// CacheID identifies the current content generation of the texture. It
// changes whenever the storage or the pixels change, never repeating a
// previous value of any texture, so renderers can key caches on it.
func (t *Texture) CacheID() uint64 {
	return t.cacheID
}

// IsSRGB reports whether the texture storage is sRGB encoded.
func (t *Texture) IsSRGB() bool {
	return t.srgb
}

// IsSmooth reports whether sampling interpolates linearly.
func (t *Texture) IsSmooth() bool {
	return t.smooth
}

// IsRepeated reports whether sampling outside [0, 1] wraps around.
func (t *Texture) IsRepeated() bool {
	return t.repeated
}

// Update replaces the pixels in img's bounds starting at the texture
// origin. The image must not be larger than the texture.
func (t *Texture) Update(img image.Image) error {
	nrgba := toNRGBA(img)
	b := nrgba.Bounds()
	return t.UpdatePixels(nrgba.Pix, image.Rectangle{Max: b.Size()})
}

// UpdatePixels replaces the pixels of the region r with pix, tightly
// packed RGBA rows.
func (t *Texture) UpdatePixels(pix []byte, r image.Rectangle) error {
	if t.tex == 0 {
		return fmt.Errorf("graphics: texture already released")
	}
	if !r.In(image.Rectangle{Max: t.size}) {
		return fmt.Errorf("graphics: update region %v outside texture %dx%d", r, t.size.X, t.size.Y)
	}
	if want := 4 * r.Dx() * r.Dy(); len(pix) < want {
		return fmt.Errorf("graphics: update needs %d bytes, got %d", want, len(pix))
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return err
	}
	defer release()

	f.BindTexture(gl.TEXTURE_2D, t.tex)
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.TexSubImage2D(gl.TEXTURE_2D, 0, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), gl.RGBA, gl.UNSIGNED_BYTE, pix)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, t.minFilter())
	t.cacheID = nextCacheID()
	// Flush so the new pixels are visible to the other contexts of the
	// share group right away.
	f.Flush()
	return nil
}

// SetSmooth switches between linear and nearest sampling.
func (t *Texture) SetSmooth(smooth bool) error {
	if smooth == t.smooth {
		return nil
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return err
	}
	defer release()

	t.smooth = smooth
	f.BindTexture(gl.TEXTURE_2D, t.tex)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, t.magFilter())
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, t.minFilter())
	return nil
}

// SetRepeated switches sampling outside [0, 1] between wrapping and
// clamping to the edge.
func (t *Texture) SetRepeated(repeated bool) error {
	if repeated == t.repeated {
		return nil
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return err
	}
	defer release()

	t.repeated = repeated
	wrap := gl.CLAMP_TO_EDGE
	if repeated {
		wrap = gl.REPEAT
	}
	f.BindTexture(gl.TEXTURE_2D, t.tex)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	return nil
}

func (t *Texture) magFilter() int {
	if t.smooth {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func (t *Texture) minFilter() int {
	if t.smooth {
		return gl.LINEAR
	}
	return gl.NEAREST
}

// Release destroys the GL texture. Release is idempotent. The texture
// must not be used afterwards.
func (t *Texture) Release() {
	if t.tex == 0 {
		return
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return
	}
	defer release()
	f.DeleteTexture(t.tex)
	t.tex = 0
}

// Bind makes t the texture sampled from the active context. A nil t
// unbinds.
func Bind(t *Texture) error {
	f, release, err := ensureFuncs()
	if err != nil {
		return err
	}
	defer release()
	if t != nil {
		f.BindTexture(gl.TEXTURE_2D, t.tex)
	} else {
		f.BindTexture(gl.TEXTURE_2D, 0)
	}
	return nil
}

// MaxTextureSize returns the largest texture dimension the share group
// supports.
func MaxTextureSize() (int, error) {
	f, release, err := ensureFuncs()
	if err != nil {
		return 0, err
	}
	defer release()
	return f.GetInteger(gl.MAX_TEXTURE_SIZE), nil
}

func ensureFuncs() (gl.Functions, func(), error) {
	release, err := glctx.Ensure()
	if err != nil {
		return nil, nil, err
	}
	g, err := glctx.Shared()
	if err != nil {
		release()
		return nil, nil, err
	}
	return g.Functions(), release, nil
}
