// SPDX-License-Identifier: Unlicense OR MIT

package graphics

import (
	"image"
	"image/color"

	"github.com/menuet/VRSFML/f32"
)

// Sprite pairs a texture region with a transform and a modulating color.
// It carries no GL state of its own; Quad exposes the geometry a
// renderer feeds to a vertex buffer.
type Sprite struct {
	tex   *Texture
	rect  image.Rectangle
	trans f32.Affine2D
	col   color.NRGBA
}

// NewSprite creates a sprite showing the whole of tex.
func NewSprite(tex *Texture) *Sprite {
	s := &Sprite{tex: tex, col: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	if tex != nil {
		s.rect = image.Rectangle{Max: tex.Size()}
	}
	return s
}

// SetTexture changes the texture. With resetRect the visible region is
// reset to the whole new texture; otherwise it is kept as is.
func (s *Sprite) SetTexture(tex *Texture, resetRect bool) {
	s.tex = tex
	if resetRect && tex != nil {
		s.rect = image.Rectangle{Max: tex.Size()}
	}
}

// Texture returns the sprite's texture.
func (s *Sprite) Texture() *Texture {
	return s.tex
}

// SetTextureRect sets the region of the texture the sprite shows.
func (s *Sprite) SetTextureRect(r image.Rectangle) {
	s.rect = r
}

// TextureRect returns the region of the texture the sprite shows.
func (s *Sprite) TextureRect() image.Rectangle {
	return s.rect
}

// SetColor sets the color modulating the texture pixels.
func (s *Sprite) SetColor(c color.NRGBA) {
	s.col = c
}

// Color returns the modulating color.
func (s *Sprite) Color() color.NRGBA {
	return s.col
}

// SetTransform sets the local-to-world transform.
func (s *Sprite) SetTransform(t f32.Affine2D) {
	s.trans = t
}

// Transform returns the local-to-world transform.
func (s *Sprite) Transform() f32.Affine2D {
	return s.trans
}

// Quad returns the sprite's four vertices in triangle strip order, in
// local coordinates. Texture coordinates are in pixels of the texture.
func (s *Sprite) Quad() [4]Vertex {
	w := float32(s.rect.Dx())
	h := float32(s.rect.Dy())
	tp := f32.Pt(float32(s.rect.Min.X), float32(s.rect.Min.Y))
	return [4]Vertex{
		{Position: f32.Pt(0, 0), Color: s.col, TexCoords: tp},
		{Position: f32.Pt(0, h), Color: s.col, TexCoords: tp.Add(f32.Pt(0, h))},
		{Position: f32.Pt(w, 0), Color: s.col, TexCoords: tp.Add(f32.Pt(w, 0))},
		{Position: f32.Pt(w, h), Color: s.col, TexCoords: tp.Add(f32.Pt(w, h))},
	}
}

// LocalBounds returns the sprite's bounds before the transform.
func (s *Sprite) LocalBounds() f32.Rectangle {
	return f32.Rectangle{Max: f32.Pt(float32(s.rect.Dx()), float32(s.rect.Dy()))}
}

// GlobalBounds returns the axis-aligned bounds of the transformed
// sprite.
func (s *Sprite) GlobalBounds() f32.Rectangle {
	lb := s.LocalBounds()
	corners := [4]f32.Point{
		s.trans.Transform(lb.Min),
		s.trans.Transform(f32.Pt(lb.Min.X, lb.Max.Y)),
		s.trans.Transform(f32.Pt(lb.Max.X, lb.Min.Y)),
		s.trans.Transform(lb.Max),
	}
	r := f32.Rectangle{Min: corners[0], Max: corners[0]}
	for _, c := range corners[1:] {
		if c.X < r.Min.X {
			r.Min.X = c.X
		}
		if c.Y < r.Min.Y {
			r.Min.Y = c.Y
		}
		if c.X > r.Max.X {
			r.Max.X = c.X
		}
		if c.Y > r.Max.Y {
			r.Max.Y = c.Y
		}
	}
	return r
}
