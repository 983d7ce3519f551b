// SPDX-License-Identifier: Unlicense OR MIT

package graphics

import (
	"image/color"

	"github.com/menuet/VRSFML/f32"
)

// Vertex is one point of a primitive: a position, a color and a pair of
// texture coordinates in pixels. The field order is the interleaved
// layout vertex arrays are declared with, so a []Vertex can be handed to
// a vertex buffer as is.
type Vertex struct {
	Position  f32.Point
	Color     color.NRGBA
	TexCoords f32.Point
}
