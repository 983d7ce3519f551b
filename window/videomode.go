// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"cmp"
	"image"

	"golang.org/x/exp/slices"
)

// VideoMode is a display mode: a size in pixels and a color depth.
type VideoMode struct {
	Size         image.Point
	BitsPerPixel int
}

// DesktopMode returns the mode the desktop currently uses, or the zero
// mode when no display backend is available.
func DesktopMode() VideoMode {
	p, err := thePlatform()
	if err != nil {
		return VideoMode{}
	}
	return p.desktop()
}

// FullscreenModes returns the modes the primary display supports for
// fullscreen windows, best first: higher color depth, then larger width,
// then larger height.
func FullscreenModes() []VideoMode {
	p, err := thePlatform()
	if err != nil {
		return nil
	}
	modes := p.modes()
	sortModes(modes)
	return modes
}

// IsValid reports whether the mode can back a fullscreen window.
func (m VideoMode) IsValid() bool {
	return slices.Contains(FullscreenModes(), m)
}

func sortModes(modes []VideoMode) {
	slices.SortFunc(modes, func(a, b VideoMode) int {
		if c := cmp.Compare(b.BitsPerPixel, a.BitsPerPixel); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Size.X, a.Size.X); c != 0 {
			return c
		}
		return cmp.Compare(b.Size.Y, a.Size.Y)
	})
}
