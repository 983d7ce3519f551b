// SPDX-License-Identifier: Unlicense OR MIT

// Command opengl opens a window with the context attributes read from
// settings.toml, reports what the driver actually granted and keeps a
// generated texture on screen until the window is closed.
package main

import (
	"image"
	"image/color"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/menuet/VRSFML/graphics"
	"github.com/menuet/VRSFML/window"
)

type config struct {
	Width          int
	Height         int
	Title          string
	Fullscreen     bool
	FramerateLimit uint
	Context        contextConfig
}

type contextConfig struct {
	MajorVersion      uint
	MinorVersion      uint
	Core              bool
	Debug             bool
	DepthBits         uint
	StencilBits       uint
	AntialiasingLevel uint
	SRGBCapable       bool
}

const configFile = "settings.toml"

func defaultConfig() config {
	return config{
		Width:          1024,
		Height:         576,
		Title:          "VRSFML OpenGL",
		FramerateLimit: 60,
		Context: contextConfig{
			MajorVersion:      3,
			MinorVersion:      3,
			DepthBits:         24,
			StencilBits:       8,
			AntialiasingLevel: 4,
		},
	}
}

func loadConfig() config {
	conf := defaultConfig()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		writeConfig(conf)
		return conf
	}
	if _, err := toml.DecodeFile(configFile, &conf); err != nil {
		log.Fatalf("Couldn't read %s: %v", configFile, err)
	}
	return conf
}

func writeConfig(conf config) {
	f, err := os.Create(configFile)
	if err != nil {
		log.Fatalf("Couldn't write %s: %v", configFile, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		log.Fatalf("Couldn't write %s: %v", configFile, err)
	}
}

func settings(c contextConfig) window.ContextSettings {
	var flags window.ContextAttribute
	if c.Core {
		flags |= window.ContextCore
	}
	if c.Debug {
		flags |= window.ContextDebug
	}
	return window.ContextSettings{
		MajorVersion:      c.MajorVersion,
		MinorVersion:      c.MinorVersion,
		AttributeFlags:    flags,
		DepthBits:         c.DepthBits,
		StencilBits:       c.StencilBits,
		AntialiasingLevel: c.AntialiasingLevel,
		SRGBCapable:       c.SRGBCapable,
	}
}

// checkerboard builds the texture content on the CPU, blue and white
// with a red border.
func checkerboard(size image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rectangle{Max: size})
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			c := color.NRGBA{R: 0x20, G: 0x48, B: 0xc8, A: 0xff}
			if (x/16+y/16)%2 == 0 {
				c = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
			}
			if x < 2 || y < 2 || x >= size.X-2 || y >= size.Y-2 {
				c = color.NRGBA{R: 0xc8, G: 0x20, B: 0x20, A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func main() {
	conf := loadConfig()

	w, err := window.New(
		window.Mode(window.VideoMode{Size: image.Pt(conf.Width, conf.Height), BitsPerPixel: 32}),
		window.Title(conf.Title),
		window.Fullscreen(conf.Fullscreen),
		window.Settings(settings(conf.Context)),
		window.FramerateLimit(conf.FramerateLimit),
	)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("requested: %v", settings(conf.Context))
	log.Printf("granted:   %v", w.Settings())
	for _, ext := range []string{"GL_ARB_debug_output", "GL_EXT_texture_sRGB", "GL_ARB_copy_buffer"} {
		log.Printf("extension %s: %t", ext, window.IsExtensionAvailable(ext))
	}

	tex, err := graphics.NewTextureFromImage(checkerboard(image.Pt(256, 256)))
	if err != nil {
		log.Fatal(err)
	}
	defer tex.Release()
	tex.SetSmooth(true)

	sprite := graphics.NewSprite(tex)
	log.Printf("sprite bounds: %v", sprite.GlobalBounds())

	for w.IsOpen() {
		for {
			e, ok := w.PollEvent()
			if !ok {
				break
			}
			switch e := e.(type) {
			case window.CloseEvent:
				w.Close()
			case window.KeyEvent:
				if e.State == window.Press && e.Name == "Escape" {
					w.Close()
				}
			case window.ResizeEvent:
				log.Printf("resized to %v", e.Size)
			}
		}
		if !w.IsOpen() {
			break
		}
		w.Display()
	}
}
