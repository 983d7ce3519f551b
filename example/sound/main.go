// SPDX-License-Identifier: Unlicense OR MIT

// Command sound plays the sound files given on the command line, one
// after the other.
package main

import (
	"log"
	"os"
	"time"

	"github.com/menuet/VRSFML/audio"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s file.wav [file.ogg ...]", os.Args[0])
	}
	if err := audio.Init(); err != nil {
		log.Fatal(err)
	}

	for _, path := range os.Args[1:] {
		buf, err := audio.LoadSoundBuffer(path)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%s: %v, %d channels at %d Hz", path, buf.Duration(), buf.ChannelCount(), buf.SampleRate())

		sound := audio.NewSound(buf)
		if err := sound.Play(); err != nil {
			log.Fatal(err)
		}
		for sound.Status() == audio.Playing {
			time.Sleep(50 * time.Millisecond)
		}
	}
}
