// SPDX-License-Identifier: Unlicense OR MIT

// Package audio decodes sound files and plays them through the system
// speaker.
//
// The speaker mixes at a fixed 44100 Hz; sources with a different rate
// are resampled on the fly. Play brings the device up lazily, but Init
// can be called ahead of time to surface device errors early.
package audio

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const mixerRate beep.SampleRate = 44100

var (
	initOnce sync.Once
	initErr  error
)

// Init opens the speaker. Only the first call talks to the device; later
// calls return the first call's result.
func Init() error {
	initOnce.Do(func() {
		initErr = speaker.Init(mixerRate, mixerRate.N(time.Second/10))
	})
	return initErr
}

// SampleRate returns the rate, in Hz, the speaker mixes at.
func SampleRate() int {
	return int(mixerRate)
}
