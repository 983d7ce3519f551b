// SPDX-License-Identifier: Unlicense OR MIT

package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
)

// Music streams a sound file from disk instead of decoding it up front,
// which keeps large files out of memory. The file stays open until
// Close. Unlike Sound, a Music has a single decoder, so it cannot
// overlap with itself.
type Music struct {
	player
	f      *os.File
	s      beep.StreamSeekCloser
	format beep.Format
}

// OpenMusic opens the WAV, MP3, OGG or FLAC file at path for streaming
// playback.
func OpenMusic(path string) (*Music, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: opening music %s: %w", path, err)
	}
	s, format, err := decode(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: opening music %s: %w", path, err)
	}
	m := &Music{f: f, s: s, format: format}
	m.volume = 100
	return m, nil
}

// Duration returns the total play time of the stream.
func (m *Music) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return 0
	}
	return m.format.SampleRate.D(m.s.Len())
}

// ChannelCount returns the number of channels of the source file.
func (m *Music) ChannelCount() int {
	return m.format.NumChannels
}

// SampleRate returns the rate, in Hz, the file was recorded at.
func (m *Music) SampleRate() int {
	return int(m.format.SampleRate)
}

// Play starts the music from the beginning, or resumes it when paused.
// The first Play of the process opens the speaker.
func (m *Music) Play() error {
	return m.play(func() (beep.StreamSeeker, error) {
		if m.s == nil {
			return nil, errors.New("audio: music is closed")
		}
		if err := m.s.Seek(0); err != nil {
			return nil, fmt.Errorf("audio: rewinding music: %w", err)
		}
		return m.s, nil
	}, m.format.SampleRate)
}

// Pause suspends playback, keeping the position.
func (m *Music) Pause() {
	m.pause()
}

// Stop ends playback. The next Play starts over.
func (m *Music) Stop() {
	m.stop()
}

// Status returns Stopped, Paused or Playing.
func (m *Music) Status() Status {
	return m.status()
}

// SetVolume sets the volume on the 0 to 100 scale, applying to the
// playback in flight.
func (m *Music) SetVolume(v float64) {
	m.setVolume(v)
}

// Volume returns the volume on the 0 to 100 scale.
func (m *Music) Volume() float64 {
	return m.getVolume()
}

// SetLooping makes the music restart when it reaches the end. It applies
// to the playback in flight.
func (m *Music) SetLooping(loop bool) {
	m.setLooping(loop)
}

// Looping reports whether the music restarts at the end.
func (m *Music) Looping() bool {
	return m.looping()
}

// Close stops playback and releases the decoder and the file. The music
// cannot be played again afterwards.
func (m *Music) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	var err error
	if m.s != nil {
		err = m.s.Close()
		m.s = nil
	}
	if m.f != nil {
		if cerr := m.f.Close(); err == nil {
			err = cerr
		}
		m.f = nil
	}
	return err
}
