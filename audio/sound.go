// SPDX-License-Identifier: Unlicense OR MIT

package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
)

// SoundBuffer holds a sound decoded into memory in full. Buffers are
// immutable once loaded and any number of Sounds can play one at the
// same time.
type SoundBuffer struct {
	buf *beep.Buffer
}

// LoadSoundBuffer decodes the WAV, MP3, OGG or FLAC file at path.
func LoadSoundBuffer(path string) (*SoundBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: opening sound %s: %w", path, err)
	}
	defer f.Close()
	sb, err := decodeBuffer(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("audio: loading sound %s: %w", path, err)
	}
	return sb, nil
}

// DecodeSoundBuffer decodes a sound file from r, detecting the format
// from its leading bytes.
func DecodeSoundBuffer(r io.ReadSeeker) (*SoundBuffer, error) {
	sb, err := decodeBuffer(r, "")
	if err != nil {
		return nil, fmt.Errorf("audio: decoding sound: %w", err)
	}
	return sb, nil
}

func decodeBuffer(r io.ReadSeeker, ext string) (*SoundBuffer, error) {
	s, format, err := decode(r, ext)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	err = s.Err()
	s.Close()
	if err != nil {
		return nil, err
	}
	return &SoundBuffer{buf: buf}, nil
}

// Duration returns the total play time of the buffer.
func (b *SoundBuffer) Duration() time.Duration {
	return b.buf.Format().SampleRate.D(b.buf.Len())
}

// SampleCount returns the number of sample frames in the buffer.
func (b *SoundBuffer) SampleCount() int {
	return b.buf.Len()
}

// ChannelCount returns the number of channels of the source file.
func (b *SoundBuffer) ChannelCount() int {
	return b.buf.Format().NumChannels
}

// SampleRate returns the rate, in Hz, the buffer was recorded at.
func (b *SoundBuffer) SampleRate() int {
	return int(b.buf.Format().SampleRate)
}

func (b *SoundBuffer) streamer() beep.StreamSeeker {
	return b.buf.Streamer(0, b.buf.Len())
}

// Sound plays a SoundBuffer. A Sound is a single voice: Play on a
// playing Sound restarts it, and overlapping playback wants several
// Sounds sharing the buffer.
type Sound struct {
	player
	buf *SoundBuffer
}

// NewSound returns a stopped sound over buf at full volume.
func NewSound(buf *SoundBuffer) *Sound {
	s := &Sound{buf: buf}
	s.volume = 100
	return s
}

// Buffer returns the buffer the sound plays.
func (s *Sound) Buffer() *SoundBuffer {
	return s.buf
}

// Play starts the sound from the beginning, or resumes it when paused.
// The first Play of the process opens the speaker.
func (s *Sound) Play() error {
	return s.play(func() (beep.StreamSeeker, error) {
		return s.buf.streamer(), nil
	}, s.buf.buf.Format().SampleRate)
}

// Duration returns the total play time of the underlying buffer.
func (s *Sound) Duration() time.Duration {
	return s.buf.Duration()
}

// Pause suspends playback, keeping the position.
func (s *Sound) Pause() {
	s.pause()
}

// Stop ends playback. The next Play starts over.
func (s *Sound) Stop() {
	s.stop()
}

// Status returns Stopped, Paused or Playing.
func (s *Sound) Status() Status {
	return s.status()
}

// SetVolume sets the volume on the 0 to 100 scale, applying to the
// playback in flight.
func (s *Sound) SetVolume(v float64) {
	s.setVolume(v)
}

// Volume returns the volume on the 0 to 100 scale.
func (s *Sound) Volume() float64 {
	return s.getVolume()
}

// SetLooping makes the sound restart when it reaches the end. It applies
// to the playback in flight.
func (s *Sound) SetLooping(loop bool) {
	s.setLooping(loop)
}

// Looping reports whether the sound restarts at the end.
func (s *Sound) Looping() bool {
	return s.looping()
}
