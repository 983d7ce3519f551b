// SPDX-License-Identifier: Unlicense OR MIT

package audio

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// Status reports what a Sound or Music is doing.
type Status uint8

const (
	Stopped Status = iota
	Paused
	Playing
)

func (s Status) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	}
	return "stopped"
}

const resampleQuality = 4

// player carries the speaker-side state shared by Sound and Music. The
// speaker pulls from the streamer chain on its own goroutine, so chain
// fields are only mutated under speaker.Lock and the loop flag and
// drained marker are atomics.
type player struct {
	mu     sync.Mutex
	ctrl   *beep.Ctrl
	vol    *effects.Volume
	loop   int32
	volume float64
	paused bool
	done   *int32
}

// play resumes a paused playback, or detaches the current one and starts
// over from the streamer src returns.
func (p *player) play(src func() (beep.StreamSeeker, error), rate beep.SampleRate) error {
	if err := Init(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl != nil && p.paused && atomic.LoadInt32(p.done) == 0 {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.paused = false
		return nil
	}
	s, err := src()
	if err != nil {
		return err
	}
	p.startLocked(s, rate)
	return nil
}

func (p *player) startLocked(src beep.StreamSeeker, rate beep.SampleRate) {
	p.stopLocked()
	done := new(int32)
	seq := beep.Seq(&loopStreamer{s: src, loop: &p.loop}, beep.Callback(func() {
		atomic.StoreInt32(done, 1)
	}))
	ctrl := &beep.Ctrl{Streamer: seq}
	vol := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   volumeExponent(p.volume),
		Silent:   p.volume == 0,
	}
	out := beep.Streamer(vol)
	if rate != mixerRate {
		out = beep.Resample(resampleQuality, rate, mixerRate, vol)
	}
	p.ctrl, p.vol, p.done = ctrl, vol, done
	p.paused = false
	speaker.Play(out)
}

func (p *player) pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil || p.paused {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.paused = true
}

func (p *player) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked detaches the current chain. The mixer drops a streamer that
// reports itself drained, so the control's source is cleared rather than
// reached into the mixer.
func (p *player) stopLocked() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()
	p.ctrl, p.vol, p.done = nil, nil, nil
	p.paused = false
}

func (p *player) status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.ctrl == nil:
		return Stopped
	case atomic.LoadInt32(p.done) == 1:
		return Stopped
	case p.paused:
		return Paused
	}
	return Playing
}

// setVolume sets the volume on the 0 to 100 scale, 100 being
// unattenuated.
func (p *player) setVolume(v float64) {
	v = math.Min(math.Max(v, 0), 100)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	if p.vol == nil {
		return
	}
	speaker.Lock()
	p.vol.Volume = volumeExponent(v)
	p.vol.Silent = v == 0
	speaker.Unlock()
}

func (p *player) getVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *player) setLooping(loop bool) {
	var v int32
	if loop {
		v = 1
	}
	atomic.StoreInt32(&p.loop, v)
}

func (p *player) looping() bool {
	return atomic.LoadInt32(&p.loop) == 1
}

// volumeExponent maps the linear 0 to 100 scale onto the exponent the
// volume effect expects. 100 maps to 0, 50 to one halving.
func volumeExponent(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v / 100)
}

// loopStreamer replays its source from the start for as long as loop is
// set, following the streamer composition pattern of the beep wiki. The
// flag is shared with the owning player so toggling takes effect on the
// playback in flight.
type loopStreamer struct {
	s    beep.StreamSeeker
	loop *int32
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		m, more := l.s.Stream(samples[n:])
		n += m
		if more {
			continue
		}
		if atomic.LoadInt32(l.loop) == 0 || l.s.Err() != nil || l.s.Len() == 0 {
			return n, n > 0
		}
		if err := l.s.Seek(0); err != nil {
			return n, n > 0
		}
	}
	return n, true
}

func (l *loopStreamer) Err() error {
	return l.s.Err()
}
