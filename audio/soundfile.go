// SPDX-License-Identifier: Unlicense OR MIT

package audio

import (
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// decode picks a decoder for r. The format comes from the leading bytes,
// not the file name; ext is only consulted when the header matches no
// known format, for MP3 streams that start mid-frame.
func decode(r io.ReadSeeker, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	kind, err := sniffFormat(r)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if kind == "" {
		kind = ext
	}
	switch kind {
	case ".wav":
		return wav.Decode(r)
	case ".mp3":
		return mp3.Decode(nopSeekCloser{r})
	case ".ogg":
		return vorbis.Decode(nopSeekCloser{r})
	case ".flac":
		return flac.Decode(r)
	}
	return nil, beep.Format{}, fmt.Errorf("audio: unrecognized sound format")
}

// sniffFormat reads the first bytes of r, rewinds it and returns the
// extension of the format they announce, or "" when none matches.
func sniffFormat(r io.ReadSeeker) (string, error) {
	var magic [12]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return "", fmt.Errorf("audio: reading sound header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	switch {
	case string(magic[:4]) == "RIFF" && string(magic[8:12]) == "WAVE":
		return ".wav", nil
	case string(magic[:4]) == "OggS":
		return ".ogg", nil
	case string(magic[:4]) == "fLaC":
		return ".flac", nil
	case validID3(magic[:]) || validMP3Sync(magic[:]):
		return ".mp3", nil
	}
	return "", nil
}

// validID3 reports whether b starts with a well formed ID3v2 tag. The
// flag byte keeps its low bits clear and the four size bytes are sync
// safe.
func validID3(b []byte) bool {
	return string(b[:3]) == "ID3" &&
		b[5]&15 == 0 && b[6]&0x80 == 0 && b[7]&0x80 == 0 && b[8]&0x80 == 0 && b[9]&0x80 == 0
}

func validMP3Sync(b []byte) bool {
	return b[0] == 0xff && b[1]&0xe0 == 0xe0
}

// nopSeekCloser adds a no-op Close for the decoders that insist on one.
// Closing is left to the owner of the underlying reader.
type nopSeekCloser struct {
	io.ReadSeeker
}

func (nopSeekCloser) Close() error { return nil }
