// SPDX-License-Identifier: Unlicense OR MIT

package network

import (
	"encoding/binary"
	"errors"
	"math"
)

var errPastEnd = errors.New("network: read past the end of the packet")

// Packet accumulates typed values for transport as a single unit. All
// values travel most significant byte first and strings carry a 32 bit
// length prefix. Reads consume from the front in append order; the
// first read that runs past the end marks the packet invalid and every
// later read returns a zero value, so a sequence of reads needs a
// single Err check at the end.
type Packet struct {
	data []byte
	pos  int
	err  error
}

// Err returns the error of the first failed read, or nil while all
// reads have been in bounds.
func (p *Packet) Err() error {
	return p.err
}

// Clear empties the packet and resets its read state.
func (p *Packet) Clear() {
	p.data = p.data[:0]
	p.pos = 0
	p.err = nil
}

// Size returns the number of bytes in the packet.
func (p *Packet) Size() int {
	return len(p.data)
}

// Data returns the packet's bytes, valid until the next append.
func (p *Packet) Data() []byte {
	return p.data
}

// EndOfPacket reports whether reading has consumed every byte.
func (p *Packet) EndOfPacket() bool {
	return p.pos >= len(p.data)
}

// fill replaces the packet contents with a received payload.
func (p *Packet) fill(data []byte) {
	p.data = append(p.data[:0], data...)
	p.pos = 0
	p.err = nil
}

func (p *Packet) next(n int) []byte {
	if p.err != nil {
		return nil
	}
	if p.pos+n > len(p.data) {
		p.err = errPastEnd
		return nil
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b
}

// AppendBytes appends raw bytes with no length prefix.
func (p *Packet) AppendBytes(data []byte) {
	p.data = append(p.data, data...)
}

// ReadBytes consumes n raw bytes.
func (p *Packet) ReadBytes(n int) []byte {
	b := p.next(n)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (p *Packet) AppendBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	p.data = append(p.data, b)
}

func (p *Packet) ReadBool() bool {
	b := p.next(1)
	return b != nil && b[0] != 0
}

func (p *Packet) AppendUint8(v uint8) {
	p.data = append(p.data, v)
}

func (p *Packet) ReadUint8() uint8 {
	b := p.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (p *Packet) AppendInt8(v int8) {
	p.AppendUint8(uint8(v))
}

func (p *Packet) ReadInt8() int8 {
	return int8(p.ReadUint8())
}

func (p *Packet) AppendUint16(v uint16) {
	p.data = binary.BigEndian.AppendUint16(p.data, v)
}

func (p *Packet) ReadUint16() uint16 {
	b := p.next(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (p *Packet) AppendInt16(v int16) {
	p.AppendUint16(uint16(v))
}

func (p *Packet) ReadInt16() int16 {
	return int16(p.ReadUint16())
}

func (p *Packet) AppendUint32(v uint32) {
	p.data = binary.BigEndian.AppendUint32(p.data, v)
}

func (p *Packet) ReadUint32() uint32 {
	b := p.next(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (p *Packet) AppendInt32(v int32) {
	p.AppendUint32(uint32(v))
}

func (p *Packet) ReadInt32() int32 {
	return int32(p.ReadUint32())
}

func (p *Packet) AppendUint64(v uint64) {
	p.data = binary.BigEndian.AppendUint64(p.data, v)
}

func (p *Packet) ReadUint64() uint64 {
	b := p.next(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (p *Packet) AppendInt64(v int64) {
	p.AppendUint64(uint64(v))
}

func (p *Packet) ReadInt64() int64 {
	return int64(p.ReadUint64())
}

func (p *Packet) AppendFloat32(v float32) {
	p.AppendUint32(math.Float32bits(v))
}

func (p *Packet) ReadFloat32() float32 {
	return math.Float32frombits(p.ReadUint32())
}

func (p *Packet) AppendFloat64(v float64) {
	p.AppendUint64(math.Float64bits(v))
}

func (p *Packet) ReadFloat64() float64 {
	return math.Float64frombits(p.ReadUint64())
}

// AppendString appends a 32 bit length followed by the string's bytes.
func (p *Packet) AppendString(s string) {
	p.AppendUint32(uint32(len(s)))
	p.data = append(p.data, s...)
}

// ReadString consumes a length-prefixed string. A length running past
// the end of the packet fails without consuming the payload.
func (p *Packet) ReadString() string {
	n := p.ReadUint32()
	if p.err != nil {
		return ""
	}
	if uint64(n) > uint64(len(p.data)-p.pos) {
		p.err = errPastEnd
		return ""
	}
	return string(p.next(int(n)))
}
