// SPDX-License-Identifier: Unlicense OR MIT

package network

import (
	"bytes"
	"testing"
)

func TestPacketRoundtrip(t *testing.T) {
	var p Packet
	p.AppendBool(true)
	p.AppendInt8(-5)
	p.AppendUint8(200)
	p.AppendInt16(-1234)
	p.AppendUint16(50000)
	p.AppendInt32(-100000)
	p.AppendUint32(3000000000)
	p.AppendInt64(-1 << 40)
	p.AppendUint64(1 << 60)
	p.AppendFloat32(3.5)
	p.AppendFloat64(-2.25)
	p.AppendString("héllo")

	if got := p.ReadBool(); got != true {
		t.Errorf("got %v, expected true", got)
	}
	if got := p.ReadInt8(); got != -5 {
		t.Errorf("got %d, expected -5", got)
	}
	if got := p.ReadUint8(); got != 200 {
		t.Errorf("got %d, expected 200", got)
	}
	if got := p.ReadInt16(); got != -1234 {
		t.Errorf("got %d, expected -1234", got)
	}
	if got := p.ReadUint16(); got != 50000 {
		t.Errorf("got %d, expected 50000", got)
	}
	if got := p.ReadInt32(); got != -100000 {
		t.Errorf("got %d, expected -100000", got)
	}
	if got := p.ReadUint32(); got != 3000000000 {
		t.Errorf("got %d, expected 3000000000", got)
	}
	if got := p.ReadInt64(); got != -1<<40 {
		t.Errorf("got %d, expected %d", got, -1<<40)
	}
	if got := p.ReadUint64(); got != 1<<60 {
		t.Errorf("got %d, expected %d", got, uint64(1)<<60)
	}
	if got := p.ReadFloat32(); got != 3.5 {
		t.Errorf("got %v, expected 3.5", got)
	}
	if got := p.ReadFloat64(); got != -2.25 {
		t.Errorf("got %v, expected -2.25", got)
	}
	if got := p.ReadString(); got != "héllo" {
		t.Errorf("got %q, expected %q", got, "héllo")
	}
	if err := p.Err(); err != nil {
		t.Errorf("got %v, expected all reads in bounds", err)
	}
	if !p.EndOfPacket() {
		t.Error("expected the packet to be fully consumed")
	}
}

func TestPacketWireFormat(t *testing.T) {
	var p Packet
	p.AppendUint16(0x0102)
	if !bytes.Equal(p.Data(), []byte{1, 2}) {
		t.Errorf("got % x, expected the most significant byte first", p.Data())
	}

	p.Clear()
	p.AppendString("ab")
	if !bytes.Equal(p.Data(), []byte{0, 0, 0, 2, 'a', 'b'}) {
		t.Errorf("got % x, expected a 32 bit length prefix", p.Data())
	}

	p.Clear()
	p.AppendBool(false)
	p.AppendBool(true)
	if !bytes.Equal(p.Data(), []byte{0, 1}) {
		t.Errorf("got % x, expected one byte per bool", p.Data())
	}
}

func TestPacketShortRead(t *testing.T) {
	var p Packet
	p.AppendUint8(7)
	if got := p.ReadUint32(); got != 0 {
		t.Errorf("got %d, expected a zero value past the end", got)
	}
	if p.Err() == nil {
		t.Fatal("expected an error after reading past the end")
	}
	if got := p.ReadUint8(); got != 0 {
		t.Errorf("got %d, expected the error to stick", got)
	}
}

func TestPacketStringOverflow(t *testing.T) {
	var p Packet
	p.AppendUint32(1000)
	p.AppendBytes([]byte("short"))
	if got := p.ReadString(); got != "" {
		t.Errorf("got %q, expected an empty string", got)
	}
	if p.Err() == nil {
		t.Error("expected an error for a length past the end")
	}
}

func TestPacketClear(t *testing.T) {
	var p Packet
	p.AppendUint8(1)
	p.ReadUint32()
	if p.Err() == nil {
		t.Fatal("expected an error before Clear")
	}
	p.Clear()
	if p.Err() != nil || p.Size() != 0 || !p.EndOfPacket() {
		t.Errorf("got err=%v size=%d, expected a pristine packet", p.Err(), p.Size())
	}
	p.AppendUint16(9)
	if got := p.ReadUint16(); got != 9 || p.Err() != nil {
		t.Errorf("got %d err=%v, expected the packet to be usable again", got, p.Err())
	}
}

func TestPacketReadBytes(t *testing.T) {
	var p Packet
	p.AppendBytes([]byte{1, 2, 3, 4})
	got := p.ReadBytes(2)
	if !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("got % x, expected 01 02", got)
	}
	got[0] = 99
	if rest := p.ReadBytes(2); !bytes.Equal(rest, []byte{3, 4}) {
		t.Errorf("got % x, expected the remaining bytes untouched", rest)
	}
}
