// SPDX-License-Identifier: Unlicense OR MIT

package network

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"
)

// TCPSocket is a connected TCP stream. Packets travel as a 32 bit
// big-endian length followed by the payload, so one SendPacket pairs
// with one ReceivePacket regardless of how the stream fragments.
type TCPSocket struct {
	conn    net.Conn
	timeout time.Duration
}

// ConnectTCP opens a connection to addr at port, giving up after
// timeout. A zero timeout waits as long as the system does.
func ConnectTCP(addr IPAddress, port uint16, timeout time.Duration) (*TCPSocket, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.Dial("tcp4", joinHostPort(addr, port))
	if err != nil {
		return nil, fmt.Errorf("network: connecting to %v:%d: %w", addr, port, err)
	}
	return &TCPSocket{conn: conn}, nil
}

// SetTimeout bounds each following Send and Receive. Zero, the default,
// blocks until the operation completes.
func (s *TCPSocket) SetTimeout(d time.Duration) {
	s.timeout = d
}

func (s *TCPSocket) deadline() time.Time {
	if s.timeout == 0 {
		return time.Time{}
	}
	return time.Now().Add(s.timeout)
}

// Send writes data in full.
func (s *TCPSocket) Send(data []byte) error {
	if err := s.conn.SetWriteDeadline(s.deadline()); err != nil {
		return err
	}
	_, err := s.conn.Write(data)
	return err
}

// Receive reads into buf and returns the number of bytes read, which
// can be less than a matching Send wrote.
func (s *TCPSocket) Receive(buf []byte) (int, error) {
	if err := s.conn.SetReadDeadline(s.deadline()); err != nil {
		return 0, err
	}
	return s.conn.Read(buf)
}

// SendPacket writes p as one length-prefixed unit.
func (s *TCPSocket) SendPacket(p *Packet) error {
	data := p.Data()
	msg := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(msg, uint32(len(data)))
	copy(msg[4:], data)
	return s.Send(msg)
}

// ReceivePacket replaces p's contents with the next length-prefixed
// unit from the stream.
func (s *TCPSocket) ReceivePacket(p *Packet) error {
	if err := s.conn.SetReadDeadline(s.deadline()); err != nil {
		return err
	}
	var prefix [4]byte
	if _, err := io.ReadFull(s.conn, prefix[:]); err != nil {
		return err
	}
	payload := make([]byte, binary.BigEndian.Uint32(prefix[:]))
	if _, err := io.ReadFull(s.conn, payload); err != nil {
		return err
	}
	p.fill(payload)
	return nil
}

// RemoteAddress returns the address of the connected peer.
func (s *TCPSocket) RemoteAddress() IPAddress {
	if addr, ok := s.conn.RemoteAddr().(*net.TCPAddr); ok {
		if a, ok := fromNetIP(addr.IP); ok {
			return a
		}
	}
	return IPAddress{}
}

// RemotePort returns the port of the connected peer.
func (s *TCPSocket) RemotePort() uint16 {
	if addr, ok := s.conn.RemoteAddr().(*net.TCPAddr); ok {
		return uint16(addr.Port)
	}
	return 0
}

// LocalPort returns the port this end is bound to.
func (s *TCPSocket) LocalPort() uint16 {
	if addr, ok := s.conn.LocalAddr().(*net.TCPAddr); ok {
		return uint16(addr.Port)
	}
	return 0
}

func (s *TCPSocket) Close() error {
	return s.conn.Close()
}

// TCPListener accepts incoming TCP connections.
type TCPListener struct {
	l net.Listener
}

// ListenTCP binds to port on every interface. Port zero picks a free
// port, readable from Port.
func ListenTCP(port uint16) (*TCPListener, error) {
	l, err := net.Listen("tcp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("network: listening on port %d: %w", port, err)
	}
	return &TCPListener{l: l}, nil
}

// Port returns the port the listener is bound to.
func (l *TCPListener) Port() uint16 {
	if addr, ok := l.l.Addr().(*net.TCPAddr); ok {
		return uint16(addr.Port)
	}
	return 0
}

// Accept waits for and returns the next connection.
func (l *TCPListener) Accept() (*TCPSocket, error) {
	conn, err := l.l.Accept()
	if err != nil {
		return nil, err
	}
	return &TCPSocket{conn: conn}, nil
}

func (l *TCPListener) Close() error {
	return l.l.Close()
}
