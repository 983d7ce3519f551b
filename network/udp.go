// SPDX-License-Identifier: Unlicense OR MIT

package network

import (
	"fmt"
	"net"
	"time"
)

// MaxDatagramSize is the largest payload one datagram can carry, the
// IPv4 limit of 65535 minus the IP and UDP headers.
const MaxDatagramSize = 65507

// UDPSocket sends and receives datagrams. Packets map one to one onto
// datagrams, the datagram boundary being the frame.
type UDPSocket struct {
	conn    *net.UDPConn
	timeout time.Duration
}

// BindUDP binds to port on every interface. Port zero picks a free
// port, readable from Port.
func BindUDP(port uint16) (*UDPSocket, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: int(port)})
	if err != nil {
		return nil, fmt.Errorf("network: binding port %d: %w", port, err)
	}
	return &UDPSocket{conn: conn}, nil
}

// Port returns the port the socket is bound to.
func (s *UDPSocket) Port() uint16 {
	if addr, ok := s.conn.LocalAddr().(*net.UDPAddr); ok {
		return uint16(addr.Port)
	}
	return 0
}

// SetTimeout bounds each following send and receive. Zero, the
// default, blocks until the operation completes.
func (s *UDPSocket) SetTimeout(d time.Duration) {
	s.timeout = d
}

func (s *UDPSocket) deadline() time.Time {
	if s.timeout == 0 {
		return time.Time{}
	}
	return time.Now().Add(s.timeout)
}

// SendTo sends data as one datagram to addr at port.
func (s *UDPSocket) SendTo(data []byte, addr IPAddress, port uint16) error {
	if len(data) > MaxDatagramSize {
		return fmt.Errorf("network: datagram of %d bytes exceeds the %d byte limit", len(data), MaxDatagramSize)
	}
	if err := s.conn.SetWriteDeadline(s.deadline()); err != nil {
		return err
	}
	dst := &net.UDPAddr{IP: net.IPv4(byte(addr.addr>>24), byte(addr.addr>>16), byte(addr.addr>>8), byte(addr.addr)), Port: int(port)}
	_, err := s.conn.WriteToUDP(data, dst)
	return err
}

// ReceiveFrom reads the next datagram into buf and returns its length
// and origin. A datagram longer than buf is truncated.
func (s *UDPSocket) ReceiveFrom(buf []byte) (int, IPAddress, uint16, error) {
	if err := s.conn.SetReadDeadline(s.deadline()); err != nil {
		return 0, IPAddress{}, 0, err
	}
	n, from, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		return 0, IPAddress{}, 0, err
	}
	a, _ := fromNetIP(from.IP)
	return n, a, uint16(from.Port), nil
}

// SendPacketTo sends p's contents as one datagram.
func (s *UDPSocket) SendPacketTo(p *Packet, addr IPAddress, port uint16) error {
	return s.SendTo(p.Data(), addr, port)
}

// ReceivePacketFrom replaces p's contents with the next datagram and
// returns its origin.
func (s *UDPSocket) ReceivePacketFrom(p *Packet) (IPAddress, uint16, error) {
	buf := make([]byte, MaxDatagramSize)
	n, addr, port, err := s.ReceiveFrom(buf)
	if err != nil {
		return IPAddress{}, 0, err
	}
	p.fill(buf[:n])
	return addr, port, nil
}

func (s *UDPSocket) Close() error {
	return s.conn.Close()
}
