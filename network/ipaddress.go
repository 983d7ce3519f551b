// SPDX-License-Identifier: Unlicense OR MIT

package network

import (
	"fmt"
	"net"
)

// IPAddress is an IPv4 address as a comparable value type.
type IPAddress struct {
	addr uint32
}

var (
	// Any means all local interfaces when binding, 0.0.0.0.
	Any = IPAddress{}
	// LocalHost is the loopback address 127.0.0.1.
	LocalHost = NewIPAddress(127, 0, 0, 1)
	// Broadcast is the limited broadcast address 255.255.255.255.
	Broadcast = NewIPAddress(255, 255, 255, 255)
)

// NewIPAddress builds an address from its four dotted-decimal bytes.
func NewIPAddress(b0, b1, b2, b3 byte) IPAddress {
	return IPAddress{addr: uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)}
}

// FromInteger builds an address from its integer form, most significant
// byte first.
func FromInteger(v uint32) IPAddress {
	return IPAddress{addr: v}
}

// ToInteger returns the integer form accepted by FromInteger.
func (a IPAddress) ToInteger() uint32 {
	return a.addr
}

func (a IPAddress) String() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		byte(a.addr>>24), byte(a.addr>>16), byte(a.addr>>8), byte(a.addr))
}

// Resolve turns a dotted-decimal literal or a host name into an
// address. Failing to resolve is a valid outcome, not an error, so it
// reports false instead.
func Resolve(address string) (IPAddress, bool) {
	if address == "" {
		return IPAddress{}, false
	}
	if ip := net.ParseIP(address); ip != nil {
		return fromNetIP(ip)
	}
	ips, err := net.LookupIP(address)
	if err != nil {
		return IPAddress{}, false
	}
	for _, ip := range ips {
		if a, ok := fromNetIP(ip); ok {
			return a, true
		}
	}
	return IPAddress{}, false
}

// LocalAddress returns the address of this machine as seen on its own
// network. A datagram socket is connected to the loopback discard port
// and its local name read back; nothing goes out on the wire.
func LocalAddress() (IPAddress, error) {
	conn, err := net.Dial("udp4", "127.0.0.1:9")
	if err != nil {
		return IPAddress{}, fmt.Errorf("network: retrieving local address: %w", err)
	}
	defer conn.Close()
	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return IPAddress{}, fmt.Errorf("network: unexpected local address %v", conn.LocalAddr())
	}
	a, ok := fromNetIP(local.IP)
	if !ok {
		return IPAddress{}, fmt.Errorf("network: local address %v is not IPv4", local.IP)
	}
	return a, nil
}
