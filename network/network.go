// SPDX-License-Identifier: Unlicense OR MIT

// Package network exposes IPv4 addressing, TCP and UDP sockets and a
// typed packet format with a fixed big-endian wire layout, so peers on
// different architectures read the same bytes.
package network

import (
	"net"
	"strconv"
)

func joinHostPort(addr IPAddress, port uint16) string {
	return net.JoinHostPort(addr.String(), strconv.Itoa(int(port)))
}

// fromNetIP converts a stdlib address, reporting false for anything
// that is not IPv4.
func fromNetIP(ip net.IP) (IPAddress, bool) {
	v4 := ip.To4()
	if v4 == nil {
		return IPAddress{}, false
	}
	return NewIPAddress(v4[0], v4[1], v4[2], v4[3]), true
}
