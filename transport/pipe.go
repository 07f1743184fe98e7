package transport

import (
	"net"

	"github.com/gramkit/gram/proto/codec"
)

// Pipe creates an in-memory full duplex connection pair framed with
// intermediate codec, for use in tests and the fake server.
func Pipe() (client, server Conn) {
	c, s := net.Pipe()
	return &connection{conn: c, codec: codec.Intermediate{}},
		&connection{conn: s, codec: codec.Intermediate{}}
}
