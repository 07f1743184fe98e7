package transport

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/proto/codec"
)

// Conn is a frame-oriented connection: one Send or Recv call moves
// exactly one MTProto payload.
type Conn interface {
	Send(ctx context.Context, b *bin.Buffer) error
	Recv(ctx context.Context, b *bin.Buffer) error
	Close() error
}

type connection struct {
	conn  net.Conn
	codec codec.Codec

	readMux  sync.Mutex
	writeMux sync.Mutex
}

func (c *connection) Send(ctx context.Context, b *bin.Buffer) error {
	// Serialize writes, frame order must match send order.
	c.writeMux.Lock()
	defer c.writeMux.Unlock()

	if err := c.deadline(ctx, c.conn.SetWriteDeadline); err != nil {
		return err
	}
	return c.codec.Write(c.conn, b)
}

func (c *connection) Recv(ctx context.Context, b *bin.Buffer) error {
	c.readMux.Lock()
	defer c.readMux.Unlock()

	if err := c.deadline(ctx, c.conn.SetReadDeadline); err != nil {
		return err
	}
	return c.codec.Read(c.conn, b)
}

func (c *connection) Close() error {
	return c.conn.Close()
}

func (c *connection) deadline(ctx context.Context, set func(time.Time) error) error {
	if deadline, ok := ctx.Deadline(); ok {
		return set(deadline)
	}
	return set(time.Time{})
}
