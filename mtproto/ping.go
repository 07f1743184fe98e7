package mtproto

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mt"
)

// Ping sends a ping and waits for the pong.
func (c *Conn) Ping(ctx context.Context) error {
	pingID, err := crypto.RandInt64(c.rand)
	if err != nil {
		return errors.Wrap(err, "generate ping id")
	}
	return c.waitPong(ctx, pingID, &mt.PingRequest{PingID: pingID})
}

// pingDelayDisconnect sends a ping asking the server to drop the
// connection if the next ping does not arrive within delay seconds.
func (c *Conn) pingDelayDisconnect(ctx context.Context, delay int) error {
	pingID, err := crypto.RandInt64(c.rand)
	if err != nil {
		return errors.Wrap(err, "generate ping id")
	}
	return c.waitPong(ctx, pingID, &mt.PingDelayDisconnectRequest{
		PingID:          pingID,
		DisconnectDelay: delay,
	})
}

func (c *Conn) waitPong(ctx context.Context, pingID int64, req bin.Encoder) error {
	result := make(chan struct{})
	c.pingMux.Lock()
	c.ping[pingID] = result
	c.pingMux.Unlock()
	defer func() {
		c.pingMux.Lock()
		delete(c.ping, pingID)
		c.pingMux.Unlock()
	}()

	if err := c.writeContentMessage(ctx, req); err != nil {
		return errors.Wrap(err, "write ping")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-result:
		return nil
	}
}

func (c *Conn) handlePong(b *bin.Buffer) error {
	var pong mt.Pong
	if err := pong.Decode(b); err != nil {
		return errors.Wrap(err, "decode")
	}

	c.pingMux.Lock()
	result, ok := c.ping[pong.PingID]
	if ok {
		delete(c.ping, pong.PingID)
	}
	c.pingMux.Unlock()
	if ok {
		close(result)
	}
	return nil
}

// pingLoop periodically sends ping_delay_disconnect, so a dead
// connection is detected on both sides.
func (c *Conn) pingLoop(ctx context.Context) error {
	ticker := c.clock.Ticker(c.pingInterval)
	defer ticker.Stop()

	disconnectDelay := int(2 * c.pingInterval.Seconds())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			if err := func() error {
				ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
				defer cancel()
				return c.pingDelayDisconnect(ctx, disconnectDelay)
			}(); err != nil {
				return errors.Wrap(err, "ping")
			}
		}
	}
}
