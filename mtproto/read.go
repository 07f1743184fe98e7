package mtproto

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/proto"
)

// Accepted time drift of incoming message ids, per protocol security
// guidelines. The window is anchored to server-adjusted time, so an
// adopted offset keeps legitimate traffic inside it.
const (
	maxPastDrift   = 300 * time.Second
	maxFutureDrift = 30 * time.Second

	// After this many consecutive out-of-window envelopes the measured
	// drift is adopted directly. A corrective bad_msg_notification
	// passes through the same gate and would otherwise never arrive.
	windowRejectLimit = 3
)

func (c *Conn) readLoop(ctx context.Context) error {
	b := new(bin.Buffer)
	for {
		b.Reset()
		if err := c.conn.Recv(ctx, b); err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return errors.Wrap(err, "read")
			}
		}
		if err := c.consumeMessage(b); err != nil {
			return errors.Wrap(err, "consume")
		}
	}
}

// consumeMessage decrypts and validates one incoming envelope before
// dispatching its payload.
func (c *Conn) consumeMessage(b *bin.Buffer) error {
	session := c.session()
	msg, err := c.cipher.DecryptFromBuffer(session.Key, b)
	if err != nil {
		return errors.Wrap(err, "decrypt")
	}

	if msg.SessionID != session.ID {
		c.log.Warn("Received message with unknown session id, ignoring",
			zap.Int64("session_id", msg.SessionID),
		)
		return nil
	}

	msgID := proto.MessageID(msg.MessageID)
	if t := msgID.Type(); t != proto.MessageServerResponse && t != proto.MessageFromServer {
		c.log.Warn("Received message with client-side id, ignoring",
			zap.Int64("msg_id", msg.MessageID),
		)
		return nil
	}
	created := msgID.Time()
	local := c.clock.Now()
	measured := created.Sub(local)
	c.lastMeasured.Store(measured)

	now := local.Add(c.timeOffset.Load())
	if created.Before(now.Add(-maxPastDrift)) || created.After(now.Add(maxFutureDrift)) {
		if c.windowRejects.Inc() < windowRejectLimit {
			c.log.Warn("Received message outside of time window, ignoring",
				zap.Int64("msg_id", msg.MessageID),
				zap.Time("created", created),
			)
			return nil
		}
		c.windowRejects.Store(0)
		c.timeOffset.Store(measured)
		c.log.Warn("Repeated out-of-window messages, adopting measured time offset",
			zap.Int64("msg_id", msg.MessageID),
			zap.Duration("offset", measured),
		)
	} else {
		c.windowRejects.Store(0)
	}
	if !c.receivedIDs.Consume(msg.MessageID) {
		c.log.Warn("Received duplicate or stale message id, ignoring",
			zap.Int64("msg_id", msg.MessageID),
		)
		return nil
	}

	// Odd sequence numbers are content-related and must be
	// acknowledged.
	if msg.SeqNo%2 == 1 {
		c.queueAck(msg.MessageID)
	}

	return c.handleMessage(&bin.Buffer{Buf: msg.Data()})
}
