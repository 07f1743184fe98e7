package mtproto

import (
	"context"

	"go.uber.org/zap"

	"github.com/gramkit/gram/mt"
)

// queueAck schedules an acknowledgement for the message id. A full
// batch triggers an immediate flush.
func (c *Conn) queueAck(id int64) {
	c.ackMux.Lock()
	c.ackBuf = append(c.ackBuf, id)
	full := len(c.ackBuf) >= c.ackBatchSize
	c.ackMux.Unlock()

	if full {
		select {
		case c.ackFlush <- struct{}{}:
		default:
		}
	}
}

// stealAcks drains pending acknowledgements so they can be attached
// to an outgoing container.
func (c *Conn) stealAcks() []int64 {
	c.ackMux.Lock()
	defer c.ackMux.Unlock()
	ids := c.ackBuf
	c.ackBuf = nil
	return ids
}

func (c *Conn) flushAcks(ctx context.Context) {
	ids := c.stealAcks()
	if len(ids) == 0 {
		return
	}
	if err := c.writeServiceMessage(ctx, &mt.MsgsAck{MsgIDs: ids}); err != nil {
		c.log.Error("Failed to send acks", zap.Error(err))
		// Re-queue so ids are not lost on a transient write failure.
		c.ackMux.Lock()
		c.ackBuf = append(c.ackBuf, ids...)
		c.ackMux.Unlock()
	}
}

func (c *Conn) ackLoop(ctx context.Context) error {
	ticker := c.clock.Ticker(c.ackInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			c.flushAcks(ctx)
		case <-c.ackFlush:
			c.flushAcks(ctx)
		}
	}
}
