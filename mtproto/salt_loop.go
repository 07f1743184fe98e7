package mtproto

import (
	"context"

	"go.uber.org/zap"

	"github.com/gramkit/gram/mt"
)

// requestSalts asks the server for a fresh batch of future salts.
func (c *Conn) requestSalts(ctx context.Context) error {
	return c.writeContentMessage(ctx, &mt.GetFutureSaltsRequest{Num: 64})
}

// saltLoop rotates the active server salt before it expires and keeps
// the reserve topped up.
func (c *Conn) saltLoop(ctx context.Context) error {
	if err := c.requestSalts(ctx); err != nil {
		c.log.Warn("Failed to request salts", zap.Error(err))
	}

	ticker := c.clock.Ticker(c.saltFetchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
		}

		now := c.now()
		// A salt must outlive the fetch interval, otherwise it can
		// expire mid-rotation.
		if salt, ok := c.salts.Get(now, now.Add(c.saltFetchInterval)); ok {
			c.storeSalt(salt)
		}
		if c.salts.Count(now) < 2 {
			if err := c.requestSalts(ctx); err != nil {
				c.log.Warn("Failed to request salts", zap.Error(err))
			}
		}
	}
}
