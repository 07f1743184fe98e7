package telegram

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mtproto"
	"github.com/gramkit/gram/session"
)

// Run starts the client, runs f once the first connection is up, and
// keeps the connection alive with reconnects until f returns or ctx is
// cancelled.
func (c *Client) Run(ctx context.Context, f func(ctx context.Context) error) error {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := c.restoreSession(ctx); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.connectionLoop(gCtx) })
	g.Go(func() error {
		defer cancel()
		if _, err := c.waitConn(gCtx); err != nil {
			return err
		}
		return f(gCtx)
	})

	err := g.Wait()
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// connectionLoop re-establishes the connection with exponential backoff
// until ctx is cancelled.
func (c *Client) connectionLoop(ctx context.Context) error {
	bo := c.backoff()
	for {
		start := c.clock.Now()
		err := c.runConnection(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		// A connection that stayed up for a while resets the backoff.
		if c.clock.Now().Sub(start) > time.Minute {
			bo.Reset()
		}
		next := bo.NextBackOff()
		if next == backoff.Stop {
			return errors.Wrap(err, "connection failed")
		}
		c.log.Info("Restarting connection",
			zap.Error(err),
			zap.Duration("backoff", next),
		)

		timer := c.clock.Timer(next)
		select {
		case <-ctx.Done():
			clock.StopTimer(timer)
			return ctx.Err()
		case <-timer.C():
		}
	}
}

// runConnection runs a single connection until it fails or ctx is
// cancelled.
func (c *Client) runConnection(ctx context.Context) error {
	opts := c.connOpt
	opts.Handler = connHandler{client: c}
	c.sessionMux.Lock()
	opts.Key = c.authKey
	opts.Salt = c.salt
	c.sessionMux.Unlock()

	conn := mtproto.New(c.dialer, opts)
	defer func() {
		c.connMux.Lock()
		c.conn = nil
		c.ready = make(chan struct{})
		c.connMux.Unlock()
	}()

	return conn.Run(ctx, func(runCtx context.Context) error {
		c.connMux.Lock()
		c.conn = conn
		close(c.ready)
		c.connMux.Unlock()
		c.log.Info("Connected")

		<-runCtx.Done()
		return runCtx.Err()
	})
}

// waitConn blocks until a connection is available.
func (c *Client) waitConn(ctx context.Context) (*mtproto.Conn, error) {
	for {
		c.connMux.Lock()
		conn, ready := c.conn, c.ready
		c.connMux.Unlock()
		if conn != nil {
			return conn, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ready:
		}
	}
}

func (c *Client) restoreSession(ctx context.Context) error {
	if c.storage == nil {
		return nil
	}
	data, err := c.storage.Load(ctx)
	if errors.Is(err, session.ErrNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "load session")
	}
	if len(data.AuthKey) != 256 {
		return nil
	}

	var key crypto.Key
	copy(key[:], data.AuthKey)
	c.sessionMux.Lock()
	c.authKey = key.WithID()
	c.salt = data.Salt
	c.sessionMux.Unlock()
	if data.Addr != "" {
		c.addr = data.Addr
	}
	c.log.Info("Session restored", zap.String("addr", c.addr))
	return nil
}
