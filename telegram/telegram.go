// Package telegram implements the high-level client: connection
// lifecycle with reconnects, session persistence and raw RPC calls on
// top of the mtproto connection.
package telegram

import (
	"context"
	"crypto/rsa"
	"io"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mtproto"
	"github.com/gramkit/gram/session"
	"github.com/gramkit/gram/tmap"
	"github.com/gramkit/gram/transport"
)

// UpdateHandler handles server-pushed updates.
type UpdateHandler interface {
	Handle(b *bin.Buffer) error
}

// UpdateHandlerFunc is a function adapter for UpdateHandler.
type UpdateHandlerFunc func(b *bin.Buffer) error

// Handle implements UpdateHandler.
func (h UpdateHandlerFunc) Handle(b *bin.Buffer) error { return h(b) }

// Client is a Telegram client.
type Client struct {
	dc         int
	addr       string
	publicKeys []*rsa.PublicKey

	transport *transport.Transport
	dialer    mtproto.Dialer
	storage   *session.Loader
	updates   UpdateHandler

	log     *zap.Logger
	tracer  trace.Tracer
	clock   clock.Clock
	rand    io.Reader
	types   *tmap.Map
	backoff func() backoff.BackOff
	connOpt mtproto.Options

	// connMux guards conn and ready. ready is closed once conn is
	// usable and replaced with a fresh channel on connection loss.
	connMux sync.Mutex
	conn    *mtproto.Conn
	ready   chan struct{}

	// sessionMux guards the auth key and salt carried between
	// reconnects.
	sessionMux sync.Mutex
	authKey    crypto.AuthKey
	salt       int64
}

// New creates new unstarted Client.
func New(opts Options) *Client {
	opts.setDefaults()

	c := &Client{
		dc:         opts.DC,
		addr:       opts.Addr,
		publicKeys: opts.PublicKeys,
		transport:  opts.Transport,
		dialer:     opts.Dialer,
		updates:    opts.UpdateHandler,
		log:        opts.Logger,
		tracer:     opts.Tracer,
		clock:      opts.Clock,
		rand:       opts.Random,
		types:      opts.Types,
		backoff:    opts.ReconnectionBackoff,
		ready:      make(chan struct{}),
	}
	if opts.SessionStorage != nil {
		c.storage = &session.Loader{Storage: opts.SessionStorage}
	}
	if c.dialer == nil {
		c.dialer = func(ctx context.Context) (transport.Conn, error) {
			return c.transport.DialContext(ctx, "tcp", c.addr)
		}
	}
	c.connOpt = mtproto.Options{
		DC:                opts.DC,
		PublicKeys:        opts.PublicKeys,
		Random:            opts.Random,
		Logger:            opts.Logger.Named("mtproto"),
		Clock:             opts.Clock,
		Types:             opts.Types,
		RetryInterval:     opts.RetryInterval,
		MaxRetries:        opts.MaxRetries,
		PingInterval:      opts.PingInterval,
		PingTimeout:       opts.PingTimeout,
		CompressThreshold: opts.CompressThreshold,
	}
	return c
}
