// Package mtproto implements an encrypted MTProto connection: a
// session state machine on top of a framed transport, with request
// retry, acknowledgements, salt rotation and keepalive.
package mtproto

import (
	"context"
	"crypto/rsa"
	"io"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/exchange"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/rpc"
	"github.com/gramkit/gram/tmap"
	"github.com/gramkit/gram/transport"
)

// Dialer establishes a new framed transport connection.
type Dialer func(ctx context.Context) (transport.Conn, error)

// Conn represents an encrypted client connection to a single server.
type Conn struct {
	dialer    Dialer
	conn      transport.Conn
	clock     clock.Clock
	rand      io.Reader
	cipher    crypto.Cipher
	log       *zap.Logger
	messageID MessageIDSource
	handler   Handler
	rpc       *rpc.Engine
	types     *tmap.Map

	dc         int
	publicKeys []*rsa.PublicKey

	// Difference between server and local time, adopted on explicit
	// server complaints about our message ids or after repeated
	// out-of-window envelopes.
	timeOffset    *atomic.Duration
	lastMeasured  *atomic.Duration
	windowRejects *atomic.Int64

	sessionMux sync.RWMutex
	authKey    crypto.AuthKey
	salt       int64
	sessionID  int64

	salts salts

	seqMux              sync.Mutex
	sentContentMessages int32

	ackMux   sync.Mutex
	ackBuf   []int64
	ackFlush chan struct{}

	pingMux sync.Mutex
	ping    map[int64]chan struct{}

	receivedIDs *proto.MessageIDBuf

	ackBatchSize      int
	ackInterval       time.Duration
	exchangeTimeout   time.Duration
	saltFetchInterval time.Duration
	pingInterval      time.Duration
	pingTimeout       time.Duration
	compressThreshold int
}

// New creates new unstarted connection.
func New(dialer Dialer, opts Options) *Conn {
	opts.setDefaults()

	conn := &Conn{
		dialer:     dialer,
		clock:      opts.Clock,
		rand:       opts.Random,
		cipher:     crypto.NewClientCipher(opts.Random),
		log:        opts.Logger,
		handler:    opts.Handler,
		types:      opts.Types,
		dc:         opts.DC,
		publicKeys: opts.PublicKeys,

		timeOffset:    atomic.NewDuration(0),
		lastMeasured:  atomic.NewDuration(0),
		windowRejects: atomic.NewInt64(0),

		authKey: opts.Key,
		salt:    opts.Salt,

		ackFlush:    make(chan struct{}, 1),
		ping:        map[int64]chan struct{}{},
		receivedIDs: proto.NewMessageIDBuf(proto.MessageIDBufSize),

		ackBatchSize:      opts.AckBatchSize,
		ackInterval:       opts.AckInterval,
		exchangeTimeout:   opts.ExchangeTimeout,
		saltFetchInterval: opts.SaltFetchInterval,
		pingInterval:      opts.PingInterval,
		pingTimeout:       opts.PingTimeout,
		compressThreshold: opts.CompressThreshold,
	}
	if opts.MessageID == nil {
		opts.MessageID = proto.NewMessageIDGen(conn.now)
	}
	conn.messageID = opts.MessageID
	conn.rpc = rpc.New(conn.sendRequest, rpc.Options{
		Logger:        opts.Logger.Named("rpc"),
		RetryInterval: opts.RetryInterval,
		MaxRetries:    opts.MaxRetries,
		Clock:         opts.Clock,
	})
	return conn
}

// now returns current time adjusted by the known server time offset.
func (c *Conn) now() time.Time {
	return c.clock.Now().Add(c.timeOffset.Load())
}

// Run starts the connection and blocks until f returns or the
// connection fails.
func (c *Conn) Run(ctx context.Context, f func(ctx context.Context) error) error {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.log.Info("Connecting")
	if err := c.connect(ctx); err != nil {
		return errors.Wrap(err, "connect")
	}
	defer func() {
		_ = c.conn.Close()
	}()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Unblock pending reads and calls on cancellation.
		<-gCtx.Done()
		_ = c.conn.Close()
		c.rpc.ForceClose()
		return nil
	})
	g.Go(func() error { return c.readLoop(gCtx) })
	g.Go(func() error { return c.ackLoop(gCtx) })
	g.Go(func() error { return c.pingLoop(gCtx) })
	g.Go(func() error { return c.saltLoop(gCtx) })
	g.Go(func() error {
		defer cancel()
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

// connect dials the server and ensures that an authorization key is
// available, performing a key exchange if needed.
func (c *Conn) connect(ctx context.Context) error {
	conn, err := c.dialer(ctx)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	c.conn = conn

	session := c.session()
	if session.Key.Zero() {
		c.log.Info("Generating new auth key")
		start := c.clock.Now()
		if err := c.createAuthKey(ctx); err != nil {
			return errors.Wrap(err, "create auth key")
		}
		c.log.Info("Auth key generated",
			zap.Duration("duration", c.clock.Now().Sub(start)),
		)
	} else {
		c.log.Info("Key already exists")
		// Key reuse requires a fresh session id.
		sessionID, err := crypto.RandInt64(c.rand)
		if err != nil {
			return errors.Wrap(err, "generate session id")
		}
		c.sessionMux.Lock()
		c.sessionID = sessionID
		c.sessionMux.Unlock()
	}
	return c.handler.OnSession(c.session())
}

// createAuthKey performs a key exchange on the fresh connection.
func (c *Conn) createAuthKey(ctx context.Context) error {
	if len(c.publicKeys) == 0 {
		return errors.New("no public keys")
	}
	ctx, cancel := context.WithTimeout(ctx, c.exchangeTimeout)
	defer cancel()

	res, err := exchange.NewExchange(c.rand, c.conn).
		WithClock(c.clock).
		WithLogger(c.log.Named("exchange")).
		WithDC(c.dc).
		Client(c.publicKeys).
		Run(ctx)
	if err != nil {
		return err
	}

	c.sessionMux.Lock()
	c.authKey = res.AuthKey
	c.sessionID = res.SessionID
	c.salt = res.ServerSalt
	c.sessionMux.Unlock()
	return nil
}
