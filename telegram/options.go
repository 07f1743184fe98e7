package telegram

import (
	"crypto/rsa"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/mtproto"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/session"
	"github.com/gramkit/gram/tmap"
	"github.com/gramkit/gram/transport"
)

// AddrProduction is the default production data-center address.
const AddrProduction = "149.154.167.50:443"

// Options of Client.
type Options struct {
	// DC ID to connect to. Defaults to 2.
	DC int
	// Addr of the data-center. Defaults to AddrProduction.
	Addr string
	// PublicKeys of the server to use during key exchange.
	PublicKeys []*rsa.PublicKey

	// Transport to use. Defaults to intermediate framing over TCP.
	Transport *transport.Transport
	// Dialer overrides Transport and Addr, mostly for testing.
	Dialer mtproto.Dialer
	// SessionStorage persists the session between runs. Session is not
	// persisted if nil.
	SessionStorage session.Storage
	// UpdateHandler receives server-pushed updates.
	UpdateHandler UpdateHandler

	// Logger is instance of zap.Logger. No logs by default.
	Logger *zap.Logger
	// Tracer for OpenTelemetry spans around calls. Disabled if nil.
	Tracer trace.Tracer
	// Random is random source. Defaults to crypto random.
	Random io.Reader
	// Clock to use. Defaults to clock.System.
	Clock clock.Clock
	// Types map for verbose logging and span naming.
	Types *tmap.Map
	// ReconnectionBackoff configures the backoff between reconnection
	// attempts.
	ReconnectionBackoff func() backoff.BackOff

	// RetryInterval is a time between request re-sends until the server
	// acknowledges them.
	RetryInterval time.Duration
	// MaxRetries is a max number of re-sends of one request.
	MaxRetries int
	// PingInterval is a time between keepalive pings.
	PingInterval time.Duration
	// PingTimeout sets how long to wait for pong before reconnecting.
	PingTimeout time.Duration
	// CompressThreshold is a minimum payload size in bytes to be
	// compressed before encryption.
	CompressThreshold int
}

func (opt *Options) setDefaults() {
	if opt.DC == 0 {
		opt.DC = 2
	}
	if opt.Addr == "" {
		opt.Addr = AddrProduction
	}
	if opt.Transport == nil {
		opt.Transport = transport.Intermediate()
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Random == nil {
		opt.Random = crypto.DefaultRand()
	}
	if opt.Clock == nil {
		opt.Clock = clock.System
	}
	if opt.Types == nil {
		opt.Types = tmap.New(
			mt.TypesMap(),
			proto.TypesMap(),
		)
	}
	if opt.ReconnectionBackoff == nil {
		opt.ReconnectionBackoff = defaultBackoff
	}
}

func defaultBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	b.MaxInterval = time.Minute
	return b
}
