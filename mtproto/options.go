package mtproto

import (
	"crypto/rsa"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/tmap"
)

// MessageIDSource is an abstraction for message id generator.
type MessageIDSource interface {
	New(t proto.MessageType) int64
}

// Handler will be called on received message from the server.
type Handler interface {
	OnMessage(b *bin.Buffer) error
	OnSession(session Session) error
}

type nopHandler struct{}

func (nopHandler) OnMessage(b *bin.Buffer) error   { return nil }
func (nopHandler) OnSession(session Session) error { return nil }

// Options of Conn.
type Options struct {
	// DC ID to connect to.
	DC int
	// PublicKeys of the server to use during key exchange.
	PublicKeys []*rsa.PublicKey

	// Random is random source. Defaults to crypto random.
	Random io.Reader
	// Logger is instance of zap.Logger. No logs by default.
	Logger *zap.Logger
	// Handler to use. Defaults to no-op handler.
	Handler Handler
	// AckBatchSize is a maximum number of acks waiting for batch flush.
	AckBatchSize int
	// AckInterval is a maximum time between acknowledgement flushes.
	AckInterval time.Duration
	// RetryInterval is a time between request re-sends until the server
	// acknowledges them.
	RetryInterval time.Duration
	// MaxRetries is a max number of re-sends of one request.
	MaxRetries int
	// ExchangeTimeout is a timeout of a whole key exchange.
	ExchangeTimeout time.Duration
	// SaltFetchInterval is a time between get_future_salts requests.
	SaltFetchInterval time.Duration
	// PingInterval is a time between ping_delay_disconnect requests.
	PingInterval time.Duration
	// PingTimeout sets how long to wait for pong before the connection
	// is considered dead.
	PingTimeout time.Duration
	// CompressThreshold is a minimum payload size in bytes to be
	// compressed before encryption. Zero value disables compression.
	CompressThreshold int
	// MessageID is message id generator. Defaults to a fresh
	// proto.MessageIDGen.
	MessageID MessageIDSource
	// Clock to use. Defaults to clock.System.
	Clock clock.Clock
	// Types map for verbose logging of unknown messages.
	Types *tmap.Map

	// Key that can be used to restore previous connection.
	Key crypto.AuthKey
	// Salt from the previous connection.
	Salt int64
}

func (opt *Options) setDefaults() {
	if opt.DC == 0 {
		opt.DC = 2
	}
	if opt.Random == nil {
		opt.Random = crypto.DefaultRand()
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Handler == nil {
		opt.Handler = nopHandler{}
	}
	if opt.AckBatchSize == 0 {
		opt.AckBatchSize = 16
	}
	if opt.AckInterval == 0 {
		opt.AckInterval = time.Second * 15
	}
	if opt.RetryInterval == 0 {
		opt.RetryInterval = time.Second * 10
	}
	if opt.MaxRetries == 0 {
		opt.MaxRetries = 5
	}
	if opt.ExchangeTimeout == 0 {
		opt.ExchangeTimeout = time.Minute
	}
	if opt.SaltFetchInterval == 0 {
		opt.SaltFetchInterval = time.Minute * 20
	}
	if opt.PingInterval == 0 {
		opt.PingInterval = time.Minute
	}
	if opt.PingTimeout == 0 {
		opt.PingTimeout = time.Second * 15
	}
	if opt.CompressThreshold == 0 {
		opt.CompressThreshold = 512
	}
	if opt.Clock == nil {
		opt.Clock = clock.System
	}
	// MessageID defaults in New, the generator needs the
	// offset-corrected time source of the connection.
	if opt.Types == nil {
		opt.Types = tmap.New(
			mt.TypesMap(),
			proto.TypesMap(),
		)
	}
}
