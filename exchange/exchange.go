// Package exchange contains implementation of the authorization key
// exchange, a Diffie-Hellman handshake performed over unencrypted
// messages before any encrypted traffic is possible.
package exchange

import (
	"crypto/rsa"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/transport"
)

// DefaultTimeout is a default timeout of a single exchange round trip.
const DefaultTimeout = 1 * time.Minute

// Exchange is a builder for key exchanges.
type Exchange struct {
	conn  transport.Conn
	rand  io.Reader
	log   *zap.Logger
	clock clock.Clock
	dc    int
}

// NewExchange creates new Exchange.
func NewExchange(rand io.Reader, conn transport.Conn) Exchange {
	return Exchange{
		conn:  conn,
		rand:  rand,
		log:   zap.NewNop(),
		clock: clock.System,
		dc:    2,
	}
}

// WithLogger sets logger.
func (e Exchange) WithLogger(log *zap.Logger) Exchange {
	e.log = log
	return e
}

// WithClock sets clock.
func (e Exchange) WithClock(c clock.Clock) Exchange {
	e.clock = c
	return e
}

// WithDC sets DC ID for key exchange.
func (e Exchange) WithDC(dc int) Exchange {
	e.dc = dc
	return e
}

func (e Exchange) unencryptedWriter(input, output proto.MessageType) unencryptedWriter {
	return unencryptedWriter{
		clock:  e.clock,
		conn:   e.conn,
		input:  input,
		output: output,
	}
}

// Client creates new ClientExchange using parameters from Exchange.
func (e Exchange) Client(keys []*rsa.PublicKey) ClientExchange {
	return ClientExchange{
		unencryptedWriter: e.unencryptedWriter(
			proto.MessageServerResponse,
			proto.MessageFromClient,
		),
		rand: e.rand,
		log:  e.log,
		keys: keys,
		dc:   e.dc,
	}
}

// Server creates new ServerExchange using parameters from Exchange.
func (e Exchange) Server(key *rsa.PrivateKey) ServerExchange {
	return ServerExchange{
		unencryptedWriter: e.unencryptedWriter(
			proto.MessageFromClient,
			proto.MessageServerResponse,
		),
		rand: e.rand,
		log:  e.log,
		key:  key,
		dc:   e.dc,
	}
}
