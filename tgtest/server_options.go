package tgtest

import (
	"io"

	"go.uber.org/zap"

	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/crypto"
)

// ServerOptions of Server.
type ServerOptions struct {
	// DC id of the server. Defaults to 2.
	DC int
	// Random is random source. Defaults to crypto random.
	Random io.Reader
	// Logger is instance of zap.Logger. No logs by default.
	Logger *zap.Logger
	// Clock to use. Defaults to clock.System.
	Clock clock.Clock
}

func (opt *ServerOptions) setDefaults() {
	if opt.DC == 0 {
		opt.DC = 2
	}
	if opt.Random == nil {
		opt.Random = crypto.DefaultRand()
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Clock == nil {
		opt.Clock = clock.System
	}
}
