package telegram

import (
	"context"
	"io"
	"net"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/rpc"
	"github.com/gramkit/gram/tgerr"
)

// ErrConnectionLost means that the connection went down before the call
// completed, and the call was not marked safe to replay.
var ErrConnectionLost = errors.New("connection lost")

type idempotentKey struct{}

// WithIdempotent marks all calls made with this context as safe to be
// replayed on a fresh connection after a reconnect.
func WithIdempotent(ctx context.Context) context.Context {
	return context.WithValue(ctx, idempotentKey{}, true)
}

func isIdempotent(ctx context.Context) bool {
	v, _ := ctx.Value(idempotentKey{}).(bool)
	return v
}

// isConnectionLost reports whether the call failed because the
// connection went down, as opposed to a server-side rpc error.
func isConnectionLost(err error) bool {
	if _, ok := tgerr.As(err); ok {
		return false
	}
	switch {
	case errors.Is(err, rpc.ErrEngineClosed),
		errors.Is(err, rpc.ErrDropped),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed):
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
