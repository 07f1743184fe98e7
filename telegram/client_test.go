package telegram

import (
	"context"
	"io"
	"net"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/rpc"
	"github.com/gramkit/gram/tgerr"
)

func TestIsConnectionLost(t *testing.T) {
	require.True(t, isConnectionLost(rpc.ErrEngineClosed))
	require.True(t, isConnectionLost(errors.Wrap(rpc.ErrDropped, "invoke")))
	require.True(t, isConnectionLost(io.EOF))
	require.True(t, isConnectionLost(net.ErrClosed))

	// Server-side errors mean the connection is healthy.
	require.False(t, isConnectionLost(tgerr.New(420, "FLOOD_WAIT_5")))
	require.False(t, isConnectionLost(errors.New("decode")))
}

func TestWithIdempotent(t *testing.T) {
	ctx := context.Background()
	require.False(t, isIdempotent(ctx))
	require.True(t, isIdempotent(WithIdempotent(ctx)))
}
