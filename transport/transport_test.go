package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/gramkit/gram/bin"
)

func TestPipe(t *testing.T) {
	client, server := Pipe()
	defer func() {
		_ = client.Close()
		_ = server.Close()
	}()

	payload := []byte("abcd1234abcd1234")

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return client.Send(ctx, &bin.Buffer{Buf: payload})
	})
	g.Go(func() error {
		var b bin.Buffer
		if err := server.Recv(ctx, &b); err != nil {
			return err
		}
		require.Equal(t, payload, b.Buf)
		return nil
	})
	require.NoError(t, g.Wait())
}

func TestHandshake(t *testing.T) {
	for _, tt := range []struct {
		name string
		t    *Transport
	}{
		{"Intermediate", Intermediate()},
		{"PaddedIntermediate", PaddedIntermediate()},
		{"Full", Full()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			a, b := netPipe(t)

			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() error {
				conn, err := tt.t.Handshake(a)
				if err != nil {
					return err
				}
				return conn.Send(ctx, &bin.Buffer{Buf: []byte{1, 2, 3, 4}})
			})
			g.Go(func() error {
				srv := tt.t.newCodec()
				if err := srv.ReadHeader(b); err != nil {
					return err
				}
				var buf bin.Buffer
				if err := srv.Read(b, &buf); err != nil {
					return err
				}
				require.Equal(t, []byte{1, 2, 3, 4}, buf.Buf)
				return nil
			})
			require.NoError(t, g.Wait())
		})
	}
}
