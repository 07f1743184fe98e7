package exchange

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/testutil"
	"github.com/gramkit/gram/transport"
)

func TestExchange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, crypto.RSAKeyBits)
	require.NoError(t, err)

	client, server := transport.Pipe()
	defer func() {
		_ = client.Close()
		_ = server.Close()
	}()

	var (
		clientResult ClientExchangeResult
		serverResult ServerExchangeResult
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		res, err := NewExchange(rand.Reader, client).
			WithDC(2).
			Client([]*rsa.PublicKey{&privateKey.PublicKey}).
			Run(ctx)
		if err != nil {
			return err
		}
		clientResult = res
		return nil
	})
	g.Go(func() error {
		res, err := NewExchange(rand.Reader, server).
			Server(privateKey).
			WithDH(testutil.DHPrime(), testutil.DHGenerator).
			Run(ctx)
		if err != nil {
			return err
		}
		serverResult = res
		return nil
	})
	require.NoError(t, g.Wait())

	require.Equal(t, serverResult.Key, clientResult.AuthKey)
	require.Equal(t, serverResult.ServerSalt, clientResult.ServerSalt)
	require.NotZero(t, clientResult.SessionID)
	require.False(t, clientResult.AuthKey.Zero())
}
