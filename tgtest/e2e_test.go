package tgtest_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mtproto"
	"github.com/gramkit/gram/tgerr"
	"github.com/gramkit/gram/tgtest"
	"github.com/gramkit/gram/transport"
)

type echoRequest struct {
	Message string
}

const echoRequestTypeID = 0xb43fa0cb

func (e *echoRequest) Encode(b *bin.Buffer) error {
	b.PutID(echoRequestTypeID)
	b.PutString(e.Message)
	return nil
}

func (e *echoRequest) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(echoRequestTypeID); err != nil {
		return err
	}
	v, err := b.String()
	if err != nil {
		return err
	}
	e.Message = v
	return nil
}

type echoResponse struct {
	Message string
}

const echoResponseTypeID = 0x9ae2cca1

func (e *echoResponse) Encode(b *bin.Buffer) error {
	b.PutID(echoResponseTypeID)
	b.PutString(e.Message)
	return nil
}

func (e *echoResponse) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(echoResponseTypeID); err != nil {
		return err
	}
	v, err := b.String()
	if err != nil {
		return err
	}
	e.Message = v
	return nil
}

type floodRequest struct{}

const floodRequestTypeID = 0x4c1a9b33

func (floodRequest) Encode(b *bin.Buffer) error {
	b.PutID(floodRequestTypeID)
	return nil
}

type saltedRequest struct{}

const saltedRequestTypeID = 0x8ff0a3d1

func (saltedRequest) Encode(b *bin.Buffer) error {
	b.PutID(saltedRequestTypeID)
	return nil
}

func TestClientServer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	// saltedCalls tracks deliveries of saltedRequest, first one is
	// rejected with a stale salt. The server loop is single-threaded,
	// so no synchronization is needed.
	saltedCalls := 0
	handler := tgtest.HandlerFunc(func(req *tgtest.Request) error {
		id, err := req.Buf.PeekID()
		if err != nil {
			return err
		}
		switch id {
		case echoRequestTypeID:
			var echo echoRequest
			if err := echo.Decode(req.Buf); err != nil {
				return err
			}
			return req.SendResult(&echoResponse{Message: echo.Message})
		case floodRequestTypeID:
			return req.SendErr(420, "FLOOD_WAIT_2")
		case saltedRequestTypeID:
			saltedCalls++
			if saltedCalls == 1 {
				return req.SendBadServerSalt(1, 0x1337)
			}
			return req.SendResult(&echoResponse{Message: "salted"})
		}
		return errors.Errorf("unexpected type %#x", id)
	})
	server := tgtest.NewServer(key, handler, tgtest.ServerOptions{
		Logger: log.Named("server"),
	})

	clientConn, serverConn := transport.Pipe()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Serve exits with a pipe error after the client disconnects, so
	// its result is not asserted.
	go func() { _ = server.Serve(ctx, serverConn) }()

	conn := mtproto.New(
		func(ctx context.Context) (transport.Conn, error) { return clientConn, nil },
		mtproto.Options{
			PublicKeys: []*rsa.PublicKey{server.Key()},
			Logger:     log.Named("client"),
		},
	)

	err = conn.Run(ctx, func(ctx context.Context) error {
		var res echoResponse
		if err := conn.Invoke(ctx, &echoRequest{Message: "hello"}, &res); err != nil {
			return errors.Wrap(err, "echo")
		}
		if res.Message != "hello" {
			return errors.Errorf("unexpected echo %q", res.Message)
		}

		floodErr := conn.Invoke(ctx, floodRequest{}, &res)
		d, ok := tgerr.AsFloodWait(floodErr)
		if !ok {
			return errors.Wrap(floodErr, "expected flood wait")
		}
		if d != 2*time.Second {
			return errors.Errorf("unexpected flood wait %s", d)
		}

		// First delivery is rejected with bad_server_salt, the call
		// must transparently repeat with the updated salt.
		if err := conn.Invoke(ctx, saltedRequest{}, &res); err != nil {
			return errors.Wrap(err, "salted")
		}
		if res.Message != "salted" {
			return errors.Errorf("unexpected result %q", res.Message)
		}

		if err := conn.Ping(ctx); err != nil {
			return errors.Wrap(err, "ping")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, saltedCalls)
}

func TestClientServerKeyReuse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	handler := tgtest.HandlerFunc(func(req *tgtest.Request) error {
		var echo echoRequest
		if err := echo.Decode(req.Buf); err != nil {
			return err
		}
		return req.SendResult(&echoResponse{Message: echo.Message})
	})
	server := tgtest.NewServer(key, handler, tgtest.ServerOptions{
		Logger: log.Named("server"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var session mtproto.Session
	run := func(opts mtproto.Options) error {
		clientConn, serverConn := transport.Pipe()
		go func() { _ = server.Serve(ctx, serverConn) }()

		opts.PublicKeys = []*rsa.PublicKey{server.Key()}
		conn := mtproto.New(
			func(ctx context.Context) (transport.Conn, error) { return clientConn, nil },
			opts,
		)
		return conn.Run(ctx, func(ctx context.Context) error {
			var res echoResponse
			return conn.Invoke(ctx, &echoRequest{Message: "ping"}, &res)
		})
	}

	require.NoError(t, run(mtproto.Options{
		Logger:  log.Named("first"),
		Handler: sessionSaver{session: &session},
	}))
	require.False(t, session.Key.Zero())

	// Second connection restores the key instead of negotiating.
	require.NoError(t, run(mtproto.Options{
		Logger: log.Named("second"),
		Key:    session.Key,
		Salt:   session.Salt,
	}))
}

type sessionSaver struct {
	session *mtproto.Session
}

func (sessionSaver) OnMessage(b *bin.Buffer) error { return nil }

func (s sessionSaver) OnSession(session mtproto.Session) error {
	*s.session = session
	return nil
}
