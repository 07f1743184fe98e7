package telegram_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/session"
	"github.com/gramkit/gram/telegram"
	"github.com/gramkit/gram/tgtest"
	"github.com/gramkit/gram/transport"
	"github.com/gramkit/gram/updates"
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

// TypeID implements the optional interface used for span naming.
func (e *echoRequest) TypeID() uint32 { return echoRequestTypeID }

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

type eventUpdate struct {
	Pts  int
	Data string
}

const eventUpdateTypeID = 0x3f9a1c27

func (e *eventUpdate) Encode(b *bin.Buffer) error {
	b.PutID(eventUpdateTypeID)
	b.PutInt(e.Pts)
	b.PutString(e.Data)
	return nil
}

func (e *eventUpdate) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(eventUpdateTypeID); err != nil {
		return err
	}
	pts, err := b.Int()
	if err != nil {
		return err
	}
	data, err := b.String()
	if err != nil {
		return err
	}
	e.Pts = pts
	e.Data = data
	return nil
}

func TestClientE2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	server := tgtest.NewServer(key, tgtest.HandlerFunc(func(req *tgtest.Request) error {
		var echo echoRequest
		if err := echo.Decode(req.Buf); err != nil {
			return err
		}
		return req.SendResult(&echoResponse{Message: echo.Message})
	}), tgtest.ServerOptions{Logger: log.Named("server")})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dialer := func(context.Context) (transport.Conn, error) {
		clientConn, serverConn := transport.Pipe()
		go func() { _ = server.Serve(ctx, serverConn) }()
		return clientConn, nil
	}

	storage := &session.StorageMemory{}
	run := func(name string) error {
		client := telegram.New(telegram.Options{
			PublicKeys:     []*rsa.PublicKey{server.Key()},
			Dialer:         dialer,
			SessionStorage: storage,
			Logger:         log.Named(name),
		})
		return client.Run(ctx, func(ctx context.Context) error {
			var res echoResponse
			if err := client.Invoke(ctx, &echoRequest{Message: name}, &res); err != nil {
				return err
			}
			require.Equal(t, name, res.Message)
			return nil
		})
	}

	require.NoError(t, run("first"))

	// Session is persisted, the second run restores the auth key
	// instead of negotiating a new one.
	data, err := (&session.Loader{Storage: storage}).Load(ctx)
	require.NoError(t, err)
	require.Len(t, data.AuthKey, 256)

	require.NoError(t, run("second"))
}

func TestClientUpdatesEngine(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	// Server pushes two updates before answering the request; the pipe
	// keeps them ordered ahead of the rpc_result.
	server := tgtest.NewServer(key, tgtest.HandlerFunc(func(req *tgtest.Request) error {
		var echo echoRequest
		if err := echo.Decode(req.Buf); err != nil {
			return err
		}
		if err := req.SendUpdate(&eventUpdate{Pts: 1, Data: "created"}); err != nil {
			return err
		}
		if err := req.SendUpdate(&eventUpdate{Pts: 2, Data: "edited"}); err != nil {
			return err
		}
		return req.SendResult(&echoResponse{Message: echo.Message})
	}), tgtest.ServerOptions{Logger: log.Named("server")})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dialer := func(context.Context) (transport.Conn, error) {
		clientConn, serverConn := transport.Pipe()
		go func() { _ = server.Serve(ctx, serverConn) }()
		return clientConn, nil
	}

	var got []string
	storage := updates.NewMemStorage()
	engine := updates.New(func(ctx context.Context, state updates.State) (updates.Difference, error) {
		return updates.Difference{State: state}, nil
	}, updates.Options{
		Handler: updates.HandlerFunc(func(ctx context.Context, u updates.Update) error {
			got = append(got, u.Value.(string))
			return nil
		}),
		Storage: storage,
		Logger:  log.Named("updates"),
	})
	require.NoError(t, engine.Init(ctx))

	client := telegram.New(telegram.Options{
		PublicKeys: []*rsa.PublicKey{server.Key()},
		Dialer:     dialer,
		Logger:     log.Named("client"),
		UpdateHandler: telegram.UpdateHandlerFunc(func(b *bin.Buffer) error {
			id, err := b.PeekID()
			if err != nil {
				return err
			}
			if id != eventUpdateTypeID {
				return nil
			}
			var u eventUpdate
			if err := u.Decode(b); err != nil {
				return err
			}
			return engine.Handle(ctx, updates.Update{Pts: u.Pts, Value: u.Data})
		}),
	})
	require.NoError(t, client.Run(ctx, func(ctx context.Context) error {
		var res echoResponse
		return client.Invoke(ctx, &echoRequest{Message: "hi"}, &res)
	}))

	require.Equal(t, []string{"created", "edited"}, got)
	state, found, err := storage.GetState(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, state.Pts)
}
