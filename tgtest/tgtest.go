// Package tgtest provides an in-process server implementation for
// end-to-end testing of clients, including the key exchange and the
// encrypted session protocol.
package tgtest

import (
	"context"
	"crypto/rsa"
	"io"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/exchange"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/transport"
)

// Server is a test MTProto server.
type Server struct {
	dc     int
	key    *rsa.PrivateKey
	cipher crypto.Cipher
	clock  clock.Clock
	rand   io.Reader
	log    *zap.Logger
	msgID  *proto.MessageIDGen

	handler Handler

	keysMux sync.RWMutex
	keys    map[[8]byte]crypto.AuthKey

	salt int64
}

// NewServer creates new Server with the provided RSA key.
func NewServer(key *rsa.PrivateKey, handler Handler, opts ServerOptions) *Server {
	opts.setDefaults()
	return &Server{
		dc:      opts.DC,
		key:     key,
		cipher:  crypto.NewServerCipher(opts.Random),
		clock:   opts.Clock,
		rand:    opts.Random,
		log:     opts.Logger,
		msgID:   proto.NewMessageIDGen(opts.Clock.Now),
		handler: handler,
		keys:    map[[8]byte]crypto.AuthKey{},
	}
}

// Key returns public part of the server RSA key.
func (s *Server) Key() *rsa.PublicKey {
	return &s.key.PublicKey
}

func (s *Server) storeKey(key crypto.AuthKey) {
	s.keysMux.Lock()
	s.keys[key.ID] = key
	s.keysMux.Unlock()
}

func (s *Server) lookupKey(id [8]byte) (crypto.AuthKey, bool) {
	s.keysMux.RLock()
	defer s.keysMux.RUnlock()
	key, ok := s.keys[id]
	return key, ok
}

// RegisterKey pre-registers an authorization key, as if it was
// negotiated in an earlier session.
func (s *Server) RegisterKey(key crypto.AuthKey) {
	s.storeKey(key)
}

// Serve handles a single client connection until it is closed or ctx
// is cancelled.
func (s *Server) Serve(ctx context.Context, conn transport.Conn) error {
	session := &serverSession{
		server: s,
		conn:   conn,
	}
	for {
		b := new(bin.Buffer)
		if err := conn.Recv(ctx, b); err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return errors.Wrap(err, "read")
			}
		}

		var authKeyID [8]byte
		if err := b.PeekN(authKeyID[:], 8); err != nil {
			return errors.Wrap(err, "peek auth key id")
		}
		if authKeyID == [8]byte{} {
			// Unencrypted message, the start of a key exchange.
			if err := s.exchange(ctx, conn, b); err != nil {
				return errors.Wrap(err, "exchange")
			}
			continue
		}

		if err := s.consume(ctx, session, b); err != nil {
			return errors.Wrap(err, "consume")
		}
	}
}

// exchange serves the handshake that starts with the already read
// first message in b.
func (s *Server) exchange(ctx context.Context, conn transport.Conn, first *bin.Buffer) error {
	res, err := exchange.NewExchange(s.rand, &replayConn{Conn: conn, first: first}).
		WithClock(s.clock).
		WithLogger(s.log.Named("exchange")).
		WithDC(s.dc).
		Server(s.key).
		Run(ctx)
	if err != nil {
		return err
	}
	s.storeKey(res.Key)
	s.salt = res.ServerSalt
	s.log.Info("Registered new auth key")
	return nil
}

// replayConn re-delivers an already consumed frame on first Recv.
type replayConn struct {
	transport.Conn
	first *bin.Buffer
}

func (c *replayConn) Recv(ctx context.Context, b *bin.Buffer) error {
	if c.first != nil {
		b.ResetTo(append([]byte(nil), c.first.Buf...))
		c.first = nil
		return nil
	}
	return c.Conn.Recv(ctx, b)
}

func (s *Server) consume(ctx context.Context, session *serverSession, b *bin.Buffer) error {
	var envelope crypto.EncryptedMessage
	if err := envelope.Decode(b); err != nil {
		return errors.Wrap(err, "decode envelope")
	}
	key, ok := s.lookupKey(envelope.AuthKeyID)
	if !ok {
		return errors.New("unknown auth key id")
	}
	data, err := s.cipher.Decrypt(key, &envelope)
	if err != nil {
		return errors.Wrap(err, "decrypt")
	}
	session.key = key
	session.id = data.SessionID

	if !session.created {
		session.created = true
		if err := session.send(ctx, false, &mt.NewSessionCreated{
			FirstMsgID: data.MessageID,
			ServerSalt: s.salt,
		}); err != nil {
			return errors.Wrap(err, "send new_session_created")
		}
	}

	return s.handleMessage(ctx, session, data.MessageID, data.SeqNo, &bin.Buffer{Buf: data.Data()})
}

func (s *Server) handleMessage(ctx context.Context, session *serverSession, msgID int64, seqNo int32, b *bin.Buffer) error {
	id, err := b.PeekID()
	if err != nil {
		return errors.Wrap(err, "peek id")
	}
	s.log.Debug("Handle message", zap.Uint32("type_id", id))

	switch id {
	case proto.MessageContainerTypeID:
		var container proto.MessageContainer
		if err := container.Decode(b); err != nil {
			return errors.Wrap(err, "decode container")
		}
		for _, msg := range container.Messages {
			if err := s.handleMessage(ctx, session, msg.ID, int32(msg.SeqNo), &bin.Buffer{Buf: msg.Body}); err != nil {
				return err
			}
		}
		return nil
	case proto.GZIPTypeID:
		var content proto.GZIP
		if err := content.Decode(b); err != nil {
			return errors.Wrap(err, "decode gzip")
		}
		return s.handleMessage(ctx, session, msgID, seqNo, &bin.Buffer{Buf: content.Data})
	case mt.MsgsAckTypeID:
		// Client acknowledgements need no reply.
		var ack mt.MsgsAck
		return ack.Decode(b)
	case mt.PingRequestTypeID:
		var ping mt.PingRequest
		if err := ping.Decode(b); err != nil {
			return errors.Wrap(err, "decode ping")
		}
		return session.send(ctx, false, &mt.Pong{MsgID: msgID, PingID: ping.PingID})
	case mt.PingDelayDisconnectRequestTypeID:
		var ping mt.PingDelayDisconnectRequest
		if err := ping.Decode(b); err != nil {
			return errors.Wrap(err, "decode ping")
		}
		return session.send(ctx, false, &mt.Pong{MsgID: msgID, PingID: ping.PingID})
	case mt.GetFutureSaltsRequestTypeID:
		var req mt.GetFutureSaltsRequest
		if err := req.Decode(b); err != nil {
			return errors.Wrap(err, "decode get_future_salts")
		}
		return s.sendFutureSalts(ctx, session, msgID, req.Num)
	}

	if seqNo%2 == 1 {
		if err := session.send(ctx, false, &mt.MsgsAck{MsgIDs: []int64{msgID}}); err != nil {
			return errors.Wrap(err, "ack")
		}
	}
	return s.handler.OnMessage(&Request{
		MsgID:   msgID,
		Buf:     b,
		session: session,
		ctx:     ctx,
	})
}

func (s *Server) sendFutureSalts(ctx context.Context, session *serverSession, reqMsgID int64, num int) error {
	if num > 64 {
		num = 64
	}
	now := s.clock.Now().Unix()
	salts := make([]mt.FutureSalt, 0, num)
	for i := 0; i < num; i++ {
		salt, err := crypto.RandInt64(s.rand)
		if err != nil {
			return err
		}
		salts = append(salts, mt.FutureSalt{
			ValidSince: int(now) + i*1800,
			ValidUntil: int(now) + (i+1)*1800,
			Salt:       salt,
		})
	}
	return session.send(ctx, false, &mt.FutureSalts{
		ReqMsgID: reqMsgID,
		Now:      int(now),
		Salts:    salts,
	})
}
