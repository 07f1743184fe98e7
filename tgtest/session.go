package tgtest

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/transport"
)

// serverSession is a per-connection server-side session state.
type serverSession struct {
	server  *Server
	conn    transport.Conn
	key     crypto.AuthKey
	id      int64
	created bool

	seqMux sync.Mutex
	sent   int
}

func (s *serverSession) seqNo(content bool) int32 {
	s.seqMux.Lock()
	defer s.seqMux.Unlock()
	current := int32(s.sent) * 2
	if content {
		current++
		s.sent++
	}
	return current
}

// send encrypts and writes a single message to the client.
func (s *serverSession) send(ctx context.Context, content bool, msg bin.Encoder) error {
	payload := new(bin.Buffer)
	if err := payload.Encode(msg); err != nil {
		return errors.Wrap(err, "encode")
	}

	data := crypto.EncryptedMessageData{
		Salt:                   s.server.salt,
		SessionID:              s.id,
		MessageID:              s.server.msgID.New(proto.MessageServerResponse),
		SeqNo:                  s.seqNo(content),
		MessageDataLen:         int32(payload.Len()),
		MessageDataWithPadding: payload.Raw(),
	}

	b := new(bin.Buffer)
	if err := s.server.cipher.Encrypt(s.key, data, b); err != nil {
		return errors.Wrap(err, "encrypt")
	}
	return s.conn.Send(ctx, b)
}
