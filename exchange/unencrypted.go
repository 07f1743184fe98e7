package exchange

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/clock"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/transport"
)

type unencryptedWriter struct {
	clock  clock.Clock
	conn   transport.Conn
	input  proto.MessageType
	output proto.MessageType
}

func (w unencryptedWriter) writeUnencrypted(ctx context.Context, data bin.Encoder) error {
	var payload bin.Buffer
	if err := data.Encode(&payload); err != nil {
		return errors.Wrap(err, "encode payload")
	}

	var b bin.Buffer
	if err := b.Encode(proto.UnencryptedMessage{
		MessageID:   int64(proto.NewMessageID(w.clock.Now(), w.output)),
		MessageData: payload.Raw(),
	}); err != nil {
		return errors.Wrap(err, "encode message")
	}
	return w.conn.Send(ctx, &b)
}

// readUnencryptedPayload reads one unencrypted message and leaves its
// payload in b.
func (w unencryptedWriter) readUnencryptedPayload(ctx context.Context, b *bin.Buffer) error {
	b.Reset()
	if err := w.conn.Recv(ctx, b); err != nil {
		return err
	}

	var msg proto.UnencryptedMessage
	if err := msg.Decode(b); err != nil {
		return errors.Wrap(err, "decode message")
	}
	if proto.MessageID(msg.MessageID).Type() != w.input {
		return errors.New("unexpected message type")
	}

	b.ResetTo(msg.MessageData)
	return nil
}

func (w unencryptedWriter) readUnencrypted(ctx context.Context, data bin.Decoder) error {
	var b bin.Buffer
	if err := w.readUnencryptedPayload(ctx, &b); err != nil {
		return err
	}
	if err := data.Decode(&b); err != nil {
		return errors.Wrap(err, "decode payload")
	}
	return nil
}
