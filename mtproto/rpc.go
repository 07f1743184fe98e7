package mtproto

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/rpc"
)

// Invoke sends an input and decodes the result into output, blocking
// until the response or an error arrives.
func (c *Conn) Invoke(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
	req := rpc.Request{
		MsgID:  c.newMessageID(),
		SeqNo:  c.seqNo(true),
		Input:  input,
		Output: output,
	}
	c.log.Debug("Invoke start", zap.Int64("msg_id", req.MsgID))

	if err := c.rpc.Do(ctx, req); err != nil {
		var badMsgErr *badMessageError
		if errors.As(err, &badMsgErr) && badMsgErr.Code == mt.ErrBadServerSalt {
			// Salt is already updated from the notification, repeat
			// the call once with a fresh message id.
			c.log.Debug("Retrying request after bad_server_salt",
				zap.Int64("msg_id", req.MsgID),
			)
			return c.rpc.Do(ctx, rpc.Request{
				MsgID:  c.newMessageID(),
				SeqNo:  c.seqNo(true),
				Input:  input,
				Output: output,
			})
		}
		return err
	}
	return nil
}

// SendMessage encrypts and sends a content-related message outside of
// the request engine.
func (c *Conn) SendMessage(ctx context.Context, encoder bin.Encoder) error {
	return c.writeContentMessage(ctx, encoder)
}
