package mtproto

import (
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/tgerr"
)

func (c *Conn) handleResult(b *bin.Buffer) error {
	var res mt.RPCResult
	if err := res.Decode(b); err != nil {
		return errors.Wrap(err, "decode")
	}
	c.log.Debug("Handle result", zap.Int64("msg_id", res.RequestMessageID))

	msgBuf := &bin.Buffer{Buf: res.Result}
	id, err := msgBuf.PeekID()
	if err != nil {
		return errors.Wrap(err, "peek result id")
	}

	if id == proto.GZIPTypeID {
		var content proto.GZIP
		if err := content.Decode(msgBuf); err != nil {
			return errors.Wrap(err, "decompress result")
		}
		msgBuf = &bin.Buffer{Buf: content.Data}
		if id, err = msgBuf.PeekID(); err != nil {
			return errors.Wrap(err, "peek decompressed result id")
		}
	}

	if id == mt.RPCErrorTypeID {
		var rpcErr mt.RPCError
		if err := rpcErr.Decode(msgBuf); err != nil {
			return errors.Wrap(err, "decode error")
		}
		c.rpc.NotifyError(res.RequestMessageID, tgerr.New(rpcErr.ErrorCode, rpcErr.ErrorMessage))
		return nil
	}

	return c.rpc.NotifyResult(res.RequestMessageID, msgBuf)
}
